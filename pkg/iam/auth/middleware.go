package auth

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hirehub/hirehub/pkg/kernel"
)

const authContextKey = "auth_context"

// AuthContext carries the authenticated requester through a request
type AuthContext struct {
	UserID         kernel.UserID
	Role           kernel.Role
	TokenID        string
	TokenExpiresAt time.Time
}

// RevocationList tracks tokens invalidated before their natural expiry
type RevocationList interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// TokenMiddleware authenticates requests via cookie or bearer token
type TokenMiddleware struct {
	tokenService TokenService
	revocations  RevocationList
	cookieName   string
}

// NewTokenMiddleware creates the authentication middleware
func NewTokenMiddleware(tokenService TokenService, revocations RevocationList, cookieName string) *TokenMiddleware {
	return &TokenMiddleware{
		tokenService: tokenService,
		revocations:  revocations,
		cookieName:   cookieName,
	}
}

// Authenticate validates the request token and attaches the auth context
func (m *TokenMiddleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := m.extractToken(c)
		if tokenString == "" {
			return ErrMissingToken()
		}

		claims, err := m.tokenService.ValidateAccessToken(tokenString)
		if err != nil {
			return err
		}

		revoked, err := m.revocations.IsRevoked(c.Context(), claims.TokenID)
		if err != nil {
			// Revocation store unavailable: fail closed
			return ErrInvalidToken().WithDetail("reason", "revocation check failed")
		}
		if revoked {
			return ErrTokenRevoked()
		}

		c.Locals(authContextKey, &AuthContext{
			UserID:         claims.UserID,
			Role:           claims.Role,
			TokenID:        claims.TokenID,
			TokenExpiresAt: claims.ExpiresAt,
		})

		return c.Next()
	}
}

// RequireRole rejects authenticated requests whose role does not match
func (m *TokenMiddleware) RequireRole(role kernel.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authCtx, ok := GetAuthContext(c)
		if !ok {
			return ErrMissingToken()
		}
		if authCtx.Role != role {
			return ErrForbiddenRole().
				WithDetail("required_role", role.String()).
				WithDetail("actual_role", authCtx.Role.String())
		}
		return c.Next()
	}
}

func (m *TokenMiddleware) extractToken(c *fiber.Ctx) string {
	if cookie := c.Cookies(m.cookieName); cookie != "" {
		return cookie
	}

	authHeader := c.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}

	return ""
}

// GetAuthContext extracts the authenticated requester from the request
func GetAuthContext(c *fiber.Ctx) (*AuthContext, bool) {
	authCtx, ok := c.Locals(authContextKey).(*AuthContext)
	return authCtx, ok
}
