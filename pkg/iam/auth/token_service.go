package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/hirehub/hirehub/pkg/kernel"
)

// TokenClaims are the validated contents of an access token
type TokenClaims struct {
	UserID    kernel.UserID
	Role      kernel.Role
	TokenID   string
	ExpiresAt time.Time
}

// TokenService issues and validates access tokens
type TokenService interface {
	GenerateAccessToken(userID kernel.UserID, role kernel.Role) (string, *TokenClaims, error)
	ValidateAccessToken(tokenString string) (*TokenClaims, error)
}

// JWTService implements TokenService using HMAC-signed JWTs
type JWTService struct {
	secretKey []byte
	tokenTTL  time.Duration
	issuer    string
}

// NewJWTService creates a JWT-backed token service
func NewJWTService(secretKey string, tokenTTL time.Duration, issuer string) *JWTService {
	return &JWTService{
		secretKey: []byte(secretKey),
		tokenTTL:  tokenTTL,
		issuer:    issuer,
	}
}

type jwtClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateAccessToken signs a token for the given user and role
func (s *JWTService) GenerateAccessToken(userID kernel.UserID, role kernel.Role) (string, *TokenClaims, error) {
	now := time.Now()
	expiresAt := now.Add(s.tokenTTL)
	tokenID := uuid.NewString()

	claims := jwtClaims{
		Role: role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   userID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", nil, err
	}

	return signed, &TokenClaims{
		UserID:    userID,
		Role:      role,
		TokenID:   tokenID,
		ExpiresAt: expiresAt,
	}, nil
}

// ValidateAccessToken parses and verifies a token string
func (s *JWTService) ValidateAccessToken(tokenString string) (*TokenClaims, error) {
	var claims jwtClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken().WithDetail("alg", t.Header["alg"])
		}
		return s.secretKey, nil
	}, jwt.WithIssuer(s.issuer))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken()
	}

	role := kernel.Role(claims.Role)
	if !role.IsValid() {
		return nil, ErrInvalidToken().WithDetail("role", claims.Role)
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	return &TokenClaims{
		UserID:    kernel.UserID(claims.Subject),
		Role:      role,
		TokenID:   claims.ID,
		ExpiresAt: expiresAt,
	}, nil
}
