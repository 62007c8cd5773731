package auth

import (
	"net/http"

	"github.com/hirehub/hirehub/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("AUTH")

// Error codes
var (
	CodeMissingToken  = ErrRegistry.Register("MISSING_TOKEN", errx.TypeAuthorization, http.StatusUnauthorized, "Authentication required")
	CodeInvalidToken  = ErrRegistry.Register("INVALID_TOKEN", errx.TypeAuthorization, http.StatusUnauthorized, "Invalid or expired token")
	CodeTokenRevoked  = ErrRegistry.Register("TOKEN_REVOKED", errx.TypeAuthorization, http.StatusUnauthorized, "Token has been revoked")
	CodeForbiddenRole = ErrRegistry.Register("FORBIDDEN_ROLE", errx.TypeAuthorization, http.StatusForbidden, "Insufficient role for this operation")
)

// Helper functions
func ErrMissingToken() *errx.Error {
	return ErrRegistry.New(CodeMissingToken)
}

func ErrInvalidToken() *errx.Error {
	return ErrRegistry.New(CodeInvalidToken)
}

func ErrTokenRevoked() *errx.Error {
	return ErrRegistry.New(CodeTokenRevoked)
}

func ErrForbiddenRole() *errx.Error {
	return ErrRegistry.New(CodeForbiddenRole)
}
