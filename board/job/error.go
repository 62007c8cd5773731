package job

import (
	"net/http"

	"github.com/hirehub/hirehub/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("JOB")

// Error codes
var (
	CodeJobNotFound      = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Job not found")
	CodeNotOwner         = ErrRegistry.Register("NOT_OWNER", errx.TypeAuthorization, http.StatusForbidden, "Job was posted by another recruiter")
	CodeInvalidRequest   = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
	CodeValidationFailed = ErrRegistry.Register("VALIDATION_FAILED", errx.TypeValidation, http.StatusBadRequest, "Request validation failed")
	CodeNoRequirements   = ErrRegistry.Register("NO_REQUIREMENTS", errx.TypeValidation, http.StatusBadRequest, "At least one requirement is required")
	CodeInvalidExtension = ErrRegistry.Register("INVALID_EXTENSION", errx.TypeValidation, http.StatusBadRequest, "Extension days must be positive")
	CodePastExpiration   = ErrRegistry.Register("PAST_EXPIRATION", errx.TypeValidation, http.StatusBadRequest, "Expiration date must not be in the past")
)

// Helper functions
func ErrJobNotFound() *errx.Error {
	return ErrRegistry.New(CodeJobNotFound)
}

func ErrNotOwner() *errx.Error {
	return ErrRegistry.New(CodeNotOwner)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}

func ErrValidationFailed() *errx.Error {
	return ErrRegistry.New(CodeValidationFailed)
}

func ErrNoRequirements() *errx.Error {
	return ErrRegistry.New(CodeNoRequirements)
}

func ErrInvalidExtension() *errx.Error {
	return ErrRegistry.New(CodeInvalidExtension)
}

func ErrPastExpiration() *errx.Error {
	return ErrRegistry.New(CodePastExpiration)
}
