package errx_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/hirehub/hirehub/pkg/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryQualifiesCodes(t *testing.T) {
	registry := errx.NewRegistry("WIDGET")
	code := registry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Widget not found")

	assert.Equal(t, errx.Code("WIDGET_NOT_FOUND"), code)

	err := registry.New(code)
	assert.Equal(t, errx.TypeNotFound, err.Type)
	assert.Equal(t, http.StatusNotFound, err.HTTPStatus)
	assert.Equal(t, "Widget not found", err.Message)
}

func TestUnregisteredCodeFallsBackToInternal(t *testing.T) {
	registry := errx.NewRegistry("WIDGET")

	err := registry.New("WIDGET_UNKNOWN")
	assert.Equal(t, errx.TypeInternal, err.Type)
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus)
}

func TestWithDetail(t *testing.T) {
	registry := errx.NewRegistry("WIDGET")
	code := registry.Register("BAD", errx.TypeValidation, http.StatusBadRequest, "Bad widget")

	err := registry.New(code).
		WithDetail("field", "name").
		WithDetail("reason", "empty")

	assert.Equal(t, "name", err.Details["field"])
	assert.Equal(t, "empty", err.Details["reason"])

	resp := err.ToHTTPResponse()
	assert.Equal(t, err.Details, resp["details"])
}

func TestWrapKeepsTypedErrors(t *testing.T) {
	registry := errx.NewRegistry("WIDGET")
	code := registry.Register("GONE", errx.TypeNotFound, http.StatusNotFound, "Widget gone")
	original := registry.New(code)

	wrapped := errx.Wrap(original, "something else", errx.TypeInternal)
	assert.Same(t, original, wrapped, "wrapping a typed error keeps the original classification")
}

func TestWrapClassifiesPlainErrors(t *testing.T) {
	cause := errors.New("connection refused")

	wrapped := errx.Wrap(cause, "upstream unavailable", errx.TypeExternal)
	require.NotNil(t, wrapped)
	assert.Equal(t, errx.TypeExternal, wrapped.Type)
	assert.Equal(t, http.StatusBadGateway, wrapped.HTTPStatus)
	assert.ErrorIs(t, wrapped, cause)

	wrapped = errx.Wrap(cause, "query failed", errx.TypeInternal)
	assert.Equal(t, http.StatusInternalServerError, wrapped.HTTPStatus)
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, errx.Wrap(nil, "no-op", errx.TypeInternal))
}

func TestIsType(t *testing.T) {
	registry := errx.NewRegistry("WIDGET")
	code := registry.Register("DUP", errx.TypeConflict, http.StatusConflict, "Duplicate widget")

	err := registry.New(code)
	assert.True(t, errx.IsType(err, errx.TypeConflict))
	assert.False(t, errx.IsType(err, errx.TypeValidation))
	assert.False(t, errx.IsType(errors.New("plain"), errx.TypeConflict))
}
