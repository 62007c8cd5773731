package errx

import (
	"fmt"
	"net/http"
)

// Type classifies an error for transport-independent handling
type Type string

const (
	TypeValidation    Type = "VALIDATION"
	TypeNotFound      Type = "NOT_FOUND"
	TypeAuthorization Type = "AUTHORIZATION"
	TypeConflict      Type = "CONFLICT"
	TypeBusiness      Type = "BUSINESS"
	TypeInternal      Type = "INTERNAL"
	TypeExternal      Type = "EXTERNAL"
)

// Code identifies a registered error within a registry
type Code string

// definition is the registered metadata for a code
type definition struct {
	Type       Type
	HTTPStatus int
	Message    string
}

// Registry holds the error definitions of one domain, namespaced by prefix
type Registry struct {
	prefix      string
	definitions map[Code]definition
}

// NewRegistry creates a registry for a domain prefix (e.g. "JOB")
func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix:      prefix,
		definitions: make(map[Code]definition),
	}
}

// Register adds an error definition and returns its fully qualified code
func (r *Registry) Register(code string, t Type, httpStatus int, message string) Code {
	full := Code(r.prefix + "_" + code)
	r.definitions[full] = definition{
		Type:       t,
		HTTPStatus: httpStatus,
		Message:    message,
	}
	return full
}

// New creates an error instance from a registered code
func (r *Registry) New(code Code) *Error {
	def, ok := r.definitions[code]
	if !ok {
		return &Error{
			Type:       TypeInternal,
			Code:       code,
			Message:    "unregistered error code",
			HTTPStatus: http.StatusInternalServerError,
		}
	}

	return &Error{
		Type:       def.Type,
		Code:       code,
		Message:    def.Message,
		HTTPStatus: def.HTTPStatus,
	}
}

// Error is a typed application error with HTTP mapping and optional details
type Error struct {
	Type       Type           `json:"type"`
	Code       Code           `json:"code"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	cause      error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is/As
func (e *Error) Unwrap() error {
	return e.cause
}

// WithDetail attaches a key/value pair for caller context
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause attaches an underlying error
func (e *Error) WithCause(err error) *Error {
	e.cause = err
	return e
}

// ToHTTPResponse returns the JSON-serializable body for this error
func (e *Error) ToHTTPResponse() map[string]any {
	resp := map[string]any{
		"type":    e.Type,
		"code":    e.Code,
		"message": e.Message,
	}
	if len(e.Details) > 0 {
		resp["details"] = e.Details
	}
	return resp
}

// Wrap converts an arbitrary error into an *Error of the given type
func Wrap(err error, message string, t Type) *Error {
	if err == nil {
		return nil
	}

	// Already typed: keep the original classification
	if typed, ok := err.(*Error); ok {
		return typed
	}

	status := http.StatusInternalServerError
	if t == TypeExternal {
		status = http.StatusBadGateway
	}

	return &Error{
		Type:       t,
		Code:       Code(string(t) + "_ERROR"),
		Message:    message,
		HTTPStatus: status,
		cause:      err,
	}
}

// IsType reports whether err is an *Error of the given type
func IsType(err error, t Type) bool {
	typed, ok := err.(*Error)
	return ok && typed.Type == t
}
