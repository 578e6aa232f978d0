package errx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Code identifies a single error definition, unique within a Registry.
type Code string

// Type is the general category of an error.
type Type string

const (
	TypeValidation    Type = "VALIDATION"
	TypeAuthorization Type = "AUTHORIZATION"
	TypeNotFound      Type = "NOT_FOUND"
	TypeConflict      Type = "CONFLICT"
	TypeInternal      Type = "INTERNAL"
	TypeBadRequest    Type = "BAD_REQUEST"
	TypeExternal      Type = "EXTERNAL" // errors reported by an external service
	TypeTimeout       Type = "TIMEOUT"
)

// Error is a structured error with a stable code, a category, and an
// optional HTTP status mapping.
type Error struct {
	Code       Code           `json:"code"`
	Type       Type           `json:"type"`
	Message    string         `json:"message"`
	Details    map[string]any `json:"details,omitempty"`
	HTTPStatus int            `json:"-"`
	cause      error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Code, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is/errors.As chains.
func (e *Error) Unwrap() error {
	return e.cause
}

// WithDetails replaces the details map and returns the same error.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

// WithDetail adds a single detail entry and returns the same error.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause attaches an underlying cause and returns the same error.
func (e *Error) WithCause(cause error) *Error {
	e.cause = cause
	return e
}

// Is matches two errx errors by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// IsCode reports whether err is an errx error with the given code.
func IsCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// IsType reports whether err is an errx error of the given type.
func IsType(err error, errType Type) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Type == errType
	}
	return false
}

// New creates a standalone Error with a type-derived code.
func New(message string, errType Type) *Error {
	return &Error{
		Code:    Code(fmt.Sprintf("%s_ERROR", errType)),
		Type:    errType,
		Message: message,
	}
}

// Wrap converts any error into an errx Error, keeping the original as the
// cause. If err is already an errx Error its details and status survive.
func Wrap(err error, message string, errType Type) *Error {
	if err == nil {
		return nil
	}

	var xerr *Error
	if errors.As(err, &xerr) {
		return &Error{
			Code:       xerr.Code,
			Type:       errType,
			Message:    message,
			Details:    xerr.Details,
			HTTPStatus: xerr.HTTPStatus,
			cause:      err,
		}
	}

	return &Error{
		Code:    Code(fmt.Sprintf("%s_ERROR", errType)),
		Type:    errType,
		Message: message,
		cause:   err,
	}
}

// Registry holds the error definitions of one package, each code prefixed
// with the registry name.
type Registry struct {
	prefix    string
	errorDefs map[Code]*Error
}

// NewRegistry creates a Registry whose codes carry the given prefix.
func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix:    prefix,
		errorDefs: make(map[Code]*Error),
	}
}

// Register adds an error definition and returns its full code.
func (r *Registry) Register(code Code, errType Type, httpStatus int, message string) Code {
	fullCode := Code(fmt.Sprintf("%s_%s", r.prefix, code))
	r.errorDefs[fullCode] = &Error{
		Code:       fullCode,
		Type:       errType,
		Message:    message,
		HTTPStatus: httpStatus,
	}
	return fullCode
}

// New instantiates a registered error. Instances are copies, so callers may
// attach details without mutating the definition.
func (r *Registry) New(code Code) *Error {
	if def, ok := r.errorDefs[code]; ok {
		return &Error{
			Code:       def.Code,
			Type:       def.Type,
			Message:    def.Message,
			HTTPStatus: def.HTTPStatus,
		}
	}
	return &Error{
		Code:       "UNKNOWN_ERROR",
		Type:       TypeInternal,
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
	}
}

// NewWithMessage instantiates a registered error with a custom message.
func (r *Registry) NewWithMessage(code Code, message string) *Error {
	err := r.New(code)
	err.Message = message
	return err
}

// NewWithCause instantiates a registered error with an underlying cause.
func (r *Registry) NewWithCause(code Code, cause error) *Error {
	err := r.New(code)
	err.cause = cause
	return err
}

// FromResponse builds an Error from an HTTP response, for clients talking
// to services that emit errx-shaped bodies. Non-errx bodies become a
// TypeExternal error carrying the raw body as the message.
func FromResponse(resp *http.Response) error {
	if resp == nil {
		return New("empty response", TypeInternal)
	}

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Wrap(err, "error reading response body", TypeInternal)
	}

	var xerr Error
	if err := json.Unmarshal(body, &xerr); err != nil || xerr.Code == "" {
		return &Error{
			Code:       "EXTERNAL_ERROR",
			Type:       TypeExternal,
			Message:    string(body),
			HTTPStatus: resp.StatusCode,
		}
	}

	xerr.HTTPStatus = resp.StatusCode
	return &xerr
}
