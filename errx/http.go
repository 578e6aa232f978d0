package errx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// statusOf returns the HTTP status for any error, defaulting to 500.
func statusOf(err error) (int, *Error) {
	var xerr *Error
	if errors.As(err, &xerr) {
		status := xerr.HTTPStatus
		if status == 0 {
			status = http.StatusInternalServerError
		}
		return status, xerr
	}
	return http.StatusInternalServerError, New(err.Error(), TypeInternal)
}

// ToHTTP writes the error as JSON to a standard net/http response writer.
func (e *Error) ToHTTP(w http.ResponseWriter) {
	status, xerr := statusOf(e)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(xerr)
}

// ToFiber writes the error as JSON to a Fiber context.
func (e *Error) ToFiber(c *fiber.Ctx) error {
	status, xerr := statusOf(e)
	return c.Status(status).JSON(xerr)
}

// WriteHTTP writes any error to a net/http response writer, wrapping
// non-errx errors as internal.
func WriteHTTP(w http.ResponseWriter, err error) {
	status, xerr := statusOf(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(xerr)
}

// WriteFiber writes any error to a Fiber context, wrapping non-errx errors
// as internal.
func WriteFiber(c *fiber.Ctx, err error) error {
	status, xerr := statusOf(err)
	return c.Status(status).JSON(xerr)
}
