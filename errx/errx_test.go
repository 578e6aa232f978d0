package errx

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New("something broke", TypeInternal)

	assert.Equal(t, Code("INTERNAL_ERROR"), err.Code)
	assert.Equal(t, TypeInternal, err.Type)
	assert.Equal(t, "[INTERNAL] INTERNAL_ERROR: something broke", err.Error())
}

func TestWrapPlainError(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, "could not reach provider", TypeExternal)

	assert.Equal(t, Code("EXTERNAL_ERROR"), err.Code)
	assert.ErrorIs(t, err, cause)

	assert.Nil(t, Wrap(nil, "ignored", TypeInternal))
}

func TestWrapKeepsErrxDetails(t *testing.T) {
	reg := NewRegistry("TEST")
	code := reg.Register("LOW", TypeNotFound, http.StatusNotFound, "not here")
	inner := reg.New(code).WithDetail("id", "42")

	wrapped := Wrap(inner, "lookup failed", TypeInternal)
	assert.Equal(t, code, wrapped.Code)
	assert.Equal(t, "42", wrapped.Details["id"])
	assert.Equal(t, http.StatusNotFound, wrapped.HTTPStatus)
}

func TestRegistryCodesArePrefixed(t *testing.T) {
	reg := NewRegistry("TEST")
	code := reg.Register("BOOM", TypeValidation, http.StatusBadRequest, "boom")

	assert.Equal(t, Code("TEST_BOOM"), code)

	err := reg.New(code)
	assert.Equal(t, TypeValidation, err.Type)
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus)
}

func TestRegistryInstancesAreCopies(t *testing.T) {
	reg := NewRegistry("TEST")
	code := reg.Register("BOOM", TypeValidation, http.StatusBadRequest, "boom")

	first := reg.New(code).WithDetail("field", "name")
	second := reg.New(code)

	assert.Empty(t, second.Details)
	assert.NotSame(t, first, second)
}

func TestRegistryUnknownCode(t *testing.T) {
	reg := NewRegistry("TEST")
	err := reg.New("TEST_NEVER_REGISTERED")

	assert.Equal(t, Code("UNKNOWN_ERROR"), err.Code)
	assert.Equal(t, TypeInternal, err.Type)
}

func TestIsCodeAndIsType(t *testing.T) {
	reg := NewRegistry("TEST")
	code := reg.Register("GONE", TypeNotFound, http.StatusNotFound, "gone")
	err := reg.New(code)

	assert.True(t, IsCode(err, code))
	assert.False(t, IsCode(err, "TEST_OTHER"))
	assert.True(t, IsType(err, TypeNotFound))
	assert.False(t, IsType(errors.New("plain"), TypeNotFound))

	wrapped := fmt.Errorf("outer: %w", err)
	assert.True(t, IsCode(wrapped, code))
}

func TestWriteHTTP(t *testing.T) {
	reg := NewRegistry("TEST")
	code := reg.Register("DENIED", TypeAuthorization, http.StatusForbidden, "denied")

	rec := httptest.NewRecorder()
	WriteHTTP(rec, reg.New(code))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"TEST_DENIED"`)
}

func TestWriteHTTPPlainErrorDefaultsTo500(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteHTTP(rec, errors.New("plain"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestFromResponse(t *testing.T) {
	t.Run("errx body", func(t *testing.T) {
		resp := &http.Response{
			StatusCode: http.StatusConflict,
			Body:       io.NopCloser(strings.NewReader(`{"code":"TEST_DUP","type":"CONFLICT","message":"duplicate"}`)),
		}

		err := FromResponse(resp)
		require.Error(t, err)
		assert.True(t, IsCode(err, "TEST_DUP"))

		var xerr *Error
		require.ErrorAs(t, err, &xerr)
		assert.Equal(t, http.StatusConflict, xerr.HTTPStatus)
	})

	t.Run("opaque body", func(t *testing.T) {
		resp := &http.Response{
			StatusCode: http.StatusBadGateway,
			Body:       io.NopCloser(strings.NewReader("upstream exploded")),
		}

		err := FromResponse(resp)
		assert.True(t, IsType(err, TypeExternal))

		var xerr *Error
		require.ErrorAs(t, err, &xerr)
		assert.Equal(t, "upstream exploded", xerr.Message)
	})
}
