/*
Package errx provides structured error handling for the toolkit. Errors
carry a stable code, a category type, optional details, an HTTP status
mapping, and an underlying cause, with integrations for both standard
net/http and Fiber.

# Basic Usage

Create simple errors with the New function:

	err := errx.New("provider not found", errx.TypeNotFound)

	if errx.IsType(err, errx.TypeNotFound) {
		// Handle not found case
	}

# Error Registry

Packages define their errors once in a prefixed registry:

	var oauthErrors = errx.NewRegistry("OAUTH")

	ErrUnknownProvider := oauthErrors.Register(
		"UNKNOWN_PROVIDER", errx.TypeNotFound,
		http.StatusNotFound, "Unknown resource owner")

	err := oauthErrors.New(ErrUnknownProvider).
		WithDetail("provider", "github")

# Wrapping

Wrap keeps the original error reachable through errors.Is/errors.As:

	if err := loadKey(path); err != nil {
		return errx.Wrap(err, "could not load private key", errx.TypeInternal)
	}

# HTTP Responses

Errors serialize directly onto HTTP responses:

	errx.WriteHTTP(w, err)          // net/http
	return errx.WriteFiber(c, err)  // Fiber handler
*/
package errx
