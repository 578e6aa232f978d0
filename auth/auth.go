package auth

import (
	"net/http"

	"github.com/arest/oauthkit/errx"
)

// ResourceOwner is a provider definition able to produce its own
// authorization URL. Implementations typically wrap a concrete provider's
// endpoints; the coordinator treats them as opaque and propagates their
// errors unchanged.
type ResourceOwner interface {
	GetAuthorizationURL(redirectURL string, extra map[string]string) (string, error)
}

// Router generates URLs for named routes. Absolute URLs include scheme and
// host; relative ones are paths.
type Router interface {
	Generate(route string, params map[string]string, absolute bool) (string, error)
}

// LoginState reports the authentication state of the current principal.
type LoginState interface {
	// IsRememberedOrBetter returns true when the principal is at least
	// "remembered" authenticated (remember-me cookie or a full login).
	IsRememberedOrBetter() bool
}

// BaseResolver turns a local path into an absolute URL against the current
// request's base.
type BaseResolver interface {
	ResolveAbsoluteFromPath(path string) (string, error)
}

// UserResponse gives normalized access to the profile fields of a provider
// response. Accessors return nil when the provider did not supply the
// field; values are returned exactly as the provider sent them.
type UserResponse interface {
	GetUsername() any
	GetNickname() any
	GetRealName() any
	GetEmail() any
	GetFirstName() any
	GetLastName() any
	GetProfilePicture() any
}

// Route names the coordinator generates URLs for.
const (
	// RouteConnectService completes linking a provider to an
	// already-authenticated principal.
	RouteConnectService = "oauth_connect_service"

	// RouteServiceRedirect starts the login flow for a provider.
	RouteServiceRedirect = "oauth_service_redirect"
)

var authErrors = errx.NewRegistry("AUTH")

// Error codes
var (
	ErrUnknownProvider = authErrors.Register("UNKNOWN_PROVIDER", errx.TypeNotFound, http.StatusNotFound, "Unknown resource owner")
	ErrOwnerConfig     = authErrors.Register("OWNER_CONFIG", errx.TypeValidation, http.StatusBadRequest, "Invalid resource owner configuration")
	ErrInvalidState    = authErrors.Register("INVALID_STATE", errx.TypeAuthorization, http.StatusUnauthorized, "Invalid state token")
	ErrStateExpired    = authErrors.Register("STATE_EXPIRED", errx.TypeAuthorization, http.StatusUnauthorized, "State token expired")
)
