package routex

import (
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/arest/oauthkit/errx"
)

var routexErrors = errx.NewRegistry("ROUTEX")

// Error codes returned by this package.
var (
	ErrUnknownRoute = routexErrors.Register("UNKNOWN_ROUTE", errx.TypeNotFound, http.StatusNotFound, "No route registered under that name")
	ErrBadBaseURL   = routexErrors.Register("BAD_BASE_URL", errx.TypeValidation, http.StatusBadRequest, "Base URL must be absolute")
	ErrBuildURL     = routexErrors.Register("BUILD_URL", errx.TypeInternal, http.StatusInternalServerError, "Could not build URL for route")
)

// Routes wraps a mux router together with the application's public base
// URL. It generates paths for named routes and resolves them to
// absolute URLs when asked.
type Routes struct {
	mux  *mux.Router
	base *url.URL
}

// New wraps router with baseURL as the absolute-URL prefix. The base
// must be absolute, e.g. https://app.example.com.
func New(router *mux.Router, baseURL string) (*Routes, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, routexErrors.NewWithCause(ErrBadBaseURL, err)
	}
	if !base.IsAbs() || base.Host == "" {
		return nil, routexErrors.New(ErrBadBaseURL).WithDetail("base_url", baseURL)
	}
	return &Routes{mux: router, base: base}, nil
}

// Mux exposes the wrapped router for handler registration.
func (r *Routes) Mux() *mux.Router {
	return r.mux
}

// Generate builds the URL of the named route. Params fill the route's
// path variables first; leftovers become query parameters. With
// absolute set the path is resolved against the base URL.
func (r *Routes) Generate(route string, params map[string]string, absolute bool) (string, error) {
	muxRoute := r.mux.Get(route)
	if muxRoute == nil {
		return "", routexErrors.New(ErrUnknownRoute).WithDetail("route", route)
	}

	vars, err := muxRoute.GetVarNames()
	if err != nil {
		return "", routexErrors.NewWithCause(ErrBuildURL, err).WithDetail("route", route)
	}

	inPath := make(map[string]bool, len(vars))
	pairs := make([]string, 0, 2*len(vars))
	for _, name := range vars {
		inPath[name] = true
		pairs = append(pairs, name, params[name])
	}

	built, err := muxRoute.URL(pairs...)
	if err != nil {
		return "", routexErrors.NewWithCause(ErrBuildURL, err).WithDetail("route", route)
	}

	query := url.Values{}
	for name, value := range params {
		if !inPath[name] {
			query.Set(name, value)
		}
	}
	if len(query) > 0 {
		built.RawQuery = query.Encode()
	}

	if absolute {
		return r.base.ResolveReference(built).String(), nil
	}
	return built.String(), nil
}

// ResolveAbsoluteFromPath turns an application-local path into an
// absolute URL under the base.
func (r *Routes) ResolveAbsoluteFromPath(path string) (string, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return "", routexErrors.NewWithCause(ErrBuildURL, err).WithDetail("path", path)
	}
	return r.base.ResolveReference(ref).String(), nil
}
