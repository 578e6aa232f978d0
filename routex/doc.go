// Package routex generates URLs for named routes.
//
// It wraps a gorilla/mux router and the application's public base URL
// so callers can turn route names and local paths into relative or
// absolute URLs without string concatenation:
//
//	r := mux.NewRouter()
//	r.Path("/connect/{service}").Name("oauth_connect_service")
//
//	routes, err := routex.New(r, "https://app.example.com")
//	u, err := routes.Generate("oauth_connect_service",
//		map[string]string{"service": "github"}, true)
//	// https://app.example.com/connect/github
//
// Params not consumed by the route's path variables are appended as
// query parameters.
package routex
