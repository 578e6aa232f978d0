package auth

import (
	"net/url"
	"strings"

	"github.com/arest/oauthkit/emptyx"
	"github.com/arest/oauthkit/logx"
)

// Coordinator decides where a provider should redirect back to and
// delegates authorization URL construction to the resolved resource owner.
// All collaborators are fixed at construction; a Coordinator is safe for
// concurrent use.
type Coordinator struct {
	registry *Registry
	router   Router
	login    LoginState
	base     BaseResolver
	connect  bool
	log      *logx.Logger
}

// NewCoordinator wires a coordinator from its collaborators. connect
// enables the account-linking flow for already-authenticated principals.
func NewCoordinator(registry *Registry, router Router, login LoginState, base BaseResolver, connect bool) *Coordinator {
	return &Coordinator{
		registry: registry,
		router:   router,
		login:    login,
		base:     base,
		connect:  connect,
		log:      logx.GetLogger(),
	}
}

// Providers returns the registered provider names in registration order.
func (c *Coordinator) Providers() []string {
	return c.registry.Names()
}

// AuthorizationURL builds the provider's authorization URL for name.
//
// The effective redirect target depends on the flow: outside connect mode,
// or for a principal below "remembered", the provider redirects back to its
// own check path. In connect mode with an authenticated principal the
// target is the connect-completion route, unless the caller supplied an
// explicit redirectURL, which then passes through verbatim.
func (c *Coordinator) AuthorizationURL(name, redirectURL string, extra map[string]string) (string, error) {
	owner, err := c.registry.Owner(name)
	if err != nil {
		return "", err
	}

	checkPath, err := c.registry.CheckPath(name)
	if err != nil {
		return "", err
	}

	var target string
	switch {
	case !c.connect || !c.login.IsRememberedOrBetter():
		target, err = c.resolveCheckPath(checkPath)
	case emptyx.String(redirectURL):
		target, err = c.router.Generate(RouteConnectService, map[string]string{"service": name}, true)
	default:
		target = redirectURL
	}
	if err != nil {
		return "", err
	}

	c.log.Debug("authorization redirect for %s resolved to %s", name, target)
	return owner.GetAuthorizationURL(target, extra)
}

// LoginURL returns the local URL that starts the login flow for name.
func (c *Coordinator) LoginURL(name string) (string, error) {
	if !c.registry.Has(name) {
		return "", authErrors.New(ErrUnknownProvider).WithDetail("provider", name)
	}
	return c.router.Generate(RouteServiceRedirect, map[string]string{"service": name}, false)
}

// resolveCheckPath turns a configured check path into an absolute URL.
// Absolute URLs pass through, leading-slash paths resolve against the
// request base, anything else is treated as a route name.
func (c *Coordinator) resolveCheckPath(checkPath string) (string, error) {
	if u, err := url.Parse(checkPath); err == nil && u.IsAbs() {
		return checkPath, nil
	}
	if strings.HasPrefix(checkPath, "/") {
		return c.base.ResolveAbsoluteFromPath(checkPath)
	}
	return c.router.Generate(checkPath, nil, true)
}
