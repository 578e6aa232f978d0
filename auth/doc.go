/*
Package auth coordinates OAuth login and connect flows against third-party
identity providers.

# Core Concepts

The package is built around a few capability interfaces:

  - ResourceOwner: a provider definition that produces its authorization URL
  - Router: generates URLs for named routes
  - LoginState: reports the current principal's authentication state
  - BaseResolver: resolves local paths to absolute URLs
  - UserResponse: normalized access to profile fields of a provider response

A Registry maps provider names to resource owners and their callback check
paths, preserving registration order. The Coordinator ties everything
together: it resolves the provider, decides the effective redirect target,
and delegates URL construction to the owner.

# Building Authorization URLs

	registry := auth.NewRegistry().
		Register("github", githubOwner, "/login/check-github")

	coord := auth.NewCoordinator(registry, router, loginState, base, false)

	authURL, err := coord.AuthorizationURL("github", "", nil)
	// Redirect the user to authURL

Outside connect mode the provider redirects back to its check path. With
connect mode on and an authenticated principal, the redirect points at the
connect-completion route instead, so the external identity gets linked to
the local account rather than logging the user in.

# Normalizing Provider Responses

Providers return arbitrarily nested user payloads. PathResponse reads them
through configurable dot-paths:

	resp := auth.NewPathResponse()
	resp.SetPaths(map[string]string{
		"identifier": "id",
		"nickname":   "user.login",
	})
	resp.SetResponse(payload)

	nick := resp.GetNickname() // nil when the path is unset or absent

StaticResponse is the property-based alternative for clients that map
fields themselves. Both implement UserResponse.

# Configuration

RegistryFromConfig builds a registry of GenericOwners from a configx
configuration, validating each provider block with validatex.

# State Parameter

StateCodec signs the OAuth state parameter (HS256) so the redirect
round-trip cannot be forged:

	codec := auth.NewStateCodec(secret, 10*time.Minute)
	state, _ := codec.Encode(map[string]string{"return_to": "/settings"})
	// ... provider round-trip ...
	params, err := codec.Decode(state)

# Error Handling

The package uses errx for standardized errors:

	if errx.IsCode(err, auth.ErrUnknownProvider) {
		// Unknown provider name
	}
*/
package auth
