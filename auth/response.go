package auth

import (
	"strings"

	"github.com/arest/oauthkit/emptyx"
)

// Field identifiers used by the path template.
const (
	fieldIdentifier = "identifier"
	fieldNickname   = "nickname"
	fieldRealName   = "realname"
	fieldEmail      = "email"
	fieldFirstName  = "first_name"
	fieldLastName   = "last_name"
	fieldPicture    = "profilepicture"
)

// PathResponse extracts profile fields from an arbitrary nested provider
// response via configurable dot-paths. It implements UserResponse.
//
// The default template seeds identifier, nickname, realname, email and
// profilepicture with no path configured; first_name and last_name resolve
// only when a path is set explicitly. A PathResponse belongs to a single
// extraction session and is not meant for concurrent mutation.
type PathResponse struct {
	paths    map[string]string
	response map[string]any
}

// NewPathResponse creates a PathResponse with the default path template.
func NewPathResponse() *PathResponse {
	return &PathResponse{
		paths: map[string]string{
			fieldIdentifier: "",
			fieldNickname:   "",
			fieldRealName:   "",
			fieldEmail:      "",
			fieldPicture:    "",
		},
	}
}

// SetPaths merges overrides into the configured paths. Caller entries win
// on matching keys; every other key keeps its prior value.
func (p *PathResponse) SetPaths(overrides map[string]string) {
	p.paths = mergePaths(p.paths, overrides)
}

// Paths returns a copy of the configured path map.
func (p *PathResponse) Paths() map[string]string {
	return mergePaths(p.paths, nil)
}

// SetResponse loads the provider response for this extraction session.
func (p *PathResponse) SetResponse(response map[string]any) {
	p.response = response
}

// ValueForPath resolves the configured path for name against the loaded
// response. A missing response, unset path, or absent step yields nil;
// otherwise the raw value is returned without coercion.
func (p *PathResponse) ValueForPath(name string) any {
	path, ok := p.paths[name]
	if !ok || emptyx.String(path) || p.response == nil {
		return nil
	}

	var current any = p.response
	for _, step := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current, ok = m[step]
		if !ok {
			return nil
		}
	}
	return current
}

func (p *PathResponse) GetUsername() any       { return p.ValueForPath(fieldIdentifier) }
func (p *PathResponse) GetNickname() any       { return p.ValueForPath(fieldNickname) }
func (p *PathResponse) GetRealName() any       { return p.ValueForPath(fieldRealName) }
func (p *PathResponse) GetEmail() any          { return p.ValueForPath(fieldEmail) }
func (p *PathResponse) GetFirstName() any      { return p.ValueForPath(fieldFirstName) }
func (p *PathResponse) GetLastName() any       { return p.ValueForPath(fieldLastName) }
func (p *PathResponse) GetProfilePicture() any { return p.ValueForPath(fieldPicture) }

// mergePaths merges overrides over base into a fresh map, never mutating
// either input.
func mergePaths(base, overrides map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(overrides))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}

// StaticResponse is a property-based UserResponse for provider clients
// that map profile fields themselves. Empty fields read as absent.
type StaticResponse struct {
	Identifier string
	Nickname   string
	RealName   string
	Email      string
	FirstName  string
	LastName   string
	Picture    string
}

func (s *StaticResponse) GetUsername() any       { return orNil(s.Identifier) }
func (s *StaticResponse) GetNickname() any       { return orNil(s.Nickname) }
func (s *StaticResponse) GetRealName() any       { return orNil(s.RealName) }
func (s *StaticResponse) GetEmail() any          { return orNil(s.Email) }
func (s *StaticResponse) GetFirstName() any      { return orNil(s.FirstName) }
func (s *StaticResponse) GetLastName() any       { return orNil(s.LastName) }
func (s *StaticResponse) GetProfilePicture() any { return orNil(s.Picture) }

func orNil(s string) any {
	if emptyx.String(s) {
		return nil
	}
	return s
}
