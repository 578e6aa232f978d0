package auth

import (
	"sort"

	"github.com/arest/oauthkit/configx"
	"github.com/arest/oauthkit/logx"
	"github.com/arest/oauthkit/validatex"
)

// ProviderConfig is the configuration of one provider entry.
type ProviderConfig struct {
	OwnerConfig

	// CheckPath is the local callback endpoint completing the handshake.
	CheckPath string `json:"check_path" validatex:"required"`
}

// RegistryFromConfig builds a registry of generic owners from
// configuration. It reads the oauth.connect flag and one
// oauth.providers.<name> block per provider:
//
//	{
//	  "oauth": {
//	    "connect": true,
//	    "providers": {
//	      "github": {
//	        "authorization_url": "https://github.com/login/oauth/authorize",
//	        "client_id": "...",
//	        "check_path": "/login/check-github"
//	      }
//	    }
//	  }
//	}
//
// Configuration maps carry no inherent order, so providers register in
// name order to keep listings deterministic.
func RegistryFromConfig(cfg configx.Config) (*Registry, bool, error) {
	connect := cfg.Get("oauth.connect").AsBool()
	providers := cfg.Get("oauth.providers").AsMap()

	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)

	registry := NewRegistry()
	for _, name := range names {
		var pc ProviderConfig
		if err := providers[name].AsStruct(&pc); err != nil {
			return nil, false, authErrors.NewWithCause(ErrOwnerConfig, err).
				WithDetail("provider", name)
		}
		if err := validatex.Validate(pc); err != nil {
			return nil, false, authErrors.NewWithCause(ErrOwnerConfig, err).
				WithDetail("provider", name)
		}

		owner, err := NewGenericOwner(pc.OwnerConfig)
		if err != nil {
			return nil, false, err
		}

		registry.Register(name, owner, pc.CheckPath)
		logx.Debug("registered provider %s (check path %s)", name, pc.CheckPath)
	}

	return registry, connect, nil
}
