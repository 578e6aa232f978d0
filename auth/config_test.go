package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arest/oauthkit/configx"
	"github.com/arest/oauthkit/errx"
)

func providerSettings(t *testing.T, values map[string]any) configx.Config {
	t.Helper()
	cfg, err := configx.NewBuilder().FromMap(values, "test").Build()
	require.NoError(t, err)
	return cfg
}

func TestRegistryFromConfig(t *testing.T) {
	cfg := providerSettings(t, map[string]any{
		"oauth": map[string]any{
			"connect": true,
			"providers": map[string]any{
				"github": map[string]any{
					"authorization_url": "https://github.com/login/oauth/authorize",
					"client_id":         "gh-client",
					"check_path":        "/login/check-github",
				},
				"gitlab": map[string]any{
					"authorization_url": "https://gitlab.com/oauth/authorize",
					"client_id":         "gl-client",
					"check_path":        "/login/check-gitlab",
				},
			},
		},
	})

	registry, connect, err := RegistryFromConfig(cfg)
	require.NoError(t, err)
	assert.True(t, connect)
	assert.Equal(t, []string{"github", "gitlab"}, registry.Names())

	path, err := registry.CheckPath("github")
	require.NoError(t, err)
	assert.Equal(t, "/login/check-github", path)
}

func TestRegistryFromConfigConnectDefaultsOff(t *testing.T) {
	cfg := providerSettings(t, map[string]any{
		"oauth": map[string]any{"providers": map[string]any{}},
	})

	registry, connect, err := RegistryFromConfig(cfg)
	require.NoError(t, err)
	assert.False(t, connect)
	assert.Empty(t, registry.Names())
}

func TestRegistryFromConfigMissingCheckPath(t *testing.T) {
	cfg := providerSettings(t, map[string]any{
		"oauth": map[string]any{
			"providers": map[string]any{
				"github": map[string]any{
					"authorization_url": "https://github.com/login/oauth/authorize",
					"client_id":         "gh-client",
				},
			},
		},
	})

	_, _, err := RegistryFromConfig(cfg)
	require.Error(t, err)
	assert.True(t, errx.IsCode(err, ErrOwnerConfig))

	var authErr *errx.Error
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "github", authErr.Details["provider"])
}

func TestRegistryFromConfigInvalidEndpoint(t *testing.T) {
	cfg := providerSettings(t, map[string]any{
		"oauth": map[string]any{
			"providers": map[string]any{
				"broken": map[string]any{
					"authorization_url": "not-a-url",
					"client_id":         "c",
					"check_path":        "/login/check-broken",
				},
			},
		},
	})

	_, _, err := RegistryFromConfig(cfg)
	require.Error(t, err)
	assert.True(t, errx.IsCode(err, ErrOwnerConfig))
}
