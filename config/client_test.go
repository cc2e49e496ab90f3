package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadClientConfigDefaults(t *testing.T) {
	t.Setenv("CHEF_API_URL", "")
	t.Setenv("CHEF_SEARCH_URL", "")
	t.Setenv("CHEF_DATA_DIR", "")
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadClientConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.APIBaseURL)
	assert.Empty(t, cfg.SearchBaseURL)
	assert.Contains(t, cfg.DataDir, ".hmchef")
}

func TestLoadClientConfigFromEnvironment(t *testing.T) {
	t.Setenv("CHEF_API_URL", "https://chef.example.com")
	t.Setenv("CHEF_SEARCH_URL", "https://search.example.com/api")
	t.Setenv("CHEF_DATA_DIR", "/var/lib/chef")

	cfg, err := LoadClientConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://chef.example.com", cfg.APIBaseURL)
	assert.Equal(t, "https://search.example.com/api", cfg.SearchBaseURL)
	assert.Equal(t, "/var/lib/chef", cfg.DataDir)
}
