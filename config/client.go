package config

import (
	"os"
	"path/filepath"
)

// ClientConfig holds configuration for the chef CLI and the sync engine it
// embeds.
type ClientConfig struct {
	// APIBaseURL is the recipe service the engine talks to when
	// authenticated.
	APIBaseURL string
	// SearchBaseURL is the third-party recipe search provider. Empty means
	// the provider default.
	SearchBaseURL string
	// DataDir holds the device-local sqlite store.
	DataDir string
}

// LoadClientConfig reads the client configuration from the environment.
func LoadClientConfig() (*ClientConfig, error) {
	dataDir := os.Getenv("CHEF_DATA_DIR")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dataDir = filepath.Join(home, ".hmchef")
	}

	return &ClientConfig{
		APIBaseURL:    getEnv("CHEF_API_URL", "http://localhost:8080"),
		SearchBaseURL: os.Getenv("CHEF_SEARCH_URL"),
		DataDir:       dataDir,
	}, nil
}
