package pkg

import (
	"os"
	"path/filepath"
)

const (
	// ConfigPathEnv overrides the config file location.
	ConfigPathEnv         = "STAKING_CONFIG"
	DefaultConfigFileName = "config.yml"
)

// ConfigPath returns $STAKING_CONFIG, or config.yml under homeDir when the
// variable is unset or empty.
func ConfigPath(homeDir string) string {
	if path := os.Getenv(ConfigPathEnv); path != "" {
		return path
	}
	return filepath.Join(homeDir, DefaultConfigFileName)
}
