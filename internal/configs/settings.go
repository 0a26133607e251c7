package configs

import (
	"fmt"
	"os"
	"path/filepath"
)

// Settings holds the resolved filesystem locations keyfold works from.
// It is computed once per command invocation and passed explicitly; there
// is no ambient global state.
type Settings struct {
	// ConfigPath is the path to the user's config.toml.
	ConfigPath string

	// DataDir is the default store root when the config does not override it.
	DataDir string
}

// DefaultSettings resolves the config and data directories following XDG
// conventions with the usual home-directory fallbacks.
func DefaultSettings() (*Settings, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting home directory: %w", err)
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("getting config directory: %w", err)
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	return &Settings{
		ConfigPath: filepath.Join(configDir, "keyfold", "config.toml"),
		DataDir:    filepath.Join(dataDir, "keyfold"),
	}, nil
}

// StoreRoot resolves the store root directory. Precedence: KEYFOLD_ROOT
// environment variable, then the config file's [store] root, then the
// XDG data directory.
func (s *Settings) StoreRoot(config *UserConfig) string {
	if root := os.Getenv("KEYFOLD_ROOT"); root != "" {
		return root
	}
	if config != nil && config.Store.Root != "" {
		return config.Store.Root
	}
	return s.DataDir
}
