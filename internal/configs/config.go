package configs

import (
	"fmt"
	"os"
	"os/user"
	"time"

	"github.com/google/uuid"
)

// Default engine limits applied when the config file does not set them.
const (
	DefaultEngineTimeout = 30 * time.Second
	DefaultRSABits       = 2048
)

type UserConfig struct {
	Owner  Owner        `toml:"owner"`
	Store  StoreConfig  `toml:"store"`
	Engine EngineConfig `toml:"engine"`
}

// Owner identifies the person credentials are generated for. The UUID is
// minted on first run and embedded in generated key metadata so credentials
// remain attributable after renames.
type Owner struct {
	Name  string `toml:"name"`
	Email string `toml:"email"`
	UUID  string `toml:"owner_uuid"`
}

type StoreConfig struct {
	// Root overrides the store root directory. Empty means the XDG default.
	Root string `toml:"root,omitempty"`
}

type EngineConfig struct {
	// Algorithm selects the generated key type: "ed25519" (default) or "rsa".
	Algorithm string `toml:"algorithm,omitempty"`

	// RSABits is the modulus size when Algorithm is "rsa".
	RSABits int `toml:"rsa_bits,omitempty"`

	// Timeout bounds every engine operation, e.g. "30s". Empty means the
	// default. "0" disables the deadline.
	Timeout string `toml:"timeout,omitempty"`
}

// LoadUserConfig loads the user configuration from the config file.
// A missing file yields an empty config, not an error.
func LoadUserConfig(configPath string) (*UserConfig, error) {
	config := &UserConfig{}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	if err := loadTOML(configPath, config); err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	return config, nil
}

// SaveUserConfig saves the user configuration to the config file.
func SaveUserConfig(configPath string, config *UserConfig) error {
	if err := saveTOML(configPath, config); err != nil {
		return fmt.Errorf("failed to save user config: %w", err)
	}

	return nil
}

// EnsureUserConfig loads the config and fills in owner identity on first
// run, persisting any newly minted values.
func EnsureUserConfig(configPath string) (*UserConfig, error) {
	config, err := LoadUserConfig(configPath)
	if err != nil {
		return nil, err
	}

	changed := false
	if config.Owner.UUID == "" {
		config.Owner.UUID = uuid.New().String()
		changed = true
	}
	if config.Owner.Name == "" {
		config.Owner.Name = defaultOwnerName()
		changed = true
	}
	if config.Owner.Email == "" {
		config.Owner.Email = defaultOwnerEmail(config.Owner.Name)
		changed = true
	}

	if changed {
		if err := SaveUserConfig(configPath, config); err != nil {
			return nil, err
		}
	}

	return config, nil
}

// EngineTimeout parses the configured engine timeout, falling back to the
// default on empty or malformed values.
func (c *UserConfig) EngineTimeout() time.Duration {
	if c.Engine.Timeout == "" {
		return DefaultEngineTimeout
	}
	d, err := time.ParseDuration(c.Engine.Timeout)
	if err != nil || d < 0 {
		return DefaultEngineTimeout
	}
	return d
}

func defaultOwnerName() string {
	current, err := user.Current()
	if err != nil || current.Username == "" {
		return "keyfold"
	}
	return current.Username
}

func defaultOwnerEmail(name string) string {
	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		hostname = "localhost"
	}
	return name + "@" + hostname
}
