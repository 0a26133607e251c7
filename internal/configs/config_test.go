package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEnsureUserConfigMintsIdentity(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "keyfold-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	configPath := filepath.Join(tmpDir, "keyfold", "config.toml")

	config, err := EnsureUserConfig(configPath)
	if err != nil {
		t.Fatalf("EnsureUserConfig failed: %v", err)
	}
	if config.Owner.UUID == "" {
		t.Error("Expected owner UUID to be minted")
	}
	if config.Owner.Name == "" {
		t.Error("Expected owner name to be filled")
	}
	if config.Owner.Email == "" {
		t.Error("Expected owner email to be filled")
	}

	// A second call must load the same identity, not mint a new one.
	again, err := EnsureUserConfig(configPath)
	if err != nil {
		t.Fatalf("EnsureUserConfig (second call) failed: %v", err)
	}
	if again.Owner.UUID != config.Owner.UUID {
		t.Errorf("Owner UUID changed between calls: %s vs %s", again.Owner.UUID, config.Owner.UUID)
	}
}

func TestLoadUserConfigMissingFile(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "keyfold-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	config, err := LoadUserConfig(filepath.Join(tmpDir, "nope", "config.toml"))
	if err != nil {
		t.Fatalf("Expected missing config to load as empty, got: %v", err)
	}
	if config.Owner.UUID != "" {
		t.Errorf("Expected empty config, got owner UUID %q", config.Owner.UUID)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "keyfold-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	configPath := filepath.Join(tmpDir, "config.toml")
	saved := &UserConfig{
		Owner:  Owner{Name: "alice", Email: "alice@example.com", UUID: "uuid-1"},
		Store:  StoreConfig{Root: "/tmp/altroot"},
		Engine: EngineConfig{Algorithm: "rsa", RSABits: 3072, Timeout: "45s"},
	}
	if err := SaveUserConfig(configPath, saved); err != nil {
		t.Fatalf("SaveUserConfig failed: %v", err)
	}

	info, err := os.Stat(configPath)
	if err != nil {
		t.Fatalf("Stat config file failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("Config file mode = %o, want 0600", perm)
	}

	loaded, err := LoadUserConfig(configPath)
	if err != nil {
		t.Fatalf("LoadUserConfig failed: %v", err)
	}
	if loaded.Owner != saved.Owner {
		t.Errorf("Owner mismatch: got %+v, want %+v", loaded.Owner, saved.Owner)
	}
	if loaded.Store.Root != saved.Store.Root {
		t.Errorf("Store root mismatch: got %q, want %q", loaded.Store.Root, saved.Store.Root)
	}
	if loaded.Engine != saved.Engine {
		t.Errorf("Engine config mismatch: got %+v, want %+v", loaded.Engine, saved.Engine)
	}
}

func TestEngineTimeout(t *testing.T) {
	tests := []struct {
		timeout string
		want    time.Duration
	}{
		{"", DefaultEngineTimeout},
		{"45s", 45 * time.Second},
		{"0", 0},
		{"garbage", DefaultEngineTimeout},
		{"-5s", DefaultEngineTimeout},
	}

	for _, tt := range tests {
		config := &UserConfig{Engine: EngineConfig{Timeout: tt.timeout}}
		if got := config.EngineTimeout(); got != tt.want {
			t.Errorf("EngineTimeout() with %q = %v, want %v", tt.timeout, got, tt.want)
		}
	}
}

func TestStoreRootPrecedence(t *testing.T) {
	settings := &Settings{DataDir: "/data/keyfold"}

	t.Setenv("KEYFOLD_ROOT", "")
	os.Unsetenv("KEYFOLD_ROOT")

	if got := settings.StoreRoot(&UserConfig{}); got != "/data/keyfold" {
		t.Errorf("StoreRoot with no overrides = %q, want data dir", got)
	}

	config := &UserConfig{Store: StoreConfig{Root: "/config/root"}}
	if got := settings.StoreRoot(config); got != "/config/root" {
		t.Errorf("StoreRoot with config override = %q, want /config/root", got)
	}

	t.Setenv("KEYFOLD_ROOT", "/env/root")
	if got := settings.StoreRoot(config); got != "/env/root" {
		t.Errorf("StoreRoot with env override = %q, want /env/root", got)
	}
}
