package workflows

import (
	"context"
	"fmt"
	"os"

	"github.com/keyfold/keyfold/internal/configs"
	"github.com/keyfold/keyfold/internal/engine"
	kerrors "github.com/keyfold/keyfold/internal/errors"
	"github.com/keyfold/keyfold/internal/store"
)

// Confirm asks the user to approve a destructive step. A nil Confirm in a
// workflow's options means the caller already confirmed (e.g. --yes).
type Confirm func(prompt string) bool

// Env bundles the per-invocation dependencies every workflow needs: the
// opened store, the crypto engine with its loaded keyring, and the user
// config. It is built once per command and passed explicitly.
type Env struct {
	Store  *store.Store
	Engine engine.Engine
	Config *configs.UserConfig
}

// Setup resolves settings, ensures the user config, opens the store, and
// loads every stored credential (current and archived) into the engine's
// keyring.
func Setup(ctx context.Context) (*Env, error) {
	settings, err := configs.DefaultSettings()
	if err != nil {
		return nil, err
	}

	config, err := configs.EnsureUserConfig(settings.ConfigPath)
	if err != nil {
		return nil, err
	}

	root := settings.StoreRoot(config)
	if err := os.MkdirAll(root, 0700); err != nil {
		return nil, fmt.Errorf("creating store root %s: %w", root, err)
	}
	st := store.New(root)

	eng := engine.NewPGP(engine.Options{
		Algorithm: config.Engine.Algorithm,
		RSABits:   config.Engine.RSABits,
		Timeout:   config.EngineTimeout(),
	})

	files, err := st.CredentialFiles()
	if err != nil {
		return nil, err
	}
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading credential %s: %w", file, err)
		}
		if _, err := eng.LoadCredential(data); err != nil {
			return nil, fmt.Errorf("loading credential %s: %w", file, err)
		}
	}

	return &Env{Store: st, Engine: eng, Config: config}, nil
}

// keyMeta builds the metadata stamped into generated credentials. The
// keychain name rides in the comment next to the owner UUID so exported
// keys remain attributable.
func (e *Env) keyMeta(keychain string) engine.KeyMeta {
	return engine.KeyMeta{
		Name:    e.Config.Owner.Name,
		Email:   e.Config.Owner.Email,
		Comment: fmt.Sprintf("keyfold:%s:%s", keychain, e.Config.Owner.UUID),
	}
}

// activeKeychain resolves the keychain an operation targets: the explicit
// override when given, otherwise the store's default.
func (e *Env) activeKeychain(override string) (name string, fellBack bool, err error) {
	if override != "" {
		exists, err := e.Store.KeychainExists(override)
		if err != nil {
			return "", false, err
		}
		if !exists {
			return "", false, fmt.Errorf("keychain %s: %w", override, kerrors.ErrKeychainNotFound)
		}
		return override, false, nil
	}
	return e.Store.Resolve()
}
