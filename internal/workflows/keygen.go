package workflows

import (
	"context"
	"fmt"

	"github.com/keyfold/keyfold/internal/engine"
	"github.com/keyfold/keyfold/internal/secrets"
)

// KeygenOptions configures the keygen workflow.
type KeygenOptions struct {
	// Keychain targets a specific keychain; empty means the active one.
	Keychain string

	// Replace archives the current credential and generates a fresh one.
	// Without it, keygen refuses to touch an existing credential.
	Replace bool

	// Confirm approves the replacement. Nil means already confirmed.
	Confirm Confirm
}

// KeygenResult contains the outcome of a keygen operation.
type KeygenResult struct {
	// Keychain is the keychain the credential belongs to.
	Keychain string

	// Identity is the new recipient identity.
	Identity engine.Identity

	// CredentialPath is where the private credential was saved.
	CredentialPath string

	// Replaced is true when an old credential was archived.
	Replaced bool

	// Cancelled is true when the confirmation was refused.
	Cancelled bool
}

// Keygen generates a credential for a keychain. After a replacement the
// stored secrets are still sealed under the old identity; run a refresh
// to re-encrypt them.
func Keygen(ctx context.Context, env *Env, opts KeygenOptions) (*KeygenResult, error) {
	keychain, _, err := env.activeKeychain(opts.Keychain)
	if err != nil {
		return nil, err
	}

	release, err := env.Store.LockKeychain(keychain)
	if err != nil {
		return nil, err
	}
	defer release()

	if !opts.Replace {
		id, err := secrets.CreateCredential(ctx, env.Store, env.Engine, keychain, env.keyMeta(keychain))
		if err != nil {
			return nil, err
		}
		return &KeygenResult{
			Keychain:       keychain,
			Identity:       id,
			CredentialPath: env.Store.CredentialPath(keychain, string(id)),
		}, nil
	}

	if opts.Confirm != nil {
		prompt := fmt.Sprintf("Replace the credential of keychain %q? Its secrets stay sealed under the old key until you refresh", keychain)
		if !opts.Confirm(prompt) {
			return &KeygenResult{Keychain: keychain, Cancelled: true}, nil
		}
	}

	id, err := secrets.ReplaceCredential(ctx, env.Store, env.Engine, keychain, env.keyMeta(keychain))
	if err != nil {
		return nil, err
	}
	return &KeygenResult{
		Keychain:       keychain,
		Identity:       id,
		CredentialPath: env.Store.CredentialPath(keychain, string(id)),
		Replaced:       true,
	}, nil
}
