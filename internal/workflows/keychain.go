package workflows

import (
	"context"
	"fmt"

	"github.com/keyfold/keyfold/internal/engine"
	"github.com/keyfold/keyfold/internal/secrets"
	"github.com/keyfold/keyfold/internal/utils"
)

// CreateKeychainOptions configures the create workflow.
type CreateKeychainOptions struct {
	// Name is the new keychain's name.
	Name string
}

// CreateKeychainResult contains the outcome of creating a keychain.
type CreateKeychainResult struct {
	// Name is the created keychain.
	Name string

	// Identity is the recipient identity of the fresh credential.
	Identity engine.Identity

	// CredentialPath is where the private credential was saved.
	CredentialPath string
}

// CreateKeychain creates a keychain directory and generates its first
// credential. Keychains are only ever created explicitly; a half-created
// keychain (directory without credential) is rolled back.
func CreateKeychain(ctx context.Context, env *Env, opts CreateKeychainOptions) (*CreateKeychainResult, error) {
	if err := utils.ValidateKeychainName(opts.Name); err != nil {
		return nil, err
	}

	if err := env.Store.CreateKeychain(opts.Name); err != nil {
		return nil, err
	}

	release, err := env.Store.LockKeychain(opts.Name)
	if err != nil {
		return nil, err
	}
	defer release()

	id, err := secrets.CreateCredential(ctx, env.Store, env.Engine, opts.Name, env.keyMeta(opts.Name))
	if err != nil {
		// Roll back the empty directory so the name stays available.
		_ = env.Store.RemoveKeychain(opts.Name)
		return nil, err
	}

	return &CreateKeychainResult{
		Name:           opts.Name,
		Identity:       id,
		CredentialPath: env.Store.CredentialPath(opts.Name, string(id)),
	}, nil
}

// RemoveKeychainOptions configures the remove workflow.
type RemoveKeychainOptions struct {
	// Name is the keychain to destroy.
	Name string

	// Confirm approves the destruction. Nil means already confirmed.
	Confirm Confirm
}

// RemoveKeychainResult contains the outcome of removing a keychain.
type RemoveKeychainResult struct {
	// Name is the removed keychain.
	Name string

	// Cancelled is true when the confirmation was refused.
	Cancelled bool
}

// RemoveKeychain destroys a keychain with its credential, secrets, and
// backups.
func RemoveKeychain(ctx context.Context, env *Env, opts RemoveKeychainOptions) (*RemoveKeychainResult, error) {
	exists, err := env.Store.KeychainExists(opts.Name)
	if err != nil {
		return nil, err
	}
	if !exists {
		// Let the store produce the canonical not-found error.
		return nil, env.Store.RemoveKeychain(opts.Name)
	}

	if opts.Confirm != nil {
		prompt := fmt.Sprintf("Remove keychain %q and all its secrets?", opts.Name)
		if !opts.Confirm(prompt) {
			return &RemoveKeychainResult{Name: opts.Name, Cancelled: true}, nil
		}
	}

	if err := env.Store.RemoveKeychain(opts.Name); err != nil {
		return nil, err
	}
	return &RemoveKeychainResult{Name: opts.Name}, nil
}

// RenameKeychainOptions configures the rename workflow.
type RenameKeychainOptions struct {
	OldName string
	NewName string
}

// RenameKeychainResult contains the outcome of renaming a keychain.
type RenameKeychainResult struct {
	OldName string
	NewName string

	// WasDefault is true when the default pointer followed the rename.
	WasDefault bool
}

// RenameKeychain renames a keychain. The default pointer follows the
// rename so it never dangles.
func RenameKeychain(ctx context.Context, env *Env, opts RenameKeychainOptions) (*RenameKeychainResult, error) {
	if err := utils.ValidateKeychainName(opts.NewName); err != nil {
		return nil, err
	}

	wasDefault := false
	if name, fellBack, err := env.Store.Resolve(); err == nil && !fellBack && name == opts.OldName {
		wasDefault = true
	}

	if err := env.Store.RenameKeychain(opts.OldName, opts.NewName); err != nil {
		return nil, err
	}

	return &RenameKeychainResult{
		OldName:    opts.OldName,
		NewName:    opts.NewName,
		WasDefault: wasDefault,
	}, nil
}
