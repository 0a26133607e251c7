package workflows

import (
	"context"
	"fmt"

	"github.com/keyfold/keyfold/internal/engine"
	"github.com/keyfold/keyfold/internal/secrets"
	"github.com/keyfold/keyfold/internal/utils"
)

// ReadOptions configures the read workflow.
type ReadOptions struct {
	// Keychain targets a specific keychain; empty means the active one.
	Keychain string

	// Key is the key name to read.
	Key string
}

// ReadResult contains the outcome of a read operation.
type ReadResult struct {
	// Keychain is the keychain the key was read from.
	Keychain string

	// Key is the key name.
	Key string

	// Plaintext is the decrypted secret value.
	Plaintext []byte
}

// Read decrypts and returns a stored secret.
func Read(ctx context.Context, env *Env, opts ReadOptions) (*ReadResult, error) {
	if err := utils.ValidateKeyName(opts.Key); err != nil {
		return nil, err
	}

	keychain, _, err := env.activeKeychain(opts.Keychain)
	if err != nil {
		return nil, err
	}

	plaintext, err := secrets.ReadKey(ctx, env.Store, env.Engine, keychain, opts.Key)
	if err != nil {
		return nil, err
	}

	return &ReadResult{Keychain: keychain, Key: opts.Key, Plaintext: plaintext}, nil
}

// WriteOptions configures the write workflow.
type WriteOptions struct {
	// Keychain targets a specific keychain; empty means the active one.
	Keychain string

	// Key is the key name to write.
	Key string

	// Plaintext is the secret value to store.
	Plaintext []byte
}

// WriteResult contains the outcome of a write operation.
type WriteResult struct {
	// Keychain is the keychain written to.
	Keychain string

	// Key is the key name.
	Key string

	// Identity is the recipient identity the value was sealed under.
	Identity engine.Identity
}

// Write encrypts a secret under the keychain's current identity and
// stores it, overwriting any previous value.
func Write(ctx context.Context, env *Env, opts WriteOptions) (*WriteResult, error) {
	if err := utils.ValidateKeyName(opts.Key); err != nil {
		return nil, err
	}

	keychain, _, err := env.activeKeychain(opts.Keychain)
	if err != nil {
		return nil, err
	}

	release, err := env.Store.LockKeychain(keychain)
	if err != nil {
		return nil, err
	}
	defer release()

	id, err := secrets.WriteKey(ctx, env.Store, env.Engine, keychain, opts.Key, opts.Plaintext)
	if err != nil {
		return nil, err
	}

	return &WriteResult{Keychain: keychain, Key: opts.Key, Identity: id}, nil
}

// RemoveKeyOptions configures the remove workflow.
type RemoveKeyOptions struct {
	// Keychain targets a specific keychain; empty means the active one.
	Keychain string

	// Key is the key name to remove.
	Key string

	// Confirm approves the removal. Nil means already confirmed.
	Confirm Confirm
}

// RemoveKeyResult contains the outcome of a key removal.
type RemoveKeyResult struct {
	// Keychain is the keychain the key was removed from.
	Keychain string

	// Key is the key name.
	Key string

	// Removed is false when the key did not exist (a no-op, not an error).
	Removed bool

	// Cancelled is true when the confirmation was refused.
	Cancelled bool
}

// RemoveKey deletes a stored secret after confirmation. A missing key is
// a silent no-op.
func RemoveKey(ctx context.Context, env *Env, opts RemoveKeyOptions) (*RemoveKeyResult, error) {
	if err := utils.ValidateKeyName(opts.Key); err != nil {
		return nil, err
	}

	keychain, _, err := env.activeKeychain(opts.Keychain)
	if err != nil {
		return nil, err
	}

	if opts.Confirm != nil {
		prompt := fmt.Sprintf("Remove key %q from keychain %q?", opts.Key, keychain)
		if !opts.Confirm(prompt) {
			return &RemoveKeyResult{Keychain: keychain, Key: opts.Key, Cancelled: true}, nil
		}
	}

	removed, err := secrets.RemoveKey(env.Store, keychain, opts.Key)
	if err != nil {
		return nil, err
	}

	return &RemoveKeyResult{Keychain: keychain, Key: opts.Key, Removed: removed}, nil
}
