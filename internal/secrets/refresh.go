package secrets

import (
	"context"
	"fmt"
	"os"

	"github.com/keyfold/keyfold/internal/engine"
	kerrors "github.com/keyfold/keyfold/internal/errors"
	"github.com/keyfold/keyfold/internal/store"
)

// ItemResult is the outcome of refreshing a single key.
type ItemResult struct {
	// Key is the key name.
	Key string

	// Err is nil on success.
	Err error
}

// RefreshReport summarizes a refresh run.
type RefreshReport struct {
	// Keychain is the refreshed keychain.
	Keychain string

	// Identity is the recipient identity keys were re-encrypted under.
	Identity engine.Identity

	// Items holds per-key outcomes in processing order.
	Items []ItemResult

	// Processed is the number of keys re-encrypted successfully.
	Processed int

	// Failed is the number of keys that could not be re-encrypted.
	Failed int
}

// Refresh re-encrypts every key in a keychain under the keychain's current
// recipient identity. Used after the identity changes, or to re-seal keys
// encrypted under a stale identity.
//
// Each key is processed in isolation: its ciphertext is first copied into
// the backup directory (copied, not moved, so the canonical slot is never
// transiently absent), the snapshot is decrypted with whatever credential
// the engine holds, re-encrypted under the target identity, and the result
// is staged and renamed into the canonical slot. One key's failure never
// aborts the rest; failures are aggregated into the report.
//
// Backups are left on disk deliberately as a safety net and do not affect
// the success determination. Cancellation via ctx takes effect between
// items, never mid-item, leaving all backups intact.
//
// Fails fatally with ErrNoCredential when the keychain has no target
// identity. Returns the report together with ErrPartialRefresh when some
// items failed.
func Refresh(ctx context.Context, st *store.Store, eng engine.Engine, keychain string, onItem func(ItemResult)) (*RefreshReport, error) {
	id, err := LookupCredential(st, keychain)
	if err != nil {
		return nil, err
	}

	keys, err := st.ListKeys(keychain)
	if err != nil {
		return nil, err
	}

	report := &RefreshReport{Keychain: keychain, Identity: id}
	if len(keys) == 0 {
		return report, nil
	}

	if err := os.MkdirAll(st.BackupDir(keychain), 0700); err != nil {
		return nil, fmt.Errorf("creating backup directory for keychain %s: %w", keychain, err)
	}

	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("refresh of keychain %s interrupted: %w", keychain, err)
		}

		item := ItemResult{Key: key, Err: refreshOne(ctx, st, eng, keychain, key, id)}
		report.Items = append(report.Items, item)
		if item.Err != nil {
			report.Failed++
		} else {
			report.Processed++
		}
		if onItem != nil {
			onItem(item)
		}
	}

	if report.Failed > 0 {
		return report, fmt.Errorf("keychain %s: %d of %d keys failed: %w",
			keychain, report.Failed, len(keys), kerrors.ErrPartialRefresh)
	}
	return report, nil
}

// refreshOne runs the backup-decrypt-reencrypt sequence for a single key.
// The sequence fully completes or fails before the next key starts, which
// bounds the blast radius of a crash to one in-flight key.
func refreshOne(ctx context.Context, st *store.Store, eng engine.Engine, keychain, key string, id engine.Identity) error {
	ciphertext, err := os.ReadFile(st.KeyPath(keychain, key))
	if err != nil {
		return fmt.Errorf("reading key %s: %w", key, err)
	}

	if err := store.WriteStaged(st.BackupKeyPath(keychain, key), ciphertext, 0600); err != nil {
		return fmt.Errorf("backing up key %s: %w", key, err)
	}

	plaintext, err := DecryptValue(ctx, eng, ciphertext)
	if err != nil {
		return fmt.Errorf("decrypting key %s: %w", key, err)
	}

	reencrypted, err := EncryptValue(ctx, eng, plaintext, id)
	if err != nil {
		return fmt.Errorf("re-encrypting key %s: %w", key, err)
	}

	if err := store.WriteStaged(st.KeyPath(keychain, key), reencrypted, 0600); err != nil {
		return fmt.Errorf("storing key %s: %w", key, err)
	}
	return nil
}
