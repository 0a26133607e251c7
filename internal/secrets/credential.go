package secrets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/keyfold/keyfold/internal/engine"
	kerrors "github.com/keyfold/keyfold/internal/errors"
	"github.com/keyfold/keyfold/internal/store"
)

// CreateCredential generates a fresh keypair for a keychain and persists
// the private credential as <fingerprint>.asc with owner-only permissions.
// Fails with ErrCredentialExists when the keychain already has one; an
// existing credential is never silently overwritten.
func CreateCredential(ctx context.Context, st *store.Store, eng engine.Engine, keychain string, meta engine.KeyMeta) (engine.Identity, error) {
	existing, err := st.KeychainCredentials(keychain)
	if err != nil {
		return "", err
	}
	if len(existing) > 0 {
		return "", fmt.Errorf("keychain %s: %w", keychain, kerrors.ErrCredentialExists)
	}

	cred, err := eng.GenerateKeyPair(ctx, meta)
	if err != nil {
		return "", fmt.Errorf("generating credential for keychain %s: %w", keychain, err)
	}

	if err := saveCredential(st, keychain, cred); err != nil {
		return "", err
	}
	return cred.Identity, nil
}

// saveCredential persists a private credential as <fingerprint>.asc with
// owner-only permissions, tightening the keychain directory first.
func saveCredential(st *store.Store, keychain string, cred *engine.Credential) error {
	if err := os.Chmod(st.KeychainDir(keychain), 0700); err != nil {
		if os.IsPermission(err) {
			return fmt.Errorf("restricting keychain %s: %w", keychain, kerrors.ErrPermissionDenied)
		}
		return fmt.Errorf("restricting keychain %s: %w", keychain, err)
	}

	path := st.CredentialPath(keychain, string(cred.Identity))
	if err := os.WriteFile(path, cred.Armored, 0600); err != nil {
		if os.IsPermission(err) {
			return fmt.Errorf("saving credential for keychain %s: %w", keychain, kerrors.ErrPermissionDenied)
		}
		return fmt.Errorf("saving credential for keychain %s: %w", keychain, err)
	}
	return nil
}

// LookupCredential scans a keychain for its single credential file and
// extracts the recipient identity from the filename. Zero files is
// ErrNoCredential; more than one is ErrAmbiguousCredential. An ambiguous
// state is an error, never a guess.
func LookupCredential(st *store.Store, keychain string) (engine.Identity, error) {
	files, err := st.KeychainCredentials(keychain)
	if err != nil {
		return "", err
	}

	switch len(files) {
	case 0:
		return "", fmt.Errorf("keychain %s: %w", keychain, kerrors.ErrNoCredential)
	case 1:
		base := filepath.Base(files[0])
		id, err := engine.ParseIdentity(strings.TrimSuffix(base, filepath.Ext(base)))
		if err != nil {
			return "", fmt.Errorf("keychain %s credential %s: %v: %w", keychain, base, err, kerrors.ErrNoCredential)
		}
		return id, nil
	default:
		return "", fmt.Errorf("keychain %s has %d credentials: %w", keychain, len(files), kerrors.ErrAmbiguousCredential)
	}
}

// ReplaceCredential generates a fresh credential for the keychain,
// archives the current private credential into its backup directory, and
// writes the fresh one into place. The new keypair is generated before the
// old credential moves, so a generation failure leaves the keychain
// exactly as it was; if the final write fails, the archived credential is
// restored. The keychain holds one credential at every observable point.
//
// Secrets stay sealed under the old identity until a refresh re-encrypts
// them; the archived credential keeps them decryptable in the meantime.
func ReplaceCredential(ctx context.Context, st *store.Store, eng engine.Engine, keychain string, meta engine.KeyMeta) (engine.Identity, error) {
	files, err := st.KeychainCredentials(keychain)
	if err != nil {
		return "", err
	}
	if len(files) > 1 {
		return "", fmt.Errorf("keychain %s has %d credentials: %w", keychain, len(files), kerrors.ErrAmbiguousCredential)
	}

	cred, err := eng.GenerateKeyPair(ctx, meta)
	if err != nil {
		return "", fmt.Errorf("generating credential for keychain %s: %w", keychain, err)
	}

	archived := ""
	if len(files) == 1 {
		if err := os.MkdirAll(st.BackupDir(keychain), 0700); err != nil {
			return "", fmt.Errorf("creating backup directory for keychain %s: %w", keychain, err)
		}
		archived = filepath.Join(st.BackupDir(keychain), filepath.Base(files[0]))
		if err := os.Rename(files[0], archived); err != nil {
			return "", fmt.Errorf("archiving credential of keychain %s: %w", keychain, err)
		}
	}

	if err := saveCredential(st, keychain, cred); err != nil {
		if archived != "" {
			// Put the old credential back so the keychain is never left
			// without one.
			if restoreErr := os.Rename(archived, files[0]); restoreErr != nil {
				return "", fmt.Errorf("%v; restoring archived credential also failed: %w", err, restoreErr)
			}
		}
		return "", err
	}
	return cred.Identity, nil
}
