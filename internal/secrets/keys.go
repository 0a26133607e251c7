package secrets

import (
	"context"
	"fmt"
	"os"

	"github.com/keyfold/keyfold/internal/engine"
	kerrors "github.com/keyfold/keyfold/internal/errors"
	"github.com/keyfold/keyfold/internal/store"
)

// ReadKey decrypts and returns the plaintext of a stored key. Fails with
// ErrKeyNotFound when the key has no ciphertext.
func ReadKey(ctx context.Context, st *store.Store, eng engine.Engine, keychain, key string) ([]byte, error) {
	ciphertext, err := os.ReadFile(st.KeyPath(keychain, key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("key %s in keychain %s: %w", key, keychain, kerrors.ErrKeyNotFound)
		}
		return nil, fmt.Errorf("reading key %s in keychain %s: %w", key, keychain, err)
	}

	plaintext, err := DecryptValue(ctx, eng, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("key %s in keychain %s: %w", key, keychain, err)
	}
	return plaintext, nil
}

// WriteKey encrypts a value under the keychain's current recipient
// identity and stores it, overwriting any previous ciphertext. The write
// is staged and renamed into place so readers never observe a partial or
// missing file.
func WriteKey(ctx context.Context, st *store.Store, eng engine.Engine, keychain, key string, plaintext []byte) (engine.Identity, error) {
	id, err := LookupCredential(st, keychain)
	if err != nil {
		return "", err
	}

	ciphertext, err := EncryptValue(ctx, eng, plaintext, id)
	if err != nil {
		return "", fmt.Errorf("key %s in keychain %s: %w", key, keychain, err)
	}

	if err := os.MkdirAll(st.KeysDir(keychain), 0700); err != nil {
		return "", fmt.Errorf("creating keys directory of keychain %s: %w", keychain, err)
	}
	if err := store.WriteStaged(st.KeyPath(keychain, key), ciphertext, 0600); err != nil {
		return "", err
	}
	return id, nil
}

// RemoveKey deletes a key's ciphertext. A missing key is a no-op, not an
// error; the returned bool reports whether anything was removed.
func RemoveKey(st *store.Store, keychain, key string) (bool, error) {
	err := os.Remove(st.KeyPath(keychain, key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("removing key %s in keychain %s: %w", key, keychain, err)
	}
	return true, nil
}
