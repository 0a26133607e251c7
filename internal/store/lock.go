package store

import (
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"

	kerrors "github.com/keyfold/keyfold/internal/errors"
)

// LockKeychain takes the keychain's advisory lock, held for the duration
// of mutating, non-idempotent operations (refresh, write, credential
// create). Returns the release function, or ErrLocked when another
// process holds it. The lock file stays behind; only the flock matters.
func (s *Store) LockKeychain(name string) (release func(), err error) {
	exists, err := s.KeychainExists(name)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("keychain %s: %w", name, kerrors.ErrKeychainNotFound)
	}

	fl := flock.New(filepath.Join(s.KeychainDir(name), lockFileName))
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("locking keychain %s: %w", name, err)
	}
	if !locked {
		return nil, fmt.Errorf("keychain %s: %w", name, kerrors.ErrLocked)
	}

	return func() { _ = fl.Unlock() }, nil
}
