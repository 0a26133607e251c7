package store

import (
	"fmt"
	"os"

	kerrors "github.com/keyfold/keyfold/internal/errors"
)

// SetDefault atomically repoints the default pointer at the named
// keychain. The new symlink is staged under a temporary name and renamed
// over the pointer, so concurrent readers observe the old target or the
// new one, never a missing pointer.
func (s *Store) SetDefault(name string) error {
	exists, err := s.KeychainExists(name)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("keychain %s: %w", name, kerrors.ErrKeychainNotFound)
	}

	staging := s.pointerPath() + stagingSuffix
	if err := os.Remove(staging); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clearing stale pointer staging: %w", err)
	}
	if err := os.Symlink(name, staging); err != nil {
		return fmt.Errorf("staging default pointer: %w", err)
	}
	if err := os.Rename(staging, s.pointerPath()); err != nil {
		os.Remove(staging)
		return fmt.Errorf("replacing default pointer: %w", err)
	}
	return nil
}
