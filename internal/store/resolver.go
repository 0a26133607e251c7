package store

import (
	"fmt"
	"os"
	"path/filepath"

	kerrors "github.com/keyfold/keyfold/internal/errors"
)

// Resolve determines the active keychain. It reads the default pointer;
// when the pointer is absent it falls back to the lexicographically first
// keychain and reports fellBack=true. A pointer naming a missing keychain
// is an error rather than a silent repair; Resolve never mutates the
// pointer.
func (s *Store) Resolve() (name string, fellBack bool, err error) {
	target, err := s.readPointer()
	if err == nil {
		exists, err := s.KeychainExists(target)
		if err != nil {
			return "", false, err
		}
		if !exists {
			return "", false, fmt.Errorf("default pointer names keychain %s: %w", target, kerrors.ErrKeychainNotFound)
		}
		return target, false, nil
	}
	if !os.IsNotExist(err) {
		return "", false, fmt.Errorf("reading default pointer: %w", err)
	}

	keychains, err := s.Keychains()
	if err != nil {
		return "", false, err
	}
	if len(keychains) == 0 {
		return "", false, kerrors.ErrNoKeychains
	}
	return keychains[0], true, nil
}

// readPointer reads the default pointer symlink and returns the keychain
// name it references.
func (s *Store) readPointer() (string, error) {
	target, err := os.Readlink(s.pointerPath())
	if err != nil {
		return "", err
	}
	// The pointer is written relative to the root, but tolerate absolute
	// targets from older layouts.
	return filepath.Base(target), nil
}
