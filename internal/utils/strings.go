package utils

import (
	"fmt"
	"regexp"
	"strings"

	kerrors "github.com/keyfold/keyfold/internal/errors"
)

var namePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// reservedKeychainNames are names that collide with store-level entries.
var reservedKeychainNames = map[string]bool{
	"default": true,
}

// ValidateKeychainName checks that a keychain name is filesystem-safe and
// does not collide with the default pointer.
func ValidateKeychainName(name string) error {
	if name == "" {
		return fmt.Errorf("keychain name is empty: %w", kerrors.ErrInvalidName)
	}
	if reservedKeychainNames[strings.ToLower(name)] {
		return fmt.Errorf("keychain name %q is reserved: %w", name, kerrors.ErrInvalidName)
	}
	if !namePattern.MatchString(name) {
		return fmt.Errorf("keychain name %q contains unsafe characters: %w", name, kerrors.ErrInvalidName)
	}
	return nil
}

// ValidateKeyName checks that a key name is filesystem-safe. Leading dots
// are rejected so key files never collide with staging files.
func ValidateKeyName(name string) error {
	if name == "" {
		return fmt.Errorf("key name is empty: %w", kerrors.ErrInvalidName)
	}
	if !namePattern.MatchString(name) {
		return fmt.Errorf("key name %q contains unsafe characters: %w", name, kerrors.ErrInvalidName)
	}
	return nil
}

// ShortIdentity returns the trailing 16 characters of a fingerprint-style
// identity, the form most key tooling displays.
func ShortIdentity(id string) string {
	if len(id) <= 16 {
		return id
	}
	return id[len(id)-16:]
}
