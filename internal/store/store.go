package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	kerrors "github.com/keyfold/keyfold/internal/errors"
)

// Filesystem layout inside the store root:
//
//	<root>/default            symlink naming the active keychain
//	<root>/<keychain>/        one directory per keychain
//	<root>/<keychain>/<fingerprint>.asc   the single credential
//	<root>/<keychain>/keys/<key>          one ciphertext file per secret
//	<root>/<keychain>/backup/             pre-refresh snapshots and
//	                                      archived credentials
const (
	pointerName      = "default"
	keysDirName      = "keys"
	backupDirName    = "backup"
	lockFileName     = ".lock"
	credentialSuffix = ".asc"
	stagingPrefix    = "."
	stagingSuffix    = ".tmp"
	dirPerm          = 0700
)

// Store maps the on-disk hierarchy to keychains, keys, and credentials.
// It is pure data access; business rules live in the secrets package.
type Store struct {
	root string
}

// New returns a Store rooted at dir. The directory is created lazily by
// mutating operations.
func New(root string) *Store {
	return &Store{root: root}
}

// Root returns the store root directory.
func (s *Store) Root() string {
	return s.root
}

// KeychainDir returns the directory of a keychain.
func (s *Store) KeychainDir(name string) string {
	return filepath.Join(s.root, name)
}

// KeysDir returns the keys directory of a keychain.
func (s *Store) KeysDir(name string) string {
	return filepath.Join(s.root, name, keysDirName)
}

// BackupDir returns the backup directory of a keychain.
func (s *Store) BackupDir(name string) string {
	return filepath.Join(s.root, name, backupDirName)
}

// KeyPath returns the canonical ciphertext path of a key.
func (s *Store) KeyPath(keychain, key string) string {
	return filepath.Join(s.KeysDir(keychain), key)
}

// BackupKeyPath returns the backup snapshot path of a key.
func (s *Store) BackupKeyPath(keychain, key string) string {
	return filepath.Join(s.BackupDir(keychain), key)
}

// CredentialPath returns the credential file path for an identity inside a
// keychain.
func (s *Store) CredentialPath(keychain, identity string) string {
	return filepath.Join(s.root, keychain, identity+credentialSuffix)
}

// pointerPath returns the default pointer path.
func (s *Store) pointerPath() string {
	return filepath.Join(s.root, pointerName)
}

// Keychains enumerates all keychain names, sorted lexicographically. The
// default pointer and stray files are skipped.
func (s *Store) Keychains() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading store root %s: %w", s.root, err)
	}

	var names []string
	for _, entry := range entries {
		// The pointer is a symlink and reports !IsDir here.
		if !entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// KeychainExists reports whether a keychain directory is present.
func (s *Store) KeychainExists(name string) (bool, error) {
	info, err := os.Stat(s.KeychainDir(name))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("checking keychain %s: %w", name, err)
	}
	return info.IsDir(), nil
}

// CreateKeychain creates a keychain directory with its keys subdirectory.
// Fails with ErrKeychainExists when the name is taken.
func (s *Store) CreateKeychain(name string) error {
	exists, err := s.KeychainExists(name)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("keychain %s: %w", name, kerrors.ErrKeychainExists)
	}

	if err := os.MkdirAll(s.KeysDir(name), dirPerm); err != nil {
		if os.IsPermission(err) {
			return fmt.Errorf("creating keychain %s: %w", name, kerrors.ErrPermissionDenied)
		}
		return fmt.Errorf("creating keychain %s: %w", name, err)
	}
	return nil
}

// RemoveKeychain destroys a keychain with its credential, keys, and
// backups. If the default pointer references it, the pointer is removed
// too so it never dangles.
func (s *Store) RemoveKeychain(name string) error {
	exists, err := s.KeychainExists(name)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("keychain %s: %w", name, kerrors.ErrKeychainNotFound)
	}

	if target, err := s.readPointer(); err == nil && target == name {
		if err := os.Remove(s.pointerPath()); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing default pointer: %w", err)
		}
	}

	if err := os.RemoveAll(s.KeychainDir(name)); err != nil {
		return fmt.Errorf("removing keychain %s: %w", name, err)
	}
	return nil
}

// RenameKeychain renames a keychain directory. A default pointer that
// referenced the old name is repointed atomically.
func (s *Store) RenameKeychain(oldName, newName string) error {
	exists, err := s.KeychainExists(oldName)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("keychain %s: %w", oldName, kerrors.ErrKeychainNotFound)
	}

	taken, err := s.KeychainExists(newName)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("keychain %s: %w", newName, kerrors.ErrKeychainExists)
	}

	wasDefault := false
	if target, err := s.readPointer(); err == nil && target == oldName {
		wasDefault = true
	}

	if err := os.Rename(s.KeychainDir(oldName), s.KeychainDir(newName)); err != nil {
		return fmt.Errorf("renaming keychain %s to %s: %w", oldName, newName, err)
	}

	if wasDefault {
		return s.SetDefault(newName)
	}
	return nil
}

// ListKeys enumerates the key names stored in a keychain, sorted. Staging
// files are skipped. Every entry present when the listing runs is included.
func (s *Store) ListKeys(keychain string) ([]string, error) {
	entries, err := os.ReadDir(s.KeysDir(keychain))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading keys of keychain %s: %w", keychain, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasPrefix(entry.Name(), stagingPrefix) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// CredentialFiles returns all credential files in the store: the current
// one per keychain plus any archived in backup directories. The engine
// keyring is loaded from this set so ciphertexts sealed under a replaced
// credential remain decryptable.
func (s *Store) CredentialFiles() ([]string, error) {
	keychains, err := s.Keychains()
	if err != nil {
		return nil, err
	}

	var files []string
	for _, name := range keychains {
		for _, dir := range []string{s.KeychainDir(name), s.BackupDir(name)} {
			matches, err := filepath.Glob(filepath.Join(dir, "*"+credentialSuffix))
			if err != nil {
				return nil, fmt.Errorf("scanning credentials of keychain %s: %w", name, err)
			}
			files = append(files, matches...)
		}
	}
	return files, nil
}

// KeychainCredentials returns the credential files directly inside a
// keychain directory (excluding archived backups), sorted.
func (s *Store) KeychainCredentials(keychain string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.KeychainDir(keychain), "*"+credentialSuffix))
	if err != nil {
		return nil, fmt.Errorf("scanning credentials of keychain %s: %w", keychain, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// WriteStaged writes data to a staging file next to path and renames it
// into place, so concurrent readers see the old content or the new, never
// a partial write or a missing file.
func WriteStaged(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	staging := filepath.Join(dir, stagingPrefix+filepath.Base(path)+stagingSuffix)

	if err := os.WriteFile(staging, data, perm); err != nil {
		if os.IsPermission(err) {
			return fmt.Errorf("writing %s: %w", path, kerrors.ErrPermissionDenied)
		}
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Rename(staging, path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
