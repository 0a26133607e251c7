package errors

import "errors"

// Keychain errors indicate problems locating or creating keychains.
var (
	// ErrKeychainNotFound indicates the referenced keychain does not exist.
	ErrKeychainNotFound = errors.New("keychain not found")

	// ErrKeychainExists indicates a keychain with that name already exists.
	ErrKeychainExists = errors.New("keychain already exists")

	// ErrNoKeychains indicates the store contains no keychains at all.
	ErrNoKeychains = errors.New("no keychains exist")

	// ErrInvalidName indicates a keychain or key name is not filesystem-safe.
	ErrInvalidName = errors.New("invalid name")
)

// Credential errors indicate an unusable credential state for a keychain.
var (
	// ErrNoCredential indicates the keychain has no credential file.
	ErrNoCredential = errors.New("keychain has no credential")

	// ErrAmbiguousCredential indicates more than one credential file is
	// present. The store never guesses which one is current.
	ErrAmbiguousCredential = errors.New("keychain has more than one credential")

	// ErrCredentialExists indicates a credential is already present and
	// would be silently overwritten.
	ErrCredentialExists = errors.New("credential already exists")
)

// Key errors indicate problems with individual stored secrets.
var (
	// ErrKeyNotFound indicates the referenced key has no stored ciphertext.
	ErrKeyNotFound = errors.New("key not found")

	// ErrPartialRefresh indicates a refresh completed with some keys failing.
	ErrPartialRefresh = errors.New("refresh completed with failures")
)

// Engine errors indicate the external crypto engine misbehaved.
var (
	// ErrEngineFailure indicates an encrypt, decrypt, or keygen operation
	// failed inside the crypto engine.
	ErrEngineFailure = errors.New("crypto engine operation failed")

	// ErrEngineTimeout indicates a crypto engine operation exceeded the
	// configured deadline.
	ErrEngineTimeout = errors.New("crypto engine operation timed out")
)

// Filesystem errors.
var (
	// ErrPermissionDenied indicates filesystem permissions could not be
	// enforced or honored.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrLocked indicates another process holds the keychain's advisory lock.
	ErrLocked = errors.New("keychain is locked by another process")
)
