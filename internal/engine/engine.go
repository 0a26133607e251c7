package engine

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Identity is the stable public identifier targeted when encrypting for a
// credential: the uppercase hex fingerprint of the primary key.
type Identity string

var identityPattern = regexp.MustCompile(`^[0-9A-F]{32,64}$`)

// ParseIdentity validates and normalizes a fingerprint string.
func ParseIdentity(s string) (Identity, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	if !identityPattern.MatchString(normalized) {
		return "", fmt.Errorf("%q is not a key fingerprint", s)
	}
	return Identity(normalized), nil
}

// KeyMeta is the metadata stamped into a generated credential.
type KeyMeta struct {
	// Name is the owner's display name.
	Name string

	// Email is the owner's email address.
	Email string

	// Comment carries the owner UUID so credentials stay attributable.
	Comment string
}

// Credential is a freshly generated or exported asymmetric credential.
// Only the private half is ever materialized; the recipient identity is
// derived from it.
type Credential struct {
	// Identity is the fingerprint used to target encryption.
	Identity Identity

	// Armored is the ASCII-armored private key block.
	Armored []byte
}

// Engine is the external crypto collaborator. keyfold owns no cryptographic
// logic; everything flows through these four operations. Decrypt uses
// whichever private credential held by the engine matches the ciphertext's
// target, and surfaces an error when none does.
type Engine interface {
	GenerateKeyPair(ctx context.Context, meta KeyMeta) (*Credential, error)
	ExportPrivate(ctx context.Context, id Identity) ([]byte, error)
	Encrypt(ctx context.Context, plaintext []byte, id Identity) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
}
