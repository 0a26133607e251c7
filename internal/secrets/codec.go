package secrets

import (
	"context"

	"github.com/keyfold/keyfold/internal/engine"
)

// EncryptValue encrypts a secret value to a recipient identity. This is
// pure parameter mapping onto the engine; no cryptographic logic is owned
// here.
func EncryptValue(ctx context.Context, eng engine.Engine, plaintext []byte, id engine.Identity) ([]byte, error) {
	return eng.Encrypt(ctx, plaintext, id)
}

// DecryptValue decrypts a secret value with whichever private credential
// held by the engine matches the ciphertext. A missing match surfaces as
// an engine error.
func DecryptValue(ctx context.Context, eng engine.Engine, ciphertext []byte) ([]byte, error) {
	return eng.Decrypt(ctx, ciphertext)
}
