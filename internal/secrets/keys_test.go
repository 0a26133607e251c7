package secrets

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/keyfold/keyfold/internal/engine"
	kerrors "github.com/keyfold/keyfold/internal/errors"
	"github.com/keyfold/keyfold/internal/store"
)

// setupKeychain creates a keychain with a fresh credential and returns the
// store, engine, and identity.
func setupKeychain(t *testing.T, name string) (*store.Store, *engine.PGP, engine.Identity) {
	t.Helper()
	st := newTestStore(t)
	eng := newTestEngine(t)

	if err := st.CreateKeychain(name); err != nil {
		t.Fatalf("CreateKeychain failed: %v", err)
	}
	id, err := CreateCredential(context.Background(), st, eng, name, testMeta())
	if err != nil {
		t.Fatalf("CreateCredential failed: %v", err)
	}
	return st, eng, id
}

func TestWriteThenRead(t *testing.T) {
	st, eng, _ := setupKeychain(t, "work")
	ctx := context.Background()

	if _, err := WriteKey(ctx, st, eng, "work", "db", []byte("secret1")); err != nil {
		t.Fatalf("WriteKey failed: %v", err)
	}

	plaintext, err := ReadKey(ctx, st, eng, "work", "db")
	if err != nil {
		t.Fatalf("ReadKey failed: %v", err)
	}
	if string(plaintext) != "secret1" {
		t.Errorf("ReadKey = %q, want %q", plaintext, "secret1")
	}
}

func TestWriteOverwrites(t *testing.T) {
	st, eng, _ := setupKeychain(t, "work")
	ctx := context.Background()

	if _, err := WriteKey(ctx, st, eng, "work", "db", []byte("first")); err != nil {
		t.Fatalf("WriteKey failed: %v", err)
	}
	if _, err := WriteKey(ctx, st, eng, "work", "db", []byte("second")); err != nil {
		t.Fatalf("WriteKey overwrite failed: %v", err)
	}

	plaintext, err := ReadKey(ctx, st, eng, "work", "db")
	if err != nil {
		t.Fatalf("ReadKey failed: %v", err)
	}
	if string(plaintext) != "second" {
		t.Errorf("ReadKey = %q, want %q (no versioning, last write wins)", plaintext, "second")
	}
}

func TestReadMissingKey(t *testing.T) {
	st, eng, _ := setupKeychain(t, "work")

	_, err := ReadKey(context.Background(), st, eng, "work", "nope")
	if !errors.Is(err, kerrors.ErrKeyNotFound) {
		t.Errorf("ReadKey(missing) = %v, want ErrKeyNotFound", err)
	}
}

func TestWriteWithoutCredential(t *testing.T) {
	st := newTestStore(t)
	eng := newTestEngine(t)

	if err := st.CreateKeychain("bare"); err != nil {
		t.Fatalf("CreateKeychain failed: %v", err)
	}

	_, err := WriteKey(context.Background(), st, eng, "bare", "db", []byte("v"))
	if !errors.Is(err, kerrors.ErrNoCredential) {
		t.Errorf("WriteKey without credential = %v, want ErrNoCredential", err)
	}
}

func TestRemoveKey(t *testing.T) {
	st, eng, _ := setupKeychain(t, "work")
	ctx := context.Background()

	if _, err := WriteKey(ctx, st, eng, "work", "db", []byte("secret1")); err != nil {
		t.Fatalf("WriteKey failed: %v", err)
	}

	removed, err := RemoveKey(st, "work", "db")
	if err != nil {
		t.Fatalf("RemoveKey failed: %v", err)
	}
	if !removed {
		t.Error("Expected RemoveKey to report removal")
	}

	if _, err := ReadKey(ctx, st, eng, "work", "db"); !errors.Is(err, kerrors.ErrKeyNotFound) {
		t.Errorf("ReadKey after remove = %v, want ErrKeyNotFound", err)
	}

	// Removing an absent key is a silent no-op.
	removed, err = RemoveKey(st, "work", "db")
	if err != nil {
		t.Fatalf("RemoveKey of absent key failed: %v", err)
	}
	if removed {
		t.Error("Expected no-op removal of absent key")
	}
}

func TestCiphertextIsSealedToIdentity(t *testing.T) {
	_, eng, id := setupKeychain(t, "work")
	ctx := context.Background()

	plaintext := []byte("round-trip me")
	ciphertext, err := EncryptValue(ctx, eng, plaintext, id)
	if err != nil {
		t.Fatalf("EncryptValue failed: %v", err)
	}
	if bytes.Contains(ciphertext, plaintext) {
		t.Error("Ciphertext leaks plaintext")
	}

	decrypted, err := DecryptValue(ctx, eng, ciphertext)
	if err != nil {
		t.Fatalf("DecryptValue failed: %v", err)
	}
	if !bytes.Equal(decrypted, plaintext) {
		t.Errorf("Round trip mismatch: got %q, want %q", decrypted, plaintext)
	}
}
