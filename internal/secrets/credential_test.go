package secrets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/keyfold/keyfold/internal/engine"
	kerrors "github.com/keyfold/keyfold/internal/errors"
	"github.com/keyfold/keyfold/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	tmpDir, err := os.MkdirTemp("", "keyfold-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })
	return store.New(tmpDir)
}

func newTestEngine(t *testing.T) *engine.PGP {
	t.Helper()
	return engine.NewPGP(engine.Options{Algorithm: engine.AlgorithmEd25519, Timeout: time.Minute})
}

func testMeta() engine.KeyMeta {
	return engine.KeyMeta{Name: "tester", Email: "tester@example.com", Comment: "uuid-1"}
}

func TestCreateCredential(t *testing.T) {
	st := newTestStore(t)
	eng := newTestEngine(t)
	ctx := context.Background()

	if err := st.CreateKeychain("work"); err != nil {
		t.Fatalf("CreateKeychain failed: %v", err)
	}

	id, err := CreateCredential(ctx, st, eng, "work", testMeta())
	if err != nil {
		t.Fatalf("CreateCredential failed: %v", err)
	}

	path := st.CredentialPath("work", string(id))
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Expected credential file, got: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("Credential mode = %o, want 0600", perm)
	}

	dirInfo, err := os.Stat(st.KeychainDir("work"))
	if err != nil {
		t.Fatalf("Stat keychain dir failed: %v", err)
	}
	if perm := dirInfo.Mode().Perm(); perm != 0700 {
		t.Errorf("Keychain dir mode = %o, want 0700", perm)
	}
}

func TestCreateCredentialTwiceFails(t *testing.T) {
	st := newTestStore(t)
	eng := newTestEngine(t)
	ctx := context.Background()

	if err := st.CreateKeychain("work"); err != nil {
		t.Fatalf("CreateKeychain failed: %v", err)
	}
	first, err := CreateCredential(ctx, st, eng, "work", testMeta())
	if err != nil {
		t.Fatalf("CreateCredential failed: %v", err)
	}
	before, err := os.ReadFile(st.CredentialPath("work", string(first)))
	if err != nil {
		t.Fatalf("Failed to read credential: %v", err)
	}

	_, err = CreateCredential(ctx, st, eng, "work", testMeta())
	if !errors.Is(err, kerrors.ErrCredentialExists) {
		t.Fatalf("Second create = %v, want ErrCredentialExists", err)
	}

	// The first credential must be untouched.
	after, err := os.ReadFile(st.CredentialPath("work", string(first)))
	if err != nil {
		t.Fatalf("Failed to re-read credential: %v", err)
	}
	if string(before) != string(after) {
		t.Error("First credential was altered by the failed second create")
	}
}

func TestLookupCredential(t *testing.T) {
	st := newTestStore(t)
	eng := newTestEngine(t)
	ctx := context.Background()

	if err := st.CreateKeychain("work"); err != nil {
		t.Fatalf("CreateKeychain failed: %v", err)
	}

	// Zero credentials.
	_, err := LookupCredential(st, "work")
	if !errors.Is(err, kerrors.ErrNoCredential) {
		t.Errorf("Lookup with no credential = %v, want ErrNoCredential", err)
	}

	id, err := CreateCredential(ctx, st, eng, "work", testMeta())
	if err != nil {
		t.Fatalf("CreateCredential failed: %v", err)
	}

	got, err := LookupCredential(st, "work")
	if err != nil {
		t.Fatalf("LookupCredential failed: %v", err)
	}
	if got != id {
		t.Errorf("LookupCredential = %s, want %s", got, id)
	}

	// A second credential file makes the state ambiguous, not "first wins".
	extra := filepath.Join(st.KeychainDir("work"), "FFFF6789ABCDEF0123456789ABCDEF0123456789.asc")
	if err := os.WriteFile(extra, []byte("stray"), 0600); err != nil {
		t.Fatalf("Failed to write stray credential: %v", err)
	}
	_, err = LookupCredential(st, "work")
	if !errors.Is(err, kerrors.ErrAmbiguousCredential) {
		t.Errorf("Lookup with two credentials = %v, want ErrAmbiguousCredential", err)
	}
}

func TestReplaceCredentialArchivesOld(t *testing.T) {
	st := newTestStore(t)
	eng := newTestEngine(t)
	ctx := context.Background()

	if err := st.CreateKeychain("work"); err != nil {
		t.Fatalf("CreateKeychain failed: %v", err)
	}
	oldID, err := CreateCredential(ctx, st, eng, "work", testMeta())
	if err != nil {
		t.Fatalf("CreateCredential failed: %v", err)
	}

	newID, err := ReplaceCredential(ctx, st, eng, "work", testMeta())
	if err != nil {
		t.Fatalf("ReplaceCredential failed: %v", err)
	}
	if newID == oldID {
		t.Error("Expected a fresh identity after replacement")
	}

	// Exactly one current credential, the new one.
	got, err := LookupCredential(st, "work")
	if err != nil {
		t.Fatalf("LookupCredential after replace failed: %v", err)
	}
	if got != newID {
		t.Errorf("LookupCredential = %s, want %s", got, newID)
	}

	// The old private key is archived, not destroyed.
	archived := filepath.Join(st.BackupDir("work"), string(oldID)+".asc")
	if _, err := os.Stat(archived); err != nil {
		t.Errorf("Expected archived credential at %s: %v", archived, err)
	}
}

func TestReplaceCredentialOnEmptyKeychain(t *testing.T) {
	st := newTestStore(t)
	eng := newTestEngine(t)
	ctx := context.Background()

	if err := st.CreateKeychain("fresh"); err != nil {
		t.Fatalf("CreateKeychain failed: %v", err)
	}

	// No credential yet: replace degrades to plain create.
	id, err := ReplaceCredential(ctx, st, eng, "fresh", testMeta())
	if err != nil {
		t.Fatalf("ReplaceCredential failed: %v", err)
	}
	got, err := LookupCredential(st, "fresh")
	if err != nil {
		t.Fatalf("LookupCredential failed: %v", err)
	}
	if got != id {
		t.Errorf("LookupCredential = %s, want %s", got, id)
	}
}

// brokenEngine fails keypair generation, standing in for an engine that
// crashes or times out mid-operation.
type brokenEngine struct {
	engine.Engine
}

func (brokenEngine) GenerateKeyPair(ctx context.Context, meta engine.KeyMeta) (*engine.Credential, error) {
	return nil, fmt.Errorf("keypair generation: %w", kerrors.ErrEngineFailure)
}

func TestReplaceCredentialKeepsCurrentOnGenerateFailure(t *testing.T) {
	st := newTestStore(t)
	eng := newTestEngine(t)
	ctx := context.Background()

	if err := st.CreateKeychain("work"); err != nil {
		t.Fatalf("CreateKeychain failed: %v", err)
	}
	oldID, err := CreateCredential(ctx, st, eng, "work", testMeta())
	if err != nil {
		t.Fatalf("CreateCredential failed: %v", err)
	}

	_, err = ReplaceCredential(ctx, st, brokenEngine{}, "work", testMeta())
	if !errors.Is(err, kerrors.ErrEngineFailure) {
		t.Fatalf("ReplaceCredential = %v, want ErrEngineFailure", err)
	}

	// The keychain still holds exactly its previous credential.
	got, err := LookupCredential(st, "work")
	if err != nil {
		t.Fatalf("LookupCredential after failed replace: %v", err)
	}
	if got != oldID {
		t.Errorf("LookupCredential = %s, want %s", got, oldID)
	}

	// Nothing was archived either.
	archived := filepath.Join(st.BackupDir("work"), string(oldID)+".asc")
	if _, err := os.Stat(archived); !os.IsNotExist(err) {
		t.Errorf("Expected no archived credential at %s, got: %v", archived, err)
	}
}

func TestCreateCredentialMissingKeychainDir(t *testing.T) {
	st := newTestStore(t)
	eng := newTestEngine(t)

	_, err := CreateCredential(context.Background(), st, eng, "ghost", testMeta())
	if err == nil {
		t.Fatal("Expected CreateCredential on a missing keychain to fail")
	}
	// A missing directory is not a permissions problem.
	if errors.Is(err, kerrors.ErrPermissionDenied) {
		t.Errorf("Error misclassified as permission denied: %v", err)
	}
}
