package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
	"github.com/ProtonMail/go-crypto/openpgp/packet"

	kerrors "github.com/keyfold/keyfold/internal/errors"
)

// Supported key algorithms for generated credentials.
const (
	AlgorithmEd25519 = "ed25519"
	AlgorithmRSA     = "rsa"
)

// Options configures the OpenPGP engine.
type Options struct {
	// Algorithm selects the generated key type. Empty means ed25519.
	Algorithm string

	// RSABits is the modulus size when Algorithm is "rsa". Zero means 2048.
	RSABits int

	// Timeout bounds every engine operation. Zero disables the deadline.
	Timeout time.Duration
}

// PGP is an Engine backed by ProtonMail/go-crypto's OpenPGP implementation.
// Its keyring holds every private credential loaded from the store, so
// Decrypt can open any ciphertext targeted at a held credential, and
// Encrypt can target any held identity.
type PGP struct {
	opts    Options
	keyring openpgp.EntityList
	armored map[Identity][]byte
}

var _ Engine = (*PGP)(nil)

// NewPGP creates an engine with an empty keyring.
func NewPGP(opts Options) *PGP {
	return &PGP{
		opts:    opts,
		armored: make(map[Identity][]byte),
	}
}

// LoadCredential parses an armored private key block and adds it to the
// keyring. Returns the credential's identity.
func (p *PGP) LoadCredential(armoredKey []byte) (Identity, error) {
	entities, err := openpgp.ReadArmoredKeyRing(bytes.NewReader(armoredKey))
	if err != nil {
		return "", fmt.Errorf("reading credential: %v: %w", err, kerrors.ErrEngineFailure)
	}
	if len(entities) != 1 {
		return "", fmt.Errorf("credential holds %d keys, expected exactly 1: %w", len(entities), kerrors.ErrEngineFailure)
	}

	entity := entities[0]
	id := entityIdentity(entity)
	p.keyring = append(p.keyring, entity)
	p.armored[id] = append([]byte(nil), armoredKey...)
	return id, nil
}

// Holds reports whether the engine's keyring contains the identity.
func (p *PGP) Holds(id Identity) bool {
	return p.findEntity(id) != nil
}

// GenerateKeyPair creates a fresh keypair, adds it to the keyring, and
// returns the armored private credential plus its identity.
func (p *PGP) GenerateKeyPair(ctx context.Context, meta KeyMeta) (*Credential, error) {
	var cred *Credential
	err := p.guard(ctx, "generate keypair", func() error {
		config := p.packetConfig()
		entity, err := openpgp.NewEntity(meta.Name, meta.Comment, meta.Email, config)
		if err != nil {
			return fmt.Errorf("generating keypair: %v: %w", err, kerrors.ErrEngineFailure)
		}

		var buf bytes.Buffer
		armorer, err := armor.Encode(&buf, openpgp.PrivateKeyType, nil)
		if err != nil {
			return fmt.Errorf("armoring private key: %v: %w", err, kerrors.ErrEngineFailure)
		}
		if err := entity.SerializePrivate(armorer, config); err != nil {
			return fmt.Errorf("serializing private key: %v: %w", err, kerrors.ErrEngineFailure)
		}
		if err := armorer.Close(); err != nil {
			return fmt.Errorf("armoring private key: %v: %w", err, kerrors.ErrEngineFailure)
		}

		id := entityIdentity(entity)
		armoredKey := append([]byte(nil), buf.Bytes()...)
		p.keyring = append(p.keyring, entity)
		p.armored[id] = armoredKey
		cred = &Credential{Identity: id, Armored: armoredKey}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cred, nil
}

// ExportPrivate returns the armored private key block for a held identity.
func (p *PGP) ExportPrivate(ctx context.Context, id Identity) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	armoredKey, ok := p.armored[id]
	if !ok {
		return nil, fmt.Errorf("no private credential for %s: %w", id, kerrors.ErrEngineFailure)
	}
	return append([]byte(nil), armoredKey...), nil
}

// Encrypt encrypts plaintext to the given recipient identity. The identity
// must be held in the keyring.
func (p *PGP) Encrypt(ctx context.Context, plaintext []byte, id Identity) ([]byte, error) {
	var ciphertext []byte
	err := p.guard(ctx, "encrypt", func() error {
		recipient := p.findEntity(id)
		if recipient == nil {
			return fmt.Errorf("no credential for recipient %s: %w", id, kerrors.ErrEngineFailure)
		}

		var buf bytes.Buffer
		w, err := openpgp.Encrypt(&buf, []*openpgp.Entity{recipient}, nil, nil, p.packetConfig())
		if err != nil {
			return fmt.Errorf("encrypting to %s: %v: %w", id, err, kerrors.ErrEngineFailure)
		}
		if _, err := w.Write(plaintext); err != nil {
			return fmt.Errorf("encrypting to %s: %v: %w", id, err, kerrors.ErrEngineFailure)
		}
		if err := w.Close(); err != nil {
			return fmt.Errorf("encrypting to %s: %v: %w", id, err, kerrors.ErrEngineFailure)
		}

		ciphertext = buf.Bytes()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ciphertext, nil
}

// Decrypt decrypts ciphertext with whichever held private credential
// matches it.
func (p *PGP) Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error) {
	var plaintext []byte
	err := p.guard(ctx, "decrypt", func() error {
		md, err := openpgp.ReadMessage(bytes.NewReader(ciphertext), p.keyring, nil, p.packetConfig())
		if err != nil {
			return fmt.Errorf("decrypting: %v: %w", err, kerrors.ErrEngineFailure)
		}
		body, err := io.ReadAll(md.UnverifiedBody)
		if err != nil {
			return fmt.Errorf("decrypting: %v: %w", err, kerrors.ErrEngineFailure)
		}
		plaintext = body
		return nil
	})
	if err != nil {
		return nil, err
	}
	return plaintext, nil
}

// guard runs fn under the configured deadline and converts overruns into
// ErrEngineTimeout. The crypto work is CPU-bound and cannot be interrupted,
// so an abandoned goroutine finishes in the background.
func (p *PGP) guard(ctx context.Context, op string, fn func() error) error {
	if p.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.opts.Timeout)
		defer cancel()
	}

	done := make(chan error, 1)
	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%s: %w", op, kerrors.ErrEngineTimeout)
		}
		return ctx.Err()
	}
}

func (p *PGP) packetConfig() *packet.Config {
	switch p.opts.Algorithm {
	case AlgorithmRSA:
		bits := p.opts.RSABits
		if bits == 0 {
			bits = 2048
		}
		return &packet.Config{RSABits: bits}
	default:
		// ed25519 signing key with an X25519 encryption subkey.
		return &packet.Config{Algorithm: packet.PubKeyAlgoEdDSA}
	}
}

func (p *PGP) findEntity(id Identity) *openpgp.Entity {
	for _, entity := range p.keyring {
		if entityIdentity(entity) == id {
			return entity
		}
	}
	return nil
}

func entityIdentity(entity *openpgp.Entity) Identity {
	return Identity(fmt.Sprintf("%X", entity.PrimaryKey.Fingerprint))
}
