// Package secrets implements the keychain secret lifecycle: the
// per-keychain credential store, the secret codec, key read/write/remove,
// and the refresh engine that bulk re-encrypts a keychain under its
// current recipient identity.
//
// Invariants enforced here:
//
//   - Exactly one credential per keychain. Creation refuses to overwrite;
//     replacement generates the new keypair before archiving the old
//     private key into backup/, so a failure never strands a keychain
//     without a credential; lookup treats zero or multiple credential
//     files as errors.
//   - Backup before overwrite. Refresh snapshots every ciphertext into
//     backup/ before touching it, and snapshots are never auto-deleted.
//   - Per-item isolation. One key's refresh failure never aborts the rest.
//
// All cryptography is delegated to the engine package.
package secrets
