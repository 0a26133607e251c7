// Package engine is the boundary to the external OpenPGP crypto engine.
//
// keyfold treats cryptography as a black box with four operations:
// generate-keypair, export-private-key, encrypt-to-recipient, and decrypt.
// The Engine interface captures that contract; PGP implements it with
// ProtonMail/go-crypto over a keyring of every credential in the store.
//
// All operations run under a configurable deadline. An overrun surfaces as
// errors.ErrEngineTimeout rather than blocking the command forever.
package engine
