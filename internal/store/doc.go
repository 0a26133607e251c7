// Package store maps the keyfold on-disk hierarchy to logical entities:
// a root directory of keychains, each with one credential file, a keys
// directory of ciphertexts, and a backup directory of snapshots. It also
// owns the default pointer (resolver and switcher) and per-keychain
// advisory locks.
//
// The package is pure data access. Encryption rules and the refresh
// algorithm live in the secrets package.
package store
