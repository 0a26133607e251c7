// Package errors defines sentinel errors used throughout keyfold.
//
// These errors enable errors.Is() checks for specific failure conditions,
// so the command layer can print targeted hints instead of raw error text.
package errors
