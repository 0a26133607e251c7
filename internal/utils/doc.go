// Package utils provides small shared helpers: name validation and
// terminal interaction.
package utils
