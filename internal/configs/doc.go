// Package configs manages the keyfold user configuration.
//
// The config file lives at <UserConfigDir>/keyfold/config.toml and holds
// the owner identity used in generated credential metadata, an optional
// store root override, and crypto engine settings (algorithm, RSA bits,
// operation timeout).
//
// The KEYFOLD_ROOT environment variable overrides the store root for a
// single invocation, which is how the tests point commands at temp dirs.
package configs
