package configs

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// saveTOML encodes v into a TOML file, creating parent directories as
// needed. The file is owner-only: the config names the owner and the
// store root, which nobody else needs to read.
func saveTOML(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer file.Close()

	return toml.NewEncoder(file).Encode(v)
}

// loadTOML decodes a TOML file into v.
func loadTOML(path string, v any) error {
	_, err := toml.DecodeFile(path, v)
	return err
}
