// Package tomlfile reads and writes the TOML files of the buildpack
// filesystem contract.
package tomlfile

import (
	"os"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// Read decodes the TOML file at path into v. A missing file decodes as an
// empty document, which the contract treats as an empty table.
func Read(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return errors.WithStack(err)
	}

	err = toml.Unmarshal(data, v)
	if err != nil {
		return errors.Wrapf(err, "decoding %s", path)
	}

	return nil
}

// Write encodes v as TOML at path, replacing any existing file.
func Write(path string, v interface{}) error {
	data, err := toml.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encoding %s", path)
	}

	return errors.WithStack(os.WriteFile(path, data, 0644))
}
