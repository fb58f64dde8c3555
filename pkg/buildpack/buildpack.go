// Package buildpack binds the static metadata in buildpack.toml.
package buildpack

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

type License struct {
	Type string `toml:"type"`
	URI  string `toml:"uri"`
}

type Info struct {
	ID          string    `toml:"id"`
	Version     string    `toml:"version"`
	Name        string    `toml:"name"`
	Homepage    string    `toml:"homepage"`
	ClearEnv    bool      `toml:"clear-env"`
	Description string    `toml:"description"`
	Keywords    []string  `toml:"keywords"`
	Licenses    []License `toml:"licenses"`
}

type Stack struct {
	ID     string   `toml:"id"`
	Mixins []string `toml:"mixins"`
}

type Group struct {
	ID       string `toml:"id"`
	Version  string `toml:"version"`
	Optional bool   `toml:"optional"`
}

type Order struct {
	Group []Group `toml:"group"`
}

// Buildpack is the contents of buildpack.toml plus the absolute directory it
// was read from.
type Buildpack struct {
	API      string                 `toml:"api"`
	Info     Info                   `toml:"buildpack"`
	Stacks   []Stack                `toml:"stacks"`
	Metadata map[string]interface{} `toml:"metadata"`
	Order    []Order                `toml:"order"`

	Path string `toml:"-"`
}

// FromPath reads <dir>/buildpack.toml. Unlike layer metadata the file is
// required; a buildpack without one is broken.
func FromPath(dir string) (*Buildpack, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	data, err := os.ReadFile(filepath.Join(abs, "buildpack.toml"))
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var bp Buildpack

	err = toml.Unmarshal(data, &bp)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding buildpack.toml in %s", abs)
	}

	bp.Path = abs

	return &bp, nil
}
