// Package platform binds the platform directory the lifecycle passes to
// detect and build: user-provided environment variables under <dir>/env.
package platform

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

type Platform struct {
	Path string
	Env  map[string]string
}

// FromPath loads the platform directory. Every regular file under <dir>/env
// becomes one variable, filename as name and content as value. A platform
// without an env directory is valid and loads empty.
func FromPath(dir string) (*Platform, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	env := map[string]string{}

	envDir := filepath.Join(abs, "env")

	entries, err := os.ReadDir(envDir)
	if err != nil && !os.IsNotExist(err) {
		return nil, errors.WithStack(err)
	}

	for _, ent := range entries {
		if ent.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(envDir, ent.Name()))
		if err != nil {
			return nil, errors.WithStack(err)
		}

		env[ent.Name()] = string(data)
	}

	return &Platform{Path: abs, Env: env}, nil
}
