package layers

import "path/filepath"

// envSuffixes are the modifier suffixes the lifecycle recognizes inside an
// env directory. Anything else on disk is not an environment entry.
var envSuffixes = map[string]struct{}{
	".append":   {},
	".prepend":  {},
	".default":  {},
	".override": {},
	".delim":    {},
}

// Environment declares environment variable modifications for one layer
// scope. Each entry maps a "<name>.<modifier>" key to a value, mirroring the
// one-file-per-entry layout the buildpack spec requires.
type Environment struct {
	Store
}

func NewEnvironment() *Environment {
	return &Environment{}
}

// EnvironmentFromPath loads an environment from a scope directory. Files
// with unrecognized suffixes and subdirectories (per-process scopes) are
// ignored. A missing directory yields an empty environment.
func EnvironmentFromPath(dir string) (*Environment, error) {
	env := NewEnvironment()

	err := env.loadDir(dir, func(name string) bool {
		_, ok := envSuffixes[filepath.Ext(name)]
		return ok
	})
	if err != nil {
		return nil, err
	}

	return env, nil
}

// Append arranges for value to be appended to the variable at launch or
// build, joined with delim. The delimiter is shared with Prepend: whichever
// is set last wins for the variable.
func (e *Environment) Append(name, value, delim string) {
	e.Set(name+".append", value)
	e.Set(name+".delim", delim)
}

// Prepend arranges for value to be prepended to the variable, joined with
// delim. See Append for how the delimiter entry is shared.
func (e *Environment) Prepend(name, value, delim string) {
	e.Set(name+".prepend", value)
	e.Set(name+".delim", delim)
}

// Default sets the value the variable takes when it is not otherwise set.
func (e *Environment) Default(name, value string) {
	e.Set(name+".default", value)
}

// Override sets the value the variable takes unconditionally.
func (e *Environment) Override(name, value string) {
	e.Set(name+".override", value)
}

// ToPath writes the environment to a scope directory, one file per entry.
// Files already on disk that have no in-memory entry are not removed.
func (e *Environment) ToPath(dir string) error {
	return e.writeDir(dir)
}

func (e *Environment) Equal(o *Environment) bool {
	return e.Store.Equal(&o.Store)
}
