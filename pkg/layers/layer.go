package layers

import (
	"os"
	"path/filepath"
	"reflect"

	"lab47.dev/libcnb/pkg/tomlfile"
)

// Layer is one buildpack-managed layer directory plus its sibling
// "<name>.toml" content metadata file, as described by
// https://github.com/buildpacks/spec/blob/main/buildpack.md#layers.
//
// Build, Launch and Cache control which lifecycle phases see the layer.
// Metadata carries whatever the buildpack wants future builds to know, most
// commonly the inputs that produced the layer so CompareMetadata can decide
// whether a cached layer is still good.
type Layer struct {
	Path string

	Build  bool
	Launch bool
	Cache  bool

	Metadata map[string]interface{}

	SharedEnv *Environment
	BuildEnv  *Environment
	LaunchEnv *Environment

	ProcessLaunchEnvs map[string]*Environment

	Profile         *Profile
	ProcessProfiles map[string]*Profile
}

type layerTypes struct {
	Build  bool `toml:"build"`
	Launch bool `toml:"launch"`
	Cache  bool `toml:"cache"`
}

type layerContent struct {
	Types    layerTypes             `toml:"types"`
	Metadata map[string]interface{} `toml:"metadata"`
}

func newLayer(path string) *Layer {
	return &Layer{
		Path:              path,
		Metadata:          map[string]interface{}{},
		SharedEnv:         NewEnvironment(),
		BuildEnv:          NewEnvironment(),
		LaunchEnv:         NewEnvironment(),
		ProcessLaunchEnvs: map[string]*Environment{},
		Profile:           NewProfile(),
		ProcessProfiles:   map[string]*Profile{},
	}
}

func (l *Layer) Name() string {
	return filepath.Base(l.Path)
}

// MetadataFile is the layer content metadata file, a sibling of the layer
// directory, never inside it.
func (l *Layer) MetadataFile() string {
	return l.Path + ".toml"
}

func (l *Layer) ExecD() *ExecD {
	return &ExecD{Path: filepath.Join(l.Path, "exec.d")}
}

// Load reads the layer state from disk. A missing metadata file loads as an
// empty layer. With loadAll false only the type flags and metadata are read;
// the environment and profile trees are left untouched, skipping their
// per-file I/O for callers that only inspect metadata.
func (l *Layer) Load(loadAll bool) error {
	var content layerContent

	err := tomlfile.Read(l.MetadataFile(), &content)
	if err != nil {
		return err
	}

	l.Build = content.Types.Build
	l.Launch = content.Types.Launch
	l.Cache = content.Types.Cache

	l.Metadata = content.Metadata
	if l.Metadata == nil {
		l.Metadata = map[string]interface{}{}
	}

	if !loadAll {
		return nil
	}

	l.SharedEnv, err = EnvironmentFromPath(filepath.Join(l.Path, "env"))
	if err != nil {
		return err
	}

	l.BuildEnv, err = EnvironmentFromPath(filepath.Join(l.Path, "env.build"))
	if err != nil {
		return err
	}

	launchDir := filepath.Join(l.Path, "env.launch")

	l.LaunchEnv, err = EnvironmentFromPath(launchDir)
	if err != nil {
		return err
	}

	l.ProcessLaunchEnvs = map[string]*Environment{}

	err = eachSubdir(launchDir, func(name string) error {
		env, err := EnvironmentFromPath(filepath.Join(launchDir, name))
		if err != nil {
			return err
		}

		l.ProcessLaunchEnvs[name] = env
		return nil
	})
	if err != nil {
		return err
	}

	profileDir := filepath.Join(l.Path, "profile.d")

	l.Profile, err = ProfileFromPath(profileDir)
	if err != nil {
		return err
	}

	l.ProcessProfiles = map[string]*Profile{}

	return eachSubdir(profileDir, func(name string) error {
		prof, err := ProfileFromPath(filepath.Join(profileDir, name))
		if err != nil {
			return err
		}

		l.ProcessProfiles[name] = prof
		return nil
	})
}

// Dump writes the layer to disk: the metadata file, then every environment
// and profile scope. Entries removed from memory since the last load are not
// deleted from disk; Reset is the invalidation primitive.
func (l *Layer) Dump() error {
	err := os.MkdirAll(l.Path, 0755)
	if err != nil {
		return track(err)
	}

	content := layerContent{
		Types: layerTypes{
			Build:  l.Build,
			Launch: l.Launch,
			Cache:  l.Cache,
		},
		Metadata: l.Metadata,
	}
	if content.Metadata == nil {
		content.Metadata = map[string]interface{}{}
	}

	err = tomlfile.Write(l.MetadataFile(), &content)
	if err != nil {
		return err
	}

	err = l.SharedEnv.ToPath(filepath.Join(l.Path, "env"))
	if err != nil {
		return err
	}

	err = l.BuildEnv.ToPath(filepath.Join(l.Path, "env.build"))
	if err != nil {
		return err
	}

	launchDir := filepath.Join(l.Path, "env.launch")

	err = l.LaunchEnv.ToPath(launchDir)
	if err != nil {
		return err
	}

	for process, env := range l.ProcessLaunchEnvs {
		err = env.ToPath(filepath.Join(launchDir, process))
		if err != nil {
			return err
		}
	}

	profileDir := filepath.Join(l.Path, "profile.d")

	err = l.Profile.ToPath(profileDir)
	if err != nil {
		return err
	}

	for process, prof := range l.ProcessProfiles {
		err = prof.ToPath(filepath.Join(profileDir, process))
		if err != nil {
			return err
		}
	}

	return nil
}

// Reset throws away the layer's on-disk state and reloads it empty. The
// metadata file must exist: resetting a layer that was never written is a
// caller bug and the delete error surfaces.
func (l *Layer) Reset() error {
	err := os.Remove(l.MetadataFile())
	if err != nil {
		return track(err)
	}

	err = os.RemoveAll(l.Path)
	if err != nil {
		return track(err)
	}

	err = os.MkdirAll(l.Path, 0755)
	if err != nil {
		return track(err)
	}

	return l.Load(true)
}

// CompareMetadata reports whether the layer's metadata matches expected.
// When exact, the two must hold the same keys and values. Otherwise only the
// keys in expected are checked and extra layer metadata is ignored, which is
// the usual cache-reuse test.
func (l *Layer) CompareMetadata(expected map[string]interface{}, exact bool) bool {
	if exact && len(l.Metadata) != len(expected) {
		return false
	}

	for key, want := range expected {
		got, ok := l.Metadata[key]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}

	return true
}

func eachSubdir(dir string, f func(name string) error) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return track(err)
	}

	for _, ent := range entries {
		if !ent.IsDir() {
			continue
		}

		err = f(ent.Name())
		if err != nil {
			return err
		}
	}

	return nil
}
