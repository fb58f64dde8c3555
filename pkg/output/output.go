// Package output binds the TOML files a buildpack writes at the end of the
// build phase: launch.toml, build.toml and store.toml.
package output

import (
	"os"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	"lab47.dev/libcnb/pkg/tomlfile"
)

// Process is a runnable the app image exposes.
type Process struct {
	Type    string   `toml:"type"`
	Command string   `toml:"command"`
	Args    []string `toml:"args,omitempty"`
	Direct  bool     `toml:"direct"`
	Default bool     `toml:"default"`
}

// Label is an image label to stamp onto the app image.
type Label struct {
	Key   string `toml:"key"`
	Value string `toml:"value"`
}

// Slice groups app files into a dedicated image layer.
type Slice struct {
	Paths []string `toml:"paths"`
}

// BOMEntry is one bill-of-materials record.
type BOMEntry struct {
	Name     string                 `toml:"name"`
	Metadata map[string]interface{} `toml:"metadata,omitempty"`
}

// UnmetEntry names a buildpack plan entry this buildpack did not satisfy,
// passing it on to later providers.
type UnmetEntry struct {
	Name string `toml:"name"`
}

// LaunchMetadata is the contents of launch.toml.
type LaunchMetadata struct {
	Labels    []Label    `toml:"labels,omitempty"`
	Processes []Process  `toml:"processes,omitempty"`
	Slices    []Slice    `toml:"slices,omitempty"`
	BOM       []BOMEntry `toml:"bom,omitempty"`
}

func (m *LaunchMetadata) IsEmpty() bool {
	return len(m.Labels) == 0 && len(m.Processes) == 0 && len(m.Slices) == 0 && len(m.BOM) == 0
}

// ToPath writes launch.toml. An empty metadata set writes nothing.
func (m *LaunchMetadata) ToPath(path string) error {
	if m.IsEmpty() {
		return nil
	}

	return tomlfile.Write(path, m)
}

func LaunchMetadataFromPath(path string) (*LaunchMetadata, error) {
	var m LaunchMetadata

	err := readRequired(path, &m)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

// BuildMetadata is the contents of build.toml.
type BuildMetadata struct {
	BOM   []BOMEntry   `toml:"bom,omitempty"`
	Unmet []UnmetEntry `toml:"unmet,omitempty"`
}

func (m *BuildMetadata) IsEmpty() bool {
	return len(m.BOM) == 0 && len(m.Unmet) == 0
}

// ToPath writes build.toml. An empty metadata set writes nothing.
func (m *BuildMetadata) ToPath(path string) error {
	if m.IsEmpty() {
		return nil
	}

	return tomlfile.Write(path, m)
}

func BuildMetadataFromPath(path string) (*BuildMetadata, error) {
	var m BuildMetadata

	err := readRequired(path, &m)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

// Store is the contents of store.toml, metadata that outlives cache
// invalidation.
type Store struct {
	Metadata map[string]interface{} `toml:"metadata"`
}

func (s *Store) IsEmpty() bool {
	return len(s.Metadata) == 0
}

// ToPath writes store.toml. An empty store writes nothing.
func (s *Store) ToPath(path string) error {
	if s.IsEmpty() {
		return nil
	}

	return tomlfile.Write(path, s)
}

// StoreFromPath reads store.toml, tolerating a missing file: the first build
// of an app has no store yet.
func StoreFromPath(path string) (*Store, error) {
	var s Store

	err := tomlfile.Read(path, &s)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func readRequired(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.WithStack(err)
	}

	err = toml.Unmarshal(data, v)
	if err != nil {
		return errors.Wrapf(err, "decoding %s", path)
	}

	return nil
}
