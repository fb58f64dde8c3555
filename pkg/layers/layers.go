// Package layers models buildpack-managed layer directories: their content
// metadata files, environment variable modifiers, profile.d scripts and
// exec.d hook locations, at the paths the buildpack spec fixes.
package layers

import "path/filepath"

// Layers hands out the layers a buildpack manages under the lifecycle's
// layers directory. It holds no state beyond the root path; Get always goes
// back to disk.
type Layers struct {
	Path string
}

// Get creates or loads the named layer. With loadAll the environment and
// profile trees are read as well; without it only the type flags and
// metadata, see Layer.Load.
func (ls Layers) Get(name string, loadAll bool) (*Layer, error) {
	path, err := filepath.Abs(filepath.Join(ls.Path, name))
	if err != nil {
		return nil, track(err)
	}

	layer := newLayer(path)

	err = layer.Load(loadAll)
	if err != nil {
		return nil, err
	}

	return layer, nil
}
