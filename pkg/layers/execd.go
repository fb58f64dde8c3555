package layers

import "path/filepath"

// ExecD locates a layer's exec.d hooks. The lifecycle runs these itself; the
// binding only computes paths and never writes under them.
type ExecD struct {
	Path string
}

func (e *ExecD) FilePath(name string) string {
	return filepath.Join(e.Path, name)
}

func (e *ExecD) ProcessFilePath(process, name string) string {
	return filepath.Join(e.Path, process, name)
}
