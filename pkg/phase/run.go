package phase

import (
	"os"
	"path/filepath"
)

// Run dispatches on the executable's own name, so one binary symlinked as
// bin/detect and bin/build serves both phases.
func Run(detector Detector, builder Builder) {
	name := filepath.Base(os.Args[0])

	switch name {
	case "detect":
		Detect(detector)
	case "build":
		Build(builder)
	default:
		L().Error("unsupported executable name", "name", name)
		os.Exit(1)
	}
}
