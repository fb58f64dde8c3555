// Package phase implements the detect and build entry points a buildpack
// executable delegates to, assembling their contexts from the argv and
// CNB_* environment the lifecycle provides.
package phase

import (
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
)

const (
	// EnvStackID names the stack the buildpack runs against.
	EnvStackID = "CNB_STACK_ID"

	// EnvBuildpackDir locates the buildpack's own root, where
	// buildpack.toml lives.
	EnvBuildpackDir = "CNB_BUILDPACK_DIR"
)

// MinBuildpackAPI is the oldest buildpack API version this binding speaks.
const MinBuildpackAPI = "0.6"

var logger hclog.Logger

func L() hclog.Logger {
	if logger != nil {
		return logger
	}

	logger = hclog.L().Named("cnb")

	return logger
}

func SetLogger(l hclog.Logger) {
	logger = l
}

func track(err error) error {
	return errors.WithStack(err)
}

func requireEnv(name string) (string, error) {
	v := os.Getenv(name)
	if v == "" {
		return "", errors.Errorf("%s is not set", name)
	}

	return v, nil
}

// apiAtLeast compares buildpack API versions, which are always
// "<major>.<minor>". Unparsable versions compare as too old.
func apiAtLeast(api, floor string) bool {
	amaj, amin, ok := parseAPI(api)
	if !ok {
		return false
	}

	fmaj, fmin, _ := parseAPI(floor)

	if amaj != fmaj {
		return amaj > fmaj
	}

	return amin >= fmin
}

func parseAPI(v string) (int, int, bool) {
	maj, min, found := strings.Cut(v, ".")
	if !found {
		min = "0"
	}

	a, err := strconv.Atoi(maj)
	if err != nil {
		return 0, 0, false
	}

	b, err := strconv.Atoi(min)
	if err != nil {
		return 0, 0, false
	}

	return a, b, true
}

func checkAPI(api string) error {
	if !apiAtLeast(api, MinBuildpackAPI) {
		return errors.Errorf(
			"buildpack API %q is not supported, need %s or newer", api, MinBuildpackAPI)
	}

	return nil
}
