// Package plan binds the build plan files exchanged during detection and
// the buildpack plan handed to build.
package plan

import (
	"os"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// Provide declares a dependency the buildpack can supply.
type Provide struct {
	Name string `toml:"name"`
}

// Require declares a dependency the buildpack needs, with optional metadata
// for whichever buildpack provides it.
type Require struct {
	Name     string                 `toml:"name"`
	Metadata map[string]interface{} `toml:"metadata,omitempty"`
}

// Plan is one provides/requires alternative contributed during detection.
type Plan struct {
	Provides []Provide `toml:"provides,omitempty"`
	Requires []Require `toml:"requires,omitempty"`
}

// planFile is the detect output encoding: the first plan inline, the
// alternatives as repeated [[or]] tables.
type planFile struct {
	Provides []Provide `toml:"provides"`
	Requires []Require `toml:"requires"`
	Or       []Plan    `toml:"or,omitempty"`
}

// WritePlans encodes the detection plans to the plan path the lifecycle
// provided. Writing no plans is a no-op.
func WritePlans(path string, plans []Plan) error {
	if len(plans) == 0 {
		return nil
	}

	doc := planFile{
		Provides: plans[0].Provides,
		Requires: plans[0].Requires,
		Or:       plans[1:],
	}

	data, err := toml.Marshal(&doc)
	if err != nil {
		return errors.Wrap(err, "encoding build plan")
	}

	return errors.WithStack(os.WriteFile(path, data, 0644))
}

// Entry is one resolved dependency in the buildpack plan.
type Entry struct {
	Name     string                 `toml:"name"`
	Metadata map[string]interface{} `toml:"metadata,omitempty"`
}

// BuildpackPlan is the set of entries the lifecycle assigned to this
// buildpack for the build phase.
type BuildpackPlan struct {
	Entries []Entry `toml:"entries"`
}

func BuildpackPlanFromPath(path string) (*BuildpackPlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var bp BuildpackPlan

	err = toml.Unmarshal(data, &bp)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}

	return &bp, nil
}
