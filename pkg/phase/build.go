package phase

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"lab47.dev/libcnb/pkg/buildpack"
	"lab47.dev/libcnb/pkg/layers"
	"lab47.dev/libcnb/pkg/output"
	"lab47.dev/libcnb/pkg/plan"
	"lab47.dev/libcnb/pkg/platform"
)

// BuildContext is what a builder gets to work with.
type BuildContext struct {
	ApplicationDir string
	Buildpack      *buildpack.Buildpack
	Layers         layers.Layers
	Store          *output.Store
	Plan           *plan.BuildpackPlan
	Platform       *platform.Platform
	StackID        string
}

// BuildResult is everything a builder hands back to be persisted: the layers
// it contributed plus the store/launch/build metadata files.
type BuildResult struct {
	Layers         []*layers.Layer
	Store          *output.Store
	LaunchMetadata *output.LaunchMetadata
	BuildMetadata  *output.BuildMetadata
}

// Builder is the build-phase callback a buildpack author implements.
type Builder func(BuildContext) (BuildResult, error)

// Build runs the build phase and exits non-zero on failure.
func Build(builder Builder) {
	err := runBuild(builder, os.Args[1:])
	if err != nil {
		L().Error("build phase failed", "error", err)
		os.Exit(1)
	}
}

func runBuild(builder Builder, args []string) error {
	fs := pflag.NewFlagSet("build", pflag.ContinueOnError)

	err := fs.Parse(args)
	if err != nil {
		return track(err)
	}

	if fs.NArg() != 3 {
		return errors.Errorf("usage: build <layers> <platform> <plan>")
	}

	layersDir := fs.Arg(0)

	ctx, err := buildContext(layersDir, fs.Arg(1), fs.Arg(2))
	if err != nil {
		return err
	}

	result, err := builder(ctx)
	if err != nil {
		return err
	}

	return result.ToPath(layersDir)
}

func buildContext(layersDir, platformDir, planPath string) (BuildContext, error) {
	var ctx BuildContext

	stackID, err := requireEnv(EnvStackID)
	if err != nil {
		return ctx, err
	}

	bpDir, err := requireEnv(EnvBuildpackDir)
	if err != nil {
		return ctx, err
	}

	appDir, err := filepath.Abs(".")
	if err != nil {
		return ctx, track(err)
	}

	bp, err := buildpack.FromPath(bpDir)
	if err != nil {
		return ctx, err
	}

	err = checkAPI(bp.API)
	if err != nil {
		return ctx, err
	}

	pf, err := platform.FromPath(platformDir)
	if err != nil {
		return ctx, err
	}

	bpPlan, err := plan.BuildpackPlanFromPath(planPath)
	if err != nil {
		return ctx, err
	}

	store, err := output.StoreFromPath(filepath.Join(layersDir, "store.toml"))
	if err != nil {
		return ctx, err
	}

	ctx = BuildContext{
		ApplicationDir: appDir,
		Buildpack:      bp,
		Layers:         layers.Layers{Path: layersDir},
		Store:          store,
		Plan:           bpPlan,
		Platform:       pf,
		StackID:        stackID,
	}

	return ctx, nil
}

// ToPath persists the build result into the layers directory: dump every
// contributed layer, prune sibling layer TOML files that belong to neither a
// contributed layer nor the store, then write the metadata outputs.
func (r BuildResult) ToPath(dir string) error {
	keep := map[string]bool{"store": true}

	for _, layer := range r.Layers {
		err := layer.Dump()
		if err != nil {
			return err
		}

		keep[layer.Name()] = true
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return track(err)
	}

	for _, ent := range entries {
		if ent.IsDir() || !strings.HasSuffix(ent.Name(), ".toml") {
			continue
		}

		if keep[strings.TrimSuffix(ent.Name(), ".toml")] {
			continue
		}

		err = os.Remove(filepath.Join(dir, ent.Name()))
		if err != nil {
			return track(err)
		}
	}

	if r.Store != nil {
		err = r.Store.ToPath(filepath.Join(dir, "store.toml"))
		if err != nil {
			return err
		}
	}

	if r.LaunchMetadata != nil {
		err = r.LaunchMetadata.ToPath(filepath.Join(dir, "launch.toml"))
		if err != nil {
			return err
		}
	}

	if r.BuildMetadata != nil {
		err = r.BuildMetadata.ToPath(filepath.Join(dir, "build.toml"))
		if err != nil {
			return err
		}
	}

	return nil
}
