package phase

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"lab47.dev/libcnb/pkg/buildpack"
	"lab47.dev/libcnb/pkg/plan"
	"lab47.dev/libcnb/pkg/platform"
)

// detectFailExit is the exit status the lifecycle reads as "detection did
// not pass".
const detectFailExit = 100

// DetectContext is what a detector gets to look at.
type DetectContext struct {
	ApplicationDir string
	Buildpack      *buildpack.Buildpack
	Platform       *platform.Platform
	StackID        string
}

// DetectResult is what a detector decided: whether the buildpack
// participates, and the plans it contributes if it does.
type DetectResult struct {
	Passed bool
	Plans  []plan.Plan
}

// Detector is the detect-phase callback a buildpack author implements.
type Detector func(DetectContext) (DetectResult, error)

// Detect runs the detect phase and exits the process the way the lifecycle
// expects: 0 on pass, 100 on fail, 1 on error. Returns only on a pass.
func Detect(detector Detector) {
	code, err := runDetect(detector, os.Args[1:])
	if err != nil {
		L().Error("detect phase failed", "error", err)
		os.Exit(1)
	}

	if code != 0 {
		os.Exit(code)
	}
}

func runDetect(detector Detector, args []string) (int, error) {
	fs := pflag.NewFlagSet("detect", pflag.ContinueOnError)

	err := fs.Parse(args)
	if err != nil {
		return 0, track(err)
	}

	if fs.NArg() != 2 {
		return 0, errors.Errorf("usage: detect <platform> <plan>")
	}

	platformDir := fs.Arg(0)
	planPath := fs.Arg(1)

	ctx, err := detectContext(platformDir)
	if err != nil {
		return 0, err
	}

	result, err := detector(ctx)
	if err != nil {
		return 0, err
	}

	if !result.Passed {
		L().Debug("detection did not pass", "buildpack", ctx.Buildpack.Info.ID)
		return detectFailExit, nil
	}

	err = plan.WritePlans(planPath, result.Plans)
	if err != nil {
		return 0, err
	}

	return 0, nil
}

func detectContext(platformDir string) (DetectContext, error) {
	var ctx DetectContext

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

	ctx = DetectContext{
		ApplicationDir: appDir,
		Buildpack:      bp,
		Platform:       pf,
		StackID:        stackID,
	}

	return ctx, nil
}
