// cnb-layers is a maintenance tool for a CNB layers directory: it lists,
// inspects and resets the layers a buildpack left behind. Useful when
// debugging why a cached layer is or is not being reused.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"

	"lab47.dev/libcnb/pkg/cmd"
	"lab47.dev/libcnb/pkg/layers"
)

func main() {
	c := cli.NewCLI("cnb-layers", "0.1.0")
	c.Args = os.Args[1:]
	c.Commands = map[string]cli.CommandFactory{
		"list":    cmd.New("list", "List layers and their type flags", listF),
		"inspect": cmd.New("inspect", "Show a layer's metadata, env and profile entries", inspectF),
		"reset":   cmd.New("reset", "Destroy a layer's contents and recreate it empty", resetF),
	}

	exitStatus, err := c.Run()
	if err != nil {
		log.Println(err)
	}

	os.Exit(exitStatus)
}

type RootOpts struct {
	Layers string `short:"l" long:"layers" default:"." description:"path to the layers directory"`
	Debug  bool   `short:"D" long:"debug" description:"enable debug logging"`
}

func (o RootOpts) logger() hclog.Logger {
	level := hclog.Info
	if o.Debug {
		level = hclog.Debug
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:  "cnb-layers",
		Level: level,
	})
}

func (o RootOpts) open() (layers.Layers, error) {
	path, err := homedir.Expand(o.Layers)
	if err != nil {
		return layers.Layers{}, err
	}

	path, err = filepath.Abs(path)
	if err != nil {
		return layers.Layers{}, err
	}

	return layers.Layers{Path: path}, nil
}

// layerNames derives the layer names under root from layer directories and
// sibling metadata files, skipping the lifecycle's own output TOML files.
func layerNames(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}

	for _, ent := range entries {
		name := ent.Name()

		if ent.IsDir() {
			seen[name] = true
			continue
		}

		if !strings.HasSuffix(name, ".toml") {
			continue
		}

		stem := strings.TrimSuffix(name, ".toml")

		switch stem {
		case "store", "launch", "build":
			continue
		}

		seen[stem] = true
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}

	sort.Strings(names)

	return names, nil
}

func listF(ctx context.Context, opts RootOpts) error {
	ls, err := opts.open()
	if err != nil {
		return err
	}

	names, err := layerNames(ls.Path)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 2, 2, 2, ' ', 0)
	fmt.Fprintf(tw, "NAME\tBUILD\tLAUNCH\tCACHE\n")

	for _, name := range names {
		layer, err := ls.Get(name, false)
		if err != nil {
			return err
		}

		fmt.Fprintf(tw, "%s\t%v\t%v\t%v\n", layer.Name(), layer.Build, layer.Launch, layer.Cache)
	}

	return tw.Flush()
}

func inspectF(ctx context.Context, opts struct {
	RootOpts
	Raw bool `long:"raw" description:"dump the raw in-memory layer"`

	Pos struct {
		Name string `positional-arg-name:"name" required:"yes"`
	} `positional-args:"yes"`
}) error {
	ls, err := opts.open()
	if err != nil {
		return err
	}

	layer, err := ls.Get(opts.Pos.Name, true)
	if err != nil {
		return err
	}

	if opts.Raw {
		spew.Dump(layer)
		return nil
	}

	fmt.Printf("Layer: %s\n", layer.Name())
	fmt.Printf("Path: %s\n", layer.Path)
	fmt.Printf("Types: build=%v launch=%v cache=%v\n", layer.Build, layer.Launch, layer.Cache)

	if len(layer.Metadata) > 0 {
		fmt.Printf("Metadata:\n")

		keys := make([]string, 0, len(layer.Metadata))
		for key := range layer.Metadata {
			keys = append(keys, key)
		}

		sort.Strings(keys)

		for _, key := range keys {
			fmt.Printf("  %s = %v\n", key, layer.Metadata[key])
		}
	}

	printEnv := func(scope string, env *layers.Environment) {
		if env.Len() == 0 {
			return
		}

		fmt.Printf("%s:\n", scope)

		for _, key := range env.Keys() {
			value, _ := env.Get(key)
			fmt.Printf("  %s = %q\n", key, value)
		}
	}

	printEnv("Env (build+launch)", layer.SharedEnv)
	printEnv("Env (build)", layer.BuildEnv)
	printEnv("Env (launch)", layer.LaunchEnv)

	for process, env := range layer.ProcessLaunchEnvs {
		printEnv(fmt.Sprintf("Env (launch, process %s)", process), env)
	}

	if layer.Profile.Len() > 0 {
		fmt.Printf("Profile scripts: %s\n", strings.Join(layer.Profile.Keys(), ", "))
	}

	for process, prof := range layer.ProcessProfiles {
		fmt.Printf("Profile scripts (process %s): %s\n", process, strings.Join(prof.Keys(), ", "))
	}

	return nil
}

func resetF(ctx context.Context, opts struct {
	RootOpts

	Pos struct {
		Name string `positional-arg-name:"name" required:"yes"`
	} `positional-args:"yes"`
}) error {
	ls, err := opts.open()
	if err != nil {
		return err
	}

	layer, err := ls.Get(opts.Pos.Name, false)
	if err != nil {
		return err
	}

	opts.logger().Debug("resetting layer", "path", layer.Path)

	err = layer.Reset()
	if err != nil {
		return errors.Wrapf(err, "resetting layer %s", layer.Name())
	}

	fmt.Printf("Reset layer %s\n", layer.Name())

	return nil
}
