package buildpack

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBuildpack = `
api = "0.8"

[buildpack]
id = "com.example.node"
version = "1.2.3"
name = "Node Buildpack"
homepage = "https://example.com"
clear-env = true
description = "installs node"
keywords = ["node", "javascript"]

[[buildpack.licenses]]
type = "Apache-2.0"

[[buildpack.licenses]]
uri = "https://example.com/license"

[[stacks]]
id = "io.buildpacks.stacks.jammy"
mixins = ["set:build"]

[metadata]
dependency-version = "18.0.0"

[[order]]

[[order.group]]
id = "com.example.other"
version = "2.0.0"
optional = true
`

func TestFromPath(t *testing.T) {
	dir := t.TempDir()

	err := os.WriteFile(filepath.Join(dir, "buildpack.toml"), []byte(sampleBuildpack), 0644)
	require.NoError(t, err)

	bp, err := FromPath(dir)
	require.NoError(t, err)

	assert.Equal(t, "0.8", bp.API)
	assert.Equal(t, "com.example.node", bp.Info.ID)
	assert.Equal(t, "1.2.3", bp.Info.Version)
	assert.Equal(t, "Node Buildpack", bp.Info.Name)
	assert.True(t, bp.Info.ClearEnv)
	assert.Equal(t, []string{"node", "javascript"}, bp.Info.Keywords)

	require.Len(t, bp.Info.Licenses, 2)
	assert.Equal(t, "Apache-2.0", bp.Info.Licenses[0].Type)
	assert.Equal(t, "https://example.com/license", bp.Info.Licenses[1].URI)

	require.Len(t, bp.Stacks, 1)
	assert.Equal(t, "io.buildpacks.stacks.jammy", bp.Stacks[0].ID)
	assert.Equal(t, []string{"set:build"}, bp.Stacks[0].Mixins)

	assert.Equal(t, "18.0.0", bp.Metadata["dependency-version"])

	require.Len(t, bp.Order, 1)
	require.Len(t, bp.Order[0].Group, 1)
	assert.Equal(t, "com.example.other", bp.Order[0].Group[0].ID)
	assert.True(t, bp.Order[0].Group[0].Optional)

	abs, err := filepath.Abs(dir)
	require.NoError(t, err)
	assert.Equal(t, abs, bp.Path)
}

func TestFromPathMissing(t *testing.T) {
	_, err := FromPath(t.TempDir())
	require.Error(t, err)
	assert.True(t, os.IsNotExist(errors.Cause(err)))
}
