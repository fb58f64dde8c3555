package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLaunchMetadata(t *testing.T) {
	t.Run("empty writes nothing", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "launch.toml")

		var m LaunchMetadata
		require.NoError(t, m.ToPath(path))

		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("round trips", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "launch.toml")

		m := LaunchMetadata{
			Labels: []Label{{Key: "maintainer", Value: "example"}},
			Processes: []Process{
				{Type: "web", Command: "node server.js", Args: []string{"--port", "8080"}, Default: true},
			},
			Slices: []Slice{{Paths: []string{"node_modules/**"}}},
			BOM:    []BOMEntry{{Name: "node", Metadata: map[string]interface{}{"version": "18.0.0"}}},
		}

		require.NoError(t, m.ToPath(path))

		loaded, err := LaunchMetadataFromPath(path)
		require.NoError(t, err)

		assert.Equal(t, m.Labels, loaded.Labels)
		assert.Equal(t, m.Processes, loaded.Processes)
		assert.Equal(t, m.Slices, loaded.Slices)

		require.Len(t, loaded.BOM, 1)
		assert.Equal(t, "node", loaded.BOM[0].Name)
		assert.Equal(t, "18.0.0", loaded.BOM[0].Metadata["version"])
	})
}

func TestBuildMetadata(t *testing.T) {
	t.Run("empty writes nothing", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "build.toml")

		var m BuildMetadata
		require.NoError(t, m.ToPath(path))

		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("round trips", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "build.toml")

		m := BuildMetadata{
			BOM:   []BOMEntry{{Name: "gcc"}},
			Unmet: []UnmetEntry{{Name: "python"}},
		}

		require.NoError(t, m.ToPath(path))

		loaded, err := BuildMetadataFromPath(path)
		require.NoError(t, err)

		require.Len(t, loaded.BOM, 1)
		assert.Equal(t, "gcc", loaded.BOM[0].Name)
		assert.Equal(t, m.Unmet, loaded.Unmet)
	})
}

func TestStore(t *testing.T) {
	t.Run("missing file loads empty", func(t *testing.T) {
		s, err := StoreFromPath(filepath.Join(t.TempDir(), "store.toml"))
		require.NoError(t, err)

		assert.True(t, s.IsEmpty())
	})

	t.Run("empty writes nothing", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "store.toml")

		var s Store
		require.NoError(t, s.ToPath(path))

		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("round trips", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "store.toml")

		s := Store{Metadata: map[string]interface{}{"build-count": int64(7)}}

		require.NoError(t, s.ToPath(path))

		loaded, err := StoreFromPath(path)
		require.NoError(t, err)

		assert.Equal(t, int64(7), loaded.Metadata["build-count"])
	})
}
