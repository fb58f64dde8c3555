package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromPath(t *testing.T) {
	t.Run("loads env files", func(t *testing.T) {
		dir := t.TempDir()
		envDir := filepath.Join(dir, "env")

		require.NoError(t, os.MkdirAll(filepath.Join(envDir, "sub"), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(envDir, "BP_NODE_VERSION"), []byte("18.*"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(envDir, "BP_LOG_LEVEL"), []byte("debug\n"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(envDir, "sub", "HIDDEN"), []byte("no"), 0644))

		pf, err := FromPath(dir)
		require.NoError(t, err)

		assert.Equal(t, map[string]string{
			"BP_NODE_VERSION": "18.*",
			"BP_LOG_LEVEL":    "debug\n",
		}, pf.Env)

		abs, err := filepath.Abs(dir)
		require.NoError(t, err)
		assert.Equal(t, abs, pf.Path)
	})

	t.Run("missing env dir loads empty", func(t *testing.T) {
		pf, err := FromPath(t.TempDir())
		require.NoError(t, err)

		assert.Empty(t, pf.Env)
	})
}
