package layers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfile(t *testing.T) {
	t.Run("loads every regular file, no suffix filter", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "profile.d")
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "worker"), 0755))

		err := os.WriteFile(filepath.Join(dir, "setup.sh"), []byte("export FOO=bar\n"), 0644)
		require.NoError(t, err)

		err = os.WriteFile(filepath.Join(dir, "no-extension"), []byte("true\n"), 0644)
		require.NoError(t, err)

		err = os.WriteFile(filepath.Join(dir, "worker", "nested.sh"), []byte("nope\n"), 0644)
		require.NoError(t, err)

		prof, err := ProfileFromPath(dir)
		require.NoError(t, err)

		assert.Equal(t, 2, prof.Len())

		v, _ := prof.Get("setup.sh")
		assert.Equal(t, "export FOO=bar\n", v)

		v, _ = prof.Get("no-extension")
		assert.Equal(t, "true\n", v)

		assert.False(t, prof.Has("nested.sh"))
	})

	t.Run("missing directory loads empty", func(t *testing.T) {
		prof, err := ProfileFromPath(filepath.Join(t.TempDir(), "nope"))
		require.NoError(t, err)

		assert.Equal(t, 0, prof.Len())
	})

	t.Run("round trips through disk", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "profile.d")

		prof := NewProfile()
		prof.Add("10-path.sh", "export PATH=$PATH:/layer/bin\n")
		prof.Add("20-env.sh", "export NODE_ENV=production\n")

		require.NoError(t, prof.ToPath(dir))

		loaded, err := ProfileFromPath(dir)
		require.NoError(t, err)

		assert.True(t, prof.Equal(loaded))
	})
}
