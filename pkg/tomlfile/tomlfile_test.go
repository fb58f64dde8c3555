package tomlfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doc struct {
	Name  string `toml:"name"`
	Count int    `toml:"count"`
}

func TestReadWrite(t *testing.T) {
	t.Run("missing file reads as empty document", func(t *testing.T) {
		var d doc

		err := Read(filepath.Join(t.TempDir(), "nope.toml"), &d)
		require.NoError(t, err)

		assert.Equal(t, doc{}, d)
	})

	t.Run("malformed content surfaces", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.toml")
		require.NoError(t, os.WriteFile(path, []byte("name = ["), 0644))

		var d doc
		require.Error(t, Read(path, &d))
	})

	t.Run("round trips", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "doc.toml")

		require.NoError(t, Write(path, doc{Name: "deps", Count: 3}))

		var d doc
		require.NoError(t, Read(path, &d))

		assert.Equal(t, doc{Name: "deps", Count: 3}, d)
	})
}
