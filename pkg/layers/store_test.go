package layers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore(t *testing.T) {
	t.Run("iterates in insertion order", func(t *testing.T) {
		var s Store

		s.Set("b", "1")
		s.Set("a", "2")
		s.Set("c", "3")

		assert.Equal(t, []string{"b", "a", "c"}, s.Keys())

		s.Set("a", "4")

		assert.Equal(t, []string{"b", "a", "c"}, s.Keys())

		v, ok := s.Get("a")
		assert.True(t, ok)
		assert.Equal(t, "4", v)
	})

	t.Run("delete removes key and order slot", func(t *testing.T) {
		var s Store

		s.Set("a", "1")
		s.Set("b", "2")

		s.Delete("a")

		assert.False(t, s.Has("a"))
		assert.Equal(t, []string{"b"}, s.Keys())
		assert.Equal(t, 1, s.Len())

		s.Delete("missing")

		assert.Equal(t, 1, s.Len())
	})

	t.Run("equality ignores insertion order", func(t *testing.T) {
		var a, b Store

		a.Set("x", "1")
		a.Set("y", "2")

		b.Set("y", "2")
		b.Set("x", "1")

		assert.True(t, a.Equal(&b))

		b.Set("x", "changed")

		assert.False(t, a.Equal(&b))

		b.Set("x", "1")
		b.Set("z", "3")

		assert.False(t, a.Equal(&b))
	})
}
