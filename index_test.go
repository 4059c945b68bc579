package seogen_test

import (
	"testing"

	"github.com/fwojciec/seogen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildIndex(t *testing.T) {
	t.Parallel()

	t.Run("indexes records by slug in table order", func(t *testing.T) {
		t.Parallel()

		records := []*seogen.Record{
			{Title: "Ocean View Suite", Content: "a"},
			{Title: "Python Tips", Content: "b"},
		}

		idx, err := seogen.BuildIndex(records, seogen.FirstMatchWins)

		require.NoError(t, err)
		assert.Equal(t, 2, idx.Len())
		assert.Equal(t, []string{"ocean-view-suite", "python-tips"}, idx.Slugs())
		assert.Empty(t, idx.Collisions())
	})

	t.Run("keeps first record on slug collision", func(t *testing.T) {
		t.Parallel()

		first := &seogen.Record{Title: "Hello World", Content: "first"}
		second := &seogen.Record{Title: "hello   world!", Content: "second"}

		idx, err := seogen.BuildIndex([]*seogen.Record{first, second}, seogen.FirstMatchWins)
		require.NoError(t, err)

		got, err := idx.Lookup("hello-world")

		require.NoError(t, err)
		assert.Same(t, first, got)
		assert.Equal(t, 1, idx.Len())
		assert.Equal(t, []seogen.Collision{
			{Slug: "hello-world", Kept: 0, Shadowed: 1, Title: "hello   world!"},
		}, idx.Collisions())
	})

	t.Run("rejects collisions when asked", func(t *testing.T) {
		t.Parallel()

		records := []*seogen.Record{
			{Title: "Hello World", Content: "first"},
			{Title: "Hello, World", Content: "second"},
		}

		_, err := seogen.BuildIndex(records, seogen.RejectCollisions)

		require.Error(t, err)
		assert.Equal(t, seogen.ECONFLICT, seogen.ErrorCode(err))
		assert.Contains(t, seogen.ErrorMessage(err), "hello-world")
	})

	t.Run("builds empty index from no records", func(t *testing.T) {
		t.Parallel()

		idx, err := seogen.BuildIndex(nil, seogen.FirstMatchWins)

		require.NoError(t, err)
		assert.Equal(t, 0, idx.Len())
		assert.Empty(t, idx.Slugs())
	})
}

func TestIndex_Lookup(t *testing.T) {
	t.Parallel()

	t.Run("returns not found for unknown slug", func(t *testing.T) {
		t.Parallel()

		idx, err := seogen.BuildIndex([]*seogen.Record{{Title: "Python Tips", Content: "b"}}, seogen.FirstMatchWins)
		require.NoError(t, err)

		_, err = idx.Lookup("ruby-tips")

		require.Error(t, err)
		assert.Equal(t, seogen.ENOTFOUND, seogen.ErrorCode(err))
	})

	t.Run("matches exact slug only", func(t *testing.T) {
		t.Parallel()

		idx, err := seogen.BuildIndex([]*seogen.Record{{Title: "Python Tips", Content: "b"}}, seogen.FirstMatchWins)
		require.NoError(t, err)

		_, err = idx.Lookup("Python-Tips")

		assert.Equal(t, seogen.ENOTFOUND, seogen.ErrorCode(err))
	})

	t.Run("returns not found on nil index", func(t *testing.T) {
		t.Parallel()

		var idx *seogen.Index

		_, err := idx.Lookup("anything")

		assert.Equal(t, seogen.ENOTFOUND, seogen.ErrorCode(err))
	})
}
