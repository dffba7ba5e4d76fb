package knowledge

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wayfind/internal/types"
)

// TestIndex_Search verifies field-weighted token overlap and ordering.
func TestIndex_Search(t *testing.T) {
	ix := DefaultCorpus()

	t.Run("BestDocFirst", func(t *testing.T) {
		hits, err := ix.Search(context.Background(), "how do tasks work", types.LangEN)
		require.NoError(t, err)
		require.NotEmpty(t, hits)
		assert.Equal(t, "Tasks", hits[0].Title)
		assert.Greater(t, hits[0].Score, 0.25)
	})

	t.Run("SpanishQuery", func(t *testing.T) {
		hits, err := ix.Search(context.Background(), "que son los roles del equipo", types.LangES)
		require.NoError(t, err)
		require.NotEmpty(t, hits)
		assert.Equal(t, "Team and roles", hits[0].Title)
	})

	t.Run("TitleOutweighsBody", func(t *testing.T) {
		ix := NewIndex([]Document{
			{Title: "Billing", Description: "invoices"},
			{Title: "Settings", Description: "billing address and invoices"},
		})
		hits, err := ix.Search(context.Background(), "billing", types.LangEN)
		require.NoError(t, err)
		require.Len(t, hits, 2)
		assert.Equal(t, "Billing", hits[0].Title)
	})

	t.Run("NoOverlap", func(t *testing.T) {
		hits, err := ix.Search(context.Background(), "zebra quantum", types.LangEN)
		require.NoError(t, err)
		assert.Empty(t, hits)
	})

	t.Run("EmptyQuery", func(t *testing.T) {
		hits, err := ix.Search(context.Background(), "  ?! ", types.LangEN)
		require.NoError(t, err)
		assert.Empty(t, hits)
	})

	t.Run("CancelledContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := ix.Search(ctx, "tasks", types.LangEN)
		assert.Error(t, err)
	})
}

// TestIndex_ScoreNormalization verifies scores stay in (0,1] and shrink as
// queries add unmatched tokens.
func TestIndex_ScoreNormalization(t *testing.T) {
	ix := DefaultCorpus()

	short, err := ix.Search(context.Background(), "tasks", types.LangEN)
	require.NoError(t, err)
	long, err := ix.Search(context.Background(), "tasks zebra quantum flux", types.LangEN)
	require.NoError(t, err)

	require.NotEmpty(t, short)
	require.NotEmpty(t, long)
	assert.Greater(t, short[0].Score, long[0].Score)
	assert.LessOrEqual(t, short[0].Score, 1.0)
}
