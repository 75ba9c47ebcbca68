package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Armankhatri7/RAGAgent/internal/vectorstore"
)

func TestInsertAndMatch(t *testing.T) {
	s := NewStorage()
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, []vectorstore.Row{
		{Content: "Paris is the capital of France.", Embedding: []float64{1, 0}},
		{Content: "Tokyo weather is mild.", Embedding: []float64{0, 1}},
	}))

	results, err := s.Match(ctx, []float64{1, 0}, 0.5, 3)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Paris is the capital of France.", results[0].Content)
	assert.Greater(t, results[0].Similarity, 0.5)
}

func TestMatch_ThresholdFiltersEverything(t *testing.T) {
	s := NewStorage()
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, []vectorstore.Row{
		{Content: "unrelated", Embedding: []float64{0, 1}},
	}))

	results, err := s.Match(ctx, []float64{1, 0}, 0.5, 3)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestMatch_OrderedAndCapped(t *testing.T) {
	s := NewStorage()
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, []vectorstore.Row{
		{Content: "far", Embedding: []float64{0.5, 0.8}},
		{Content: "exact", Embedding: []float64{1, 0}},
		{Content: "near", Embedding: []float64{0.9, 0.1}},
	}))

	results, err := s.Match(ctx, []float64{1, 0}, 0.1, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "exact", results[0].Content)
	assert.Equal(t, "near", results[1].Content)
}

func TestInsert_DuplicatesAccumulate(t *testing.T) {
	s := NewStorage()
	ctx := context.Background()

	rows := []vectorstore.Row{{Content: "same chunk", Embedding: []float64{1, 0}}}
	require.NoError(t, s.Insert(ctx, rows))
	require.NoError(t, s.Insert(ctx, rows))

	// No deduplication: re-ingesting appends rows.
	assert.Equal(t, 2, s.Len())
	results, err := s.Match(ctx, []float64{1, 0}, 0.5, 10)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestInsert_DimensionMismatch(t *testing.T) {
	s := NewStorage()
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, []vectorstore.Row{{Content: "a", Embedding: []float64{1, 0}}}))
	err := s.Insert(ctx, []vectorstore.Row{{Content: "b", Embedding: []float64{1, 0, 0}}})
	assert.Error(t, err)
}
