package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Armankhatri7/RAGAgent/internal/domain"
)

func TestChunk_SplitsWithOverlap(t *testing.T) {
	c := NewCharChunker(100, 20)
	doc := domain.Document{
		Name:  "test.pdf",
		Pages: []domain.Page{{Number: 1, Text: strings.Repeat("abcde ", 60)}}, // 360 chars
	}

	chunks, err := c.Chunk(doc)
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)

	for i, ch := range chunks {
		assert.LessOrEqual(t, len([]rune(ch.Text)), 100)
		assert.Equal(t, "test.pdf", ch.DocumentID)
		assert.Equal(t, 1, ch.Page)
		assert.Equal(t, i, ch.Index)
		assert.NotEmpty(t, ch.ID)
	}
}

func TestChunk_SmallPageIsSingleChunk(t *testing.T) {
	c := NewCharChunker(1000, 100)
	doc := domain.Document{
		Name:  "small.pdf",
		Pages: []domain.Page{{Number: 1, Text: "Paris is the capital of France."}},
	}

	chunks, err := c.Chunk(doc)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "Paris is the capital of France.", chunks[0].Text)
}

func TestChunk_IndexesSpanPages(t *testing.T) {
	c := NewCharChunker(1000, 100)
	doc := domain.Document{
		Name: "multi.pdf",
		Pages: []domain.Page{
			{Number: 1, Text: "First page."},
			{Number: 2, Text: ""},
			{Number: 3, Text: "Third page."},
		},
	}

	chunks, err := c.Chunk(doc)
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, 0, chunks[0].Index)
	assert.Equal(t, 1, chunks[0].Page)
	assert.Equal(t, 1, chunks[1].Index)
	assert.Equal(t, 3, chunks[1].Page)
}

func TestChunk_EmptyDocument(t *testing.T) {
	c := NewCharChunker(1000, 100)
	chunks, err := c.Chunk(domain.Document{Name: "empty.pdf"})
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestNewCharChunker_GuardsBadOverlap(t *testing.T) {
	c := NewCharChunker(100, 100)
	doc := domain.Document{
		Name:  "loop.pdf",
		Pages: []domain.Page{{Number: 1, Text: strings.Repeat("x", 250)}},
	}
	// Would never terminate if overlap >= size were allowed through.
	chunks, err := c.Chunk(doc)
	require.NoError(t, err)
	assert.NotEmpty(t, chunks)
}
