package summarizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize_KeepsTopSentencesInOrder(t *testing.T) {
	s := NewFrequencySummarizer()
	text := "Cats chase mice. The weather report mentioned rain. Cats sleep all day. Cats and mice share a house. Nothing else matters here."

	out, err := s.Summarize(text, 2)
	require.NoError(t, err)

	sentences := strings.Count(out, ".")
	assert.Equal(t, 2, sentences)
	// "cats" dominates the frequency table, so at least one cat sentence survives.
	assert.Contains(t, strings.ToLower(out), "cats")
}

func TestSummarize_ShortTextReturnedWhole(t *testing.T) {
	s := NewFrequencySummarizer()
	out, err := s.Summarize("no terminal punctuation here", 3)
	require.NoError(t, err)
	assert.Equal(t, "no terminal punctuation here", out)
}

func TestSummarize_MaxLargerThanSentenceCount(t *testing.T) {
	s := NewFrequencySummarizer()
	text := "One sentence. Another sentence."
	out, err := s.Summarize(text, 10)
	require.NoError(t, err)
	assert.Equal(t, "One sentence. Another sentence.", out)
}
