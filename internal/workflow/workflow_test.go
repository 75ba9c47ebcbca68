package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Armankhatri7/RAGAgent/internal/domain"
	"github.com/Armankhatri7/RAGAgent/internal/search"
	"github.com/Armankhatri7/RAGAgent/internal/vectorstore"
)

type fakeModel struct {
	replies []string
	prompts []string
	err     error
}

func (f *fakeModel) Complete(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	if len(f.replies) == 0 {
		return "", errors.New("fakeModel: no reply queued")
	}
	reply := f.replies[0]
	f.replies = f.replies[1:]
	return reply, nil
}

type fakeEmbedder struct {
	vector []float64
	err    error
	calls  int
}

func (f *fakeEmbedder) Name() string   { return "fake" }
func (f *fakeEmbedder) Dimension() int { return len(f.vector) }
func (f *fakeEmbedder) Embed(context.Context, string) ([]float64, error) {
	f.calls++
	return f.vector, f.err
}
func (f *fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i := range texts {
		out[i] = f.vector
	}
	return out, nil
}

type fakeStore struct {
	results   []domain.SearchResult
	err       error
	threshold float64
	count     int
	calls     int
}

func (f *fakeStore) Insert(context.Context, []vectorstore.Row) error { return nil }
func (f *fakeStore) Match(_ context.Context, _ []float64, threshold float64, count int) ([]domain.SearchResult, error) {
	f.calls++
	f.threshold = threshold
	f.count = count
	return f.results, f.err
}

type fakeSearcher struct {
	results []search.Result
	err     error
	max     int
	calls   int
}

func (f *fakeSearcher) Search(_ context.Context, _ string, maxResults int) ([]search.Result, error) {
	f.calls++
	f.max = maxResults
	return f.results, f.err
}

func newAgent(model *fakeModel, embedder *fakeEmbedder, store *fakeStore, searcher *fakeSearcher) *Agent {
	return New(model, embedder, store, searcher, Config{MatchThreshold: 0.5, MatchCount: 3, MaxSearchResults: 3})
}

func TestRun_PDFBranch(t *testing.T) {
	model := &fakeModel{replies: []string{"PDF", "Paris is the capital of France."}}
	store := &fakeStore{results: []domain.SearchResult{
		{Content: "Paris is the capital of France.", Similarity: 0.9},
	}}
	searcher := &fakeSearcher{}
	agent := newAgent(model, &fakeEmbedder{vector: []float64{1, 0}}, store, searcher)

	state, err := agent.Run(context.Background(), "What is the capital of France?")
	require.NoError(t, err)

	assert.Equal(t, domain.SourcePDF, state.Source)
	assert.Contains(t, state.Answer, "Paris")
	assert.Equal(t, 0, searcher.calls)
	assert.Equal(t, 0.5, store.threshold)
	assert.Equal(t, 3, store.count)
	// Second prompt is the answer synthesis and must carry the retrieved context.
	require.Len(t, model.prompts, 2)
	assert.Contains(t, model.prompts[1], "Paris is the capital of France.")
	assert.Contains(t, model.prompts[1], "What is the capital of France?")
}

func TestRun_WebBranch(t *testing.T) {
	model := &fakeModel{replies: []string{"WEB", "It is sunny in Tokyo."}}
	store := &fakeStore{}
	embedder := &fakeEmbedder{vector: []float64{1, 0}}
	searcher := &fakeSearcher{results: []search.Result{
		{Content: "Tokyo: sunny, 24C."},
	}}
	agent := newAgent(model, embedder, store, searcher)

	state, err := agent.Run(context.Background(), "What is today's weather in Tokyo?")
	require.NoError(t, err)

	assert.Equal(t, domain.SourceWeb, state.Source)
	assert.Equal(t, "It is sunny in Tokyo.", state.Answer)
	assert.Equal(t, 3, searcher.max)
	assert.Equal(t, 0, store.calls)
	assert.Equal(t, 0, embedder.calls)
	require.Len(t, model.prompts, 2)
	assert.Contains(t, model.prompts[1], "Tokyo: sunny, 24C.")
}

func TestRun_UnrecognizedRouteDefaultsToWeb(t *testing.T) {
	model := &fakeModel{replies: []string{"I would say the document", "answer"}}
	store := &fakeStore{}
	searcher := &fakeSearcher{results: []search.Result{{Content: "snippet"}}}
	agent := newAgent(model, &fakeEmbedder{vector: []float64{1}}, store, searcher)

	state, err := agent.Run(context.Background(), "ambiguous question")
	require.NoError(t, err)

	assert.Equal(t, domain.SourceWeb, state.Source)
	assert.Equal(t, 1, searcher.calls)
	assert.Equal(t, 0, store.calls)
}

func TestRun_EmptyRetrievalFallsBack(t *testing.T) {
	model := &fakeModel{replies: []string{"PDF"}}
	store := &fakeStore{results: nil}
	agent := newAgent(model, &fakeEmbedder{vector: []float64{1}}, store, &fakeSearcher{})

	state, err := agent.Run(context.Background(), "obscure question")
	require.NoError(t, err)

	assert.Equal(t, NoMatchAnswer, state.Answer)
	assert.Equal(t, domain.SourcePDF, state.Source)
	// Only the router prompt: the fallback skips the synthesis call.
	assert.Len(t, model.prompts, 1)
}

func TestRun_EmptyWebResultsFallsBack(t *testing.T) {
	model := &fakeModel{replies: []string{"WEB"}}
	searcher := &fakeSearcher{results: nil}
	agent := newAgent(model, &fakeEmbedder{vector: []float64{1}}, &fakeStore{}, searcher)

	state, err := agent.Run(context.Background(), "anything")
	require.NoError(t, err)

	assert.Equal(t, NoWebResultsAnswer, state.Answer)
	assert.Equal(t, domain.SourceWeb, state.Source)
	assert.Len(t, model.prompts, 1)
}

func TestRun_RouterErrorPropagates(t *testing.T) {
	model := &fakeModel{err: errors.New("model unavailable")}
	agent := newAgent(model, &fakeEmbedder{vector: []float64{1}}, &fakeStore{}, &fakeSearcher{})

	_, err := agent.Run(context.Background(), "q")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model unavailable")
}

func TestRun_StoreErrorPropagates(t *testing.T) {
	model := &fakeModel{replies: []string{"PDF"}}
	store := &fakeStore{err: errors.New("rpc down")}
	agent := newAgent(model, &fakeEmbedder{vector: []float64{1}}, store, &fakeSearcher{})

	_, err := agent.Run(context.Background(), "q")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rpc down")
}
