// Package workflow implements the three-node decision graph that answers a
// query either from the ingested document corpus or from a live web search.
package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/Armankhatri7/RAGAgent/internal/domain"
	"github.com/Armankhatri7/RAGAgent/internal/embedding"
	"github.com/Armankhatri7/RAGAgent/internal/llm"
	"github.com/Armankhatri7/RAGAgent/internal/search"
	"github.com/Armankhatri7/RAGAgent/internal/vectorstore"
)

// node identifies one step of the decision graph. The graph is a one-shot
// DAG: router branches once, both answer nodes terminate.
type node int

const (
	nodeRouter node = iota
	nodeRetrieve
	nodeWebSearch
	nodeEnd
)

const (
	routerPrompt   = "Analyze this query: '%s'. Is this a question likely answered in a specific uploaded document? Answer with ONLY 'PDF' or 'WEB'."
	retrievePrompt = "Answer using this context:\n%s\n\nQuestion: %s"
	webPrompt      = "Based on these web results, answer the question: %s\n\nResults: %s"

	// NoMatchAnswer is returned when the similarity search finds nothing
	// above the threshold. No second model call is made in that case.
	NoMatchAnswer = "I couldn't find any relevant information in the PDF."

	// NoWebResultsAnswer is returned when the web search comes back empty.
	NoWebResultsAnswer = "The web search returned no results for this question."
)

// Config bounds the retrieval and web-search calls.
type Config struct {
	MatchThreshold   float64
	MatchCount       int
	MaxSearchResults int
}

// Agent wires the workflow's collaborators. One Agent serves many concurrent
// invocations; all mutable state lives in the per-run domain.State.
type Agent struct {
	model    llm.Model
	embedder embedding.Embedder
	store    vectorstore.Storage
	searcher search.Searcher
	cfg      Config
}

func New(model llm.Model, embedder embedding.Embedder, store vectorstore.Storage, searcher search.Searcher, cfg Config) *Agent {
	if cfg.MatchThreshold == 0 {
		cfg.MatchThreshold = 0.5
	}
	if cfg.MatchCount <= 0 {
		cfg.MatchCount = 3
	}
	if cfg.MaxSearchResults <= 0 {
		cfg.MaxSearchResults = 3
	}
	return &Agent{model: model, embedder: embedder, store: store, searcher: searcher, cfg: cfg}
}

// Run executes the graph for one query: router first, then exactly one of
// the answer nodes. Node errors abort the run and propagate unmodified.
func (a *Agent) Run(ctx context.Context, query string) (domain.State, error) {
	state := domain.State{Query: query}
	current := nodeRouter
	for current != nodeEnd {
		var err error
		switch current {
		case nodeRouter:
			err = a.route(ctx, &state)
			if err == nil {
				current = nextAfterRouter(state.Source)
			}
		case nodeRetrieve:
			err = a.retrieve(ctx, &state)
			current = nodeEnd
		case nodeWebSearch:
			err = a.webSearch(ctx, &state)
			current = nodeEnd
		}
		if err != nil {
			return state, err
		}
	}
	return state, nil
}

// nextAfterRouter is the conditional edge table. An unrecognized
// classification defaults to the web branch, which degrades gracefully
// for any topic.
func nextAfterRouter(src domain.Source) node {
	if src == domain.SourcePDF {
		return nodeRetrieve
	}
	return nodeWebSearch
}

// route classifies the query as corpus-answerable (PDF) or open-web (WEB).
func (a *Agent) route(ctx context.Context, state *domain.State) error {
	decision, err := a.model.Complete(ctx, fmt.Sprintf(routerPrompt, state.Query))
	if err != nil {
		return fmt.Errorf("router: %w", err)
	}
	state.Source = domain.ParseSource(decision)
	return nil
}

// retrieve answers from the ingested corpus. Zero matches yield the fixed
// fallback answer and force the source to PDF regardless of the router.
func (a *Agent) retrieve(ctx context.Context, state *domain.State) error {
	vec, err := a.embedder.Embed(ctx, state.Query)
	if err != nil {
		return fmt.Errorf("embed query: %w", err)
	}
	results, err := a.store.Match(ctx, vec, a.cfg.MatchThreshold, a.cfg.MatchCount)
	if err != nil {
		return fmt.Errorf("match documents: %w", err)
	}
	state.Source = domain.SourcePDF
	if len(results) == 0 {
		state.Answer = NoMatchAnswer
		return nil
	}
	parts := make([]string, len(results))
	for i, r := range results {
		parts[i] = r.Content
	}
	answer, err := a.model.Complete(ctx, fmt.Sprintf(retrievePrompt, strings.Join(parts, "\n"), state.Query))
	if err != nil {
		return fmt.Errorf("retrieval answer: %w", err)
	}
	state.Answer = answer
	return nil
}

// webSearch answers from live web snippets.
func (a *Agent) webSearch(ctx context.Context, state *domain.State) error {
	results, err := a.searcher.Search(ctx, state.Query, a.cfg.MaxSearchResults)
	if err != nil {
		return fmt.Errorf("web search: %w", err)
	}
	state.Source = domain.SourceWeb
	if len(results) == 0 {
		state.Answer = NoWebResultsAnswer
		return nil
	}
	parts := make([]string, len(results))
	for i, r := range results {
		parts[i] = r.Content
	}
	answer, err := a.model.Complete(ctx, fmt.Sprintf(webPrompt, state.Query, strings.Join(parts, "\n")))
	if err != nil {
		return fmt.Errorf("web answer: %w", err)
	}
	state.Answer = answer
	return nil
}
