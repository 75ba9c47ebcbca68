// Package ingest implements the one-shot document ingestion pipeline:
// load, chunk, embed, upload. Re-running on the same file appends
// duplicate rows; there is no deduplication or versioning.
package ingest

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Armankhatri7/RAGAgent/internal/domain"
	"github.com/Armankhatri7/RAGAgent/internal/embedding"
	"github.com/Armankhatri7/RAGAgent/internal/vectorstore"
)

// Pipeline wires the ingestion collaborators. Any failure in load, chunk,
// embed or upload aborts the run; there are no partial-success semantics.
type Pipeline struct {
	loader     domain.Loader
	chunker    domain.Chunker
	embedder   embedding.Embedder
	store      vectorstore.Storage
	summarizer domain.Summarizer
	log        *zap.Logger
}

// Report describes a completed ingestion run.
type Report struct {
	Document string
	Pages    int
	Chunks   int
	Summary  string
}

func NewPipeline(loader domain.Loader, chunker domain.Chunker, embedder embedding.Embedder, store vectorstore.Storage, summarizer domain.Summarizer, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{loader: loader, chunker: chunker, embedder: embedder, store: store, summarizer: summarizer, log: log}
}

// Run ingests one document file into the vector store.
func (p *Pipeline) Run(ctx context.Context, path string, summarySentences int) (Report, error) {
	doc, err := p.loader.Load(path)
	if err != nil {
		return Report{}, fmt.Errorf("load document: %w", err)
	}
	p.log.Info("document loaded", zap.String("document", doc.Name), zap.Int("pages", len(doc.Pages)))

	chunks, err := p.chunker.Chunk(doc)
	if err != nil {
		return Report{}, fmt.Errorf("chunk document: %w", err)
	}
	if len(chunks) == 0 {
		return Report{}, fmt.Errorf("no text extracted from %s", doc.Name)
	}
	p.log.Info("document split", zap.Int("chunks", len(chunks)))

	texts := make([]string, len(chunks))
	for i, ch := range chunks {
		texts[i] = ch.Text
	}
	vectors, err := p.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return Report{}, fmt.Errorf("embed chunks: %w", err)
	}

	rows := make([]vectorstore.Row, len(chunks))
	for i, ch := range chunks {
		rows[i] = vectorstore.Row{
			Content:   ch.Text,
			Embedding: vectors[i],
			Metadata: map[string]any{
				"source":      ch.DocumentID,
				"chunk_id":    ch.ID,
				"chunk_index": ch.Index,
				"page":        ch.Page,
			},
		}
	}
	if err := p.store.Insert(ctx, rows); err != nil {
		return Report{}, fmt.Errorf("upload rows: %w", err)
	}
	p.log.Info("rows uploaded", zap.Int("rows", len(rows)))

	summary := ""
	if p.summarizer != nil {
		summary, err = p.summarizer.Summarize(strings.Join(texts, " "), summarySentences)
		if err != nil {
			// The upload already succeeded; a summary failure only degrades the report.
			p.log.Warn("summary failed", zap.Error(err))
			summary = ""
		}
	}

	return Report{
		Document: doc.Name,
		Pages:    len(doc.Pages),
		Chunks:   len(chunks),
		Summary:  summary,
	}, nil
}
