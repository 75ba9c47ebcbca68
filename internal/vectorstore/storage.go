package vectorstore

import (
	"context"

	"github.com/Armankhatri7/RAGAgent/internal/domain"
)

// Row is one (content, embedding, metadata) record persisted by ingestion.
type Row struct {
	Content   string
	Embedding []float64
	Metadata  map[string]any
}

// Storage persists embedded chunks and answers thresholded similarity queries.
// Match is the store's native query operation and the canonical retrieval
// contract; no higher-level retrieval layer wraps it.
type Storage interface {
	Insert(ctx context.Context, rows []Row) error
	Match(ctx context.Context, embedding []float64, threshold float64, count int) ([]domain.SearchResult, error)
}
