package memory

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"

	"github.com/Armankhatri7/RAGAgent/internal/domain"
	"github.com/Armankhatri7/RAGAgent/internal/vectorstore"
)

// Storage is an in-memory vector store using brute-force cosine similarity.
// It mirrors the match RPC contract (threshold plus count) so workflow and
// pipeline tests run without a live Supabase instance.
type Storage struct {
	mu        sync.RWMutex
	dimension int
	rows      []vectorstore.Row
}

func NewStorage() *Storage { return &Storage{} }

// Insert appends rows. The first row fixes the store's dimensionality;
// later rows must match it.
func (s *Storage) Insert(_ context.Context, rows []vectorstore.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range rows {
		if len(r.Embedding) == 0 {
			return errors.New("row has empty embedding")
		}
		if s.dimension == 0 {
			s.dimension = len(r.Embedding)
		}
		if len(r.Embedding) != s.dimension {
			return errors.New("vector dimension mismatch")
		}
	}
	s.rows = append(s.rows, rows...)
	return nil
}

// Match returns up to count rows scoring above threshold, best first.
func (s *Storage) Match(_ context.Context, embedding []float64, threshold float64, count int) ([]domain.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if count <= 0 {
		count = 3
	}
	results := make([]domain.SearchResult, 0, len(s.rows))
	for _, r := range s.rows {
		score := cosine(r.Embedding, embedding)
		if score >= threshold {
			results = append(results, domain.SearchResult{Content: r.Content, Similarity: score})
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Similarity > results[j].Similarity })
	if count > len(results) {
		count = len(results)
	}
	return results[:count], nil
}

// Len reports the stored row count.
func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

func cosine(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
