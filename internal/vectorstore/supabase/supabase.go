package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Armankhatri7/RAGAgent/internal/domain"
	"github.com/Armankhatri7/RAGAgent/internal/vectorstore"
)

// Storage is a minimal PostgREST client to a Supabase pgvector table.
// Inserts go to the REST table endpoint; similarity search calls the
// match RPC directly rather than any wrapping convenience layer.
type Storage struct {
	url       string
	key       string
	table     string
	queryName string
	client    *http.Client
}

type Config struct {
	URL       string
	Key       string
	Table     string
	QueryName string
	Timeout   time.Duration
}

func NewStorage(cfg Config) (*Storage, error) {
	if cfg.URL == "" {
		return nil, errors.New("supabase URL is empty")
	}
	if cfg.Key == "" {
		return nil, errors.New("supabase service key is empty")
	}
	if cfg.Table == "" {
		cfg.Table = "documents"
	}
	if cfg.QueryName == "" {
		cfg.QueryName = "match_documents"
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Storage{
		url:       cfg.URL,
		key:       cfg.Key,
		table:     cfg.Table,
		queryName: cfg.QueryName,
		client:    &http.Client{Timeout: timeout},
	}, nil
}

// Insert appends rows to the table. Re-inserting the same content creates
// duplicate rows; deduplication is deliberately not performed here.
func (s *Storage) Insert(ctx context.Context, rows []vectorstore.Row) error {
	if len(rows) == 0 {
		return nil
	}
	payload := make([]map[string]any, len(rows))
	for i, r := range rows {
		payload[i] = map[string]any{
			"content":   r.Content,
			"embedding": r.Embedding,
			"metadata":  r.Metadata,
		}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	url := fmt.Sprintf("%s/rest/v1/%s", s.url, s.table)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	s.setHeaders(req)
	req.Header.Set("Prefer", "return=minimal")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("supabase insert into %s failed: %s", s.table, resp.Status)
	}
	return nil
}

// Match calls the match RPC with the store's canonical argument shape:
// query_embedding, match_threshold and match_count.
func (s *Storage) Match(ctx context.Context, embedding []float64, threshold float64, count int) ([]domain.SearchResult, error) {
	if count <= 0 {
		count = 3
	}
	body := map[string]any{
		"query_embedding": embedding,
		"match_threshold": threshold,
		"match_count":     count,
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/rest/v1/rpc/%s", s.url, s.queryName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	s.setHeaders(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("supabase rpc %s failed: %s", s.queryName, resp.Status)
	}

	var rows []struct {
		Content    string  `json:"content"`
		Similarity float64 `json:"similarity"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, err
	}
	results := make([]domain.SearchResult, 0, len(rows))
	for _, r := range rows {
		results = append(results, domain.SearchResult{Content: r.Content, Similarity: r.Similarity})
	}
	return results, nil
}

func (s *Storage) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", s.key)
	req.Header.Set("Authorization", "Bearer "+s.key)
}
