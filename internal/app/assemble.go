// Package app assembles configured components into runnable units.
// Clients are constructed once at process start and shared read-only
// afterwards.
package app

import (
	"fmt"
	"os"
	"time"

	"github.com/Armankhatri7/RAGAgent/internal/config"
	"github.com/Armankhatri7/RAGAgent/internal/embedding"
	embgemini "github.com/Armankhatri7/RAGAgent/internal/embedding/gemini"
	llmgemini "github.com/Armankhatri7/RAGAgent/internal/llm/gemini"
	"github.com/Armankhatri7/RAGAgent/internal/search/tavily"
	"github.com/Armankhatri7/RAGAgent/internal/vectorstore"
	"github.com/Armankhatri7/RAGAgent/internal/vectorstore/memory"
	"github.com/Armankhatri7/RAGAgent/internal/vectorstore/supabase"
	"github.com/Armankhatri7/RAGAgent/internal/workflow"
)

// BuildEmbedder constructs the configured embeddings client.
func BuildEmbedder(cfg *config.AppConfig) (embedding.Embedder, error) {
	return embgemini.NewClient(embgemini.Config{
		BaseURL:   cfg.Embedder.BaseURL,
		APIKeyEnv: cfg.Embedder.APIKeyEnv,
		Model:     cfg.Embedder.Model,
		Timeout:   time.Duration(cfg.Embedder.TimeoutSecs) * time.Second,
	})
}

// BuildStorage constructs the configured vector store.
func BuildStorage(cfg *config.AppConfig) (vectorstore.Storage, error) {
	switch cfg.VectorStore.Type {
	case "supabase", "":
		sb := cfg.VectorStore.Supabase
		if sb == nil {
			return nil, fmt.Errorf("supabase config missing")
		}
		return supabase.NewStorage(supabase.Config{
			URL:       os.Getenv(sb.URLEnv),
			Key:       os.Getenv(sb.KeyEnv),
			Table:     sb.Table,
			QueryName: sb.QueryName,
			Timeout:   time.Duration(sb.TimeoutSecs) * time.Second,
		})
	case "memory":
		return memory.NewStorage(), nil
	default:
		return nil, fmt.Errorf("unknown vector store: %s", cfg.VectorStore.Type)
	}
}

// BuildAgent wires the full decision workflow from configuration.
func BuildAgent(cfg *config.AppConfig) (*workflow.Agent, error) {
	model, err := llmgemini.NewClient(llmgemini.Config{
		BaseURL:   cfg.LLM.BaseURL,
		APIKeyEnv: cfg.LLM.APIKeyEnv,
		Model:     cfg.LLM.Model,
		Timeout:   time.Duration(cfg.LLM.TimeoutSecs) * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("llm init: %w", err)
	}
	embedder, err := BuildEmbedder(cfg)
	if err != nil {
		return nil, fmt.Errorf("embedder init: %w", err)
	}
	store, err := BuildStorage(cfg)
	if err != nil {
		return nil, fmt.Errorf("vector store init: %w", err)
	}
	searcher, err := tavily.NewClient(tavily.Config{
		BaseURL:   cfg.Search.BaseURL,
		APIKeyEnv: cfg.Search.APIKeyEnv,
		Timeout:   time.Duration(cfg.Search.TimeoutSecs) * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("search init: %w", err)
	}
	return workflow.New(model, embedder, store, searcher, workflow.Config{
		MatchThreshold:   cfg.Retrieval.MatchThreshold,
		MatchCount:       cfg.Retrieval.MatchCount,
		MaxSearchResults: cfg.Search.MaxResults,
	}), nil
}
