package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.Model)
	assert.Equal(t, "GEMINI_API_KEY", cfg.LLM.APIKeyEnv)
	assert.Equal(t, "gemini-embedding-001", cfg.Embedder.Model)
	assert.Equal(t, "supabase", cfg.VectorStore.Type)
	require.NotNil(t, cfg.VectorStore.Supabase)
	assert.Equal(t, "documents", cfg.VectorStore.Supabase.Table)
	assert.Equal(t, "match_documents", cfg.VectorStore.Supabase.QueryName)
	assert.Equal(t, "SUPABASE_URL", cfg.VectorStore.Supabase.URLEnv)
	assert.Equal(t, "SUPABASE_SERVICE_KEY", cfg.VectorStore.Supabase.KeyEnv)
	assert.Equal(t, 1000, cfg.Ingestion.ChunkSize)
	assert.Equal(t, 100, cfg.Ingestion.ChunkOverlap)
	assert.Equal(t, 0.5, cfg.Retrieval.MatchThreshold)
	assert.Equal(t, 3, cfg.Retrieval.MatchCount)
	assert.Equal(t, 3, cfg.Search.MaxResults)
	assert.Equal(t, "TAVILY_API_KEY", cfg.Search.APIKeyEnv)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoad_OverridesWithDefaultsFilledIn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
llm:
  model: gemini-2.0-flash
retrieval:
  match_threshold: 0.7
vector_store:
  type: memory
server:
  addr: ":9999"
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.0-flash", cfg.LLM.Model)
	assert.Equal(t, 0.7, cfg.Retrieval.MatchThreshold)
	assert.Equal(t, "memory", cfg.VectorStore.Type)
	assert.Equal(t, ":9999", cfg.Server.Addr)
	// Untouched sections still get defaults.
	assert.Equal(t, 1000, cfg.Ingestion.ChunkSize)
	assert.Equal(t, "gemini-embedding-001", cfg.Embedder.Model)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm: ["), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := defaultConfig()
	cfg.Server.Addr = ":7070"

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", loaded.Server.Addr)
}
