package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LLMConfig configures the chat completion client.
type LLMConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// EmbedderConfig configures the embeddings client.
type EmbedderConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// SupabaseConfig contains connection details for the Supabase vector store.
// The URL and service key come from the environment, not the config file.
type SupabaseConfig struct {
	URLEnv      string `yaml:"url_env"`
	KeyEnv      string `yaml:"key_env"`
	Table       string `yaml:"table"`
	QueryName   string `yaml:"query_name"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// VectorStoreConfig selects and configures the vector store implementation.
type VectorStoreConfig struct {
	Type     string          `yaml:"type"`
	Supabase *SupabaseConfig `yaml:"supabase,omitempty"`
}

// IngestionConfig configures how documents are split and reported.
type IngestionConfig struct {
	ChunkSize        int `yaml:"chunk_size"`
	ChunkOverlap     int `yaml:"chunk_overlap"`
	SummarySentences int `yaml:"summary_sentences"`
}

// RetrievalConfig bounds the similarity search against the vector store.
type RetrievalConfig struct {
	MatchThreshold float64 `yaml:"match_threshold"`
	MatchCount     int     `yaml:"match_count"`
}

// SearchConfig configures the web search client.
type SearchConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	MaxResults  int    `yaml:"max_results"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// ServerConfig configures the HTTP facade.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	LLM         LLMConfig         `yaml:"llm"`
	Embedder    EmbedderConfig    `yaml:"embedder"`
	VectorStore VectorStoreConfig `yaml:"vector_store"`
	Ingestion   IngestionConfig   `yaml:"ingestion"`
	Retrieval   RetrievalConfig   `yaml:"retrieval"`
	Search      SearchConfig      `yaml:"search"`
	Server      ServerConfig      `yaml:"server"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/ragagent/config.yaml.
// If neither exists, it writes defaults to ~/.config/ragagent/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "ragagent", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		VectorStore: VectorStoreConfig{Type: "supabase"},
	}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if cfg.LLM.APIKeyEnv == "" {
		cfg.LLM.APIKeyEnv = "GEMINI_API_KEY"
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "gemini-2.5-flash"
	}
	if cfg.LLM.TimeoutSecs == 0 {
		cfg.LLM.TimeoutSecs = 60
	}
	if cfg.Embedder.BaseURL == "" {
		cfg.Embedder.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if cfg.Embedder.APIKeyEnv == "" {
		cfg.Embedder.APIKeyEnv = "GEMINI_API_KEY"
	}
	if cfg.Embedder.Model == "" {
		cfg.Embedder.Model = "gemini-embedding-001"
	}
	if cfg.Embedder.TimeoutSecs == 0 {
		cfg.Embedder.TimeoutSecs = 30
	}
	if cfg.VectorStore.Type == "" {
		cfg.VectorStore.Type = "supabase"
	}
	if cfg.VectorStore.Type == "supabase" {
		if cfg.VectorStore.Supabase == nil {
			cfg.VectorStore.Supabase = &SupabaseConfig{}
		}
		sb := cfg.VectorStore.Supabase
		if sb.URLEnv == "" {
			sb.URLEnv = "SUPABASE_URL"
		}
		if sb.KeyEnv == "" {
			sb.KeyEnv = "SUPABASE_SERVICE_KEY"
		}
		if sb.Table == "" {
			sb.Table = "documents"
		}
		if sb.QueryName == "" {
			sb.QueryName = "match_documents"
		}
		if sb.TimeoutSecs == 0 {
			sb.TimeoutSecs = 15
		}
	}
	if cfg.Ingestion.ChunkSize == 0 {
		cfg.Ingestion.ChunkSize = 1000
	}
	if cfg.Ingestion.ChunkOverlap == 0 {
		cfg.Ingestion.ChunkOverlap = 100
	}
	if cfg.Ingestion.SummarySentences == 0 {
		cfg.Ingestion.SummarySentences = 5
	}
	if cfg.Retrieval.MatchThreshold == 0 {
		cfg.Retrieval.MatchThreshold = 0.5
	}
	if cfg.Retrieval.MatchCount == 0 {
		cfg.Retrieval.MatchCount = 3
	}
	if cfg.Search.BaseURL == "" {
		cfg.Search.BaseURL = "https://api.tavily.com"
	}
	if cfg.Search.APIKeyEnv == "" {
		cfg.Search.APIKeyEnv = "TAVILY_API_KEY"
	}
	if cfg.Search.MaxResults == 0 {
		cfg.Search.MaxResults = 3
	}
	if cfg.Search.TimeoutSecs == 0 {
		cfg.Search.TimeoutSecs = 20
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
}
