// Package config loads application settings: built-in defaults, an
// optional YAML file, and environment overrides. API keys come from the
// environment only and are validated at startup.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// LLMConfig configures the chat completion provider.
type LLMConfig struct {
	BaseURL     string  `yaml:"base_url"`
	APIKeyEnv   string  `yaml:"api_key_env"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
}

// EmbeddingConfig configures the embedding provider.
type EmbeddingConfig struct {
	BaseURL   string `yaml:"base_url"`
	APIKeyEnv string `yaml:"api_key_env"`
	Model     string `yaml:"model"`
	BatchSize int    `yaml:"batch_size"`
}

// ChunkingConfig configures how page text is split for indexing.
type ChunkingConfig struct {
	Size    int `yaml:"size"`
	Overlap int `yaml:"overlap"`
}

// RetrievalConfig configures top-k retrieval.
type RetrievalConfig struct {
	TopK int `yaml:"top_k"`
}

// AppConfig is the root application configuration.
type AppConfig struct {
	LLM       LLMConfig       `yaml:"llm"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Chunking  ChunkingConfig  `yaml:"chunking"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
}

// Load reads the config from path. A missing file yields the defaults;
// environment overrides are applied either way. The YAML is decoded over
// a pre-defaulted struct, so an explicit zero (overlap 0, temperature 0)
// is kept rather than mistaken for an absent key.
func Load(path string) (*AppConfig, error) {
	cfg := defaults()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// defaults only
	default:
		return nil, err
	}
	applyEnvOverrides(&cfg)
	return &cfg, nil
}

// Validate fails fast on a missing API key or unusable chunking settings.
func (c *AppConfig) Validate() error {
	if c.LLMKey() == "" {
		return fmt.Errorf("environment variable %s is required", c.LLM.APIKeyEnv)
	}
	if c.Chunking.Size <= 0 {
		return fmt.Errorf("chunk size must be greater than zero")
	}
	if c.Chunking.Overlap < 0 || c.Chunking.Overlap >= c.Chunking.Size {
		return fmt.Errorf("chunk overlap %d must be in [0, %d)", c.Chunking.Overlap, c.Chunking.Size)
	}
	if c.Retrieval.TopK <= 0 {
		return fmt.Errorf("retrieval top_k must be greater than zero")
	}
	return nil
}

// LLMKey resolves the completion API key from the environment.
func (c *AppConfig) LLMKey() string { return os.Getenv(c.LLM.APIKeyEnv) }

// EmbeddingKey resolves the embedding API key, falling back to the LLM key
// when its own variable is unset.
func (c *AppConfig) EmbeddingKey() string {
	if key := os.Getenv(c.Embedding.APIKeyEnv); key != "" {
		return key
	}
	return c.LLMKey()
}

func defaults() AppConfig {
	return AppConfig{
		LLM: LLMConfig{
			BaseURL:     "https://api.groq.com/openai/v1",
			APIKeyEnv:   "GROQ_API_KEY",
			Model:       "llama-3.3-70b-versatile",
			Temperature: 0.2,
		},
		Embedding: EmbeddingConfig{
			BaseURL:   "https://api.openai.com/v1",
			APIKeyEnv: "OPENAI_API_KEY",
			Model:     "text-embedding-3-small",
			BatchSize: 32,
		},
		Chunking:  ChunkingConfig{Size: 1000, Overlap: 200},
		Retrieval: RetrievalConfig{TopK: 4},
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	overrideString("LLM_MODEL", &cfg.LLM.Model)
	overrideString("EMBEDDING_MODEL", &cfg.Embedding.Model)
	overrideFloat("LLM_TEMPERATURE", &cfg.LLM.Temperature)
	overrideInt("CHUNK_SIZE", &cfg.Chunking.Size)
	overrideInt("CHUNK_OVERLAP", &cfg.Chunking.Overlap)
	overrideInt("RETRIEVAL_TOP_K", &cfg.Retrieval.TopK)
}

func overrideString(name string, dst *string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}

func overrideInt(name string, dst *int) {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func overrideFloat(name string, dst *float64) {
	if v := os.Getenv(name); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}
