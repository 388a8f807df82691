package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/caarlos0/env/v10"
)

type Config struct {
	KnowledgeBase   string `env:"FINASSIST_KB_PATH" envDefault:"./kb/finance_guide.md"`
	IndexFile       string `env:"FINASSIST_INDEX_PATH" envDefault:"./kb/embeddings.gob"`
	CompressIndex   bool   `env:"FINASSIST_INDEX_COMPRESS" envDefault:"true"`
	RulesFile       string `env:"FINASSIST_RULES_FILE"`
	LogLevel        string `env:"FINASSIST_LOG_LEVEL" envDefault:"warn"`
	EmbedProvider   string `env:"EMBED_PROVIDER" envDefault:"hugot"`
	EmbedModel      string `env:"EMBED_MODEL"`
	ModelsDir       string `env:"MODELS_DIR" envDefault:"./models"`
	OllamaURL       string `env:"OLLAMA_URL" envDefault:"http://localhost:11434"`
	OpenAIKey       string `env:"OPENAI_API_KEY"`
	HashDimensions  int    `env:"HASH_DIMENSIONS" envDefault:"256"`
	ChunkSize       int    `env:"CHUNK_SIZE" envDefault:"800"`
	ChunkMethod     string `env:"CHUNK_METHOD" envDefault:"auto"`
	TopK            int    `env:"TOP_K" envDefault:"3"`
	MaxBullets      int    `env:"MAX_BULLETS" envDefault:"5"`
	MinCachedChunks int    `env:"MIN_CACHED_CHUNKS" envDefault:"5"`
	MinCachedChars  int    `env:"MIN_CACHED_CHARS" envDefault:"1000"`
}

// Providers lists the embedding providers understood by EMBED_PROVIDER.
var Providers = []string{"hugot", "ollama", "openai", "hash"}

// ChunkMethods lists the values accepted by CHUNK_METHOD. auto picks by file
// extension.
var ChunkMethods = []string{"auto", "markdown", "text"}

func Init(cfg interface{}) error {
	return env.Parse(cfg)
}

// Load parses the environment into a Config and validates it.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := Init(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects sizes and provider names the pipeline cannot work with.
func (c *Config) Validate() error {
	if c.KnowledgeBase == "" {
		return fmt.Errorf("FINASSIST_KB_PATH must not be empty")
	}
	if c.IndexFile == "" {
		return fmt.Errorf("FINASSIST_INDEX_PATH must not be empty")
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("CHUNK_SIZE must be positive, got %d", c.ChunkSize)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("TOP_K must be positive, got %d", c.TopK)
	}
	if c.MaxBullets <= 0 {
		return fmt.Errorf("MAX_BULLETS must be positive, got %d", c.MaxBullets)
	}
	if c.MinCachedChunks < 0 || c.MinCachedChars < 0 {
		return fmt.Errorf("MIN_CACHED_CHUNKS and MIN_CACHED_CHARS must not be negative")
	}

	c.ChunkMethod = strings.ToLower(strings.TrimSpace(c.ChunkMethod))
	if c.ChunkMethod == "" {
		c.ChunkMethod = "auto"
	}
	if !slices.Contains(ChunkMethods, c.ChunkMethod) {
		return fmt.Errorf("unknown CHUNK_METHOD %q (use one of %s)", c.ChunkMethod, strings.Join(ChunkMethods, ", "))
	}

	c.EmbedProvider = strings.ToLower(strings.TrimSpace(c.EmbedProvider))
	if !slices.Contains(Providers, c.EmbedProvider) {
		return fmt.Errorf("unknown EMBED_PROVIDER %q (use one of %s)", c.EmbedProvider, strings.Join(Providers, ", "))
	}
	return nil
}
