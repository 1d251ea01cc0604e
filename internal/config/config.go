// Package config loads voxcart configuration: credentials and paths
// from the environment, retrieval tuning from an optional TOML file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/nautilus-labs/voxcart/internal/core/domain"
)

// envFile is loaded if present; in containerised environments the
// variables are usually set externally.
const envFile = ".env.local"

// Config holds the application configuration. All variables carry the
// VOXCART_ prefix.
type Config struct {
	// CorpusDir is the knowledge corpus root. Required: a missing
	// directory is a fatal configuration error.
	CorpusDir string `env:"CORPUS_DIR,notEmpty"`

	// ShopifyStoreName and ShopifyAccessToken configure order lookups.
	// Optional: without them the order tools report a typed
	// unavailable failure instead of blocking startup.
	ShopifyStoreName   string `env:"SHOPIFY_STORE_NAME"`
	ShopifyAccessToken string `env:"SHOPIFY_ACCESS_TOKEN"`

	// ToolTimeout bounds a single tool call.
	ToolTimeout time.Duration `env:"TOOL_TIMEOUT" envDefault:"10s"`

	// SettingsFile points at the optional retrieval tuning file.
	SettingsFile string `env:"SETTINGS_FILE" envDefault:"voxcart.toml"`

	// LogLevel is the zap level: debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Retrieval holds tuning loaded from SettingsFile, defaulted
	// otherwise.
	Retrieval RetrievalSettings `env:"-"`
}

// RetrievalSettings tunes chunking and search.
type RetrievalSettings struct {
	// ChunkMinSize and ChunkMaxSize bound chunk length in characters.
	ChunkMinSize int `toml:"chunk_min_size"`
	ChunkMaxSize int `toml:"chunk_max_size"`

	// ChunkOverlap is the context carried across chunk boundaries.
	ChunkOverlap int `toml:"chunk_overlap"`

	// TopK is the maximum number of passages per search.
	TopK int `toml:"top_k"`

	// MinScore is the relevance floor.
	MinScore float64 `toml:"min_score"`
}

// defaultRetrievalSettings returns the built-in tuning.
func defaultRetrievalSettings() RetrievalSettings {
	return RetrievalSettings{
		ChunkMinSize: 200,
		ChunkMaxSize: 1000,
		ChunkOverlap: 150,
		TopK:         5,
		MinScore:     0.05,
	}
}

// Load reads the environment (and the optional env file and settings
// file) into a validated Config.
func Load() (*Config, error) {
	// Missing env file is fine; externally-set variables win anyway.
	_ = godotenv.Load(envFile)

	cfg := &Config{Retrieval: defaultRetrievalSettings()}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "VOXCART_"}); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	if err := loadSettingsFile(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadSettingsFile overlays retrieval tuning from the TOML settings
// file when it exists.
func loadSettingsFile(cfg *Config) error {
	data, err := os.ReadFile(cfg.SettingsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading settings file %s: %w", cfg.SettingsFile, err)
	}

	var settings RetrievalSettings
	if err := toml.Unmarshal(data, &settings); err != nil {
		return fmt.Errorf("parsing settings file %s: %w", cfg.SettingsFile, err)
	}

	if settings.ChunkMinSize > 0 {
		cfg.Retrieval.ChunkMinSize = settings.ChunkMinSize
	}
	if settings.ChunkMaxSize > 0 {
		cfg.Retrieval.ChunkMaxSize = settings.ChunkMaxSize
	}
	if settings.ChunkOverlap > 0 {
		cfg.Retrieval.ChunkOverlap = settings.ChunkOverlap
	}
	if settings.TopK > 0 {
		cfg.Retrieval.TopK = settings.TopK
	}
	if settings.MinScore > 0 {
		cfg.Retrieval.MinScore = settings.MinScore
	}
	return nil
}

// Validate checks startup-fatal conditions. Only the corpus root is
// fatal; absent Shopify credentials degrade the order tools instead.
func (c *Config) Validate() error {
	info, err := os.Stat(c.CorpusDir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", domain.ErrCorpusMissing, c.CorpusDir)
	}

	if c.ToolTimeout <= 0 {
		return fmt.Errorf("tool timeout must be positive, got %s", c.ToolTimeout)
	}

	if c.Retrieval.ChunkMinSize > c.Retrieval.ChunkMaxSize {
		return fmt.Errorf("chunk_min_size %d exceeds chunk_max_size %d",
			c.Retrieval.ChunkMinSize, c.Retrieval.ChunkMaxSize)
	}

	return nil
}

// OrdersConfigured reports whether Shopify credentials are present.
func (c *Config) OrdersConfigured() bool {
	return c.ShopifyStoreName != "" && c.ShopifyAccessToken != ""
}
