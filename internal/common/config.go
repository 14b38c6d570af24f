package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string          `toml:"environment"` // "development" or "production"
	Storage     StorageConfig   `toml:"storage"`
	Source      SourceConfig    `toml:"source"`
	OCR         OCRConfig       `toml:"ocr"`
	Quality     QualityConfig   `toml:"quality"`
	Chunking    ChunkingConfig  `toml:"chunking"`
	Embedding   EmbeddingConfig `toml:"embedding"`
	Logging     LoggingConfig   `toml:"logging"`
}

// StorageConfig contains persistence configuration
type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// SourceConfig locates the document source directory
type SourceConfig struct {
	Path string `toml:"path" validate:"required"` // Directory holding incoming scanned PDFs
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path" validate:"required"` // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"`         // Delete database on startup for clean test runs
}

// OCRConfig controls interaction with the external OCR engine
type OCRConfig struct {
	Endpoint     string   `toml:"endpoint"`                          // Engine base URL
	APIKey       string   `toml:"api_key"`                           // Engine API key
	PollInterval string   `toml:"poll_interval" validate:"required"` // e.g. "5s" - delay between poll calls
	MaxWait      string   `toml:"max_wait" validate:"required"`      // e.g. "10m" - total wait before declaring timeout
	Features     []string `toml:"features"`                          // Engine feature flags passed through verbatim (e.g. ["LAYOUT"])
	ReuseResults bool     `toml:"reuse_results"`                     // Skip engine submission when a stored raw-block artifact exists
}

// PollIntervalDuration parses the poll interval, falling back to 5s
func (c *OCRConfig) PollIntervalDuration() time.Duration {
	if d, err := time.ParseDuration(c.PollInterval); err == nil && d > 0 {
		return d
	}
	return 5 * time.Second
}

// MaxWaitDuration parses the maximum wait, falling back to 10m
func (c *OCRConfig) MaxWaitDuration() time.Duration {
	if d, err := time.ParseDuration(c.MaxWait); err == nil && d > 0 {
		return d
	}
	return 10 * time.Minute
}

// QualityConfig holds the three independent review thresholds.
// Violating any one of them flags the document for review.
type QualityConfig struct {
	MinConfidence         float64 `toml:"min_confidence" validate:"gte=0,lte=1"`        // Minimum aggregate OCR confidence
	MinCoverage           float64 `toml:"min_coverage" validate:"gte=0,lte=1"`          // Minimum recognized-line coverage
	MaxLowConfidencePages int     `toml:"max_low_confidence_pages" validate:"gte=0"`    // Max pages allowed below the page floor
	PageConfidenceFloor   float64 `toml:"page_confidence_floor" validate:"gte=0,lte=1"` // Per-page confidence floor
}

// ChunkingConfig controls how reconstructed text is sliced for embedding
type ChunkingConfig struct {
	ChunkSize int `toml:"chunk_size" validate:"gt=0"` // Window size in runes
	Overlap   int `toml:"overlap" validate:"gte=0"`   // Overlap between consecutive windows in runes
}

// EmbeddingConfig contains Gemini embedding provider configuration
type EmbeddingConfig struct {
	APIKey            string `toml:"api_key"`                             // Google Gemini API key
	Model             string `toml:"model" validate:"required"`           // Embedding model name
	Dimension         int    `toml:"dimension" validate:"gt=0"`           // Output dimensionality
	Timeout           string `toml:"timeout"`                             // Per-batch timeout as duration string (default: "60s")
	RequestsPerMinute int    `toml:"requests_per_minute" validate:"gt=0"` // Rate limit for embedding calls
}

// TimeoutDuration parses the embedding timeout, falling back to 60s
func (c *EmbeddingConfig) TimeoutDuration() time.Duration {
	if d, err := time.ParseDuration(c.Timeout); err == nil && d > 0 {
		return d
	}
	return 60 * time.Second
}

// LoggingConfig controls log output
type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Output []string `toml:"output"` // "stdout", "file"
}

// NewDefaultConfig creates a configuration with default values.
// Technical parameters are hardcoded here for production stability;
// only user-facing settings should be exposed in sudspis.toml.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data",
			},
		},
		Source: SourceConfig{
			Path: "./documents",
		},
		OCR: OCRConfig{
			PollInterval: "5s",
			MaxWait:      "10m",
			Features:     []string{"LAYOUT"},
			ReuseResults: true,
		},
		Quality: QualityConfig{
			MinConfidence:         0.82,
			MinCoverage:           0.75,
			MaxLowConfidencePages: 3,
			PageConfidenceFloor:   0.70,
		},
		Chunking: ChunkingConfig{
			ChunkSize: 1500,
			Overlap:   200,
		},
		Embedding: EmbeddingConfig{
			Model:             "gemini-embedding-001",
			Dimension:         768,
			Timeout:           "60s",
			RequestsPerMinute: 15,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout", "file"},
		},
	}
}

// LoadFromFiles loads configuration from defaults, then merges each file in
// order (later files override earlier files), then applies env overrides.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks configuration invariants beyond TOML parsing
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Chunking.Overlap >= c.Chunking.ChunkSize {
		return fmt.Errorf("invalid configuration: chunking.overlap (%d) must be smaller than chunking.chunk_size (%d)", c.Chunking.Overlap, c.Chunking.ChunkSize)
	}
	return nil
}

// applyEnvOverrides applies SUDSPIS_* environment variables on top of file config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("SUDSPIS_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	if path := os.Getenv("SUDSPIS_BADGER_PATH"); path != "" {
		config.Storage.Badger.Path = path
	}

	if key := os.Getenv("SUDSPIS_EMBEDDING_API_KEY"); key != "" {
		config.Embedding.APIKey = key
	} else if key := os.Getenv("GEMINI_API_KEY"); key != "" && config.Embedding.APIKey == "" {
		config.Embedding.APIKey = key
	}

	if model := os.Getenv("SUDSPIS_EMBEDDING_MODEL"); model != "" {
		config.Embedding.Model = model
	}

	if dim := os.Getenv("SUDSPIS_EMBEDDING_DIMENSION"); dim != "" {
		if d, err := strconv.Atoi(dim); err == nil && d > 0 {
			config.Embedding.Dimension = d
		}
	}

	if path := os.Getenv("SUDSPIS_SOURCE_PATH"); path != "" {
		config.Source.Path = path
	}

	if endpoint := os.Getenv("SUDSPIS_OCR_ENDPOINT"); endpoint != "" {
		config.OCR.Endpoint = endpoint
	}

	if key := os.Getenv("SUDSPIS_OCR_API_KEY"); key != "" {
		config.OCR.APIKey = key
	}

	if interval := os.Getenv("SUDSPIS_OCR_POLL_INTERVAL"); interval != "" {
		config.OCR.PollInterval = interval
	}

	if maxWait := os.Getenv("SUDSPIS_OCR_MAX_WAIT"); maxWait != "" {
		config.OCR.MaxWait = maxWait
	}

	if level := os.Getenv("SUDSPIS_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// IsProduction returns true when running with production settings
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
