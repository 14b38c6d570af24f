package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	config := NewDefaultConfig()

	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, "./data", config.Storage.Badger.Path)
	assert.Equal(t, 0.82, config.Quality.MinConfidence)
	assert.Equal(t, 0.75, config.Quality.MinCoverage)
	assert.Equal(t, 3, config.Quality.MaxLowConfidencePages)
	assert.Equal(t, 1500, config.Chunking.ChunkSize)
	assert.Equal(t, 200, config.Chunking.Overlap)
	assert.Equal(t, "gemini-embedding-001", config.Embedding.Model)
	assert.Equal(t, 768, config.Embedding.Dimension)
	assert.True(t, config.OCR.ReuseResults)

	require.NoError(t, config.Validate())
}

func TestLoadFromFilesLayering(t *testing.T) {
	dir := t.TempDir()

	base := filepath.Join(dir, "base.toml")
	require.NoError(t, os.WriteFile(base, []byte(`
environment = "production"

[chunking]
chunk_size = 1000
`), 0644))

	override := filepath.Join(dir, "override.toml")
	require.NoError(t, os.WriteFile(override, []byte(`
[chunking]
chunk_size = 800
overlap = 100
`), 0644))

	config, err := LoadFromFiles(base, override)
	require.NoError(t, err)

	assert.Equal(t, "production", config.Environment)
	assert.True(t, config.IsProduction())
	// later files win
	assert.Equal(t, 800, config.Chunking.ChunkSize)
	assert.Equal(t, 100, config.Chunking.Overlap)
	// untouched sections keep defaults
	assert.Equal(t, 0.82, config.Quality.MinConfidence)
}

func TestLoadFromFilesEnvOverride(t *testing.T) {
	t.Setenv("SUDSPIS_BADGER_PATH", "/tmp/elsewhere")
	t.Setenv("SUDSPIS_OCR_ENDPOINT", "https://ocr.example.hr")

	config, err := LoadFromFiles()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/elsewhere", config.Storage.Badger.Path)
	assert.Equal(t, "https://ocr.example.hr", config.OCR.Endpoint)
}

func TestValidateRejectsOverlapNotSmallerThanChunkSize(t *testing.T) {
	config := NewDefaultConfig()
	config.Chunking.ChunkSize = 100
	config.Chunking.Overlap = 100

	err := config.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overlap")
}

func TestLoadFromFilesMissingFile(t *testing.T) {
	_, err := LoadFromFiles(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestDurationFallbacks(t *testing.T) {
	ocr := &OCRConfig{PollInterval: "bogus", MaxWait: ""}
	assert.Equal(t, "5s", ocr.PollIntervalDuration().String())
	assert.Equal(t, "10m0s", ocr.MaxWaitDuration().String())

	emb := &EmbeddingConfig{Timeout: "90s"}
	assert.Equal(t, "1m30s", emb.TimeoutDuration().String())
}
