package embedding

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sudspis/sudspis/internal/common"
)

func TestNorm(t *testing.T) {
	assert.Zero(t, Norm(nil))
	assert.InDelta(t, 5.0, Norm([]float32{3, 4}), 1e-9)
	assert.InDelta(t, math.Sqrt(3), Norm([]float32{1, 1, 1}), 1e-9)
}

func TestNewGeminiServiceRequiresAPIKey(t *testing.T) {
	config := &common.EmbeddingConfig{
		Model:             "gemini-embedding-001",
		Dimension:         768,
		RequestsPerMinute: 15,
	}

	_, err := NewGeminiService(context.Background(), config, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}
