// Package embedding generates chunk embeddings through the Gemini API.
package embedding

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/sudspis/sudspis/internal/common"
	"github.com/sudspis/sudspis/internal/interfaces"
)

// GeminiService implements interfaces.EmbeddingService using the Gemini
// embedding models with a fixed output dimensionality
type GeminiService struct {
	config  *common.EmbeddingConfig
	logger  arbor.ILogger
	client  *genai.Client
	limiter *rate.Limiter
	timeout time.Duration
}

// Compile-time assertion
var _ interfaces.EmbeddingService = (*GeminiService)(nil)

// NewGeminiService creates a Gemini embedding service. The API key is
// required; rate limiting follows the configured requests-per-minute.
func NewGeminiService(ctx context.Context, config *common.EmbeddingConfig, logger arbor.ILogger) (*GeminiService, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required for embeddings (set SUDSPIS_EMBEDDING_API_KEY, GEMINI_API_KEY, or embedding.api_key in config)")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize genai client: %w", err)
	}

	rpm := config.RequestsPerMinute
	if rpm <= 0 {
		rpm = 15
	}

	return &GeminiService{
		config:  config,
		logger:  logger,
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 1),
		timeout: config.TimeoutDuration(),
	}, nil
}

// EmbedBatch embeds all texts in one API call, returning one vector per
// input in the same order. Dimension mismatches from the provider are
// treated as errors, not silently stored.
func (s *GeminiService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter interrupted: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	contents := make([]*genai.Content, 0, len(texts))
	for _, text := range texts {
		contents = append(contents, genai.NewContentFromText(text, genai.RoleUser))
	}

	outputDim := int32(s.config.Dimension)
	result, err := s.client.Models.EmbedContent(ctx, s.config.Model, contents, &genai.EmbedContentConfig{
		OutputDimensionality: &outputDim,
	})
	if err != nil {
		return nil, fmt.Errorf("embedding generation failed: %w", err)
	}
	if result == nil || len(result.Embeddings) != len(texts) {
		got := 0
		if result != nil {
			got = len(result.Embeddings)
		}
		return nil, fmt.Errorf("embedding count mismatch: sent %d texts, got %d vectors", len(texts), got)
	}

	vectors := make([][]float32, len(texts))
	for i, emb := range result.Embeddings {
		if emb == nil || len(emb.Values) != s.config.Dimension {
			got := 0
			if emb != nil {
				got = len(emb.Values)
			}
			return nil, fmt.Errorf("embedding dimension mismatch at index %d: expected %d, got %d", i, s.config.Dimension, got)
		}
		vectors[i] = emb.Values
	}

	s.logger.Debug().
		Int("texts", len(texts)).
		Int("dimension", s.config.Dimension).
		Msg("Embedded chunk batch")
	return vectors, nil
}

// Provider returns the embedding provider identifier
func (s *GeminiService) Provider() string {
	return "gemini"
}

// ModelName returns the configured embedding model
func (s *GeminiService) ModelName() string {
	return s.config.Model
}

// Dimension returns the configured output dimensionality
func (s *GeminiService) Dimension() int {
	return s.config.Dimension
}

// Norm computes the L2 norm of a vector, stored alongside embeddings for
// similarity-search normalization
func Norm(vector []float32) float64 {
	var sum float64
	for _, v := range vector {
		sum += float64(v) * float64(v)
	}
	return math.Sqrt(sum)
}
