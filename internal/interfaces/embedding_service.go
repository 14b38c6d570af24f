package interfaces

import (
	"context"
)

// EmbeddingService generates vector embeddings for chunk batches.
// One call per batch, one vector per input text, same order.
type EmbeddingService interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Model information recorded on persisted chunks
	Provider() string
	ModelName() string
	Dimension() int
}
