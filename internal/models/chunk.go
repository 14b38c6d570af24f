package models

import (
	"time"
)

// Chunk is a content-addressed slice of a document's reconstructed text.
// Chunk indices are assigned in emission order, which matches the reading
// order of the reconstructed document.
type Chunk struct {
	ID     string `json:"id" badgerhold:"key"` // chunk_<uuid>
	CaseID string `json:"case_id" badgerhold:"index"`
	FileID string `json:"file_id" badgerhold:"index"`
	Index  int    `json:"index"` // zero-based position within the document

	Content     string `json:"content"`
	ContentHash string `json:"content_hash"` // sha256 hex of Content

	// Embedding metadata; vector and norm are nil when embedding failed,
	// the chunk text is persisted regardless.
	EmbeddingVector     []float32 `json:"embedding_vector,omitempty"`
	EmbeddingProvider   string    `json:"embedding_provider,omitempty"`
	EmbeddingModel      string    `json:"embedding_model,omitempty"`
	EmbeddingDimensions int       `json:"embedding_dimensions,omitempty"`
	EmbeddingNorm       *float64  `json:"embedding_norm,omitempty"` // L2 norm

	CreatedAt time.Time `json:"created_at"`
}
