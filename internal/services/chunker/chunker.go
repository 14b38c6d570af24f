// Package chunker slices reconstructed document text into overlapping,
// content-addressed windows for embedding and retrieval.
package chunker

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/sudspis/sudspis/internal/common"
	"github.com/sudspis/sudspis/internal/models"
)

// Split cuts text into a sliding window of chunkSize runes advancing by
// chunkSize-overlap per step. The final chunk may be shorter than chunkSize.
// chunkSize <= 0 returns the whole text as a single chunk; empty input
// yields no chunks. Counting is rune-based so multi-byte text never splits
// mid-character.
func Split(text string, chunkSize, overlap int) []string {
	if text == "" {
		return nil
	}
	if chunkSize <= 0 {
		return []string{text}
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= chunkSize {
		overlap = chunkSize - 1
	}

	runes := []rune(text)
	step := chunkSize - overlap

	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return chunks
}

// HashContent returns the sha256 hex digest of a chunk's text,
// used for dedup and change detection.
func HashContent(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// Build assembles chunk records for a file in emission order.
// Embedding metadata is filled in later by the persistence stage.
func Build(caseID, fileID, text string, chunkSize, overlap int) []*models.Chunk {
	slices := Split(text, chunkSize, overlap)

	chunks := make([]*models.Chunk, len(slices))
	for i, content := range slices {
		chunks[i] = &models.Chunk{
			ID:          common.NewChunkID(),
			CaseID:      caseID,
			FileID:      fileID,
			Index:       i,
			Content:     content,
			ContentHash: HashContent(content),
		}
	}
	return chunks
}
