package badger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/sudspis/sudspis/internal/interfaces"
	"github.com/sudspis/sudspis/internal/models"
)

// ChunkStorage implements the ChunkStorage interface for Badger
type ChunkStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// Compile-time assertion
var _ interfaces.ChunkStorage = (*ChunkStorage)(nil)

// NewChunkStorage creates a new ChunkStorage instance
func NewChunkStorage(db *BadgerDB, logger arbor.ILogger) *ChunkStorage {
	return &ChunkStorage{
		db:     db,
		logger: logger,
	}
}

// ReplaceForFile atomically replaces the chunk set for a file identifier.
// Delete-then-insert keeps reprocessing idempotent: the same file never
// accumulates duplicate chunk rows across runs.
func (s *ChunkStorage) ReplaceForFile(ctx context.Context, fileID string, chunks []*models.Chunk) error {
	if fileID == "" {
		return fmt.Errorf("file ID is required")
	}

	if err := s.db.Store().DeleteMatching(&models.Chunk{}, badgerhold.Where("FileID").Eq(fileID)); err != nil {
		return fmt.Errorf("failed to delete existing chunks: %w", err)
	}

	now := time.Now()
	for _, chunk := range chunks {
		if chunk.ID == "" {
			return fmt.Errorf("chunk ID is required (file %s index %d)", fileID, chunk.Index)
		}
		if chunk.CreatedAt.IsZero() {
			chunk.CreatedAt = now
		}
		if err := s.db.Store().Insert(chunk.ID, chunk); err != nil {
			return fmt.Errorf("failed to insert chunk %d: %w", chunk.Index, err)
		}
	}

	s.logger.Debug().
		Str("file_id", fileID).
		Int("chunks", len(chunks)).
		Msg("Chunk set replaced")

	return nil
}

// GetByFile returns a file's chunks ordered by index
func (s *ChunkStorage) GetByFile(ctx context.Context, fileID string) ([]*models.Chunk, error) {
	var chunks []models.Chunk
	if err := s.db.Store().Find(&chunks, badgerhold.Where("FileID").Eq(fileID)); err != nil {
		return nil, fmt.Errorf("failed to get chunks: %w", err)
	}

	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].Index < chunks[j].Index
	})

	result := make([]*models.Chunk, len(chunks))
	for i := range chunks {
		result[i] = &chunks[i]
	}
	return result, nil
}

func (s *ChunkStorage) CountByFile(ctx context.Context, fileID string) (int, error) {
	count, err := s.db.Store().Count(&models.Chunk{}, badgerhold.Where("FileID").Eq(fileID))
	if err != nil {
		return 0, fmt.Errorf("failed to count chunks: %w", err)
	}
	return int(count), nil
}
