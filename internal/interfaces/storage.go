package interfaces

import (
	"context"
	"errors"

	"github.com/sudspis/sudspis/internal/models"
)

// ErrJobNotFound is returned when no processing job exists for an identifier
var ErrJobNotFound = errors.New("processing job not found")

// JobStorage - single-writer persistence for processing jobs.
// Jobs are keyed by file identifier; the external runner serializes runs
// per file identifier, so no locking beyond the upsert is required here.
type JobStorage interface {
	// Upsert saves the job, creating or overwriting by job ID
	Upsert(ctx context.Context, job *models.ProcessingJob) error

	// GetByFileID returns the authoritative record for a file identifier
	GetByFileID(ctx context.Context, fileID string) (*models.ProcessingJob, error)

	// UpdateStatus persists a status transition, validating forward-only ordering
	UpdateStatus(ctx context.Context, jobID string, status models.JobStatus) error

	// MarkFailed moves the job to failed with the error message and completion time
	MarkFailed(ctx context.Context, jobID string, message string) error

	List(ctx context.Context, limit int) ([]*models.ProcessingJob, error)
	Count(ctx context.Context) (int, error)
}

// ChunkStorage - append-only chunk rows scoped to an owning document.
// ReplaceForFile makes reprocessing idempotent: re-running overwrites the
// file's chunk set, never duplicates it.
type ChunkStorage interface {
	ReplaceForFile(ctx context.Context, fileID string, chunks []*models.Chunk) error
	GetByFile(ctx context.Context, fileID string) ([]*models.Chunk, error)
	CountByFile(ctx context.Context, fileID string) (int, error)
}

// StorageManager - composite interface for all storage operations
type StorageManager interface {
	JobStorage() JobStorage
	ChunkStorage() ChunkStorage
	BlobStore() BlobStore
	Close() error
}
