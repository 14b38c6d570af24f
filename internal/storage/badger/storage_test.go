package badger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/sudspis/sudspis/internal/common"
	"github.com/sudspis/sudspis/internal/interfaces"
	"github.com/sudspis/sudspis/internal/models"
)

func newTestDB(t *testing.T) *BadgerDB {
	t.Helper()

	tmpDir := t.TempDir()

	options := badgerhold.DefaultOptions
	options.Dir = tmpDir
	options.ValueDir = tmpDir
	options.Logger = nil

	store, err := badgerhold.Open(options)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	return &BadgerDB{store: store, logger: arbor.NewLogger(), config: &common.BadgerConfig{Path: tmpDir}}
}

func newTestJob(fileID string) *models.ProcessingJob {
	return &models.ProcessingJob{
		ID:       common.NewJobID(),
		FileID:   fileID,
		FileName: fileID + ".pdf",
		CaseID:   "case-1",
		Status:   models.JobStatusQueued,
	}
}

func TestJobStorage_UpsertAndGetByFileID(t *testing.T) {
	db := newTestDB(t)
	storage := NewJobStorage(db, arbor.NewLogger())
	ctx := context.Background()

	job := newTestJob("file-001")
	require.NoError(t, storage.Upsert(ctx, job))

	loaded, err := storage.GetByFileID(ctx, "file-001")
	require.NoError(t, err)
	assert.Equal(t, job.ID, loaded.ID)
	assert.Equal(t, models.JobStatusQueued, loaded.Status)
	assert.False(t, loaded.CreatedAt.IsZero())

	// Re-upserting the same record must not create a second row
	job.FileName = "renamed.pdf"
	require.NoError(t, storage.Upsert(ctx, job))

	count, err := storage.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	loaded, err = storage.GetByFileID(ctx, "file-001")
	require.NoError(t, err)
	assert.Equal(t, "renamed.pdf", loaded.FileName)
}

func TestJobStorage_GetByFileID_NotFound(t *testing.T) {
	db := newTestDB(t)
	storage := NewJobStorage(db, arbor.NewLogger())

	_, err := storage.GetByFileID(context.Background(), "missing")
	assert.ErrorIs(t, err, interfaces.ErrJobNotFound)
}

func TestJobStorage_UpdateStatus(t *testing.T) {
	db := newTestDB(t)
	storage := NewJobStorage(db, arbor.NewLogger())
	ctx := context.Background()

	job := newTestJob("file-002")
	require.NoError(t, storage.Upsert(ctx, job))

	t.Run("forward transition", func(t *testing.T) {
		require.NoError(t, storage.UpdateStatus(ctx, job.ID, models.JobStatusUploading))

		loaded, err := storage.GetByFileID(ctx, "file-002")
		require.NoError(t, err)
		assert.Equal(t, models.JobStatusUploading, loaded.Status)
		assert.Nil(t, loaded.CompletedAt)
	})

	t.Run("skipping a stage is rejected", func(t *testing.T) {
		err := storage.UpdateStatus(ctx, job.ID, models.JobStatusReconstructing)
		assert.Error(t, err)
	})

	t.Run("backward transition is rejected", func(t *testing.T) {
		err := storage.UpdateStatus(ctx, job.ID, models.JobStatusQueued)
		assert.Error(t, err)
	})
}

func TestJobStorage_MarkFailed(t *testing.T) {
	db := newTestDB(t)
	storage := NewJobStorage(db, arbor.NewLogger())
	ctx := context.Background()

	job := newTestJob("file-003")
	require.NoError(t, storage.Upsert(ctx, job))
	require.NoError(t, storage.UpdateStatus(ctx, job.ID, models.JobStatusUploading))

	require.NoError(t, storage.MarkFailed(ctx, job.ID, "ocr engine reported failure"))

	loaded, err := storage.GetByFileID(ctx, "file-003")
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusFailed, loaded.Status)
	assert.Equal(t, "ocr engine reported failure", loaded.Error)
	require.NotNil(t, loaded.CompletedAt)

	// Terminal jobs stay terminal
	assert.Error(t, storage.MarkFailed(ctx, job.ID, "again"))
	assert.Error(t, storage.UpdateStatus(ctx, job.ID, models.JobStatusCompleted))
}

func TestChunkStorage_ReplaceForFile(t *testing.T) {
	db := newTestDB(t)
	storage := NewChunkStorage(db, arbor.NewLogger())
	ctx := context.Background()

	makeChunks := func(n int, content string) []*models.Chunk {
		chunks := make([]*models.Chunk, n)
		for i := range chunks {
			chunks[i] = &models.Chunk{
				ID:      common.NewChunkID(),
				CaseID:  "case-1",
				FileID:  "file-010",
				Index:   i,
				Content: content,
			}
		}
		return chunks
	}

	require.NoError(t, storage.ReplaceForFile(ctx, "file-010", makeChunks(3, "first run")))

	count, err := storage.CountByFile(ctx, "file-010")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	// Re-run with a different chunk set: replaced, never duplicated
	require.NoError(t, storage.ReplaceForFile(ctx, "file-010", makeChunks(2, "second run")))

	chunks, err := storage.GetByFile(ctx, "file-010")
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, 0, chunks[0].Index)
	assert.Equal(t, 1, chunks[1].Index)
	assert.Equal(t, "second run", chunks[0].Content)
}

func TestBlobStorage_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	storage := NewBlobStorage(db, arbor.NewLogger())
	ctx := context.Background()

	payload := []byte("%PDF-1.4 test payload")
	require.NoError(t, storage.Put(ctx, "input/file-020.pdf", payload))

	data, err := storage.Get(ctx, "input/file-020.pdf")
	require.NoError(t, err)
	assert.Equal(t, payload, data)

	exists, err := storage.Exists(ctx, "input/file-020.pdf")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = storage.Exists(ctx, "input/missing.pdf")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = storage.Get(ctx, "input/missing.pdf")
	assert.ErrorIs(t, err, interfaces.ErrBlobNotFound)

	// Put overwrites
	require.NoError(t, storage.Put(ctx, "input/file-020.pdf", []byte("v2")))
	data, err = storage.Get(ctx, "input/file-020.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), data)
}
