package badger

import (
	"github.com/ternarybob/arbor"

	"github.com/sudspis/sudspis/internal/common"
	"github.com/sudspis/sudspis/internal/interfaces"
)

// Manager wires the per-concern storage types over one shared connection
type Manager struct {
	db     *BadgerDB
	jobs   *JobStorage
	chunks *ChunkStorage
	blobs  *BlobStorage
}

// Compile-time assertion
var _ interfaces.StorageManager = (*Manager)(nil)

// NewManager opens the database and constructs all storage services
func NewManager(logger arbor.ILogger, config *common.BadgerConfig) (*Manager, error) {
	db, err := NewBadgerDB(logger, config)
	if err != nil {
		return nil, err
	}

	return &Manager{
		db:     db,
		jobs:   NewJobStorage(db, logger),
		chunks: NewChunkStorage(db, logger),
		blobs:  NewBlobStorage(db, logger),
	}, nil
}

func (m *Manager) JobStorage() interfaces.JobStorage {
	return m.jobs
}

func (m *Manager) ChunkStorage() interfaces.ChunkStorage {
	return m.chunks
}

func (m *Manager) BlobStore() interfaces.BlobStore {
	return m.blobs
}

func (m *Manager) Close() error {
	return m.db.Close()
}
