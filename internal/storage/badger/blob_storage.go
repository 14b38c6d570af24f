package badger

import (
	"context"
	"fmt"

	badgerdb "github.com/dgraph-io/badger/v4"
	"github.com/ternarybob/arbor"

	"github.com/sudspis/sudspis/internal/interfaces"
)

// blobKeyPrefix namespaces raw payloads away from badgerhold records
const blobKeyPrefix = "blob:"

// BlobStorage implements the BlobStore interface on the raw Badger KV,
// bypassing badgerhold encoding for opaque byte payloads (input PDFs,
// raw OCR JSON, reconstructed output PDFs).
type BlobStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// Compile-time assertion
var _ interfaces.BlobStore = (*BlobStorage)(nil)

// NewBlobStorage creates a new BlobStorage instance
func NewBlobStorage(db *BadgerDB, logger arbor.ILogger) *BlobStorage {
	return &BlobStorage{
		db:     db,
		logger: logger,
	}
}

func blobKey(key string) []byte {
	return []byte(blobKeyPrefix + key)
}

// Put stores a payload, overwriting any existing blob for the key
func (s *BlobStorage) Put(ctx context.Context, key string, data []byte) error {
	if key == "" {
		return fmt.Errorf("blob key is required")
	}

	err := s.db.Store().Badger().Update(func(txn *badgerdb.Txn) error {
		return txn.Set(blobKey(key), data)
	})
	if err != nil {
		return fmt.Errorf("failed to put blob %s: %w", key, err)
	}

	s.logger.Debug().Str("key", key).Int("bytes", len(data)).Msg("Blob stored")
	return nil
}

// Get returns the payload for a key, or ErrBlobNotFound
func (s *BlobStorage) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := s.db.Store().Badger().View(func(txn *badgerdb.Txn) error {
		item, err := txn.Get(blobKey(key))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err == badgerdb.ErrKeyNotFound {
		return nil, interfaces.ErrBlobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get blob %s: %w", key, err)
	}
	return data, nil
}

// Exists reports whether a blob is stored for the key
func (s *BlobStorage) Exists(ctx context.Context, key string) (bool, error) {
	err := s.db.Store().Badger().View(func(txn *badgerdb.Txn) error {
		_, err := txn.Get(blobKey(key))
		return err
	})
	if err == badgerdb.ErrKeyNotFound {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check blob %s: %w", key, err)
	}
	return true, nil
}
