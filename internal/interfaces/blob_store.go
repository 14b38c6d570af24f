package interfaces

import (
	"context"
	"errors"
)

// ErrBlobNotFound is returned when no blob exists for a key
var ErrBlobNotFound = errors.New("blob not found")

// BlobStore persists opaque payloads by key: input PDFs, raw OCR JSON,
// and reconstructed output PDFs. Put overwrites; re-running a pipeline for
// the same file identifier replaces blobs rather than duplicating them.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Exists(ctx context.Context, key string) (bool, error)
}
