package interfaces

import (
	"context"
	"errors"
)

// ErrFileNotFound is returned when the source has no file for the identifier
var ErrFileNotFound = errors.New("file not found in document source")

// DocumentSource yields raw document bytes by stable file identifier.
// The originating file store is external; this is the only contract the
// pipeline needs from it.
type DocumentSource interface {
	// Fetch returns the raw bytes and human filename for a file identifier
	Fetch(ctx context.Context, fileID string) (data []byte, fileName string, err error)
}
