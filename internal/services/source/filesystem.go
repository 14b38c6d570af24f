// Package source provides document-source implementations for the pipeline.
package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ternarybob/arbor"

	"github.com/sudspis/sudspis/internal/interfaces"
)

// Filesystem serves documents from a local directory. A file identifier
// resolves to <root>/<fileID> or <root>/<fileID>.pdf.
type Filesystem struct {
	root   string
	logger arbor.ILogger
}

// Compile-time assertion
var _ interfaces.DocumentSource = (*Filesystem)(nil)

// NewFilesystem creates a filesystem source rooted at the given directory
func NewFilesystem(root string, logger arbor.ILogger) *Filesystem {
	return &Filesystem{
		root:   root,
		logger: logger,
	}
}

// Fetch returns the document bytes and filename for a file identifier
func (f *Filesystem) Fetch(ctx context.Context, fileID string) ([]byte, string, error) {
	for _, name := range []string{fileID, fileID + ".pdf"} {
		path := filepath.Join(f.root, name)
		data, err := os.ReadFile(path)
		if err == nil {
			f.logger.Debug().
				Str("file_id", fileID).
				Str("path", path).
				Int("bytes", len(data)).
				Msg("Fetched document from filesystem")
			return data, filepath.Base(path), nil
		}
		if !os.IsNotExist(err) {
			return nil, "", fmt.Errorf("failed to read %s: %w", path, err)
		}
	}
	return nil, "", interfaces.ErrFileNotFound
}
