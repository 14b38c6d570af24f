package pdf

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/ternarybob/arbor"
)

// DocumentInfo describes an inspected PDF
type DocumentInfo struct {
	PageCount   int
	FileSize    int64
	IsEncrypted bool
}

// Inspector validates PDF structure and reads page counts using pdfcpu.
// pdfcpu works on files, so inspection round-trips through a temp directory.
type Inspector struct {
	logger  arbor.ILogger
	tempDir string
}

// NewInspector creates a new PDF inspector
func NewInspector(logger arbor.ILogger) *Inspector {
	tempDir := filepath.Join(os.TempDir(), "sudspis-pdf")
	os.MkdirAll(tempDir, 0755)

	return &Inspector{
		logger:  logger,
		tempDir: tempDir,
	}
}

// Inspect parses the PDF and returns its structural info. A parse failure
// means the input is not a processable PDF.
func (i *Inspector) Inspect(data []byte) (*DocumentInfo, error) {
	tempFile := filepath.Join(i.tempDir, fmt.Sprintf("inspect_%d.pdf", os.Getpid()))
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write temp PDF file: %w", err)
	}
	defer os.Remove(tempFile)

	pdfCtx, err := api.ReadContextFile(tempFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF: %w", err)
	}

	info := &DocumentInfo{
		PageCount:   pdfCtx.PageCount,
		FileSize:    int64(len(data)),
		IsEncrypted: pdfCtx.Encrypt != nil,
	}

	i.logger.Debug().
		Int("page_count", info.PageCount).
		Int64("file_size", info.FileSize).
		Bool("encrypted", info.IsEncrypted).
		Msg("Inspected PDF")

	return info, nil
}
