package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sudspis/sudspis/internal/common"
	"github.com/sudspis/sudspis/internal/interfaces"
)

func TestFetchResolvesPdfExtension(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "spis-123.pdf"), []byte("%PDF-data"), 0644))

	fs := NewFilesystem(dir, common.GetLogger())

	data, name, err := fs.Fetch(context.Background(), "spis-123")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-data"), data)
	assert.Equal(t, "spis-123.pdf", name)
}

func TestFetchExactName(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scan.pdf"), []byte("%PDF"), 0644))

	fs := NewFilesystem(dir, common.GetLogger())

	_, name, err := fs.Fetch(context.Background(), "scan.pdf")
	require.NoError(t, err)
	assert.Equal(t, "scan.pdf", name)
}

func TestFetchMissingFile(t *testing.T) {
	fs := NewFilesystem(t.TempDir(), common.GetLogger())

	_, _, err := fs.Fetch(context.Background(), "nope")
	require.ErrorIs(t, err, interfaces.ErrFileNotFound)
}
