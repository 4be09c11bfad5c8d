package types

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Proposal.PDF")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0644))

	file, err := LoadFileInput(path)
	require.NoError(t, err)
	assert.Equal(t, "Proposal.PDF", file.Filename)
	assert.Equal(t, int64(8), file.Size())
	assert.Equal(t, InputFile, file.Kind())
}

func TestLoadFileInput_Missing(t *testing.T) {
	_, err := LoadFileInput(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read document")
}

func TestFileInput_NilSize(t *testing.T) {
	var file *FileInput
	assert.Equal(t, int64(0), file.Size())
}
