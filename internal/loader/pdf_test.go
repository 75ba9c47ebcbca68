package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFile(t *testing.T) {
	l := NewPDFLoader()
	_, err := l.Load(filepath.Join(t.TempDir(), "absent.pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent.pdf")
}

func TestLoad_NotAPDF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plain.pdf")
	require.NoError(t, os.WriteFile(path, []byte("just text, not a pdf"), 0o644))

	l := NewPDFLoader()
	_, err := l.Load(path)
	assert.Error(t, err)
}
