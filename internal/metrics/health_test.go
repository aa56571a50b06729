package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataSize(t *testing.T) {
	assert.Equal(t, "512 B", Health{DataBytes: 512}.DataSize())
	assert.Equal(t, "1.5 KiB", Health{DataBytes: 1536}.DataSize())
	assert.Equal(t, "2.0 MiB", Health{DataBytes: 2 * 1024 * 1024}.DataSize())
}

func TestDirSize(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.db"), make([]byte, 100), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b.yaml"), make([]byte, 50), 0644))

	size, err := DirSize(dir)
	require.NoError(t, err)
	assert.Equal(t, int64(150), size)

	_, err = DirSize(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestSnapshot(t *testing.T) {
	h := Snapshot(t.TempDir())
	assert.Positive(t, h.Goroutines)
	assert.Zero(t, h.DataBytes)
}
