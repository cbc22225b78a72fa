package fscache

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFSGlobAndOpenFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.parquet"), []byte("hello"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.parquet"), []byte("world!"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0755))

	fs := NewLocalFS(dir)

	infos, err := fs.Glob(context.Background(), "*.parquet")
	require.NoError(t, err)
	assert.Len(t, infos, 2)

	handle, err := fs.OpenFile(context.Background(), infos[0].Path, true)
	require.NoError(t, err)
	defer handle.Close()

	size, err := handle.Size()
	require.NoError(t, err)
	assert.True(t, size == 5 || size == 6)
}

func TestLocalFSGlobEmptyNoMatch(t *testing.T) {
	dir := t.TempDir()
	fs := NewLocalFS(dir)

	infos, err := fs.Glob(context.Background(), "*.nomatch")
	require.NoError(t, err)
	assert.Empty(t, infos)
}

func TestLocalFileHandleReadAt(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.bin")
	require.NoError(t, os.WriteFile(path, []byte("0123456789"), 0644))

	fs := NewLocalFS(dir)
	handle, err := fs.OpenFile(context.Background(), path, true)
	require.NoError(t, err)
	defer handle.Close()

	buf := make([]byte, 4)
	n, err := handle.ReadAt(buf, 3)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, "3456", string(buf))
}
