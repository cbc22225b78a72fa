// Package fscache provides a local-disk-backed FileSystem and an in-process
// CacheModeController for exercising the prewarm package outside a real
// storage engine, grounded on the teacher's pkg/fileservice: LocalFS's
// directory layout for Glob/OpenFile and cache.go's mem/disk cache registry
// for the mode switch.
package fscache

import (
	"context"
	"os"
	"path/filepath"

	"github.com/dentiny/duckdb-cache-prewarm/pkg/prewarm"
)

// LocalFS implements prewarm.FileSystem against the local filesystem,
// generalizing the teacher's LocalFS.List directory walk into
// filepath.Glob against an arbitrary pattern.
type LocalFS struct {
	rootPath string
}

// NewLocalFS returns a LocalFS rooted at rootPath. rootPath need not exist
// yet; Glob and OpenFile operate against whatever tree is there at call
// time.
func NewLocalFS(rootPath string) *LocalFS {
	return &LocalFS{rootPath: rootPath}
}

func (fs *LocalFS) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(fs.rootPath, path)
}

// Glob matches pattern against the local filesystem via filepath.Glob. An
// empty match set is not an error (spec §4.7 step 1).
func (fs *LocalFS) Glob(ctx context.Context, pattern string) ([]prewarm.FileInfo, error) {
	matches, err := filepath.Glob(fs.resolve(pattern))
	if err != nil {
		return nil, err
	}
	infos := make([]prewarm.FileInfo, 0, len(matches))
	for _, m := range matches {
		stat, err := os.Stat(m)
		if err != nil || stat.IsDir() {
			continue
		}
		infos = append(infos, prewarm.FileInfo{Path: m})
	}
	return infos, nil
}

// OpenFile opens path for reading. readonly is currently always honored;
// this implementation never opens for write.
func (fs *LocalFS) OpenFile(ctx context.Context, path string, readonly bool) (prewarm.FileHandle, error) {
	f, err := os.Open(fs.resolve(path))
	if err != nil {
		return nil, err
	}
	return &localFileHandle{f: f}, nil
}

type localFileHandle struct {
	f *os.File
}

func (h *localFileHandle) ReadAt(buf []byte, offset int64) (int, error) {
	return h.f.ReadAt(buf, offset)
}

func (h *localFileHandle) Size() (uint64, error) {
	stat, err := h.f.Stat()
	if err != nil {
		return 0, err
	}
	return uint64(stat.Size()), nil
}

func (h *localFileHandle) Close() error {
	return h.f.Close()
}
