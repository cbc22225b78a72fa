package prewarm

import (
	"context"
	"fmt"
	"sync"
)

// fakeBlockManager is a hand-rolled call-recording fake, grounded on
// original_source/test/unittest/mock_filesystem.hpp's approach of recording
// calls rather than reaching for a generated-mock library (spec §8).
type fakeBlockManager struct {
	mu           sync.Mutex
	blockSize    uint64
	dbPath       string
	unloaded     map[BlockID]bool
	registered   []BlockID
	readCalls    []readCall
	failRead     bool
	failOnBlock  BlockID
	readBlocksFn func(buf []byte, first BlockID, count uint64) error
}

type readCall struct {
	first BlockID
	count uint64
}

func newFakeBlockManager(blockSize uint64, unloadedIDs ...BlockID) *fakeBlockManager {
	unloaded := make(map[BlockID]bool, len(unloadedIDs))
	for _, id := range unloadedIDs {
		unloaded[id] = true
	}
	return &fakeBlockManager{blockSize: blockSize, unloaded: unloaded, failOnBlock: InvalidBlockID}
}

func (f *fakeBlockManager) GetBlockAllocSize() uint64 { return f.blockSize }

func (f *fakeBlockManager) DatabasePath() string { return f.dbPath }

func (f *fakeBlockManager) RegisterBlock(id BlockID) (*BlockHandle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registered = append(f.registered, id)
	state := BlockLoaded
	if f.unloaded[id] {
		state = BlockUnloaded
	}
	return &BlockHandle{ID: id, State: state}, nil
}

func (f *fakeBlockManager) ReadBlocks(ctx context.Context, buf []byte, first BlockID, count uint64) error {
	f.mu.Lock()
	f.readCalls = append(f.readCalls, readCall{first, count})
	f.mu.Unlock()
	if f.readBlocksFn != nil {
		return f.readBlocksFn(buf, first, count)
	}
	if f.failRead && first == f.failOnBlock {
		return fmt.Errorf("simulated read failure at block %d", first)
	}
	return nil
}

// fakeScratchBuffer is a no-op ScratchBuffer.
type fakeScratchBuffer struct {
	buf      []byte
	released bool
}

func (b *fakeScratchBuffer) Bytes() []byte { return b.buf }
func (b *fakeScratchBuffer) Release()      { b.released = true }

// fakeBufferManager tracks allocation and prefetch calls.
type fakeBufferManager struct {
	mu            sync.Mutex
	maxMemory     uint64
	usedMemory    uint64
	prefetched    []BlockID
	failPrefetch  bool
	allocateErr   error
	prefetchCalls int
}

func newFakeBufferManager(maxMemory, usedMemory uint64) *fakeBufferManager {
	return &fakeBufferManager{maxMemory: maxMemory, usedMemory: usedMemory}
}

func (f *fakeBufferManager) GetMaxMemory() uint64  { return f.maxMemory }
func (f *fakeBufferManager) GetUsedMemory() uint64 { return f.usedMemory }

func (f *fakeBufferManager) Allocate(tag string, bytes uint64, pin bool) (ScratchBuffer, error) {
	if f.allocateErr != nil {
		return nil, f.allocateErr
	}
	return &fakeScratchBuffer{buf: make([]byte, bytes)}, nil
}

func (f *fakeBufferManager) Prefetch(ctx context.Context, handles []*BlockHandle) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prefetchCalls++
	if f.failPrefetch {
		return fmt.Errorf("simulated prefetch failure")
	}
	for _, h := range handles {
		f.prefetched = append(f.prefetched, h.ID)
	}
	return nil
}

// fakeConfig implements Config.
type fakeConfig struct {
	directIO bool
}

func (c *fakeConfig) UseDirectIO() bool { return c.directIO }

// fakeTableEntry implements TableEntry.
type fakeTableEntry struct {
	name     string
	native   bool
	segments []SegmentInfo
	segErr   error
}

func (t *fakeTableEntry) Name() string   { return t.name }
func (t *fakeTableEntry) IsNative() bool { return t.native }
func (t *fakeTableEntry) ColumnSegmentInfo(ctx context.Context) ([]SegmentInfo, error) {
	if t.segErr != nil {
		return nil, t.segErr
	}
	return t.segments, nil
}

// fakeCatalog implements Catalog.
type fakeCatalog struct {
	tables map[string]*fakeTableEntry
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{tables: make(map[string]*fakeTableEntry)}
}

func (c *fakeCatalog) ResolveTable(ctx context.Context, schema, table string) (TableEntry, error) {
	entry, ok := c.tables[schema+"."+table]
	if !ok {
		return nil, newCatalogMissErr(schema, table)
	}
	return entry, nil
}

// readRecord captures one ReadAt call: both the offset and the size of the
// caller's buffer, so tests can assert a call covered its full range rather
// than only where it started.
type readRecord struct {
	offset int64
	length int
}

// fakeFileHandle implements FileHandle over an in-memory byte slice.
type fakeFileHandle struct {
	data   []byte
	closed bool
	reads  []int64
	lens   []readRecord
	mu     sync.Mutex
}

func (h *fakeFileHandle) ReadAt(buf []byte, offset int64) (int, error) {
	h.mu.Lock()
	h.reads = append(h.reads, offset)
	h.lens = append(h.lens, readRecord{offset: offset, length: len(buf)})
	h.mu.Unlock()
	if offset >= int64(len(h.data)) {
		return 0, nil
	}
	n := copy(buf, h.data[offset:])
	return n, nil
}

func (h *fakeFileHandle) Size() (uint64, error) { return uint64(len(h.data)), nil }
func (h *fakeFileHandle) Close() error          { h.closed = true; return nil }

// fakeFileSystem implements FileSystem over an in-memory file map.
type fakeFileSystem struct {
	mu         sync.Mutex
	files      map[string][]byte
	globCalls  int
	openCalls  []string
	handedOut  []*fakeFileHandle
	globErr    error
	openErrFor map[string]error
}

func newFakeFileSystem() *fakeFileSystem {
	return &fakeFileSystem{files: make(map[string][]byte)}
}

func (fs *fakeFileSystem) Glob(ctx context.Context, pattern string) ([]FileInfo, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.globCalls++
	if fs.globErr != nil {
		return nil, fs.globErr
	}
	var out []FileInfo
	for path := range fs.files {
		if matched, _ := matchGlobLike(pattern, path); matched {
			out = append(out, FileInfo{Path: path})
		}
	}
	return out, nil
}

// matchGlobLike is a trivial stand-in: an exact path match, or the literal
// "*" wildcard meaning "everything registered".
func matchGlobLike(pattern, path string) (bool, error) {
	if pattern == "*" {
		return true, nil
	}
	return pattern == path, nil
}

func (fs *fakeFileSystem) OpenFile(ctx context.Context, path string, readonly bool) (FileHandle, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.openCalls = append(fs.openCalls, path)
	if err, ok := fs.openErrFor[path]; ok {
		return nil, err
	}
	data, ok := fs.files[path]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", path)
	}
	h := &fakeFileHandle{data: data}
	fs.handedOut = append(fs.handedOut, h)
	return h, nil
}

// fakeCacheModeController implements CacheModeController.
type fakeCacheModeController struct {
	mu       sync.Mutex
	mode     RemoteCacheMode
	setCalls []RemoteCacheMode
	setErr   error
}

func newFakeCacheModeController(initial RemoteCacheMode) *fakeCacheModeController {
	return &fakeCacheModeController{mode: initial}
}

func (c *fakeCacheModeController) GetMode() RemoteCacheMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

func (c *fakeCacheModeController) SetMode(mode RemoteCacheMode) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		return c.setErr
	}
	c.setCalls = append(c.setCalls, mode)
	c.mode = mode
	return nil
}
