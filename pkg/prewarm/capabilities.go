package prewarm

import "context"

// SegmentInfo describes one column segment's persisted block layout, the
// unit CollectTableBlocks walks (spec §4.6).
type SegmentInfo struct {
	Persistent       bool
	BlockID          BlockID
	AdditionalBlocks []BlockID
}

// TableEntry is the narrow slice of a catalog table entry this module
// needs: whether it's a native persistent table, and its column-segment
// layout.
type TableEntry interface {
	Name() string
	IsNative() bool
	ColumnSegmentInfo(ctx context.Context) ([]SegmentInfo, error)
}

// Catalog resolves (schema, table) to a TableEntry (spec §6).
type Catalog interface {
	ResolveTable(ctx context.Context, schema, table string) (TableEntry, error)
}

// BlockManager is the narrow slice of the storage engine's block manager
// this module needs (spec §6).
type BlockManager interface {
	// GetBlockAllocSize returns the fixed on-disk size of one block.
	GetBlockAllocSize() uint64
	// RegisterBlock obtains a handle for id, creating bookkeeping state on
	// first reference. It does not load block contents.
	RegisterBlock(id BlockID) (*BlockHandle, error)
	// ReadBlocks reads count consecutive blocks starting at first into buf.
	// len(buf) must be >= count * GetBlockAllocSize().
	ReadBlocks(ctx context.Context, buf []byte, first BlockID, count uint64) error
	// DatabasePath returns the path of the single-file database, used by
	// PREFETCH to resolve the storage file to hint against.
	DatabasePath() string
}

// ScratchBuffer is a temporary, buffer-manager-accounted allocation used by
// the READ strategy to land bytes without pinning a BlockHandle.
type ScratchBuffer interface {
	Bytes() []byte
	Release()
}

// BufferManager is the narrow slice of the engine's buffer pool this module
// needs (spec §6).
type BufferManager interface {
	GetMaxMemory() uint64
	GetUsedMemory() uint64
	// Allocate reserves bytes of scratch space tagged for accounting
	// purposes. pin keeps it resident until Release.
	Allocate(tag string, bytes uint64, pin bool) (ScratchBuffer, error)
	// Prefetch loads the given handles into the buffer pool, blocking until
	// the batch completes.
	Prefetch(ctx context.Context, handles []*BlockHandle) error
}

// Config exposes the single engine setting this module reads: whether
// direct I/O is enabled (spec §4.2, CheckDirectIO).
type Config interface {
	UseDirectIO() bool
}

// FileInfo is one entry returned by FileSystem.Glob.
type FileInfo struct {
	Path string
}

// FileHandle is an open, positioned-read-capable file reference.
type FileHandle interface {
	// ReadAt reads len(buf) bytes starting at offset. Implementations used
	// by the remote strategy must support concurrent calls on distinct
	// ranges of the same handle (spec §4.8, "Concurrency").
	ReadAt(buf []byte, offset int64) (int, error)
	Size() (uint64, error)
	Close() error
}

// FileSystem is the narrow slice of the engine's filesystem abstraction
// this module needs (spec §6): glob for remote block discovery, open for
// both the PREFETCH local-file path and the remote range reads.
type FileSystem interface {
	Glob(ctx context.Context, pattern string) ([]FileInfo, error)
	OpenFile(ctx context.Context, path string, readonly bool) (FileHandle, error)
}

// CacheModeController is the process-global mutable cache-mode switch the
// remote strategy scopes around one Execute call (spec §4.8). GetMode/SetMode
// operate on whatever process-wide cache configuration the host owns; this
// module never assumes it's the only caller (spec §5: "not serialized
// across concurrent remote prewarm calls" is a documented, known race).
type CacheModeController interface {
	GetMode() RemoteCacheMode
	SetMode(mode RemoteCacheMode) error
}
