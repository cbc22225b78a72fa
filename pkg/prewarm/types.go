package prewarm

import (
	"strings"

	"github.com/RoaringBitmap/roaring"
)

// BlockID names a persistent page of a table's storage file. InvalidBlockID
// is the sentinel used throughout the collectors below to mean "no block":
// it must never be added to a BlockIDSet (spec §3 invariant).
type BlockID int64

// InvalidBlockID mirrors DuckDB's INVALID_BLOCK sentinel.
const InvalidBlockID BlockID = -1

// BlockState is the load state of a registered block, as reported by the
// host's BlockManager/BufferManager.
type BlockState int

const (
	BlockLoaded BlockState = iota
	BlockUnloaded
)

// BlockHandle is a registered reference to a block in the buffer manager.
type BlockHandle struct {
	ID    BlockID
	State BlockState
}

// BlockIDSet is a deduplicated set of BlockIDs for one table, backed by a
// compressed bitmap rather than a hash set: block ids within one table are
// dense small integers, the same shape matrixone's own block/segment
// deletion masks index with roaring.Bitmap
// (pkg/vm/engine/tae/dataio/segmentio/block.go). The zero value is not
// usable; use NewBlockIDSet.
type BlockIDSet struct {
	bitmap *roaring.Bitmap
}

// NewBlockIDSet returns an empty set.
func NewBlockIDSet() *BlockIDSet {
	return &BlockIDSet{bitmap: roaring.NewBitmap()}
}

// Add inserts id unless it is the invalid sentinel or falls outside the
// bitmap's uint32 domain. Block ids are page numbers within one table's
// file and never approach that range in practice.
func (s *BlockIDSet) Add(id BlockID) {
	if id == InvalidBlockID || id < 0 || id > BlockID(^uint32(0)) {
		return
	}
	s.bitmap.Add(uint32(id))
}

// Len reports the number of distinct block ids in the set.
func (s *BlockIDSet) Len() int {
	return int(s.bitmap.GetCardinality())
}

// Slice returns the set's members in ascending order. The original
// unordered_set made no ordering promise (spec §3: "unordered, insertion
// order irrelevant"), so the bitmap's natural sorted iteration is a
// compatible, and cheaper, substitute.
func (s *BlockIDSet) Slice() []BlockID {
	values := s.bitmap.ToArray()
	out := make([]BlockID, len(values))
	for i, v := range values {
		out[i] = BlockID(v)
	}
	return out
}

// RemoteBlockInfo is one aligned byte range of one remote file.
type RemoteBlockInfo struct {
	FilePath string
	Offset   uint64
	Size     int64
	FileSize uint64
}

// RemoteFileBlockMap maps a file path to its ordered sequence of ranges.
type RemoteFileBlockMap map[string][]RemoteBlockInfo

// BufferCapacityInfo is a point-in-time snapshot of buffer-pool headroom.
// It is always freshly computed, never cached (spec §3).
type BufferCapacityInfo struct {
	BlockSize      uint64
	MaxCapacity    uint64
	UsedSpace      uint64
	AvailableSpace uint64
	MaxBlocks      uint64
}

// PrewarmMode selects which local strategy realizes a prewarm call.
type PrewarmMode int

const (
	ModeBuffer PrewarmMode = iota
	ModeRead
	ModePrefetch
)

func (m PrewarmMode) String() string {
	switch m {
	case ModeBuffer:
		return "buffer"
	case ModeRead:
		return "read"
	case ModePrefetch:
		return "prefetch"
	default:
		return "unknown"
	}
}

// ParsePrewarmMode parses the caller-facing mode string (spec §6:
// "mode ∈ {buffer, read, prefetch} case-insensitive, default buffer").
// An empty string returns ModeBuffer, matching the default.
func ParsePrewarmMode(s string) (PrewarmMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "buffer":
		return ModeBuffer, nil
	case "read":
		return ModeRead, nil
	case "prefetch":
		return ModePrefetch, nil
	default:
		return 0, newInvalidModeErr(s)
	}
}

// RemoteCacheMode selects where the remote strategy's cache-mode scope
// swap points the underlying cache.
type RemoteCacheMode int

const (
	// CacheModeUseCurrent leaves the cache mode untouched (no scope swap).
	CacheModeUseCurrent RemoteCacheMode = iota
	CacheModeInMemory
	CacheModeOnDisk
	CacheModeBoth
)

// ParseRemoteCacheMode parses the caller-facing cache_mode string (spec §6).
// An empty string means "current" (no swap).
func ParseRemoteCacheMode(s string) (RemoteCacheMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return CacheModeUseCurrent, nil
	case "in_mem", "in_memory":
		return CacheModeInMemory, nil
	case "on_disk", "disk":
		return CacheModeOnDisk, nil
	case "both":
		return CacheModeBoth, nil
	default:
		return 0, newInvalidCacheModeErr(s)
	}
}
