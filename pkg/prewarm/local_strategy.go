package prewarm

import "context"

// localStrategy adds the shared helpers every local (BUFFER/READ/PREFETCH)
// strategy needs on top of baseStrategy (spec §4.2): direct-I/O rejection,
// unloaded-handle registration, and buffer-pool capacity accounting.
// Concrete local strategies embed this and hold non-owning references to
// the block/buffer managers for the lifetime of a single Execute call
// (spec §3, "Lifecycles").
type localStrategy struct {
	baseStrategy

	blockManager  BlockManager
	bufferManager BufferManager
	config        Config
}

func newLocalStrategy(blockManager BlockManager, bufferManager BufferManager, config Config) localStrategy {
	return localStrategy{
		blockManager:  blockManager,
		bufferManager: bufferManager,
		config:        config,
	}
}

// checkDirectIO rejects strategies that are no-ops under direct I/O: direct
// I/O bypasses the OS page cache, so READ and PREFETCH would do nothing
// useful (spec §4.2). BUFFER never calls this.
func (s *localStrategy) checkDirectIO(strategyName string) error {
	if s.config != nil && s.config.UseDirectIO() {
		return newDirectIOErr(strategyName)
	}
	return nil
}

// calculateMaxAvailableBlocks derives a fresh capacity snapshot from the
// buffer manager. It never blocks and never mutates buffer-pool state
// (spec §4.1). available_space is clamped to zero rather than underflowing
// when used_space transiently exceeds max_capacity under concurrency
// (spec §9, resolved Open Question).
func (s *localStrategy) calculateMaxAvailableBlocks() BufferCapacityInfo {
	return capacityForBlockSize(s.blockManager.GetBlockAllocSize(), s.bufferManager)
}

// getUnloadedBlockHandles registers every id with the block manager and
// keeps only the handles still in BlockUnloaded state. Order is unspecified
// (spec §4.2); callers that need block-id order sort it themselves.
func (s *localStrategy) getUnloadedBlockHandles(ids []BlockID) ([]*BlockHandle, error) {
	handles := make([]*BlockHandle, 0, len(ids))
	for _, id := range ids {
		handle, err := s.blockManager.RegisterBlock(id)
		if err != nil {
			return nil, err
		}
		if handle.State == BlockUnloaded {
			handles = append(handles, handle)
		}
	}
	return handles, nil
}

// localExecutor is the contract every concrete local strategy satisfies.
type localExecutor interface {
	Execute(ctx context.Context, table TableEntry, blockIDs *BlockIDSet) (uint64, error)
}
