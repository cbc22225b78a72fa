package prewarm

// prewarmBufferUsageRatio is the maximum fraction of available buffer-pool
// memory a prewarm call will claim. Prewarming competes with foreground
// queries for buffer-pool memory: claiming all available_space would starve
// concurrent operations and force immediate eviction of just-warmed pages.
// 0.8 leaves ~20% headroom (spec §4.1).
const prewarmBufferUsageRatio = 0.8

// baseStrategy is the capability hub embedded by every concrete strategy:
// it derives a capacity plan and a work-partition, but does not itself know
// how to move any bytes. Concrete strategies (local and remote) embed this
// and implement their own Execute.
type baseStrategy struct{}

// capacityForBlockSize derives a BufferCapacityInfo for blockSize from the
// buffer manager's current headroom. Both localStrategy (block size fixed by
// the block manager) and remoteStrategy (block size supplied by the caller)
// share this math (spec §4.1, §4.8's "its own capacity source" just means a
// different blockSize input, not different arithmetic).
func capacityForBlockSize(blockSize uint64, bufferManager BufferManager) BufferCapacityInfo {
	info := BufferCapacityInfo{
		BlockSize:   blockSize,
		MaxCapacity: bufferManager.GetMaxMemory(),
		UsedSpace:   bufferManager.GetUsedMemory(),
	}
	if info.MaxCapacity > info.UsedSpace {
		info.AvailableSpace = info.MaxCapacity - info.UsedSpace
	}
	if info.BlockSize == 0 || info.AvailableSpace < info.BlockSize {
		info.MaxBlocks = 0
		return info
	}
	info.MaxBlocks = uint64(float64(info.AvailableSpace) * prewarmBufferUsageRatio / float64(info.BlockSize))
	return info
}

// calculateBlocksPerTask is the static, deterministic partitioning rule
// shared by every strategy that hands work to a task pool (spec §4.1).
// It guarantees each task owns at least one block, capped by both a byte
// budget (targetBytes) and a fair share of the total work across
// maxThreads.
func calculateBlocksPerTask(blockSize, maxBlocks, maxThreads, targetBytes uint64) uint64 {
	if maxBlocks == 0 {
		return 0
	}
	targetBlocks := targetBytes / blockSize
	if targetBlocks < 1 {
		targetBlocks = 1
	}
	concurrency := maxBlocks
	if maxThreads < concurrency {
		concurrency = maxThreads
	}
	if concurrency < 1 {
		concurrency = 1
	}
	perTaskCap := maxBlocks / concurrency
	if perTaskCap < 1 {
		perTaskCap = 1
	}
	if targetBlocks < perTaskCap {
		return targetBlocks
	}
	return perTaskCap
}
