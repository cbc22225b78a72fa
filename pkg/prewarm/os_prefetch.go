package prewarm

// fileHeaderSize matches the single-file block manager's header layout;
// the block offset formula below must reproduce it exactly for PREFETCH to
// target the correct byte ranges (spec §6, "Block offset formula (bit-exact)").
const fileHeaderSize = 4096

// blockFileOffset computes the on-disk byte offset of blockID within a
// single-file database: offset = 3 × FILE_HEADER_SIZE + block_id × block_alloc_size.
func blockFileOffset(blockID BlockID, blockSize uint64) uint64 {
	return 3*fileHeaderSize + uint64(blockID)*blockSize
}

// prefetchChunkTargetBytes targets ~512KiB of block ids per OS-prefetch task
// (spec §4.5 step 4).
const prefetchChunkTargetBytes = 512 * 1024

// osPrefetchBlocks issues OS page-cache hints for sortedBlocks against
// dbPath, split across concurrency worker goroutines. It returns the number
// of hints the kernel actually accepted; platforms with no hint mechanism
// contribute 0 (spec §4.5, "forbidden" to count no-op success).
//
// Platform dispatch happens through issueWillNeedHint and
// platformSupportsPrefetch, both defined per-OS in the os_prefetch_*.go
// build-tagged files.
func osPrefetchBlocks(dbPath string, sortedBlocks []BlockID, blockSize uint64, concurrency int) uint64 {
	if len(sortedBlocks) == 0 {
		return 0
	}

	f, fileSize, ok := openForPrefetch(dbPath)
	if !ok {
		return 0
	}
	fd := f.Fd()
	defer f.Close()

	totalBlocks := uint64(len(sortedBlocks))
	targetBlocks := prefetchChunkTargetBytes / blockSize
	if targetBlocks < 1 {
		targetBlocks = 1
	}
	if uint64(concurrency) > totalBlocks {
		concurrency = int(totalBlocks)
	}
	if concurrency < 1 {
		concurrency = 1
	}
	blocksPerTask := totalBlocks / uint64(concurrency)
	if blocksPerTask < 1 {
		blocksPerTask = 1
	}
	if targetBlocks < blocksPerTask {
		blocksPerTask = targetBlocks
	}

	if concurrency == 1 || blocksPerTask >= totalBlocks {
		return prefetchRange(fd, sortedBlocks, blockSize, 0, len(sortedBlocks), fileSize)
	}

	type result struct{ count uint64 }
	taskCount := (totalBlocks + blocksPerTask - 1) / blocksPerTask
	results := make(chan result, taskCount)
	for start := uint64(0); start < totalBlocks; start += blocksPerTask {
		end := start + blocksPerTask
		if end > totalBlocks {
			end = totalBlocks
		}
		go func(start, end uint64) {
			workerFile, workerSize, ok := openForPrefetch(dbPath)
			if !ok {
				results <- result{0}
				return
			}
			defer workerFile.Close()
			results <- result{prefetchRange(workerFile.Fd(), sortedBlocks, blockSize, int(start), int(end), workerSize)}
		}(start, end)
	}

	var accepted uint64
	for i := uint64(0); i < taskCount; i++ {
		accepted += (<-results).count
	}
	return accepted
}

// prefetchRange issues hints for sortedBlocks[startIdx:endIdx] on an
// already-open descriptor.
func prefetchRange(fd uintptr, sortedBlocks []BlockID, blockSize uint64, startIdx, endIdx int, fileSize int64) uint64 {
	var accepted uint64
	for _, blockID := range sortedBlocks[startIdx:endIdx] {
		offset := blockFileOffset(blockID, blockSize)
		if int64(offset) >= fileSize {
			continue
		}
		amount := int64(blockSize)
		if int64(offset)+amount > fileSize {
			amount = fileSize - int64(offset)
		}
		if amount <= 0 {
			continue
		}
		if issueWillNeedHint(fd, int64(offset), amount) {
			accepted++
		}
	}
	return accepted
}
