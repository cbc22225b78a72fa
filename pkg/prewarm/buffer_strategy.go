package prewarm

import (
	"context"
	"runtime"
	"sort"

	"go.uber.org/zap"

	"github.com/dentiny/duckdb-cache-prewarm/pkg/logutil"
	"github.com/dentiny/duckdb-cache-prewarm/pkg/taskexec"
)

// bufferPrefetchTargetBytes targets ~4MiB batches (16 * a common 256KiB
// block size) to balance per-task overhead against buffer-pool pressure: a
// runaway task should not be able to dominate the pool (spec §4.3).
const bufferPrefetchTargetBytes = 4 * 1024 * 1024

// bufferStrategy loads blocks into the engine's own buffer pool via its
// batched Prefetch primitive (spec §4.3).
type bufferStrategy struct {
	localStrategy
	pool *taskexec.Pool
}

// newBufferStrategy constructs a BUFFER strategy. pool is optional: passing
// nil makes Execute run every batch inline on the calling goroutine, which
// is exactly what happens anyway when the working set fits in one task.
func newBufferStrategy(blockManager BlockManager, bufferManager BufferManager, config Config, pool *taskexec.Pool) *bufferStrategy {
	return &bufferStrategy{localStrategy: newLocalStrategy(blockManager, bufferManager, config), pool: pool}
}

func (s *bufferStrategy) Execute(ctx context.Context, _ TableEntry, blockIDs *BlockIDSet) (uint64, error) {
	unloaded, err := s.getUnloadedBlockHandles(blockIDs.Slice())
	if err != nil {
		return 0, err
	}
	if len(unloaded) == 0 {
		return 0, nil
	}

	capacityInfo := s.calculateMaxAvailableBlocks()

	totalBlocks := uint64(blockIDs.Len())
	alreadyCached := totalBlocks - uint64(len(unloaded))
	if uint64(len(unloaded)) > capacityInfo.MaxBlocks {
		skipped := uint64(len(unloaded)) - capacityInfo.MaxBlocks
		unloaded = unloaded[:capacityInfo.MaxBlocks]
		logutil.Warn("buffer pool capacity limit reached",
			zap.Uint64("total_blocks", totalBlocks),
			zap.Uint64("already_cached", alreadyCached),
			zap.Uint64("requested", totalBlocks-alreadyCached),
			zap.Uint64("granted", uint64(len(unloaded))),
			zap.Uint64("skipped", skipped),
			zap.Uint64("bytes_needed", (uint64(len(unloaded))+skipped)*capacityInfo.BlockSize),
			zap.Uint64("bytes_available", capacityInfo.AvailableSpace))
	}

	sort.Slice(unloaded, func(i, j int) bool { return unloaded[i].ID < unloaded[j].ID })

	threadCount := uint64(runtime.GOMAXPROCS(0))
	if threadCount < 1 {
		threadCount = 1
	}
	blocksPerTask := calculateBlocksPerTask(capacityInfo.BlockSize, capacityInfo.MaxBlocks, threadCount, bufferPrefetchTargetBytes)
	if blocksPerTask == 0 {
		return 0, nil
	}

	runInline := s.pool == nil || threadCount == 1 || blocksPerTask >= uint64(len(unloaded))
	var jobs []*taskexec.Job
	for start := uint64(0); start < uint64(len(unloaded)); start += blocksPerTask {
		end := start + blocksPerTask
		if end > uint64(len(unloaded)) {
			end = uint64(len(unloaded))
		}
		batch := unloaded[start:end]
		if runInline {
			if err := s.bufferManager.Prefetch(ctx, batch); err != nil {
				return 0, err
			}
			continue
		}
		jobs = append(jobs, s.pool.Submit(func() error {
			return s.bufferManager.Prefetch(ctx, batch)
		}))
	}
	if !runInline {
		if err := taskexec.WaitAll(jobs); err != nil {
			return 0, err
		}
	}

	return uint64(len(unloaded)), nil
}
