package prewarm

import (
	"context"
	"runtime"
	"sort"

	"go.uber.org/zap"

	"github.com/dentiny/duckdb-cache-prewarm/pkg/logutil"
)

// prefetchStrategy issues OS page-cache hints against the single-file
// database, non-blocking (spec §4.5). Unlike BUFFER/READ it needs only
// block ids, never registers handles with the block manager.
type prefetchStrategy struct {
	localStrategy
}

func newPrefetchStrategy(blockManager BlockManager, bufferManager BufferManager, config Config) *prefetchStrategy {
	return &prefetchStrategy{localStrategy: newLocalStrategy(blockManager, bufferManager, config)}
}

func (s *prefetchStrategy) Execute(ctx context.Context, _ TableEntry, blockIDs *BlockIDSet) (uint64, error) {
	if err := s.checkDirectIO("PREFETCH"); err != nil {
		return 0, err
	}

	ids := blockIDs.Slice()
	if len(ids) == 0 {
		return 0, nil
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	capacityInfo := s.calculateMaxAvailableBlocks()
	totalBlocks := uint64(len(ids))
	if totalBlocks > capacityInfo.MaxBlocks {
		skipped := totalBlocks - capacityInfo.MaxBlocks
		ids = ids[:capacityInfo.MaxBlocks]
		logutil.Warn("PREFETCH capacity limit reached",
			zap.Uint64("total_blocks", totalBlocks),
			zap.Uint64("granted", capacityInfo.MaxBlocks),
			zap.Uint64("skipped", skipped))
	}
	if len(ids) == 0 {
		return 0, nil
	}

	dbPath := s.blockManager.DatabasePath()
	threadCount := runtime.GOMAXPROCS(0)
	if threadCount < 1 {
		threadCount = 1
	}

	return osPrefetchBlocks(dbPath, ids, capacityInfo.BlockSize, threadCount), nil
}
