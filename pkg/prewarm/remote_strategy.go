package prewarm

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/dentiny/duckdb-cache-prewarm/pkg/logutil"
	"github.com/dentiny/duckdb-cache-prewarm/pkg/taskexec"
)

// remoteStrategy realizes each remote range as a read through the cache
// filesystem, with an optional scoped cache-mode swap for the call's
// duration (spec §4.8). It embeds baseStrategy directly, not localStrategy:
// its capacity source is the caller-supplied remote block size, not the
// block manager's fixed block size.
type remoteStrategy struct {
	baseStrategy

	fs            FileSystem
	bufferManager BufferManager
	cache         CacheModeController
	pool          *taskexec.Pool

	// filterCachedBlocks is an interface seam for FilterCachedBlocks (spec
	// §9 resolved Open Question #2): the zero value is the pass-through
	// default; tests may substitute a stub cache index.
	filterCachedBlocks func(path string, ranges []RemoteBlockInfo) []RemoteBlockInfo
}

func newRemoteStrategy(fs FileSystem, bufferManager BufferManager, cache CacheModeController, pool *taskexec.Pool) *remoteStrategy {
	return &remoteStrategy{
		fs:            fs,
		bufferManager: bufferManager,
		cache:         cache,
		pool:          pool,
	}
}

// FilterCachedBlocks consults the remote cache's index to drop
// already-cached ranges. The default implementation passes all ranges
// through unmodified (spec §9, "the real implementation should consult the
// cache reader's index; the spec permits either behavior").
func (s *remoteStrategy) FilterCachedBlocks(path string, ranges []RemoteBlockInfo) []RemoteBlockInfo {
	if s.filterCachedBlocks != nil {
		return s.filterCachedBlocks(path, ranges)
	}
	return ranges
}

// calculateMaxAvailableBlocks computes capacity against blockSize, the
// remote cache's own tiling granularity rather than the local block
// manager's fixed block size (spec §4.1's math, §4.8's "own capacity
// source").
func (s *remoteStrategy) calculateMaxAvailableBlocks(blockSize uint64) BufferCapacityInfo {
	return capacityForBlockSize(blockSize, s.bufferManager)
}

// Execute reads each uncached range once through fs, discarding the data:
// the side effect on the cache is the point (spec §4.8). callerMaxBlocks
// bounds the total independently of capacity; 0 means unbounded.
func (s *remoteStrategy) Execute(ctx context.Context, blocks RemoteFileBlockMap, blockSize uint64, cacheMode RemoteCacheMode, callerMaxBlocks uint64) (uint64, error) {
	if len(blocks) == 0 {
		return 0, nil
	}

	scope, err := enterCacheModeScope(s.cache, cacheMode)
	if err != nil {
		return 0, err
	}
	defer scope.release()

	filtered := make(RemoteFileBlockMap, len(blocks))
	var totalUncached uint64
	for path, ranges := range blocks {
		kept := s.FilterCachedBlocks(path, ranges)
		if len(kept) == 0 {
			continue
		}
		filtered[path] = kept
		totalUncached += uint64(len(kept))
	}
	if totalUncached == 0 {
		return 0, nil
	}

	capacityInfo := s.calculateMaxAvailableBlocks(blockSize)
	budget := totalUncached
	if capacityInfo.MaxBlocks < budget {
		budget = capacityInfo.MaxBlocks
	}
	if callerMaxBlocks > 0 && callerMaxBlocks < budget {
		budget = callerMaxBlocks
	}
	if budget < totalUncached {
		logutil.Warn("remote prewarm budget limit reached",
			zap.Uint64("total_uncached", totalUncached),
			zap.Uint64("granted", budget))
	}
	if budget == 0 {
		return 0, nil
	}

	handles := make(map[string]FileHandle, len(filtered))
	defer func() {
		for _, h := range handles {
			h.Close()
		}
	}()
	for path := range filtered {
		h, err := s.fs.OpenFile(ctx, path, true)
		if err != nil {
			return 0, err
		}
		handles[path] = h
	}

	var issued atomic.Uint64
	runInline := s.pool == nil
	var jobs []*taskexec.Job

	// buf covers the full range: it is the caller-visible read that must
	// land in the remote cache (spec §4.8 step 6), not a fixed-size scratch
	// window. The bytes themselves are discarded once read.
	submit := func(handle FileHandle, r RemoteBlockInfo) {
		task := func() error {
			buf := make([]byte, r.Size)
			if _, err := handle.ReadAt(buf, int64(r.Offset)); err != nil {
				logutil.Warn("remote prewarm read failed",
					zap.String("path", r.FilePath), zap.Uint64("offset", r.Offset), zap.Error(err))
			}
			return nil
		}
		if runInline {
			_ = task()
			return
		}
		jobs = append(jobs, s.pool.Submit(task))
	}

remaining:
	for path, ranges := range filtered {
		handle := handles[path]
		for _, r := range ranges {
			if issued.Load() >= budget {
				break remaining
			}
			issued.Add(1)
			submit(handle, r)
		}
	}

	if !runInline {
		if err := taskexec.WaitAll(jobs); err != nil {
			return 0, err
		}
	}

	return budget, nil
}
