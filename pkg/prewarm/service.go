package prewarm

import (
	"context"

	"github.com/dentiny/duckdb-cache-prewarm/pkg/moerr"
	"github.com/dentiny/duckdb-cache-prewarm/pkg/taskexec"
)

// remoteWorkerPoolSize bounds the remote strategy's dedicated worker pool
// (spec §5, "a dedicated worker pool of bounded size for the remote
// strategy"), independent of the local strategies' pool sizing.
const remoteWorkerPoolSize = 8

// Prewarmer wires the capability set together into the two caller-facing
// operations a SQL function layer or CLI would call (spec §6). It is safe
// for concurrent use: every field is either immutable after construction or
// itself concurrency-safe.
type Prewarmer struct {
	catalog       Catalog
	blockManager  BlockManager
	bufferManager BufferManager
	config        Config
	fs            FileSystem
	cache         CacheModeController
	localPool     *taskexec.Pool
}

// NewPrewarmer constructs a Prewarmer over the given host capabilities.
// localPool is shared across BUFFER/READ calls issued through this
// Prewarmer; pass nil to run BUFFER and READ inline. PREFETCH always uses
// its own goroutines, and PrewarmRemote creates its own pool per call.
func NewPrewarmer(catalog Catalog, blockManager BlockManager, bufferManager BufferManager, config Config, fs FileSystem, cache CacheModeController, localPool *taskexec.Pool) *Prewarmer {
	return &Prewarmer{
		catalog:       catalog,
		blockManager:  blockManager,
		bufferManager: bufferManager,
		config:        config,
		fs:            fs,
		cache:         cache,
		localPool:     localPool,
	}
}

// Prewarm resolves (schema, table), enumerates its persistent blocks, and
// runs the strategy named by mode against them (spec §6, "prewarm(table
// [, mode [, schema]])"). schema defaults to "main" and mode defaults to
// buffer when empty, matching ParsePrewarmMode's default.
func (p *Prewarmer) Prewarm(ctx context.Context, schema, table, mode string) (int64, error) {
	if table == "" {
		return 0, newEmptyTableNameErr()
	}
	if schema == "" {
		schema = "main"
	}

	parsedMode, err := ParsePrewarmMode(mode)
	if err != nil {
		return 0, err
	}

	entry, err := p.catalog.ResolveTable(ctx, schema, table)
	if err != nil {
		return 0, err
	}
	if !entry.IsNative() {
		return 0, newNonNativeTableErr(schema, table)
	}

	blockIDs, err := CollectTableBlocks(ctx, entry)
	if err != nil {
		return 0, err
	}

	factory := NewLocalStrategyFactory(p.blockManager, p.bufferManager, p.config, p.localPool)
	strategy, err := factory.Create(parsedMode)
	if err != nil {
		return 0, err
	}

	count, err := strategy.Execute(ctx, entry, blockIDs)
	if err != nil {
		return 0, err
	}
	return int64(count), nil
}

// PrewarmRemote globs pattern, tiles matched files into aligned ranges, and
// reads each uncached one through the cache filesystem (spec §6,
// "prewarm_remote(pattern [, cache_mode [, max_blocks]])"). maxBlocks caps
// the total independently of buffer-pool capacity; 0 means unbounded.
func (p *Prewarmer) PrewarmRemote(ctx context.Context, pattern, cacheMode string, blockSize, maxBlocks uint64) (int64, error) {
	if pattern == "" {
		return 0, newEmptyPatternErr()
	}

	parsedCacheMode, err := ParseRemoteCacheMode(cacheMode)
	if err != nil {
		return 0, err
	}
	if blockSize == 0 {
		blockSize = p.blockManager.GetBlockAllocSize()
	}

	blocks, err := CollectRemoteBlocks(ctx, p.fs, pattern, blockSize)
	if err != nil {
		return 0, err
	}

	pool, err := taskexec.NewPool(remoteWorkerPoolSize)
	if err != nil {
		return 0, moerr.Wrap(moerr.NewInternal(ctx, "failed to create remote prewarm worker pool"), err)
	}
	defer pool.Release()

	strategy := newRemoteStrategy(p.fs, p.bufferManager, p.cache, pool)
	count, err := strategy.Execute(ctx, blocks, blockSize, parsedCacheMode, maxBlocks)
	if err != nil {
		return 0, err
	}
	return int64(count), nil
}
