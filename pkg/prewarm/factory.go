package prewarm

import (
	"github.com/dentiny/duckdb-cache-prewarm/pkg/taskexec"
)

// LocalStrategyFactory constructs the concrete local strategy for a
// PrewarmMode, grounded on original_source's CreateLocalPrewarmStrategy
// (prewarm_strategy_factory.cpp): mode parsing lives next to construction,
// and PREFETCH is rejected outright on platforms with no OS hint mechanism
// before any block enumeration happens.
type LocalStrategyFactory struct {
	blockManager  BlockManager
	bufferManager BufferManager
	config        Config
	pool          *taskexec.Pool
}

// NewLocalStrategyFactory builds a factory bound to one call's collaborators.
// pool is shared by BUFFER and READ; PREFETCH manages its own goroutines
// through osPrefetchBlocks and does not use it.
func NewLocalStrategyFactory(blockManager BlockManager, bufferManager BufferManager, config Config, pool *taskexec.Pool) *LocalStrategyFactory {
	return &LocalStrategyFactory{
		blockManager:  blockManager,
		bufferManager: bufferManager,
		config:        config,
		pool:          pool,
	}
}

// Create returns the localExecutor for mode, or NotImplemented if mode is
// ModePrefetch on a platform with no wired OS hint mechanism (spec §4.5
// step 6, Windows).
func (f *LocalStrategyFactory) Create(mode PrewarmMode) (localExecutor, error) {
	switch mode {
	case ModeBuffer:
		return newBufferStrategy(f.blockManager, f.bufferManager, f.config, f.pool), nil
	case ModeRead:
		return newReadStrategy(f.blockManager, f.bufferManager, f.config, f.pool), nil
	case ModePrefetch:
		if !platformSupportsPrefetch {
			return nil, newPrefetchUnsupportedErr()
		}
		return newPrefetchStrategy(f.blockManager, f.bufferManager, f.config), nil
	default:
		return nil, newInvalidModeErr(mode.String())
	}
}
