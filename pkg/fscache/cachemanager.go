package fscache

import (
	"sync"

	"github.com/dentiny/duckdb-cache-prewarm/pkg/prewarm"
)

// CacheModeManager is an in-process prewarm.CacheModeController, grounded on
// the teacher's cache.go dual mem/disk cache registry: instead of swapping
// which *MemCache/*DiskCache instance is live, it tracks the currently
// selected prewarm.RemoteCacheMode behind a mutex, matching the "process-wide
// mutable state, not serialized across concurrent callers" model (spec §5).
type CacheModeManager struct {
	mu   sync.Mutex
	mode prewarm.RemoteCacheMode
}

// NewCacheModeManager starts in CacheModeOnDisk, the teacher's default
// cache.go configuration (disk cache enabled, memory cache fronting it).
func NewCacheModeManager() *CacheModeManager {
	return &CacheModeManager{mode: prewarm.CacheModeOnDisk}
}

func (m *CacheModeManager) GetMode() prewarm.RemoteCacheMode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

func (m *CacheModeManager) SetMode(mode prewarm.RemoteCacheMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mode = mode
	return nil
}
