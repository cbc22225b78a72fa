package prewarm

import (
	"go.uber.org/zap"

	"github.com/dentiny/duckdb-cache-prewarm/pkg/logutil"
)

// cacheModeScope holds the state needed to restore CacheModeController to
// whatever it was before enterCacheModeScope ran (spec §4.8, §9 "scoped
// acquisition"). BOTH maps to the on-disk variant, matching the original's
// "implicitly fronts with memory caching in the underlying cache".
type cacheModeScope struct {
	controller CacheModeController
	original   RemoteCacheMode
	active     bool
}

// enterCacheModeScope snapshots the current mode and installs requested if
// it differs from CacheModeUseCurrent. release must be called on every exit
// path, success or panic, via defer.
func enterCacheModeScope(controller CacheModeController, requested RemoteCacheMode) (*cacheModeScope, error) {
	scope := &cacheModeScope{controller: controller}
	if requested == CacheModeUseCurrent || controller == nil {
		return scope, nil
	}

	scope.original = controller.GetMode()
	effective := requested
	if effective == CacheModeBoth {
		effective = CacheModeOnDisk
	}
	if err := controller.SetMode(effective); err != nil {
		return nil, err
	}
	scope.active = true
	return scope, nil
}

// release restores the original mode unconditionally. Call via defer
// immediately after a successful enterCacheModeScope so it runs on every
// exit path including a panic unwind (spec §9).
func (s *cacheModeScope) release() {
	if s == nil || !s.active {
		return
	}
	if err := s.controller.SetMode(s.original); err != nil {
		logutil.Warn("failed to restore original remote cache mode", zap.Error(err))
	}
}
