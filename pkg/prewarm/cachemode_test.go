package prewarm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnterCacheModeScopeNoopOnUseCurrent(t *testing.T) {
	cache := newFakeCacheModeController(CacheModeOnDisk)
	scope, err := enterCacheModeScope(cache, CacheModeUseCurrent)
	require.NoError(t, err)
	scope.release()
	assert.Equal(t, CacheModeOnDisk, cache.GetMode())
	assert.Empty(t, cache.setCalls)
}

func TestEnterCacheModeScopeMapsBothToOnDisk(t *testing.T) {
	cache := newFakeCacheModeController(CacheModeInMemory)
	scope, err := enterCacheModeScope(cache, CacheModeBoth)
	require.NoError(t, err)
	assert.Equal(t, CacheModeOnDisk, cache.GetMode())
	scope.release()
	assert.Equal(t, CacheModeInMemory, cache.GetMode())
}

func TestEnterCacheModeScopeRestoresOnRelease(t *testing.T) {
	cache := newFakeCacheModeController(CacheModeOnDisk)
	scope, err := enterCacheModeScope(cache, CacheModeInMemory)
	require.NoError(t, err)
	assert.Equal(t, CacheModeInMemory, cache.GetMode())
	scope.release()
	assert.Equal(t, CacheModeOnDisk, cache.GetMode())
}

func TestEnterCacheModeScopeNilController(t *testing.T) {
	scope, err := enterCacheModeScope(nil, CacheModeInMemory)
	require.NoError(t, err)
	assert.NotPanics(t, func() { scope.release() })
}
