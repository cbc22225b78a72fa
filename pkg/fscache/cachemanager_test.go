package fscache

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dentiny/duckdb-cache-prewarm/pkg/prewarm"
)

func TestCacheModeManagerDefaultsToOnDisk(t *testing.T) {
	m := NewCacheModeManager()
	assert.Equal(t, prewarm.CacheModeOnDisk, m.GetMode())
}

func TestCacheModeManagerSetAndGet(t *testing.T) {
	m := NewCacheModeManager()
	require := assert.New(t)
	require.NoError(m.SetMode(prewarm.CacheModeInMemory))
	require.Equal(prewarm.CacheModeInMemory, m.GetMode())
}

func TestCacheModeManagerConcurrentAccess(t *testing.T) {
	m := NewCacheModeManager()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			mode := prewarm.CacheModeOnDisk
			if i%2 == 0 {
				mode = prewarm.CacheModeInMemory
			}
			_ = m.SetMode(mode)
			_ = m.GetMode()
		}(i)
	}
	wg.Wait()
}
