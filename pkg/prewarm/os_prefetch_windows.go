//go:build windows

package prewarm

import "os"

// platformSupportsPrefetch is false on Windows: LocalStrategyFactory rejects
// ModePrefetch with NotImplemented before osPrefetchBlocks is ever reached
// (spec §4.5 step 6, "Windows: the strategy is unavailable").
const platformSupportsPrefetch = false

func openForPrefetch(path string) (f *os.File, size int64, ok bool) {
	return nil, 0, false
}

func issueWillNeedHint(fd uintptr, offset, amount int64) bool {
	return false
}
