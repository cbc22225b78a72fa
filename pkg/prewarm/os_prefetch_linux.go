//go:build linux

package prewarm

import (
	"os"

	"golang.org/x/sys/unix"
)

// platformSupportsPrefetch reports whether this build can issue OS-level
// prefetch hints at all (spec §4.5: Windows surfaces NotImplemented from
// the factory before any work happens; every unix-family build reaches
// here and returns true even when the specific hint syscall below is a
// no-op).
const platformSupportsPrefetch = true

func openForPrefetch(path string) (f *os.File, size int64, ok bool) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, false
	}
	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, false
	}
	return f, stat.Size(), true
}

// issueWillNeedHint calls posix_fadvise(fd, offset, amount, WILLNEED),
// retrying on EINTR (spec §4.5, following PostgreSQL's FilePrefetch pattern).
func issueWillNeedHint(fd uintptr, offset, amount int64) bool {
	for {
		err := unix.Fadvise(int(fd), offset, amount, unix.FADV_WILLNEED)
		if err == unix.EINTR {
			continue
		}
		return err == nil
	}
}
