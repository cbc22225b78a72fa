//go:build darwin

package prewarm

import (
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

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

// radvisory mirrors macOS's struct radvisory from <fcntl.h>, the argument
// type for F_RDADVISE.
type radvisory struct {
	Offset int64
	Count  int32
	_      [4]byte // padding to match the C struct's alignment
}

// issueWillNeedHint calls fcntl(fd, F_RDADVISE, &radvisory{...}), the
// macOS-specific equivalent of posix_fadvise(WILLNEED) (spec §4.5).
// amount is clamped to INT32_MAX since ra_count is a C int.
func issueWillNeedHint(fd uintptr, offset, amount int64) bool {
	if amount > int64(^uint32(0)>>1) {
		amount = int64(^uint32(0) >> 1)
	}
	ra := radvisory{Offset: offset, Count: int32(amount)}
	_, _, errno := unix.Syscall(unix.SYS_FCNTL, fd, unix.F_RDADVISE, uintptr(unsafe.Pointer(&ra)))
	return errno == 0
}
