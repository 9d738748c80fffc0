//go:build unix

package diskfile

import (
	"os"

	"golang.org/x/sys/unix"
)

// syncData flushes file contents (not metadata) to stable storage,
// grounded on sirgallo-mari's go.mod dependency on golang.org/x/sys for
// exactly this class of OS file primitive — there it flushes mmap'd
// regions page-aligned; here it flushes a regular file descriptor after
// a page-range write.
func syncData(f *os.File) error {
	return unix.Fdatasync(int(f.Fd()))
}
