//go:build !unix

package diskfile

import "os"

// syncData falls back to a full sync on platforms without fdatasync.
func syncData(f *os.File) error {
	return f.Sync()
}
