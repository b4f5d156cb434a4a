//go:build windows

package storage

import "os"

// Directories cannot be opened for syncing on windows.
func init() {
	syncFile = func(f *os.File, isDir bool) error {
		if isDir {
			return nil
		}
		return f.Sync()
	}
}
