//go:build !windows

package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// isSamePartition reports whether src and the parent directory of dst live
// on the same device
func isSamePartition(src, dst string) (bool, error) {
	srcInfo, err := os.Lstat(src)
	if err != nil {
		return false, fmt.Errorf("failed to get source file stats: %w", err)
	}

	dstInfo, err := os.Stat(filepath.Dir(dst))
	if err != nil {
		return false, fmt.Errorf("failed to get destination parent directory stats: %w", err)
	}

	srcSys, ok := srcInfo.Sys().(*syscall.Stat_t)
	if !ok {
		return false, fmt.Errorf("failed to get source system info")
	}

	dstSys, ok := dstInfo.Sys().(*syscall.Stat_t)
	if !ok {
		return false, fmt.Errorf("failed to get destination system info")
	}

	return srcSys.Dev == dstSys.Dev, nil
}
