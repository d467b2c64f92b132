package fs

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	cp "github.com/otiai10/copy"
)

// MoveOptions specifies options for move operations
type MoveOptions struct {
	AllowCrossDev bool // Allow cross-device moves
	Force         bool // Replace the destination if it exists
}

// Move moves src to dst. A symbolic link is moved as a link. The parent of
// dst is created when missing.
func Move(src, dst string, opts MoveOptions) error {
	if err := validatePaths(src, dst); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0700); err != nil {
		return &MoveError{Op: "create_parent", Src: src, Dst: dst, Err: err}
	}

	if _, err := os.Lstat(dst); err == nil {
		if !opts.Force {
			return &MoveError{Op: "rename", Src: src, Dst: dst, Err: ErrDestinationExists}
		}
		if err := os.RemoveAll(dst); err != nil {
			return &MoveError{Op: "replace", Src: src, Dst: dst, Err: err}
		}
	}

	sameDevice, err := isSamePartition(src, dst)
	if err != nil {
		slog.Debug("could not compare devices, trying rename", "src", src, "dst", dst, "error", err)
		sameDevice = true
	}
	if sameDevice {
		err := os.Rename(src, dst)
		if err == nil {
			return nil
		}
		slog.Debug("rename failed", "src", src, "dst", dst, "error", err)
	}

	if !opts.AllowCrossDev {
		return &MoveError{Op: "rename", Src: src, Dst: dst, Err: ErrCrossDeviceMove}
	}

	slog.Debug("falling back to copy and delete", "src", src, "dst", dst)
	return copyAndDelete(src, dst)
}

// copyAndDelete copies a file or directory and then deletes the original
func copyAndDelete(src, dst string) error {
	opts := cp.Options{
		OnSymlink: func(string) cp.SymlinkAction {
			return cp.Shallow
		},
		PreserveTimes: true,
		Sync:          true,
	}

	if err := cp.Copy(src, dst, opts); err != nil {
		_ = os.RemoveAll(dst)
		return &MoveError{Op: "copy", Src: src, Dst: dst, Err: err}
	}

	if err := os.RemoveAll(src); err != nil {
		if rmErr := os.RemoveAll(dst); rmErr != nil {
			return &MoveError{
				Op:  "cleanup",
				Src: src,
				Dst: dst,
				Err: fmt.Errorf("failed to remove both source and destination: %v, %v", err, rmErr),
			}
		}
		return &MoveError{Op: "remove_source", Src: src, Dst: dst, Err: err}
	}

	return nil
}

func validatePaths(src, dst string) error {
	if src == "" || dst == "" {
		return ErrInvalidPath
	}
	if _, err := os.Lstat(src); err != nil {
		if os.IsNotExist(err) {
			return ErrSourceNotFound
		}
		return &MoveError{Op: "stat", Src: src, Dst: dst, Err: err}
	}
	return nil
}
