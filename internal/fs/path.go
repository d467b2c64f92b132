package fs

import (
	"path/filepath"
	"strings"
)

// IsUnsafePath reports whether path must never be moved to the trash. A
// base of "." or "..", the root directory and a leading "//" are unsafe.
func IsUnsafePath(path string) (bool, error) {
	if path == "" {
		return false, ErrInvalidPath
	}

	base := filepath.Base(path)
	if base == "." || base == ".." {
		return true, nil
	}

	cleaned := filepath.Clean(path)
	if cleaned == string(filepath.Separator) || cleaned == filepath.VolumeName(cleaned)+string(filepath.Separator) {
		return true, nil
	}

	if strings.HasPrefix(path, "//") {
		return true, nil
	}

	return false, nil
}

// IsProtected reports whether path equals or lies under one of roots. All
// paths are expected to be absolute.
func IsProtected(path string, roots ...string) bool {
	path = filepath.Clean(path)
	for _, root := range roots {
		if root == "" {
			continue
		}
		root = filepath.Clean(root)
		if path == root {
			return true
		}
		rel, err := filepath.Rel(root, path)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// Contains reports whether path is an ancestor of root, meaning that moving
// path would take root along with it
func Contains(path, root string) bool {
	return root != "" && IsProtected(root, path)
}
