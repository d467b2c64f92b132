// Package storage maps trashed versions to paths below the storage root.
// Every entry owns one container directory named after its id and every
// version is stored in it under the version identifier:
//
//	<root>/<container>/<version>
package storage

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Layout describes the storage root
type Layout struct {
	Root string
}

// Ensure creates the storage root when it does not exist
func (l Layout) Ensure() error {
	if l.Root == "" {
		return &StorageError{Op: "ensure", Err: errors.New("storage root is not set")}
	}
	if err := os.MkdirAll(l.Root, 0700); err != nil {
		return &StorageError{Op: "ensure", Path: l.Root, Err: err}
	}
	return nil
}

// ContainerDir returns the directory holding every version of an entry
func (l Layout) ContainerDir(id uuid.UUID) string {
	return filepath.Join(l.Root, id.String())
}

// VersionPath returns where a single version of an entry is stored
func (l Layout) VersionPath(id uuid.UUID, version string) string {
	return filepath.Join(l.ContainerDir(id), version)
}

// Exists reports whether the version is present on disk. A dangling
// symbolic link counts as present.
func (l Layout) Exists(id uuid.UUID, version string) bool {
	_, err := os.Lstat(l.VersionPath(id, version))
	return err == nil
}

// Stat returns the file info of a stored version without following links
func (l Layout) Stat(id uuid.UUID, version string) (os.FileInfo, error) {
	path := l.VersionPath(id, version)
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &StorageError{Op: "stat", Path: path, Err: ErrNotFound}
		}
		return nil, &StorageError{Op: "stat", Path: path, Err: err}
	}
	return info, nil
}

// RemoveContainer deletes the container directory with everything left in
// it. Removing a container that does not exist is not an error.
func (l Layout) RemoveContainer(id uuid.UUID) error {
	dir := l.ContainerDir(id)
	slog.Debug("removing container", "path", dir)
	if err := os.RemoveAll(dir); err != nil {
		return &StorageError{Op: "remove", Path: dir, Err: err}
	}
	return nil
}
