package storage

import "errors"

// ErrNotFound is returned when a version is missing from the storage root
var ErrNotFound = errors.New("file not found in trash")

// StorageError wraps an error with additional context about the storage operation
type StorageError struct {
	// Op is the operation that failed (e.g., "ensure", "remove")
	Op string

	// Path is the path of the file that caused the error
	Path string

	// Err is the underlying error
	Err error
}

// Error implements the error interface
func (e *StorageError) Error() string {
	if e.Path == "" {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

// Unwrap returns the underlying error
func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsNotFound returns true if the error is ErrNotFound
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
