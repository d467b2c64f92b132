package index

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

const formatVersion = 1

// document is the on-disk layout of the index file
type document struct {
	Version int     `json:"version"`
	Entries []Entry `json:"entries"`
}

// Load reads the index stored at path. A missing or empty file yields an
// empty index; the file is created when it does not exist yet.
func Load(path string, opts ...Option) (*Index, error) {
	slog.Debug("opening index file", "path", path)

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create index directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}

	idx := New(opts...)
	entries, err := decode(path, data)
	if err != nil {
		return nil, err
	}
	for n := range entries {
		e := entries[n]
		idx.entries = append(idx.entries, &e)
	}
	slog.Debug("index loaded", "path", path, "entries", len(idx.entries))
	return idx, nil
}

func decode(path string, data []byte) ([]Entry, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		slog.Warn("index is empty", "path", path)
		return nil, nil
	}

	var doc document
	var err error
	if trimmed[0] == '[' {
		// bare list of entries, as written by the first releases
		err = json.Unmarshal(data, &doc.Entries)
	} else {
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, decodeError(path, data, err)
	}

	if doc.Version > formatVersion {
		return nil, &InvalidIndexError{
			Path: path,
			Kind: KindVersion,
			Err:  fmt.Errorf("unsupported format version %d", doc.Version),
		}
	}

	seen := make(map[Key]struct{}, len(doc.Entries))
	for n, e := range doc.Entries {
		if _, ok := seen[e.Key]; ok {
			return nil, &InvalidIndexError{
				Path: path,
				Kind: KindDuplicateKey,
				Err:  fmt.Errorf("entry %d: %q from %q is listed more than once", n, e.Key.Name, e.Key.Origin),
			}
		}
		seen[e.Key] = struct{}{}
		if len(e.History) == 0 {
			return nil, &InvalidIndexError{
				Path: path,
				Kind: KindEmptyHistory,
				Err:  fmt.Errorf("entry %d: %q has no versions", n, e.Key.Name),
			}
		}
	}
	return doc.Entries, nil
}

func decodeError(path string, data []byte, err error) error {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &syntaxErr):
		line, col := position(data, syntaxErr.Offset)
		return &InvalidIndexError{Path: path, Line: line, Column: col, Kind: KindSyntax, Err: err}
	case errors.As(err, &typeErr):
		line, col := position(data, typeErr.Offset)
		return &InvalidIndexError{Path: path, Line: line, Column: col, Kind: KindType, Err: err}
	default:
		return &InvalidIndexError{Path: path, Kind: KindContent, Err: err}
	}
}

// position converts a byte offset into a 1-based line and column
func position(data []byte, offset int64) (line, col int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	if offset < 0 {
		offset = 0
	}
	head := data[:offset]
	line = bytes.Count(head, []byte{'\n'}) + 1
	col = len(head) - bytes.LastIndexByte(head, '\n')
	return line, col
}

// Commit replaces the file at path with the complete current state of the
// index. The new content is written to a temporary file first and renamed
// into place, so the file always holds a whole snapshot.
func (i *Index) Commit(path string) error {
	slog.Debug("committing index", "path", path, "entries", len(i.entries))

	doc := document{Version: formatVersion, Entries: i.Entries()}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()

	cleanup := func() {
		tmp.Close()
		os.Remove(tmpPath)
	}

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		cleanup()
		return fmt.Errorf("failed to encode index: %w", err)
	}

	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("failed to sync index file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return fmt.Errorf("failed to save index file: %w", err)
	}

	return nil
}
