// Package trash moves files in and out of the trash, keeping the index and
// the storage root in step.
package trash

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/babarot/tman/internal/fs"
	"github.com/babarot/tman/internal/index"
	"github.com/samber/lo"
)

// Common paths that should not be trashed
var protected = []string{
	"/",
	"/home",
	"/usr",
	"/etc",
	"/var",
	"/tmp",
}

// Manager runs trash operations against one index. The index is only
// changed in memory; committing it is up to the caller.
type Manager struct {
	config     Config
	index      *index.Index
	consistent bool
}

// Deleted describes a path moved into the trash
type Deleted struct {
	Path      string
	Key       index.Key
	Version   string
	Directory bool
}

// RestoreRequest selects what to restore. Origin narrows a name to a
// single entry; Version is parsed with index.ParseVersionSelector.
type RestoreRequest struct {
	Name    string
	Origin  string
	Version string
}

// Restored describes a version moved back out of the trash
type Restored struct {
	Entry       index.Key
	Version     string
	Destination string
}

// ListOptions narrows the listing by name
type ListOptions struct {
	Pattern string
	Glob    bool
}

// NewManager creates a manager and makes sure the storage root exists
func NewManager(cfg Config, idx *index.Index) (*Manager, error) {
	if idx == nil {
		return nil, errors.New("index is not loaded")
	}
	if err := cfg.Layout.Ensure(); err != nil {
		return nil, err
	}
	if cfg.OnAmbiguous == "" {
		cfg.OnAmbiguous = RestoreAll
	}
	if cfg.DataDir != "" {
		dir, err := resolveDir(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", cfg.DataDir, err)
		}
		cfg.DataDir = dir
	}
	return &Manager{config: cfg, index: idx, consistent: true}, nil
}

// Consistent reports whether the index still describes the storage root.
// It turns false when an operation fails after the index was changed in a
// way the files on disk did not follow.
func (m *Manager) Consistent() bool {
	return m.consistent
}

// Delete moves every path into the trash, in order, and stops at the first
// failure. Paths deleted before the failure stay deleted and are returned.
func (m *Manager) Delete(paths ...string) ([]Deleted, error) {
	slog.Debug("trash.delete started", "paths", len(paths))
	defer slog.Debug("trash.delete finished")

	var deleted []Deleted
	for _, path := range paths {
		d, err := m.delete(path)
		if err != nil {
			return deleted, err
		}
		deleted = append(deleted, d)
	}
	return deleted, nil
}

func (m *Manager) delete(path string) (Deleted, error) {
	if unsafe, err := fs.IsUnsafePath(path); err != nil || unsafe {
		return Deleted{}, &UnsafePathError{Path: path, Reason: "'.', '..' and '/' cannot be trashed"}
	}

	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Deleted{}, &MissingTargetError{Target: path}
		}
		return Deleted{}, fmt.Errorf("stat %s: %w", path, err)
	}

	origin, err := canonical(path)
	if err != nil {
		return Deleted{}, fmt.Errorf("resolve %s: %w", path, err)
	}
	if err := m.validate(path, origin); err != nil {
		return Deleted{}, err
	}

	name := filepath.Base(origin)
	container, version := m.index.Push(name, origin)
	dst := m.config.Layout.VersionPath(container, version)

	err = fs.Move(origin, dst, fs.MoveOptions{AllowCrossDev: m.config.AllowCrossDevice})
	if err != nil {
		// roll back the push
		popped, perr := m.index.Pop(index.ByNameAndOrigin(name, origin), index.ExactVersion(version))
		if perr != nil {
			slog.Error("failed to roll back index", "name", name, "origin", origin, "error", perr)
			m.consistent = false
		}
		if lo.SomeBy(popped, func(p index.Popped) bool { return p.Emptied }) {
			if rerr := m.config.Layout.RemoveContainer(container); rerr != nil {
				slog.Warn("failed to remove container of rolled back entry", "container", container, "error", rerr)
			}
		}
		return Deleted{}, fmt.Errorf("move %s: %w", path, err)
	}

	slog.Info("moved to trash", "origin", origin, "container", container, "version", version)
	return Deleted{
		Path:      path,
		Key:       index.Key{Name: name, Origin: origin},
		Version:   version,
		Directory: info.IsDir(),
	}, nil
}

// validate rejects protected locations: system directories, the data
// directory, anything inside it and any of its parents
func (m *Manager) validate(path, origin string) error {
	if slices.Contains(protected, filepath.ToSlash(origin)) {
		return &UnsafePathError{Path: path, Reason: "protected path"}
	}
	if m.config.DataDir == "" {
		return nil
	}
	if fs.IsProtected(origin, m.config.DataDir) || fs.Contains(origin, m.config.DataDir) {
		return &UnsafePathError{Path: path, Reason: "it holds the trash itself"}
	}
	return nil
}

// canonical returns the absolute path of path with every symbolic link in
// its parent directories resolved. The last element is kept as is, so a
// link is trashed as a link.
func canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	dir, err := filepath.EvalSymlinks(filepath.Dir(abs))
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, filepath.Base(abs)), nil
}

// resolveDir returns dir made absolute with symbolic links resolved, so
// that it compares equal to canonical origins. A directory that does not
// exist yet is only made absolute.
func resolveDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return abs, nil
		}
		return "", err
	}
	return resolved, nil
}

// Restore moves the selected versions back to where they came from. All
// sources and destinations are checked before the index is changed.
func (m *Manager) Restore(req RestoreRequest) ([]Restored, error) {
	slog.Debug("trash.restore started", "name", req.Name, "origin", req.Origin, "version", req.Version)
	defer slog.Debug("trash.restore finished")

	ks := index.ByName(req.Name)
	if req.Origin != "" {
		origin, err := canonical(req.Origin)
		if err != nil {
			// the parent may be gone, fall back to the plain absolute path
			origin, err = filepath.Abs(req.Origin)
			if err != nil {
				return nil, fmt.Errorf("resolve %s: %w", req.Origin, err)
			}
		}
		ks = index.ByNameAndOrigin(req.Name, origin)
	}
	vs := index.ParseVersionSelector(req.Version)

	matches, err := m.index.Match(ks, vs)
	if err != nil {
		return nil, err
	}
	matches = lo.Filter(matches, func(p index.Popped, _ int) bool {
		return len(p.Entry.History) > 0
	})
	if len(matches) == 0 {
		return nil, &MissingTargetError{Target: req.Name, Version: vs.String()}
	}

	if req.Origin == "" && len(matches) > 1 && m.config.OnAmbiguous == FailOnAmbiguous {
		return nil, &AmbiguousTargetError{
			Name: req.Name,
			Origins: lo.Map(matches, func(p index.Popped, _ int) string {
				return p.Entry.Key.Origin
			}),
		}
	}

	plans, err := m.plan(matches)
	if err != nil {
		return nil, err
	}

	popped, err := m.index.Pop(ks, vs)
	if err != nil {
		return nil, err
	}
	emptied := lo.FilterMap(popped, func(p index.Popped, _ int) (index.Entry, bool) {
		return p.Entry, p.Emptied
	})

	var restored []Restored
	for _, p := range plans {
		err := fs.Move(p.src, p.Destination, fs.MoveOptions{
			AllowCrossDev: m.config.AllowCrossDevice,
			Force:         m.config.Overwrite,
		})
		if err != nil {
			m.consistent = false
			return restored, fmt.Errorf("restore %s: %w", p.Entry.Name, err)
		}
		slog.Info("restored from trash", "origin", p.Entry.Origin, "version", p.Version, "to", p.Destination)
		restored = append(restored, p.Restored)
	}

	for _, e := range emptied {
		if err := m.config.Layout.RemoveContainer(e.Container); err != nil {
			slog.Warn("failed to remove emptied container", "container", e.Container, "error", err)
		}
	}

	return restored, nil
}

type restorePlan struct {
	Restored
	src string
}

// plan maps every selected version to its destination and checks that the
// move can happen. A snapshot restoring several versions gets each one
// suffixed with its version so that none overwrites another.
func (m *Manager) plan(matches []index.Popped) ([]restorePlan, error) {
	var plans []restorePlan
	for _, p := range matches {
		versions := lo.Uniq(p.Entry.History)
		multi := len(versions) > 1
		for _, v := range versions {
			if !m.config.Layout.Exists(p.Entry.Container, v) {
				return nil, &MissingTargetError{Target: p.Entry.Key.Name, Version: v}
			}
			dst := p.Entry.Key.Origin
			if multi {
				dst = dst + "_" + v
			}
			if _, err := os.Lstat(dst); err == nil && !m.config.Overwrite {
				return nil, &fs.MoveError{
					Op:  "restore",
					Src: m.config.Layout.VersionPath(p.Entry.Container, v),
					Dst: dst,
					Err: fs.ErrDestinationExists,
				}
			}
			plans = append(plans, restorePlan{
				Restored: Restored{Entry: p.Entry.Key, Version: v, Destination: dst},
				src:      m.config.Layout.VersionPath(p.Entry.Container, v),
			})
		}
	}
	return plans, nil
}

// listed adapts an index entry to Filterable
type listed struct {
	index.Entry
}

func (l listed) GetName() string {
	return l.Key.Name
}

func (l listed) GetDeletedAt() (time.Time, bool) {
	return index.VersionTime(l.Newest())
}

// List returns the entries whose name matches the options and that pass the
// configured filters, in index order
func (m *Manager) List(opts ListOptions) ([]index.Entry, error) {
	items := lo.Map(m.index.Entries(), func(e index.Entry, _ int) listed {
		return listed{e}
	})

	items, err := Search(items, opts.Pattern, opts.Glob)
	if err != nil {
		return nil, err
	}
	items = Filter(items, m.config.Filter)

	return lo.Map(items, func(l listed, _ int) index.Entry {
		return l.Entry
	}), nil
}

// Empty permanently removes everything in the trash and returns the number
// of entries removed. Containers that cannot be removed are left behind,
// no longer referenced by the index.
func (m *Manager) Empty() (int, error) {
	slog.Debug("trash.empty started")
	defer slog.Debug("trash.empty finished")

	popped, err := m.index.Pop(index.AnyKey(), index.AllVersions())
	if err != nil {
		if index.IsMissingTargetPredicate(err) {
			return 0, nil
		}
		return 0, err
	}

	var errs []error
	for _, p := range popped {
		if err := m.config.Layout.RemoveContainer(p.Entry.Container); err != nil {
			slog.Error("failed to remove container", "name", p.Entry.Key.Name, "container", p.Entry.Container, "error", err)
			errs = append(errs, err)
		}
	}
	slog.Info("trash emptied", "entries", len(popped))
	return len(popped), errors.Join(errs...)
}
