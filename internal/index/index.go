// Package index keeps track of every file in the trash and all of its
// trashed versions.
package index

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/k0kubun/pp/v3"
)

// Key identifies one logical file in the trash
type Key struct {
	Name   string `json:"name"`
	Origin string `json:"origin"`
}

// Entry is a file in the trash together with its versions, oldest first.
// All versions of an entry are stored under the directory named after
// Container.
type Entry struct {
	Key       Key       `json:"key"`
	Container uuid.UUID `json:"container_id"`
	History   []string  `json:"history"`
}

// Newest returns the most recently appended version
func (e Entry) Newest() string {
	if len(e.History) == 0 {
		return ""
	}
	return e.History[len(e.History)-1]
}

func (e Entry) String() string {
	p := pp.New()
	p.SetColoringEnabled(false)
	return p.Sprint(e)
}

func (e Entry) clone() Entry {
	history := make([]string, len(e.History))
	copy(history, e.History)
	return Entry{Key: e.Key, Container: e.Container, History: history}
}

// Popped is the result of a pop on a single entry. Entry holds only the
// versions that were taken out. Emptied reports whether the entry had no
// versions left and was dropped from the index.
type Popped struct {
	Emptied bool
	Entry   Entry
}

// Index is the in-memory set of trash entries. Keys are unique and entries
// keep their insertion order.
type Index struct {
	entries []*Entry

	newVersion   func() string
	newContainer func() uuid.UUID
}

type Option func(*Index)

// WithVersionFunc sets the generator used for new version identifiers
func WithVersionFunc(f func() string) Option {
	return func(i *Index) {
		i.newVersion = f
	}
}

// WithContainerFunc sets the generator used for new container ids
func WithContainerFunc(f func() uuid.UUID) Option {
	return func(i *Index) {
		i.newContainer = f
	}
}

// New creates an empty index
func New(opts ...Option) *Index {
	i := &Index{
		newVersion:   TimestampVersions(nil),
		newContainer: uuid.New,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Push records a new version of the file identified by name and origin.
// The entry is created when the key has not been seen before. It returns
// the container the version belongs to and the version itself.
func (i *Index) Push(name, origin string) (uuid.UUID, string) {
	key := Key{Name: name, Origin: origin}
	version := i.newVersion()

	if e := i.find(key); e != nil {
		e.History = append(e.History, version)
		slog.Debug("index: version appended", "name", name, "origin", origin, "versions", len(e.History))
		return e.Container, version
	}

	e := &Entry{
		Key:       key,
		Container: i.newContainer(),
		History:   []string{version},
	}
	i.entries = append(i.entries, e)
	slog.Debug("index: entry created", "name", name, "origin", origin, "container", e.Container)
	return e.Container, version
}

// Match reports what Pop would remove with the same selectors without
// touching the index.
func (i *Index) Match(ks KeySelector, vs VersionSelector) ([]Popped, error) {
	var popped []Popped
	for _, e := range i.entries {
		if !ks.Match(e.Key) {
			continue
		}
		removed, kept := vs.split(e.History)
		popped = append(popped, Popped{
			Emptied: len(kept) == 0,
			Entry:   Entry{Key: e.Key, Container: e.Container, History: removed},
		})
	}
	if len(popped) == 0 {
		return nil, ErrMissingTargetPredicate
	}
	return popped, nil
}

// Pop removes the versions chosen by vs from every entry whose key matches
// ks. Entries left without versions are dropped. It fails with
// ErrMissingTargetPredicate, leaving the index as it was, when no key
// matches.
func (i *Index) Pop(ks KeySelector, vs VersionSelector) ([]Popped, error) {
	popped, err := i.Match(ks, vs)
	if err != nil {
		return nil, err
	}

	kept := i.entries[:0]
	for _, e := range i.entries {
		if ks.Match(e.Key) {
			_, e.History = vs.split(e.History)
			if len(e.History) == 0 {
				slog.Debug("index: entry emptied", "name", e.Key.Name, "origin", e.Key.Origin)
				continue
			}
		}
		kept = append(kept, e)
	}
	for n := len(kept); n < len(i.entries); n++ {
		i.entries[n] = nil
	}
	i.entries = kept

	return popped, nil
}

// Entries returns a copy of all entries in insertion order
func (i *Index) Entries() []Entry {
	entries := make([]Entry, 0, len(i.entries))
	for _, e := range i.entries {
		entries = append(entries, e.clone())
	}
	return entries
}

// Len returns the number of entries
func (i *Index) Len() int {
	return len(i.entries)
}

func (i *Index) find(key Key) *Entry {
	for _, e := range i.entries {
		if e.Key == key {
			return e
		}
	}
	return nil
}
