package index

import "strings"

type keyKind int

const (
	keyAny keyKind = iota
	keyName
	keyNameOrigin
)

// KeySelector chooses the entries an operation applies to
type KeySelector struct {
	kind   keyKind
	name   string
	origin string
}

// AnyKey matches every entry
func AnyKey() KeySelector {
	return KeySelector{kind: keyAny}
}

// ByName matches entries with the given file name, wherever they came from
func ByName(name string) KeySelector {
	return KeySelector{kind: keyName, name: name}
}

// ByNameAndOrigin matches the single entry with the given key
func ByNameAndOrigin(name, origin string) KeySelector {
	return KeySelector{kind: keyNameOrigin, name: name, origin: origin}
}

// Match reports whether k is selected
func (s KeySelector) Match(k Key) bool {
	switch s.kind {
	case keyName:
		return k.Name == s.name
	case keyNameOrigin:
		return k.Name == s.name && k.Origin == s.origin
	default:
		return true
	}
}

func (s KeySelector) String() string {
	switch s.kind {
	case keyName:
		return "name=" + s.name
	case keyNameOrigin:
		return "name=" + s.name + ",origin=" + s.origin
	default:
		return "any"
	}
}

type versionKind int

const (
	versionNewest versionKind = iota
	versionAll
	versionExact
)

// Words understood by ParseVersionSelector
const (
	SelectAll    = "all"
	SelectNewest = "newest"
	SelectLatest = "latest"
)

// VersionSelector chooses versions within a selected entry. The zero value
// selects the newest version.
type VersionSelector struct {
	kind    versionKind
	version string
}

// AllVersions selects the whole history
func AllVersions() VersionSelector {
	return VersionSelector{kind: versionAll}
}

// NewestVersion selects the last appended version
func NewestVersion() VersionSelector {
	return VersionSelector{kind: versionNewest}
}

// ExactVersion selects every version equal to v
func ExactVersion(v string) VersionSelector {
	return VersionSelector{kind: versionExact, version: v}
}

// ParseVersionSelector turns a user supplied selector into a VersionSelector.
// An empty string, "newest" and "latest" select the newest version, "all"
// selects every version and anything else is taken as a version identifier.
func ParseVersionSelector(s string) VersionSelector {
	switch strings.TrimSpace(s) {
	case "", SelectNewest, SelectLatest:
		return NewestVersion()
	case SelectAll:
		return AllVersions()
	default:
		return ExactVersion(s)
	}
}

// IsAll reports whether every version is selected
func (s VersionSelector) IsAll() bool {
	return s.kind == versionAll
}

func (s VersionSelector) String() string {
	switch s.kind {
	case versionAll:
		return SelectAll
	case versionExact:
		return s.version
	default:
		return SelectNewest
	}
}

// split partitions history into the selected and the remaining versions.
// Both results are freshly allocated and keep chronological order.
func (s VersionSelector) split(history []string) (removed, kept []string) {
	removed = []string{}
	kept = make([]string, 0, len(history))

	switch s.kind {
	case versionAll:
		removed = append(removed, history...)
	case versionNewest:
		if len(history) > 0 {
			kept = append(kept, history[:len(history)-1]...)
			removed = append(removed, history[len(history)-1])
		}
	case versionExact:
		for _, v := range history {
			if v == s.version {
				removed = append(removed, v)
				continue
			}
			kept = append(kept, v)
		}
	}
	return removed, kept
}
