package index

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/xid"
)

// Version schemes
const (
	SchemeTimestamp = "timestamp"
	SchemeXID       = "xid"
)

// VersionLayout is the time layout of timestamp versions. It sorts
// lexically in chronological order and is safe to use as a file name.
const VersionLayout = "20060102T150405.000000000"

// TimestampVersions returns a generator of UTC timestamp versions. Values
// are strictly increasing: when the clock stalls or goes backwards the
// previous value is advanced by a nanosecond. A nil clock means time.Now.
func TimestampVersions(clock func() time.Time) func() string {
	if clock == nil {
		clock = time.Now
	}
	var (
		mu   sync.Mutex
		last time.Time
	)
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		now := clock().UTC()
		if !now.After(last) {
			now = last.Add(time.Nanosecond)
		}
		last = now
		return now.Format(VersionLayout)
	}
}

// XIDVersions returns a generator of globally unique, time ordered ids
func XIDVersions() func() string {
	return func() string {
		return xid.New().String()
	}
}

// NewVersionFunc returns the generator for the named scheme
func NewVersionFunc(scheme string) (func() string, error) {
	switch scheme {
	case "", SchemeTimestamp:
		return TimestampVersions(nil), nil
	case SchemeXID:
		return XIDVersions(), nil
	default:
		return nil, fmt.Errorf("unknown version scheme: %q", scheme)
	}
}

// VersionTime recovers when a version was created. It understands both
// schemes and reports false for anything else.
func VersionTime(v string) (time.Time, bool) {
	if t, err := time.ParseInLocation(VersionLayout, v, time.UTC); err == nil {
		return t, true
	}
	if id, err := xid.FromString(v); err == nil {
		return id.Time(), true
	}
	return time.Time{}, false
}
