package trash

import (
	"errors"
	"fmt"
	"strings"
)

// InvalidPatternError is returned by List when the search pattern does not
// compile
type InvalidPatternError struct {
	Pattern string
	Glob    bool
	Err     error
}

func (e *InvalidPatternError) Error() string {
	if e.Glob {
		return fmt.Sprintf("invalid glob pattern %q: %v", e.Pattern, e.Err)
	}
	return fmt.Sprintf("invalid regular expression %q: %v", e.Pattern, e.Err)
}

func (e *InvalidPatternError) Unwrap() error {
	return e.Err
}

// MissingTargetError reports a path to delete that does not exist, or a
// trashed version whose artifact is gone
type MissingTargetError struct {
	Target  string
	Version string
}

func (e *MissingTargetError) Error() string {
	if e.Version != "" {
		return fmt.Sprintf("could not locate version %s of '%s'", e.Version, e.Target)
	}
	return fmt.Sprintf("could not locate '%s'", e.Target)
}

// AmbiguousTargetError is returned by Restore when a name is found in
// several origins and the policy forbids restoring all of them
type AmbiguousTargetError struct {
	Name    string
	Origins []string
}

func (e *AmbiguousTargetError) Error() string {
	return fmt.Sprintf("'%s' exists in several locations: %s", e.Name, strings.Join(e.Origins, ", "))
}

// UnsafePathError is returned by Delete for paths that must never be trashed
type UnsafePathError struct {
	Path   string
	Reason string
}

func (e *UnsafePathError) Error() string {
	return fmt.Sprintf("refusing to remove '%s': %s", e.Path, e.Reason)
}

// IsInvalidPattern returns true if err is an *InvalidPatternError
func IsInvalidPattern(err error) bool {
	var e *InvalidPatternError
	return errors.As(err, &e)
}

// IsMissingTarget returns true if err is a *MissingTargetError
func IsMissingTarget(err error) bool {
	var e *MissingTargetError
	return errors.As(err, &e)
}

// IsAmbiguousTarget returns true if err is an *AmbiguousTargetError
func IsAmbiguousTarget(err error) bool {
	var e *AmbiguousTargetError
	return errors.As(err, &e)
}

// IsUnsafePath returns true if err is an *UnsafePathError
func IsUnsafePath(err error) bool {
	var e *UnsafePathError
	return errors.As(err, &e)
}
