package index

import (
	"errors"
	"fmt"
)

// ErrMissingTargetPredicate is returned by Pop and Match when no entry key
// satisfies the key selector
var ErrMissingTargetPredicate = errors.New("no entry satisfies the given conditions")

// Kinds of invalid index content
const (
	KindSyntax       = "syntax"
	KindType         = "type"
	KindContent      = "content"
	KindDuplicateKey = "duplicate-key"
	KindEmptyHistory = "empty-history"
	KindVersion      = "version"
)

// InvalidIndexError reports an index file that could not be decoded.
// Line and Column are 1-based and zero when the position is unknown.
type InvalidIndexError struct {
	Path   string
	Line   int
	Column int
	Kind   string
	Err    error
}

func (e *InvalidIndexError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: invalid index (%s): %v", e.Path, e.Line, e.Column, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: invalid index (%s): %v", e.Path, e.Kind, e.Err)
}

func (e *InvalidIndexError) Unwrap() error {
	return e.Err
}

// IsMissingTargetPredicate reports whether err is ErrMissingTargetPredicate
func IsMissingTargetPredicate(err error) bool {
	return errors.Is(err, ErrMissingTargetPredicate)
}

// IsInvalidIndex reports whether err is an *InvalidIndexError
func IsInvalidIndex(err error) bool {
	var e *InvalidIndexError
	return errors.As(err, &e)
}
