package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/babarot/tman/internal/config"
	"github.com/babarot/tman/internal/fs"
	"github.com/babarot/tman/internal/index"
	"github.com/babarot/tman/internal/trash"
	"github.com/fatih/color"
)

// Describe turns an error into the short description shown to the user
func Describe(err error) string {
	var (
		invalidIndex   *index.InvalidIndexError
		invalidPattern *trash.InvalidPatternError
		missing        *trash.MissingTargetError
		ambiguous      *trash.AmbiguousTargetError
		unsafe         *trash.UnsafePathError
		parsing        config.ParsingError
		move           *fs.MoveError
	)

	switch {
	case errors.As(err, &invalidIndex):
		if invalidIndex.Line > 0 {
			return fmt.Sprintf("syntax error on line %d, column %d, of %s",
				invalidIndex.Line, invalidIndex.Column, invalidIndex.Path)
		}
		return fmt.Sprintf("invalid index %s: %s", invalidIndex.Path, invalidIndex.Kind)
	case errors.As(err, &parsing):
		return parsing.Error()
	case errors.As(err, &invalidPattern):
		if invalidPattern.Glob {
			return "invalid glob pattern"
		}
		return "syntax error in regular expression"
	case errors.As(err, &missing):
		return missing.Error()
	case index.IsMissingTargetPredicate(err):
		return "could not locate any target satisfying given conditions"
	case errors.As(err, &ambiguous):
		return fmt.Sprintf("'%s' exists in several locations, pass --origin", ambiguous.Name)
	case errors.As(err, &unsafe):
		return unsafe.Error()
	case fs.IsDestinationExists(err) && errors.As(err, &move):
		return fmt.Sprintf("'%s' already exists", move.Dst)
	case fs.IsCrossDevice(err):
		return "cannot move across devices, set core.delete.allow_cross_device"
	}
	return err.Error()
}

// PrintError writes the one-line error report:
//
//	tman: error: could not locate 'a.txt'!
func PrintError(w io.Writer, err error, colors bool) {
	c := color.New(color.FgRed, color.Bold)
	if colors {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	desc := strings.TrimRight(strings.TrimSpace(Describe(err)), ".!")
	fmt.Fprintf(w, "tman: %s: %s!\n", c.Sprint("error"), desc)
}
