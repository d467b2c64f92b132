package ui

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/babarot/tman/internal/config"
	"github.com/babarot/tman/internal/fs"
	"github.com/babarot/tman/internal/index"
	"github.com/babarot/tman/internal/trash"
	"github.com/stretchr/testify/assert"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "index syntax error",
			err:  &index.InvalidIndexError{Path: "/d/index.json", Line: 3, Column: 7, Kind: index.KindSyntax},
			want: "syntax error on line 3, column 7, of /d/index.json",
		},
		{
			name: "index content error",
			err:  fmt.Errorf("load: %w", &index.InvalidIndexError{Path: "/d/index.json", Kind: index.KindDuplicateKey}),
			want: "invalid index /d/index.json: duplicate-key",
		},
		{
			name: "regular expression",
			err:  &trash.InvalidPatternError{Pattern: "(", Err: errors.New("missing )")},
			want: "syntax error in regular expression",
		},
		{
			name: "glob",
			err:  &trash.InvalidPatternError{Pattern: "[", Glob: true, Err: errors.New("bad")},
			want: "invalid glob pattern",
		},
		{
			name: "missing target",
			err:  &trash.MissingTargetError{Target: "a.txt"},
			want: "could not locate 'a.txt'",
		},
		{
			name: "missing target predicate",
			err:  fmt.Errorf("restore: %w", index.ErrMissingTargetPredicate),
			want: "could not locate any target satisfying given conditions",
		},
		{
			name: "ambiguous",
			err:  &trash.AmbiguousTargetError{Name: "a.txt", Origins: []string{"/x/a.txt", "/y/a.txt"}},
			want: "'a.txt' exists in several locations, pass --origin",
		},
		{
			name: "destination exists",
			err:  fmt.Errorf("restore a.txt: %w", &fs.MoveError{Op: "restore", Dst: "/x/a.txt", Err: fs.ErrDestinationExists}),
			want: "'/x/a.txt' already exists",
		},
		{
			name: "config",
			err:  config.ParsingError{Path: "/c.yaml"},
			want: config.ParsingError{Path: "/c.yaml"}.Error(),
		},
		{
			name: "anything else",
			err:  errors.New("disk on fire"),
			want: "disk on fire",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Describe(tt.err))
		})
	}
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	PrintError(&buf, &trash.MissingTargetError{Target: "a.txt"}, false)
	assert.Equal(t, "tman: error: could not locate 'a.txt'!\n", buf.String())

	buf.Reset()
	PrintError(&buf, errors.New("invalid arguments."), false)
	assert.Equal(t, "tman: error: invalid arguments!\n", buf.String())

	buf.Reset()
	PrintError(&buf, errors.New("boom"), true)
	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "boom!")
}
