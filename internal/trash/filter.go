package trash

import (
	"log/slog"
	"regexp"
	"time"

	"github.com/babarot/tman/internal/config"
	"github.com/gobwas/glob"
	"github.com/k1LoW/duration"
	"github.com/samber/lo"
)

// Filterable defines the interface that listed items must implement to be filtered
type Filterable interface {
	// GetName returns the original name of the file
	GetName() string
	// GetDeletedAt returns when the newest version was trashed
	GetDeletedAt() (time.Time, bool)
}

// FilterOptions holds filtering configuration
type FilterOptions struct {
	Include config.IncludeConfig
	Exclude config.ExcludeConfig
}

// Filter applies filtering rules to a slice of items
func Filter[T Filterable](items []T, opts FilterOptions) []T {
	// Filter by filename exclusions
	items = rejectByNames(items, opts.Exclude.Files)

	// Filter by patterns
	items = rejectByPatterns(items, opts.Exclude.Patterns)

	// Filter by globs
	items = rejectByGlobs(items, opts.Exclude.Globs)

	// Filter by time period
	items = filterByPeriod(items, opts.Include.Within, time.Now())

	return items
}

// Search keeps the items whose name matches pattern, a regular expression
// or a glob. An empty pattern keeps everything.
func Search[T Filterable](items []T, pattern string, useGlob bool) ([]T, error) {
	if pattern == "" {
		return items, nil
	}

	var match func(string) bool
	if useGlob {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, &InvalidPatternError{Pattern: pattern, Glob: true, Err: err}
		}
		match = g.Match
	} else {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, &InvalidPatternError{Pattern: pattern, Err: err}
		}
		match = re.MatchString
	}

	return lo.Filter(items, func(item T, _ int) bool {
		return match(item.GetName())
	}), nil
}

func rejectByNames[T Filterable](items []T, excludeFiles []string) []T {
	if len(excludeFiles) == 0 {
		return items
	}
	return lo.Reject(items, func(item T, _ int) bool {
		return lo.Contains(excludeFiles, item.GetName())
	})
}

func rejectByPatterns[T Filterable](items []T, patterns []string) []T {
	if len(patterns) == 0 {
		return items
	}
	res := lo.FilterMap(patterns, func(p string, _ int) (*regexp.Regexp, bool) {
		re, err := regexp.Compile(p)
		if err != nil {
			slog.Warn("skipping invalid exclude pattern", "pattern", p, "error", err)
		}
		return re, err == nil
	})
	return lo.Reject(items, func(item T, _ int) bool {
		return lo.SomeBy(res, func(re *regexp.Regexp) bool {
			return re.MatchString(item.GetName())
		})
	})
}

func rejectByGlobs[T Filterable](items []T, globs []string) []T {
	if len(globs) == 0 {
		return items
	}
	gs := lo.FilterMap(globs, func(p string, _ int) (glob.Glob, bool) {
		g, err := glob.Compile(p)
		if err != nil {
			slog.Warn("skipping invalid exclude glob", "glob", p, "error", err)
		}
		return g, err == nil
	})
	return lo.Reject(items, func(item T, _ int) bool {
		return lo.SomeBy(gs, func(g glob.Glob) bool {
			return g.Match(item.GetName())
		})
	})
}

// filterByPeriod keeps the items trashed within the period. Items whose
// trash time is unknown are kept.
func filterByPeriod[T Filterable](items []T, within string, now time.Time) []T {
	if within == "" {
		return items
	}

	d, err := duration.Parse(within)
	if err != nil {
		slog.Error("failed to parse duration", "within", within, "error", err)
		return items
	}

	return lo.Filter(items, func(item T, _ int) bool {
		at, ok := item.GetDeletedAt()
		return !ok || now.Sub(at) < d
	})
}
