package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/babarot/tman/internal/config"
	"github.com/babarot/tman/internal/index"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/termenv"
)

const timeFormat = "2006-01-02 15:04:05"

// ListOptions controls how PrintList renders entries
type ListOptions struct {
	// Pattern is the search pattern, used for the headings only
	Pattern string

	// Simple prints one name per line with no headings
	Simple bool

	UI config.UI

	// Now is the reference time for relative dates
	Now func() time.Time
}

type glyphs struct {
	bullet, from, version string
}

var (
	unicodeGlyphs = glyphs{bullet: "•", from: "←", version: "→"}
	asciiGlyphs   = glyphs{bullet: "*", from: "<-", version: "->"}
)

// PrintList writes entries with their versions, newest first
func PrintList(w io.Writer, entries []index.Entry, opts ListOptions) error {
	if opts.Simple {
		for _, e := range entries {
			if _, err := fmt.Fprintln(w, e.Key.Name); err != nil {
				return err
			}
		}
		return nil
	}

	r := lipgloss.NewRenderer(w)
	if !opts.UI.UseColors() {
		r.SetColorProfile(termenv.Ascii)
	}
	nameStyle := r.NewStyle().Bold(true)
	originStyle := r.NewStyle().Faint(true).Italic(true)
	dateStyle := r.NewStyle().Faint(true)

	g := asciiGlyphs
	if opts.UI.UseUnicode() {
		g = unicodeGlyphs
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	var lines []string
	if opts.Pattern == "" {
		lines = append(lines, "Showing results in trash.")
	} else {
		lines = append(lines, fmt.Sprintf("Showing results for '%s' in trash.", opts.Pattern))
	}

	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("  %s %s %s %s",
			g.bullet, nameStyle.Render(e.Key.Name), g.from, originStyle.Render(e.Key.Origin)))
		for n := len(e.History) - 1; n >= 0; n-- {
			line := fmt.Sprintf("    %s %s", g.version, e.History[n])
			if date := formatDate(e.History[n], opts.UI.DateFormat, now()); date != "" {
				line += " " + dateStyle.Render("("+date+")")
			}
			lines = append(lines, line)
		}
	}

	if len(entries) == 0 {
		if opts.Pattern == "" {
			lines = append(lines, "Your trash is empty!")
		} else {
			lines = append(lines, fmt.Sprintf("No results for '%s'.", opts.Pattern))
		}
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// formatDate returns the deletion time of a version, or "" when the version
// carries no time or dates are turned off
func formatDate(version, format string, now time.Time) string {
	if format == config.DateNone {
		return ""
	}
	t, ok := index.VersionTime(version)
	if !ok {
		return ""
	}
	if format == config.DateAbsolute {
		return t.Local().Format(timeFormat)
	}
	return humanize.RelTime(t, now, "ago", "from now")
}
