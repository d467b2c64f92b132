package cli

import (
	"log/slog"

	"github.com/babarot/tman/internal/trash"
	"github.com/babarot/tman/internal/ui"
)

func (c *CLI) List(_ []string) error {
	slog.Debug("cli.list started")
	defer slog.Debug("cli.list finished")

	opts := c.option.ListOpts
	entries, err := c.manager.List(trash.ListOptions{Pattern: opts.Pattern, Glob: opts.Glob})
	if err != nil {
		return err
	}
	return ui.PrintList(c.stdout, entries, ui.ListOptions{
		Pattern: opts.Pattern,
		Simple:  opts.Simple,
		UI:      c.config.UI,
	})
}
