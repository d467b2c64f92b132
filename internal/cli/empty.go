package cli

import (
	"fmt"
	"log/slog"
)

func (c *CLI) Empty(_ []string) error {
	slog.Debug("cli.empty started")
	defer slog.Debug("cli.empty finished")

	if c.config.Core.Empty.Confirm && !c.option.EmptyOpts.Force {
		if !c.confirm("Permanently delete everything in the trash?") {
			slog.Info("empty cancelled")
			return nil
		}
	}

	n, err := c.manager.Empty()
	if c.config.Core.Delete.Verbose && n > 0 {
		fmt.Fprintf(c.stdout, "removed %d entries\n", n)
	}
	return err
}
