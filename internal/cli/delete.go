package cli

import (
	"fmt"
	"log/slog"

	"al.essio.dev/pkg/shellescape"
)

func (c *CLI) Delete(args []string) error {
	slog.Debug("cli.delete started")
	defer slog.Debug("cli.delete finished")

	deleted, err := c.manager.Delete(args...)
	if c.config.Core.Delete.Verbose {
		for _, d := range deleted {
			if d.Directory {
				fmt.Fprintf(c.stdout, "removed directory %s\n", shellescape.Quote(d.Path))
			} else {
				fmt.Fprintf(c.stdout, "removed %s\n", shellescape.Quote(d.Path))
			}
		}
	}
	return err
}
