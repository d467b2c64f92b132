package cli

import (
	"fmt"
	"log/slog"

	"al.essio.dev/pkg/shellescape"
	"github.com/babarot/tman/internal/trash"
)

func (c *CLI) Restore(args []string) error {
	slog.Debug("cli.restore started")
	defer slog.Debug("cli.restore finished")

	restored, err := c.manager.Restore(trash.RestoreRequest{
		Name:    args[0],
		Origin:  c.option.RestoreOpts.Origin,
		Version: c.option.RestoreOpts.Version,
	})
	if c.config.Core.Restore.Verbose {
		for _, r := range restored {
			fmt.Fprintf(c.stdout, "restored %s to %s\n",
				shellescape.Quote(r.Entry.Name), shellescape.Quote(r.Destination))
		}
	}
	return err
}
