package main

import (
	"os"

	"github.com/babarot/tman/internal/cli"
	"github.com/babarot/tman/internal/ui"
)

const appName = "tman"

// These variables are set in build step
var (
	version   = "unset"
	revision  = "unset"
	buildDate = "unset"
)

func main() {
	app := cli.New(cli.Version{
		AppName:   appName,
		Version:   version,
		Revision:  revision,
		BuildDate: buildDate,
	})
	if err := app.Run(os.Args[1:]); err != nil {
		ui.PrintError(os.Stderr, err, app.UseColors())
		os.Exit(1)
	}
}
