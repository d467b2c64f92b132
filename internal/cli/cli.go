// Package cli parses the command line and runs one trash action
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/babarot/tman/internal/config"
	"github.com/babarot/tman/internal/env"
	"github.com/babarot/tman/internal/index"
	"github.com/babarot/tman/internal/storage"
	"github.com/babarot/tman/internal/trash"
	"github.com/babarot/tman/internal/ui"
	"github.com/babarot/tman/internal/utils/debug"
	"github.com/babarot/tman/internal/utils/log"
	"github.com/jessevdk/go-flags"
	"github.com/mattn/go-isatty"
	"github.com/rs/xid"
)

type Option struct {
	Delete  bool   `short:"D" long:"delete" description:"Move files to the trash"`
	Restore bool   `short:"R" long:"restore" description:"Restore a file from the trash"`
	List    bool   `short:"L" long:"list" description:"List items in the trash"`
	Empty   bool   `short:"E" long:"empty" description:"Permanently delete everything in the trash"`
	Config  string `long:"config" description:"Path to config file" default:""`

	RestoreOpts RestoreOption `group:"Restore Options"`
	ListOpts    ListOption    `group:"List Options"`
	EmptyOpts   EmptyOption   `group:"Empty Options"`
	Meta        MetaOption    `group:"Meta Options"`
}

type RestoreOption struct {
	Origin  string `short:"o" long:"origin" value-name:"PATH" description:"Restore the entry deleted from PATH"`
	Version string `short:"v" long:"version" value-name:"VERSION" description:"Version to restore: a version, \"latest\" (default) or \"all\""`
}

type ListOption struct {
	Pattern string `short:"p" long:"pattern" value-name:"PATTERN" description:"Only list names matching the regular expression"`
	Glob    bool   `short:"g" long:"glob" description:"Treat the pattern as a glob"`
	Simple  bool   `short:"s" long:"simple" description:"Print names only"`
}

type EmptyOption struct {
	Force bool `short:"f" long:"force" description:"Do not ask for confirmation"`
}

type MetaOption struct {
	Version bool   `short:"V" long:"show-version" description:"Show version"`
	Debug   string `long:"debug" description:"View debug logs (default: \"full\")" optional-value:"full" optional:"yes" choice:"full" choice:"live"`
}

type CLI struct {
	version Version
	option  Option
	config  config.Config
	paths   env.Paths
	index   *index.Index
	manager *trash.Manager

	stdout  io.Writer
	confirm func(prompt string) bool
}

var runID = sync.OnceValue(func() string {
	return xid.New().String()
})

// New returns a CLI writing to stdout and asking for confirmation on the
// terminal
func New(v Version) *CLI {
	return &CLI{
		version: v,
		config:  config.Default(),
		stdout:  os.Stdout,
		confirm: func(prompt string) bool { return ui.Confirm(prompt) },
	}
}

// UseColors reports whether errors may be printed in colour
func (c *CLI) UseColors() bool {
	return c.config.UI.UseColors() && isatty.IsTerminal(os.Stderr.Fd())
}

// Run parses args and runs the selected action. The index is written back
// when the action succeeded, or when it failed without leaving the index
// out of step with the trash.
func (c *CLI) Run(args []string) error {
	parser := flags.NewParser(&c.option, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = c.version.AppName
	parser.Usage = "<-D FILE... | -R NAME [-o PATH] [-v VERSION] | -L [-p PATTERN] [-g] [-s] | -E [-f]>"
	args, err := parser.ParseArgs(args)
	if err != nil {
		if flags.WroteHelp(err) {
			fmt.Fprintln(c.stdout, err)
			return nil
		}
		return &ArgumentsError{Reason: err.Error()}
	}

	if c.option.Meta.Version {
		fmt.Fprint(c.stdout, c.version.Print())
		return nil
	}

	act, err := c.action(args)
	if err != nil {
		return err
	}

	cfg, err := config.Parse(c.option.Config)
	if err != nil {
		return err
	}
	c.config = cfg
	c.paths = env.Resolve(cfg.Core.TrashDir)

	if c.option.Meta.Debug != "" {
		return debug.Logs(c.stdout, c.paths.LogFile, cfg.Logging.Enabled, c.option.Meta.Debug == "live")
	}

	closeLog, err := c.setupLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	slog.Debug("cli.run started", "version", c.version.Version, "revision", c.version.Revision)
	defer slog.Debug("cli.run finished")

	if err := c.open(); err != nil {
		return err
	}

	err = act(args)
	if err != nil {
		slog.Error("action failed", "error", err, "consistent", c.manager.Consistent())
	}
	if err == nil || c.manager.Consistent() {
		if cerr := c.index.Commit(c.paths.IndexFile); cerr != nil {
			slog.Error("failed to commit index", "path", c.paths.IndexFile, "error", cerr)
			if err == nil {
				err = cerr
			}
		}
	}
	return err
}

// setupLogger sends slog output to the rotated log file, or nowhere when
// logging is turned off
func (c *CLI) setupLogger() (func(), error) {
	if !c.config.Logging.Enabled {
		slog.SetDefault(log.Discard())
		return func() {}, nil
	}

	level, err := log.ParseLevel(c.config.Logging.Level)
	if err != nil {
		return nil, err
	}
	w, err := log.NewRotateWriter(c.paths.LogFile, c.config.Logging.Rotation)
	if err != nil {
		// run without logging rather than fail
		slog.SetDefault(log.Discard())
		return func() {}, nil
	}

	logger, _ := log.New(
		log.UseLevel(level),
		log.UseOutput(w),
		log.UseReportCaller(true),
		log.UseReportTimestamp(true),
		log.AsDefault(),
	)
	slog.SetDefault(logger.With("run_id", runID()))
	return func() { _ = w.Close() }, nil
}

// open loads the index and builds the manager over it
func (c *CLI) open() error {
	newVersion, err := index.NewVersionFunc(c.config.Core.VersionScheme)
	if err != nil {
		return err
	}
	idx, err := index.Load(c.paths.IndexFile, index.WithVersionFunc(newVersion))
	if err != nil {
		return err
	}

	layout := storage.Layout{Root: c.paths.StorageDir}
	manager, err := trash.NewManager(trash.NewConfig(c.config, layout, c.paths.DataDir), idx)
	if err != nil {
		return err
	}

	c.index = idx
	c.manager = manager
	return nil
}

// action picks the single requested action and checks that only options
// belonging to it were given
func (c *CLI) action(args []string) (func([]string) error, error) {
	o := c.option
	selected := 0
	for _, on := range []bool{o.Delete, o.Restore, o.List, o.Empty, o.Meta.Debug != ""} {
		if on {
			selected++
		}
	}
	switch {
	case selected == 0:
		return nil, &ArgumentsError{Reason: "no action given"}
	case selected > 1:
		return nil, &ArgumentsError{Reason: "actions conflict"}
	}

	restoreOpts := o.RestoreOpts != RestoreOption{}
	listOpts := o.ListOpts != ListOption{}
	emptyOpts := o.EmptyOpts != EmptyOption{}

	switch {
	case o.Delete:
		if restoreOpts || listOpts || emptyOpts {
			return nil, &ArgumentsError{Reason: "--delete takes no options"}
		}
		if len(args) == 0 {
			return nil, &ArgumentsError{Reason: "--delete needs at least one file"}
		}
		return c.Delete, nil
	case o.Restore:
		if listOpts || emptyOpts {
			return nil, &ArgumentsError{Reason: "--restore only takes --origin and --version"}
		}
		if len(args) != 1 {
			return nil, &ArgumentsError{Reason: "--restore needs exactly one name"}
		}
		return c.Restore, nil
	case o.List:
		if restoreOpts || emptyOpts {
			return nil, &ArgumentsError{Reason: "--list only takes --pattern, --glob and --simple"}
		}
		if len(args) != 0 {
			return nil, &ArgumentsError{Reason: "--list takes no arguments"}
		}
		return c.List, nil
	case o.Empty:
		if restoreOpts || listOpts {
			return nil, &ArgumentsError{Reason: "--empty only takes --force"}
		}
		if len(args) != 0 {
			return nil, &ArgumentsError{Reason: "--empty takes no arguments"}
		}
		return c.Empty, nil
	}

	// --debug
	if restoreOpts || listOpts || emptyOpts || len(args) != 0 {
		return nil, &ArgumentsError{Reason: "--debug takes no arguments"}
	}
	return nil, nil
}
