// Package debug prints the log file for --debug
package debug

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/babarot/tman/internal/utils/log"
	"github.com/mattn/go-isatty"
	"github.com/nxadm/tail"
)

// Logs displays logs either by showing existing content or following new entries
func Logs(w io.Writer, path string, enabled, live bool) error {
	if live {
		return tailLiveLogs(w, path, enabled)
	}
	return showExistingLogs(w, path, enabled)
}

// tailLiveLogs follows log entries in real-time
func tailLiveLogs(w io.Writer, path string, enabled bool) error {
	// For live mode without logging enabled, return error
	if !enabled {
		return fmt.Errorf("logging is not enabled in config: enable logging in config for live debugging")
	}

	shouldFollow := isatty.IsTerminal(os.Stdout.Fd())
	tailConfig := tail.Config{
		ReOpen: shouldFollow,
		Follow: shouldFollow,
		Poll:   true,
		Logger: tail.DiscardingLogger,
		Location: &tail.SeekInfo{
			Offset: 0,
			Whence: io.SeekEnd,
		},
	}

	t, err := tail.TailFile(path, tailConfig)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("log file does not exist: try running some commands with logging enabled")
		}
		return err
	}
	defer t.Cleanup()

	slog.Info("live tail started", "path", path)
	if shouldFollow {
		fmt.Fprintln(os.Stderr, log.Highlight("following "+path))
	}

	for line := range t.Lines {
		fmt.Fprintln(w, line.Text)
	}

	return t.Err()
}

// showExistingLogs displays the current content of the log file
func showExistingLogs(w io.Writer, path string, enabled bool) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if !enabled {
			return fmt.Errorf("logging is not enabled in config: enable logging to create log files")
		}
		return fmt.Errorf("no log file exists yet: try running some commands first")
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fmt.Fprintln(w, scanner.Text())
	}

	return scanner.Err()
}
