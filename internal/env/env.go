// Package env resolves where tman keeps its files
package env

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

const appName = "tman"

// Environment variables overriding the default locations
const (
	ConfigPathEnv = "TMAN_CONFIG_PATH"
	HomeEnv       = "TMAN_HOME"
	LogPathEnv    = "TMAN_LOG_PATH"
)

// Paths holds every location used during a run
type Paths struct {
	ConfigFile string
	DataDir    string
	IndexFile  string
	StorageDir string
	LogFile    string
}

// ConfigPath returns the config file location, following
// https://specifications.freedesktop.org/basedir-spec/latest/ unless
// TMAN_CONFIG_PATH is set
func ConfigPath() string {
	if p := os.Getenv(ConfigPathEnv); p != "" {
		return p
	}
	return filepath.Join(xdg.ConfigHome, appName, "config.yaml")
}

// Resolve computes all paths. dataDir, usually the configured trash_dir,
// takes precedence over TMAN_HOME and the XDG data directory when set.
func Resolve(dataDir string) Paths {
	if dataDir == "" {
		dataDir = os.Getenv(HomeEnv)
	}
	if dataDir == "" {
		dataDir = filepath.Join(xdg.DataHome, appName)
	}
	dataDir = absolute(expandHome(dataDir))

	logFile := os.Getenv(LogPathEnv)
	if logFile == "" {
		logFile = filepath.Join(dataDir, "debug.log")
	}
	logFile = absolute(logFile)

	return Paths{
		ConfigFile: ConfigPath(),
		DataDir:    dataDir,
		IndexFile:  filepath.Join(dataDir, "index.json"),
		StorageDir: filepath.Join(dataDir, "data"),
		LogFile:    logFile,
	}
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	return filepath.Join(xdg.Home, strings.TrimPrefix(path, "~"))
}

// absolute returns path made absolute against the working directory, or
// path itself when the working directory is unknown
func absolute(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
