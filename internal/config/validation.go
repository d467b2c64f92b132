package config

import (
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/docker/go-units"
	"github.com/go-playground/validator/v10"
	"github.com/gobwas/glob"
	"github.com/k1LoW/duration"
)

// validateSize validates the size format (e.g., "10MB", "1GB")
func validateSize(fl validator.FieldLevel) bool {
	value := strings.ToUpper(fl.Field().String())
	re := regexp.MustCompile(`^\d+(KB|MB|GB|TB|PB)$`)
	if !re.MatchString(value) {
		return false
	}
	_, err := units.FromHumanSize(value)
	return err == nil
}

// validateScheme validates the version identifier scheme
func validateScheme(fl validator.FieldLevel) bool {
	value := strings.ToLower(fl.Field().String())
	return slices.Contains([]string{"timestamp", "xid"}, value)
}

// validateDuration accepts anything k1LoW/duration understands, e.g. "30 days"
func validateDuration(fl validator.FieldLevel) bool {
	d, err := duration.Parse(fl.Field().String())
	return err == nil && d > 0
}

func validateRegexp(fl validator.FieldLevel) bool {
	_, err := regexp.Compile(fl.Field().String())
	return err == nil
}

func validateGlob(fl validator.FieldLevel) bool {
	_, err := glob.Compile(fl.Field().String())
	return err == nil
}

// expandPath expands environment variables and "~" in paths
func expandPath(path string) (string, error) {
	// Expand "~" to home directory
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[2:])
	}

	// Expand environment variables
	path = os.ExpandEnv(path)

	// Convert to absolute path
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return abs, nil
}

// validateDirPath is a validation function for directory paths that works on any OS.
// This custom validator was created because the standard "dirpath" validator in go-playground/validator
// incorrectly marks some valid paths as invalid, particularly on Windows. For example:
// - "C:\Users\name\.dir" (marked invalid even though it's a valid Windows path)
// - "C:\Users\name\.dir\" (marked invalid even with trailing separator)
//
// Empty strings are considered invalid.
func validateDirPath(fl validator.FieldLevel) bool {
	path := strings.TrimSpace(fl.Field().String())
	if path == "" {
		return false
	}

	cleanPath := filepath.Clean(path)

	// If path exists, verify that it is a directory
	fi, err := os.Stat(cleanPath)
	if err == nil {
		return fi.IsDir()
	}

	// Path doesn't exist but format is valid
	if os.IsNotExist(err) {
		return true
	}

	// Path error indicates possible OS constraint violation
	if _, ok := err.(*os.PathError); ok {
		return false
	}

	return true
}
