package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/babarot/tman/internal/env"
	"github.com/go-playground/validator/v10"
	"github.com/muesli/reflow/indent"
	"gopkg.in/yaml.v2"
)

var validate *validator.Validate

type Config struct {
	Core    Core    `yaml:"core"`
	UI      UI      `yaml:"ui"`
	List    List    `yaml:"list"`
	Logging Logging `yaml:"logging"`
}

type Core struct {
	TrashDir      string  `yaml:"trash_dir" validate:"omitempty,validDirPath"`
	VersionScheme string  `yaml:"version_scheme" validate:"required,validScheme"`
	Delete        Delete  `yaml:"delete"`
	Restore       Restore `yaml:"restore"`
	Empty         Empty   `yaml:"empty"`
}

type Delete struct {
	Verbose          bool `yaml:"verbose"`
	AllowCrossDevice bool `yaml:"allow_cross_device"`
}

// Restore policies for a name found in several locations
const (
	OnAmbiguousAll  = "all"
	OnAmbiguousFail = "fail"
)

type Restore struct {
	Verbose     bool   `yaml:"verbose"`
	Overwrite   bool   `yaml:"overwrite"`
	OnAmbiguous string `yaml:"on_ambiguous" validate:"required,oneof=all fail"`
}

type Empty struct {
	Confirm bool `yaml:"confirm"`
}

// Date formats of the listing
const (
	DateRelative = "relative"
	DateAbsolute = "absolute"
	DateNone     = "none"
)

// UI holds terminal output settings
type UI struct {
	Unicode    bool   `yaml:"use_unicode"`
	Colors     bool   `yaml:"use_colors"`
	DateFormat string `yaml:"date_format" validate:"required,oneof=relative absolute none"`
}

// UseUnicode reports whether output may contain non-ASCII glyphs
func (u UI) UseUnicode() bool { return u.Unicode }

// UseColors reports whether output may be coloured
func (u UI) UseColors() bool { return u.Colors }

type List struct {
	Include IncludeConfig `yaml:"include"`
	Exclude ExcludeConfig `yaml:"exclude"`
}

type IncludeConfig struct {
	Within string `yaml:"within" validate:"omitempty,validDuration"`
}

type ExcludeConfig struct {
	Files    []string `yaml:"files"`
	Patterns []string `yaml:"patterns" validate:"dive,validRegexp"`
	Globs    []string `yaml:"globs" validate:"dive,validGlob"`
}

type Logging struct {
	Enabled  bool     `yaml:"enabled"`
	Level    string   `yaml:"level" validate:"required,oneof=debug info warn error"`
	Rotation Rotation `yaml:"rotation"`
}

type Rotation struct {
	MaxSize  string `yaml:"max_size" validate:"required,validSize"`
	MaxFiles int    `yaml:"max_files" validate:"min=1"`
}

type configError struct {
	configPath string
	configDir  string
	parser     parser
	err        error
}

type parser struct{}

func (p parser) getDefaultConfigContents() string {
	content, _ := yaml.Marshal(Default())
	return string(content)
}

func (e configError) Error() string {
	return heredoc.Docf(`
		Couldn't find the "%s" config file.
		Please try again after creating it or specifying a valid config path.
		The recommended config path is %s (default).
		Example YAML file contents:
		---
		%s
		---
		Original error:
		%s
		`,
		e.configPath,
		env.ConfigPath(),
		e.parser.getDefaultConfigContents(),
		indent.String(e.err.Error(), 2),
	)
}

func (e configError) Unwrap() error {
	return e.err
}

func (p parser) createConfigFile(path string) error {
	if err := p.ensureDirExists(filepath.Dir(path)); err != nil {
		return err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		slog.Warn("creating config file as it does not exist", "config-file", path)
		newConfigFile, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0666)
		if err != nil {
			return err
		}
		defer newConfigFile.Close()

		if err := p.writeConfigFileContents(newConfigFile); err != nil {
			return err
		}
	}

	return nil
}

func (p parser) ensureDirExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		slog.Warn("creating directory as it does not exist", "dir", dirPath)
		if err := os.MkdirAll(dirPath, os.ModePerm); err != nil {
			return err
		}
	}
	return nil
}

func (p parser) writeConfigFileContents(file *os.File) error {
	_, err := file.WriteString(p.getDefaultConfigContents())
	return err
}

func (p parser) ensureConfigFile() (string, error) {
	path := env.ConfigPath()

	if err := p.createConfigFile(path); err != nil {
		return "", configError{
			configPath: path,
			configDir:  filepath.Dir(path),
			parser:     p,
			err:        err,
		}
	}

	return path, nil
}

// ParsingError reports a config file that could not be read, decoded or
// validated
type ParsingError struct {
	Path string
	err  error
}

func (e ParsingError) Error() string {
	return fmt.Sprintf("failed to parse config: %v", e.err)
}

func (e ParsingError) Unwrap() error {
	return e.err
}

// IsParsingError reports whether err came from Parse
func IsParsingError(err error) bool {
	var e ParsingError
	return errors.As(err, &e)
}

func (p parser) readConfigFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, configError{
			configPath: path,
			configDir:  filepath.Dir(path),
			parser:     p,
			err:        err,
		}
	}

	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return cfg, err
	}

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, err := range verrs {
				return cfg, fmt.Errorf("validation error: Field %s, %q is invalid", strings.TrimPrefix(err.Namespace(), "Config."), fmt.Sprint(err.Value()))
			}
		}
		return cfg, err
	}

	if cfg.Core.TrashDir != "" {
		dir, err := expandPath(cfg.Core.TrashDir)
		if err != nil {
			return cfg, fmt.Errorf("trash_dir: %w", err)
		}
		cfg.Core.TrashDir = dir
	}
	return cfg, nil
}

func initParser() parser {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.Split(fld.Tag.Get("yaml"), ",")[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("validSize", validateSize)
	_ = validate.RegisterValidation("validScheme", validateScheme)
	_ = validate.RegisterValidation("validDuration", validateDuration)
	_ = validate.RegisterValidation("validRegexp", validateRegexp)
	_ = validate.RegisterValidation("validGlob", validateGlob)
	_ = validate.RegisterValidation("validDirPath", validateDirPath)

	return parser{}
}

// Parse reads the config file at path. An empty path means the default
// location, where a config with default values is written on first use.
func Parse(path string) (Config, error) {
	parser := initParser()

	var cfg Config
	var err error
	var configPath string

	if path == "" {
		configPath, err = parser.ensureConfigFile()
		if err != nil {
			return cfg, ParsingError{Path: configPath, err: err}
		}
	} else {
		configPath = path
	}
	slog.Debug("config file found", "config-file", configPath)

	cfg, err = parser.readConfigFile(configPath)
	if err != nil {
		return cfg, ParsingError{Path: configPath, err: err}
	}

	return cfg, nil
}
