package config

import (
	_ "embed"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte

	//go:embed default/aliases
	defaultAliasesData []byte
)

const (
	ConfigurationName = "config.yaml"
	DefaultDirName    = ".minishell"

	AliasMatchSubstring = "substring"
	AliasMatchExact     = "exact"

	ColorAlways = "always"
	ColorAuto   = "auto"
	ColorNever  = "never"
)

type Configuration struct {
	configFs  afero.Fs
	configDir string

	HistoryFile string `json:"history_file" validate:"required"`
	HistorySize int    `json:"history_size" validate:"gte=1"`
	AliasesFile string `json:"aliases_file" validate:"required"`
	AliasMatch  string `json:"alias_match" validate:"oneof=substring exact"`
	Quoting     bool   `json:"quoting"`
	Prompt      string `json:"prompt"`
	Color       string `json:"color" validate:"oneof=always auto never"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

// Fs returns the filesystem the configuration was loaded from.
func (c *Configuration) Fs() afero.Fs {
	if c.configFs == nil {
		return afero.NewOsFs()
	}
	return c.configFs
}

// Dir returns the directory the configuration was loaded from, it's empty
// for the built-in defaults.
func (c *Configuration) Dir() string {
	return c.configDir
}

// ResolvePath expands a leading ~ to home and anchors other relative paths to
// the configuration directory.
func (c *Configuration) ResolvePath(path, home string) string {
	switch {
	case path == "~":
		return home
	case strings.HasPrefix(path, "~/"):
		return filepath.Join(home, path[2:])
	case filepath.IsAbs(path):
		return path
	default:
		return filepath.Join(c.configDir, path)
	}
}

// HistoryPath returns the resolved location of the history log.
func (c *Configuration) HistoryPath(home string) string {
	return c.ResolvePath(c.HistoryFile, home)
}

// AliasesPath returns the resolved location of the alias definitions.
func (c *Configuration) AliasesPath(home string) string {
	return c.ResolvePath(c.AliasesFile, home)
}

// ExactAliases is true if aliases must match the command word exactly.
func (c *Configuration) ExactAliases() bool {
	return c.AliasMatch == AliasMatchExact
}

// DefaultDir is the configuration directory used when none is given.
func DefaultDir(home string) string {
	return filepath.Join(home, DefaultDirName)
}

// Default returns the built-in configuration.
func Default() *Configuration {
	return defaultConfig()
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
