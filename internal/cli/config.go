package cli

import (
	"fmt"
	"os"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/toyz/autoswagger/pkg/autoswagger"
)

// Output formats
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
	FormatBoth = "both"
)

// GenerateConfig holds every input of the generate command after merging
// defaults, the config file and flags, in that order
type GenerateConfig struct {
	autoswagger.Options `yaml:",inline"`

	// Routes is the YAML or JSON route table file
	Routes string `yaml:"routes"`
	// Out is the directory documents are written to
	Out string `yaml:"out"`
	// Format selects the files written: yaml, json or both
	Format string `yaml:"format"`
	// Module overrides the module path read from go.mod
	Module string `yaml:"module"`

	ConfigPath string `yaml:"-"`
	Verbose    bool   `yaml:"-"`
	Quiet      bool   `yaml:"-"`
}

func defaultGenerateConfig() GenerateConfig {
	return GenerateConfig{
		Options: autoswagger.Options{Path: ".", Version: "1.0.0"},
		Out:     ".",
		Format:  FormatBoth,
	}
}

// applyConfigFile overlays the keys present in a YAML or JSON config file
func applyConfigFile(cfg *GenerateConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return newUsageError(fmt.Sprintf("read config file %q: %v", path, err))
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return newUsageError(fmt.Sprintf("parse config file %q: %v", path, err))
	}
	return nil
}

// applyFlagOverrides overlays the flags set on the command line
func applyFlagOverrides(flags *pflag.FlagSet, cfg *GenerateConfig) error {
	stringFlags := map[string]*string{
		"routes":  &cfg.Routes,
		"root":    &cfg.Path,
		"out":     &cfg.Out,
		"format":  &cfg.Format,
		"module":  &cfg.Module,
		"title":   &cfg.Title,
		"version": &cfg.Version,
		"prefer":  &cfg.PreferredPutPatch,
	}
	for name, target := range stringFlags {
		if flags.Lookup(name) == nil || !flags.Changed(name) {
			continue
		}
		value, err := flags.GetString(name)
		if err != nil {
			return err
		}
		*target = strings.TrimSpace(value)
	}

	sliceFlags := map[string]*[]string{
		"ignore":          &cfg.Ignore,
		"auth-middleware": &cfg.AuthMiddleware,
	}
	for name, target := range sliceFlags {
		if flags.Lookup(name) == nil || !flags.Changed(name) {
			continue
		}
		value, err := flags.GetStringSlice(name)
		if err != nil {
			return err
		}
		*target = value
	}

	if flags.Lookup("tag-index") != nil && flags.Changed("tag-index") {
		value, err := flags.GetInt("tag-index")
		if err != nil {
			return err
		}
		cfg.TagIndex = value
	}
	if flags.Lookup("snake-case") != nil && flags.Changed("snake-case") {
		value, err := flags.GetBool("snake-case")
		if err != nil {
			return err
		}
		cfg.SnakeCase = &value
	}

	for name, target := range map[string]*bool{"verbose": &cfg.Verbose, "quiet": &cfg.Quiet} {
		if flags.Lookup(name) == nil || !flags.Changed(name) {
			continue
		}
		value, err := flags.GetBool(name)
		if err != nil {
			return err
		}
		*target = value
	}

	return nil
}

func (c *GenerateConfig) normalize() {
	c.Routes = strings.TrimSpace(c.Routes)
	c.Out = strings.TrimSpace(c.Out)
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	c.Title = strings.TrimSpace(c.Title)
	if c.Format == "" {
		c.Format = FormatBoth
	}
}

func (c *GenerateConfig) validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.Routes, validation.Required.Error("--routes is required (set via flag or config file)")),
		validation.Field(&c.Title, validation.Required.Error("--title is required (set via flag or config file)")),
		validation.Field(&c.Format, validation.In(FormatYAML, FormatJSON, FormatBoth).Error("must be one of yaml, json, both")),
	)
	if err != nil {
		return newUsageError(fmt.Sprintf("generate: %v", err))
	}
	if c.Verbose && c.Quiet {
		return newUsageError("generate: --verbose and --quiet are mutually exclusive")
	}
	return nil
}
