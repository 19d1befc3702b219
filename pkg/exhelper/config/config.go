// Package config loads the YAML configuration file shared by the CLI
// commands.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ukaji3/exhelper-go/pkg/exhelper/models"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/style"
	"gopkg.in/yaml.v3"
)

// Config is the decoded configuration file.
type Config struct {
	Log      Log      `yaml:"log"`
	Defaults Defaults `yaml:"defaults"`
	// PageSetups are named expected print settings for "print check" and
	// "print set".
	PageSetups map[string]models.PageSetup `yaml:"page_setups"`
	// Styles are named range styles for the "style" command.
	Styles map[string]style.RangeStyle `yaml:"styles"`
}

// Log configures logging output.
type Log struct {
	// Level is a logrus level name such as "debug" or "warn".
	Level string `yaml:"level"`
	// Format is "text" or "json".
	Format string `yaml:"format"`
}

// Defaults holds values used when a command flag is not given.
type Defaults struct {
	Sheet      string `yaml:"sheet"`
	ExactMatch bool   `yaml:"exact_match"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Log: Log{Level: "info", Format: "text"},
	}
}

// Load reads a configuration file. Keys missing from the file keep their
// Default values; unknown keys are an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes configuration YAML over the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return cfg, nil
}

// PageSetup returns the named page-setup profile.
func (c *Config) PageSetup(name string) (models.PageSetup, error) {
	ps, ok := c.PageSetups[name]
	if !ok {
		return models.PageSetup{}, fmt.Errorf("page setup profile %q not defined", name)
	}
	return ps, nil
}

// Style returns the named range style.
func (c *Config) Style(name string) (style.RangeStyle, error) {
	rs, ok := c.Styles[name]
	if !ok {
		return style.RangeStyle{}, fmt.Errorf("style profile %q not defined", name)
	}
	return rs, nil
}
