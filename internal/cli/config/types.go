// Package config loads the redpen CLI configuration.
//
// Settings come from defaults, a redpen.yaml file, REDPEN_* environment
// variables and command-line flags, in increasing order of precedence. The
// loaded Config is converted into the engine's immutable
// pkg/config.Configuration by Configuration.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tool-recommender-bot/redpen/internal/cli/output"
	"github.com/tool-recommender-bot/redpen/pkg/config"
	"github.com/tool-recommender-bot/redpen/pkg/parser"
)

// ValidatorConfig is one entry of the validators list.
type ValidatorConfig struct {
	Name       string             `koanf:"name"`
	Attributes map[string]string  `koanf:"attributes"`
	Properties map[string]float64 `koanf:"properties"`
}

// Config holds all CLI configuration options.
type Config struct {
	Language     string            `koanf:"language"`
	Validators   []ValidatorConfig `koanf:"validators"`
	InputFormat  string            `koanf:"format"`
	OutputFormat string            `koanf:"result_format"`
	Verbose      bool              `koanf:"verbose"`
	Concurrency  int               `koanf:"concurrency"`

	// ConfigDir anchors relative dict and script paths. It is the directory
	// of the config file, or the working directory when none was found.
	ConfigDir string `koanf:"-"`
}

// Default configuration values.
const (
	DefaultLanguage    = config.DefaultLanguage
	DefaultOutput      = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultConcurrency = 1
)

// ErrNoValidators is returned when a check is requested without any
// configured validator.
var ErrNoValidators = errors.New("no validators configured\nHint: pass --conf or create redpen.yaml")

// DefaultConfig returns a Config holding only default values.
func DefaultConfig() *Config {
	return &Config{
		Language:     DefaultLanguage,
		OutputFormat: DefaultOutput,
		Concurrency:  DefaultConcurrency,
	}
}

// Validate checks the CLI-level settings. Validator names and settings are
// checked later by the engine against the registry.
func (c *Config) Validate() error {
	if _, err := parser.ParseFormat(c.InputFormat); err != nil {
		return err
	}
	if _, err := output.ParseMode(c.OutputFormat); err != nil {
		return err
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency)
	}
	for i, v := range c.Validators {
		if strings.TrimSpace(v.Name) == "" {
			return fmt.Errorf("validators[%d]: name is required", i)
		}
	}
	return nil
}

// Configuration builds the engine configuration.
func (c *Config) Configuration() (*config.Configuration, error) {
	if len(c.Validators) == 0 {
		return nil, ErrNoValidators
	}

	b := config.NewBuilder().
		SetLanguage(c.Language).
		SetBaseDir(c.ConfigDir)
	for _, v := range c.Validators {
		vc := config.NewValidatorConfiguration(strings.TrimSpace(v.Name))
		for key, value := range v.Attributes {
			vc = vc.WithAttribute(key, value)
		}
		for key, value := range v.Properties {
			vc = vc.WithProperty(key, value)
		}
		b.AddValidatorConfig(vc)
	}
	return b.Build()
}
