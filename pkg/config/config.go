// Package config holds the run-wide configuration consumed by the
// validation engine: a language and an ordered list of validator
// configurations.
//
// A Configuration is built once with a Builder and never changes
// afterwards. Accessors return deep copies.
package config

import (
	"fmt"
	"maps"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLanguage is used when the builder is given no language.
const DefaultLanguage = "en"

// ValidatorConfiguration names a validator and carries its settings.
// Attribute and property keys are validator-specific; the engine only
// transports them.
type ValidatorConfiguration struct {
	Name       string
	Attributes map[string]string
	Properties map[string]float64
}

// NewValidatorConfiguration returns an empty configuration for the named
// validator.
func NewValidatorConfiguration(name string) ValidatorConfiguration {
	return ValidatorConfiguration{Name: name}
}

// WithAttribute returns a copy with the attribute set.
func (vc ValidatorConfiguration) WithAttribute(key, value string) ValidatorConfiguration {
	out := vc.clone()
	if out.Attributes == nil {
		out.Attributes = make(map[string]string)
	}
	out.Attributes[key] = value
	return out
}

// WithProperty returns a copy with the numeric property set.
func (vc ValidatorConfiguration) WithProperty(key string, value float64) ValidatorConfiguration {
	out := vc.clone()
	if out.Properties == nil {
		out.Properties = make(map[string]float64)
	}
	out.Properties[key] = value
	return out
}

func (vc ValidatorConfiguration) clone() ValidatorConfiguration {
	return ValidatorConfiguration{
		Name:       vc.Name,
		Attributes: maps.Clone(vc.Attributes),
		Properties: maps.Clone(vc.Properties),
	}
}

// Configuration is the immutable, run-wide configuration.
type Configuration struct {
	language   string
	baseDir    string
	validators []ValidatorConfiguration
}

// Language returns the canonical language tag, e.g. "ja".
func (c *Configuration) Language() string {
	return c.language
}

// BaseDir returns the directory relative resource paths resolve against.
// Empty means the working directory.
func (c *Configuration) BaseDir() string {
	return c.baseDir
}

// Validators returns a deep copy of the validator configurations in
// configured order.
func (c *Configuration) Validators() []ValidatorConfiguration {
	out := make([]ValidatorConfiguration, len(c.validators))
	for i, vc := range c.validators {
		out[i] = vc.clone()
	}
	return out
}

// Builder accumulates validator configurations and a language setting.
type Builder struct {
	language   string
	baseDir    string
	validators []ValidatorConfiguration
	built      bool
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// SetLanguage sets the language tag. It is validated by Build.
func (b *Builder) SetLanguage(lang string) *Builder {
	b.language = lang
	return b
}

// SetBaseDir sets the directory used to resolve relative resource paths.
func (b *Builder) SetBaseDir(dir string) *Builder {
	b.baseDir = dir
	return b
}

// AddValidatorConfig appends a validator configuration. The builder keeps
// its own copy.
func (b *Builder) AddValidatorConfig(vc ValidatorConfiguration) *Builder {
	b.validators = append(b.validators, vc.clone())
	return b
}

// Build validates the accumulated settings and returns the Configuration.
// A builder can only be built once.
func (b *Builder) Build() (*Configuration, error) {
	if b.built {
		return nil, fmt.Errorf("config: builder already built")
	}

	lang := strings.TrimSpace(b.language)
	if lang == "" {
		lang = DefaultLanguage
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("config: invalid language %q: %w", b.language, err)
	}

	validators := make([]ValidatorConfiguration, 0, len(b.validators))
	for i, vc := range b.validators {
		if strings.TrimSpace(vc.Name) == "" {
			return nil, fmt.Errorf("config: validator at position %d has no name", i)
		}
		validators = append(validators, vc.clone())
	}

	b.built = true
	return &Configuration{
		language:   tag.String(),
		baseDir:    b.baseDir,
		validators: validators,
	}, nil
}
