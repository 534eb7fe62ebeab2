package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// loggerKey is used to store logger in context.
type loggerKey struct{}

// maxUpwardSearchLevels limits how far up the directory tree to search for config files.
const maxUpwardSearchLevels = 10

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "REDPEN_"

// configFileNames are tried in order in each searched directory.
var configFileNames = []string{"redpen.yaml", "redpen.yml"}

// flagsNotConfig are CLI flags that steer loading itself and never become config keys.
var flagsNotConfig = map[string]bool{"conf": true}

// Package-level koanf instance and config file tracking
var (
	k              = koanf.New(".")
	configFileUsed string
	currentConfig  *Config // Stores the loaded config for access by commands
)

// configFileIn returns the config file in dir, if any.
func configFileIn(dir string) string {
	for _, name := range configFileNames {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// findConfigFileUpward searches upward from startDir for a redpen config file.
// Returns empty string if not found within maxUpwardSearchLevels.
func findConfigFileUpward(startDir string) string {
	dir := startDir
	for i := 0; i < maxUpwardSearchLevels; i++ {
		if found := configFileIn(dir); found != "" {
			return found
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}
	return ""
}

// findConfigFile finds the config file to use.
// Priority: explicit path > redpen.yaml > redpen.yml, searched upward from CWD.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return findConfigFileUpward(cwd)
}

// ResetConfig resets the koanf instance. Used for testing.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
	currentConfig = nil
}

// Load loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	// Reset koanf for fresh load
	k = koanf.New(".")

	// 1. Load defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"language":      DefaultLanguage,
		"format":        "",
		"result_format": DefaultOutput,
		"verbose":       false,
		"concurrency":   DefaultConcurrency,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Find and load config file
	configFileUsed = findConfigFile(cfgFile)
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// 3. Load environment variables (REDPEN_ prefix)
	// Transform: REDPEN_RESULT_FORMAT -> result_format
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Load flags (highest priority - overrides env vars and config file)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only load flags that were explicitly set
			if !f.Changed || flagsNotConfig[f.Name] {
				return "", nil
			}
			// Transform kebab-case to snake_case for config keys
			key := strings.ReplaceAll(f.Name, "-", "_")
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Unmarshal into Config struct. Weak typing lets quoted numbers fill
	// properties and bare numbers fill attributes.
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook:       mapstructure.TextUnmarshallerHookFunc(),
			WeaklyTypedInput: true,
			Result:           &cfg,
		},
	}); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// 6. Anchor relative resource paths at the config file's directory
	if configFileUsed != "" {
		abs, err := filepath.Abs(configFileUsed)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve config file path: %w", err)
		}
		cfg.ConfigDir = filepath.Dir(abs)
	} else if cwd, err := os.Getwd(); err == nil {
		cfg.ConfigDir = cwd
	}

	for i := range cfg.Validators {
		expandAttributeEnvVars(cfg.Validators[i].Attributes)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Store config for access by commands
	currentConfig = &cfg

	return &cfg, nil
}

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// GetCurrentConfig returns the currently loaded configuration.
// This is available after Load is called.
func GetCurrentConfig() *Config {
	return currentConfig
}

// LoggerKey returns the context key used for storing the logger.
// This allows the commands package to retrieve the logger from context
// without creating an import cycle with the cli package.
func LoggerKey() interface{} {
	return loggerKey{}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
			return l
		}
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars expands ${VAR} patterns in a string with environment variable values.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match // Return original if not found
	})
}

// expandAttributeEnvVars expands ${VAR} patterns in validator attributes,
// so dictionaries can live outside the project, e.g. dict: ${HOME}/skip.txt.
func expandAttributeEnvVars(attrs map[string]string) {
	for key, value := range attrs {
		attrs[key] = expandEnvVars(value)
	}
}
