package validator

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
)

// Config is the bound configuration handed to Validator.Configure.
type Config struct {
	// Name is the configured validator name.
	Name string
	// Language is the canonical BCP 47 tag of the run.
	Language string
	// BaseDir anchors relative resource paths, usually the directory of
	// the configuration file.
	BaseDir string

	Attributes Attributes
	Properties Properties
}

// ResolvePath anchors a relative path at BaseDir.
func (c Config) ResolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) || c.BaseDir == "" {
		return path
	}
	return filepath.Join(c.BaseDir, path)
}

// Int reads an integer setting. Properties win over attributes so a
// numeric value may be given either way.
func (c Config) Int(key string, defaultVal int) (int, error) {
	if v, ok := c.Properties[key]; ok {
		if v != math.Trunc(v) {
			return 0, &ConfigError{Validator: c.Name, Attribute: key, Err: fmt.Errorf("%v is not an integer", v)}
		}
		// float64(math.MaxInt) rounds up to 2^63, which is out of range.
		if v < math.MinInt || v >= math.MaxInt {
			return 0, &ConfigError{Validator: c.Name, Attribute: key, Err: fmt.Errorf("%v is out of range", v)}
		}
		return int(v), nil
	}
	raw, ok := c.Attributes[key]
	if !ok || strings.TrimSpace(raw) == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &ConfigError{Validator: c.Name, Attribute: key, Err: err}
	}
	return n, nil
}

// Attributes are string-valued settings.
type Attributes map[string]string

// String returns the value for key or defaultVal when absent.
func (a Attributes) String(key, defaultVal string) string {
	if v, ok := a[key]; ok {
		return v
	}
	return defaultVal
}

// Has reports whether key is present with a non-blank value.
func (a Attributes) Has(key string) bool {
	return strings.TrimSpace(a[key]) != ""
}

// List splits a comma-separated value into trimmed, non-empty entries.
func (a Attributes) List(key string) []string {
	raw, ok := a[key]
	if !ok {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Bool parses a boolean value, returning defaultVal when absent.
func (a Attributes) Bool(key string, defaultVal bool) (bool, error) {
	raw, ok := a[key]
	if !ok || strings.TrimSpace(raw) == "" {
		return defaultVal, nil
	}
	return strconv.ParseBool(strings.TrimSpace(raw))
}

// Properties are numeric settings.
type Properties map[string]float64

// Float returns the value for key or defaultVal when absent.
func (p Properties) Float(key string, defaultVal float64) float64 {
	if v, ok := p[key]; ok {
		return v
	}
	return defaultVal
}
