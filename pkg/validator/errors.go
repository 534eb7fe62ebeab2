package validator

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingAttribute is wrapped by ConfigError when a required attribute
// is absent.
var ErrMissingAttribute = errors.New("missing required attribute")

// UnknownValidatorError is returned when a configured name has no
// registered constructor.
type UnknownValidatorError struct {
	Name      string
	Available []string
}

func (e *UnknownValidatorError) Error() string {
	return fmt.Sprintf("unknown validator %q\nAvailable validators: %s", e.Name, strings.Join(e.Available, ", "))
}

// ConfigError reports a missing or malformed setting.
type ConfigError struct {
	Validator string
	Attribute string
	Err       error
}

func (e *ConfigError) Error() string {
	if e.Attribute == "" {
		return fmt.Sprintf("validator %s: %v", e.Validator, e.Err)
	}
	return fmt.Sprintf("validator %s: attribute %q: %v", e.Validator, e.Attribute, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// ResourceError reports a dictionary or script file that could not be
// read while configuring a validator.
type ResourceError struct {
	Validator string
	Path      string
	Err       error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("validator %s: cannot load %s: %v", e.Validator, e.Path, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }
