// Package output renders command results for terminals, pipes and machines.
//
// A Renderer picks its effective mode from the requested one: auto resolves
// to styled text on a terminal and to markdown otherwise.
package output

import (
	"fmt"
	"strings"
)

// OutputMode selects how results are written.
//
//nolint:revive // output.OutputMode reads better at call sites than output.Type
type OutputMode string

// Mode is shorthand used for conversions from flag and config values.
type Mode = OutputMode

// Output modes.
const (
	ModeAuto     OutputMode = "auto"
	ModeText     OutputMode = "text"
	ModePlain    OutputMode = "plain"
	ModeMarkdown OutputMode = "markdown"
	ModeJSON     OutputMode = "json"
)

// ModeNames lists the accepted mode names in flag-help order.
func ModeNames() []string {
	return []string{string(ModeAuto), string(ModeText), string(ModePlain), string(ModeMarkdown), string(ModeJSON)}
}

// ParseMode validates a mode name. The empty string means auto.
func ParseMode(s string) (OutputMode, error) {
	switch m := OutputMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeAuto, nil
	case ModeAuto, ModeText, ModePlain, ModeMarkdown, ModeJSON:
		return m, nil
	case "md":
		return ModeMarkdown, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want one of %s)", s, strings.Join(ModeNames(), ", "))
	}
}
