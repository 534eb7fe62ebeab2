package parser

import (
	"path/filepath"
	"strings"
)

// Format identifies an input syntax.
type Format int

// Supported formats.
const (
	FormatPlain Format = iota
	FormatMarkdown
	FormatHTML
)

var formatNames = map[Format]string{
	FormatPlain:    "plain",
	FormatMarkdown: "markdown",
	FormatHTML:     "html",
}

// String returns the string representation of the format.
func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "unknown"
}

// ParseFormat resolves a format name. The empty string means plain.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "plain", "text", "txt":
		return FormatPlain, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html", "htm":
		return FormatHTML, nil
	}
	return FormatPlain, &UnknownFormatError{Name: name, Available: FormatNames()}
}

// FormatNames lists the canonical format names.
func FormatNames() []string {
	return []string{"plain", "markdown", "html"}
}

// FormatForPath guesses the format from a file extension, defaulting to
// plain.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return FormatMarkdown
	case ".html", ".htm":
		return FormatHTML
	default:
		return FormatPlain
	}
}
