package parser

import (
	"fmt"
	"strings"
)

// Position is a location in the source.
type Position struct {
	Line   int
	Column int
}

// ParseError represents a parsing error with position information.
type ParseError struct {
	Source  string
	Pos     Position
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: parse error at line %d: %s", e.Source, e.Pos.Line, e.Message)
}

// UnknownFormatError is returned for an unrecognised format name.
type UnknownFormatError struct {
	Name      string
	Available []string
}

func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("unknown input format %q\nAvailable formats: %s", e.Name, strings.Join(e.Available, ", "))
}
