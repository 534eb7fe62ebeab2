package output

import (
	"fmt"
	"strings"
)

// FormatHeader returns a markdown header of the given level.
func FormatHeader(level int, text string) string {
	level = max(1, min(level, 6))
	return strings.Repeat("#", level) + " " + text
}

// FormatKeyValue returns a bold-key markdown list item.
func FormatKeyValue(key, value string) string {
	return fmt.Sprintf("- **%s:** %s", key, value)
}

// FormatCodeBlock returns a fenced code block.
func FormatCodeBlock(lang, body string) string {
	return "```" + lang + "\n" + strings.TrimRight(body, "\n") + "\n```"
}
