package model

import "fmt"

// Sentence is the smallest unit most validators inspect.
// An empty Content is a legal sentence.
type Sentence struct {
	Content string

	// LineNumber is the 1-based line the sentence starts on.
	LineNumber int

	// StartPosition is the rune offset of the sentence within its starting line.
	StartPosition int

	// IsFirstSentence is set on the first sentence of a paragraph.
	IsFirstSentence bool

	// IsHeadline is set on sentences taken from a section heading.
	IsHeadline bool
}

// NewSentence returns a sentence starting at the given line.
func NewSentence(content string, lineNumber int) Sentence {
	return Sentence{Content: content, LineNumber: lineNumber}
}

// String implements fmt.Stringer.
func (s Sentence) String() string {
	return fmt.Sprintf("Sentence{line: %d, content: %q}", s.LineNumber, s.Content)
}
