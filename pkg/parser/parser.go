// Package parser turns plain text, Markdown and HTML sources into
// documents.
//
// All formats are normalized to NFC before parsing. Sentences end at
// "。", "？" and "！", and at ".", "?" and "!" when followed by
// whitespace or the end of a line. Line numbers are 1-based and refer to
// the source; for HTML they refer to the intermediate Markdown.
package parser

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tool-recommender-bot/redpen/pkg/model"
)

// Parser turns source bytes into a Document. name identifies the source
// in the document and in errors.
type Parser interface {
	Parse(name string, src []byte) (*model.Document, error)
}

// New returns the parser for f.
func New(f Format) Parser {
	switch f {
	case FormatMarkdown:
		return markdownParser{}
	case FormatHTML:
		return htmlParser{}
	default:
		return plainParser{}
	}
}

// Parse parses src in format f.
func Parse(name string, src []byte, f Format) (*model.Document, error) {
	return New(f).Parse(name, src)
}

// ParseFile reads and parses the file at path.
func ParseFile(path string, f Format) (*model.Document, error) {
	src, err := os.ReadFile(path) //nolint:gosec // G304: path is an input document chosen by the user
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(path, src, f)
}

// sourceLines normalizes src and splits it into lines without their
// terminators.
func sourceLines(src []byte) []string {
	text := norm.NFC.String(string(src))
	text = strings.TrimPrefix(text, "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

type plainParser struct{}

// Parse treats blank lines as paragraph breaks inside a single section.
func (plainParser) Parse(name string, src []byte) (*model.Document, error) {
	b := model.NewDocumentBuilder(name).AddSection(1)

	var para []line
	flush := func() {
		if len(para) == 0 {
			return
		}
		b.AddParagraph()
		for _, s := range splitSentences(para, true) {
			b.AddSentence(s)
		}
		para = nil
	}

	for i, text := range sourceLines(src) {
		if strings.TrimSpace(text) == "" {
			flush()
			continue
		}
		para = append(para, line{text: text, number: i + 1})
	}
	flush()

	doc, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return doc, nil
}
