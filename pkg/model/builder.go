package model

import (
	"errors"
	"fmt"
)

// Builder errors.
var (
	ErrNoSection   = errors.New("model: paragraph added before any section")
	ErrNoParagraph = errors.New("model: sentence added before any paragraph")
	ErrBuilt       = errors.New("model: builder already built")
)

// DocumentBuilder accumulates sections, paragraphs and sentences and
// produces an immutable Document. The first error encountered is kept and
// returned by Build; later calls are ignored.
type DocumentBuilder struct {
	doc *Document
	err error
}

// NewDocumentBuilder starts a document with the given source reference.
func NewDocumentBuilder(name string) *DocumentBuilder {
	return &DocumentBuilder{doc: &Document{name: name}}
}

// SetTitle records the document title.
func (b *DocumentBuilder) SetTitle(title string) *DocumentBuilder {
	if b.ok() {
		b.doc.title = title
	}
	return b
}

// AddSection opens a new section at the given level with optional heading
// sentences. Levels below 1 are rejected.
func (b *DocumentBuilder) AddSection(level int, headers ...Sentence) *DocumentBuilder {
	if !b.ok() {
		return b
	}
	if level < 1 {
		b.err = fmt.Errorf("model: invalid section level %d", level)
		return b
	}
	hs := make([]Sentence, len(headers))
	for i, h := range headers {
		h.IsHeadline = true
		hs[i] = h
	}
	b.doc.sections = append(b.doc.sections, &Section{level: level, headers: hs})
	return b
}

// AddParagraph opens a new paragraph in the current section.
func (b *DocumentBuilder) AddParagraph() *DocumentBuilder {
	if !b.ok() {
		return b
	}
	sec := b.currentSection()
	if sec == nil {
		b.err = ErrNoSection
		return b
	}
	sec.paragraphs = append(sec.paragraphs, &Paragraph{})
	return b
}

// AddSentence appends a sentence to the current paragraph.
func (b *DocumentBuilder) AddSentence(s Sentence) *DocumentBuilder {
	if !b.ok() {
		return b
	}
	sec := b.currentSection()
	if sec == nil {
		b.err = ErrNoSection
		return b
	}
	if len(sec.paragraphs) == 0 {
		b.err = ErrNoParagraph
		return b
	}
	p := sec.paragraphs[len(sec.paragraphs)-1]
	s.IsFirstSentence = len(p.sentences) == 0
	p.sentences = append(p.sentences, s)
	return b
}

// Build returns the finished document. The builder cannot be reused.
func (b *DocumentBuilder) Build() (*Document, error) {
	if b.err != nil {
		return nil, b.err
	}
	doc := b.doc
	b.doc = nil
	b.err = ErrBuilt
	return doc, nil
}

// MustBuild is like Build but panics on error. Intended for tests and
// fixtures.
func (b *DocumentBuilder) MustBuild() *Document {
	doc, err := b.Build()
	if err != nil {
		panic(err)
	}
	return doc
}

func (b *DocumentBuilder) ok() bool {
	return b.err == nil
}

func (b *DocumentBuilder) currentSection() *Section {
	if len(b.doc.sections) == 0 {
		return nil
	}
	return b.doc.sections[len(b.doc.sections)-1]
}
