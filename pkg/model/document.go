package model

import "slices"

// Paragraph is an ordered list of sentences.
type Paragraph struct {
	sentences []Sentence
}

// Sentences returns a copy of the paragraph's sentences in source order.
func (p *Paragraph) Sentences() []Sentence {
	if p == nil {
		return nil
	}
	return slices.Clone(p.sentences)
}

// Len returns the number of sentences in the paragraph.
func (p *Paragraph) Len() int {
	if p == nil {
		return 0
	}
	return len(p.sentences)
}

// FirstSentence returns the paragraph's first sentence, if any.
func (p *Paragraph) FirstSentence() (Sentence, bool) {
	if p.Len() == 0 {
		return Sentence{}, false
	}
	return p.sentences[0], true
}

// Section groups paragraphs under an optional heading.
type Section struct {
	level      int
	headers    []Sentence
	paragraphs []*Paragraph
}

// Level returns the nesting level; 1 is the outermost.
func (s *Section) Level() int {
	return s.level
}

// Headers returns a copy of the heading sentences.
func (s *Section) Headers() []Sentence {
	return slices.Clone(s.headers)
}

// Paragraphs returns a copy of the section's paragraph list.
func (s *Section) Paragraphs() []*Paragraph {
	return slices.Clone(s.paragraphs)
}

// Sentences returns the heading sentences followed by every paragraph
// sentence, in source order.
func (s *Section) Sentences() []Sentence {
	out := slices.Clone(s.headers)
	for _, p := range s.paragraphs {
		out = append(out, p.sentences...)
	}
	return out
}

// Line returns the line of the first sentence in the section, or 0 for an
// empty section.
func (s *Section) Line() int {
	if len(s.headers) > 0 {
		return s.headers[0].LineNumber
	}
	for _, p := range s.paragraphs {
		if first, ok := p.FirstSentence(); ok {
			return first.LineNumber
		}
	}
	return 0
}

// Document is one inspected source.
type Document struct {
	name     string
	title    string
	sections []*Section
}

// Name returns the source reference the document was built from,
// typically a file path.
func (d *Document) Name() string {
	return d.name
}

// Title returns the document title when the parser found one.
func (d *Document) Title() string {
	return d.title
}

// Sections returns a copy of the document's section list.
func (d *Document) Sections() []*Section {
	return slices.Clone(d.sections)
}

// SentenceCount returns the number of sentences across all sections,
// headings included.
func (d *Document) SentenceCount() int {
	n := 0
	for _, s := range d.sections {
		n += len(s.headers)
		for _, p := range s.paragraphs {
			n += len(p.sentences)
		}
	}
	return n
}

// Collection is the ordered list of documents submitted for one run.
type Collection []*Document
