// Package model defines the structural representation of an inspected
// document.
//
// A Document is an ordered list of Sections. Each Section carries a nesting
// level, optional header sentences and an ordered list of Paragraphs, and
// each Paragraph is an ordered list of Sentences. Every Sentence remembers
// the line it started on in the source so that diagnostics can point back
// at it.
//
// Documents are assembled with a DocumentBuilder and are read-only once
// built:
//
//	doc, err := model.NewDocumentBuilder("intro.md").
//		AddSection(1).
//		AddParagraph().
//		AddSentence(model.NewSentence("コーヒーが好きです。", 1)).
//		Build()
//
// Validators receive Sentences by value and Paragraphs/Documents through
// accessor methods that return copies of the underlying slices, so no
// validator can alter what another one sees.
package model
