package lsp

import (
	"context"
	"strings"

	"github.com/tool-recommender-bot/redpen/internal/provider"
	"github.com/tool-recommender-bot/redpen/pkg/validator"
)

const diagnosticSource = "redpen"

// publishDiagnostics checks the document and publishes the result.
// The provider caches by version, so repeated calls are cheap.
func (s *Server) publishDiagnostics(ctx context.Context, uri string) {
	doc := s.documents.Get(uri)
	if doc == nil {
		return
	}

	parsed := s.provider.GetOrParse(ctx, uri, doc.Content, doc.Version)
	s.sendNotification("textDocument/publishDiagnostics", &PublishDiagnosticsParams{
		URI:         uri,
		Version:     doc.Version,
		Diagnostics: diagnosticsFor(doc, parsed),
	})
}

// clearDiagnostics publishes an empty diagnostic set for uri.
func (s *Server) clearDiagnostics(uri string) {
	s.sendNotification("textDocument/publishDiagnostics", &PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []Diagnostic{},
	})
}

// diagnosticsFor converts a check result into LSP diagnostics. Parse and
// engine failures become a single error at the top of the document.
func diagnosticsFor(doc *Document, parsed *provider.ParsedDocument) []Diagnostic {
	diagnostics := make([]Diagnostic, 0, len(parsed.Errors))

	if parsed.HasErrors() {
		diagnostics = append(diagnostics, Diagnostic{
			Range:    Range{},
			Severity: DiagnosticSeverityError,
			Source:   diagnosticSource,
			Message:  parsed.Err().Error(),
		})
	}

	for _, e := range parsed.Errors {
		diagnostics = append(diagnostics, toDiagnostic(doc, e))
	}
	return diagnostics
}

// toDiagnostic maps a validation error onto the sentence it was raised
// for. Lines are 1-based and columns count runes in ValidationError;
// LSP wants 0-based lines and UTF-16 columns.
func toDiagnostic(doc *Document, e validator.ValidationError) Diagnostic {
	line := e.LineNumber - 1
	if line < 0 {
		line = 0
	}
	text := doc.GetLine(line)

	start := RuneColumnToUTF16(text, e.StartPosition)
	end := utf16Len(text)
	if sentence := firstLine(e.Sentence); sentence != "" {
		if n := start + utf16Len(sentence); n < end {
			end = n
		}
	}
	if end < start {
		end = start
	}

	return Diagnostic{
		Range: Range{
			Start: Position{Line: uint32(line), Character: uint32(start)}, //nolint:gosec // G115: bounded by document size
			End:   Position{Line: uint32(line), Character: uint32(end)},   //nolint:gosec // G115: bounded by document size
		},
		Severity: DiagnosticSeverityWarning,
		Code:     e.Validator,
		Source:   diagnosticSource,
		Message:  e.Message,
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// hoverAt describes every diagnostic covering pos, or returns nil.
func hoverAt(diagnostics []Diagnostic, pos Position) *Hover {
	var parts []string
	var first *Range
	for i := range diagnostics {
		d := diagnostics[i]
		if d.Code == "" || !d.Range.Contains(pos) {
			continue
		}
		if first == nil {
			first = &diagnostics[i].Range
		}
		parts = append(parts, "**"+d.Code+"**: "+d.Message)
	}
	if len(parts) == 0 {
		return nil
	}
	return &Hover{
		Contents: MarkupContent{Kind: MarkupKindMarkdown, Value: strings.Join(parts, "\n\n")},
		Range:    first,
	}
}
