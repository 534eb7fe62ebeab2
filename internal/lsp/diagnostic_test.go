package lsp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tool-recommender-bot/redpen/internal/provider"
	"github.com/tool-recommender-bot/redpen/pkg/validator"
)

func newDoc(content string) *Document {
	return &Document{URI: "file:///doc.txt", Content: content, Lines: computeLineOffsets(content), Version: 1}
}

func TestToDiagnostic(t *testing.T) {
	doc := newDoc("first line\n二行目の文です。次の文。\n😀ab。")

	tests := []struct {
		name  string
		err   validator.ValidationError
		start Position
		end   Position
	}{
		{
			name:  "sentence in the middle of a line",
			err:   validator.ValidationError{Validator: "SentenceLength", Message: "too long", LineNumber: 2, StartPosition: 8, Sentence: "次の文。"},
			start: Position{Line: 1, Character: 8},
			end:   Position{Line: 1, Character: 12},
		},
		{
			name:  "sentence longer than its line is clamped",
			err:   validator.ValidationError{Validator: "V", Message: "m", LineNumber: 2, StartPosition: 8, Sentence: "次の文。そして続き。"},
			start: Position{Line: 1, Character: 8},
			end:   Position{Line: 1, Character: 12},
		},
		{
			name:  "no sentence spans to end of line",
			err:   validator.ValidationError{Validator: "V", Message: "m", LineNumber: 1},
			start: Position{Line: 0, Character: 0},
			end:   Position{Line: 0, Character: 10},
		},
		{
			name:  "columns count utf-16 units",
			err:   validator.ValidationError{Validator: "V", Message: "m", LineNumber: 3, StartPosition: 1, Sentence: "ab。"},
			start: Position{Line: 2, Character: 2},
			end:   Position{Line: 2, Character: 5},
		},
		{
			name:  "zero line number maps to the first line",
			err:   validator.ValidationError{Validator: "V", Message: "m", LineNumber: 0, Sentence: "first"},
			start: Position{Line: 0, Character: 0},
			end:   Position{Line: 0, Character: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := toDiagnostic(doc, tt.err)
			assert.Equal(t, tt.start, d.Range.Start)
			assert.Equal(t, tt.end, d.Range.End)
			assert.Equal(t, DiagnosticSeverityWarning, d.Severity)
			assert.Equal(t, diagnosticSource, d.Source)
			assert.Equal(t, tt.err.Validator, d.Code)
			assert.Equal(t, tt.err.Message, d.Message)
		})
	}
}

func TestDiagnosticsFor(t *testing.T) {
	doc := newDoc("文。")

	t.Run("validation errors", func(t *testing.T) {
		parsed := &provider.ParsedDocument{Errors: []validator.ValidationError{
			{Validator: "A", Message: "a", LineNumber: 1},
			{Validator: "B", Message: "b", LineNumber: 1},
		}}
		diags := diagnosticsFor(doc, parsed)
		require.Len(t, diags, 2)
		assert.Equal(t, "A", diags[0].Code)
		assert.Equal(t, "B", diags[1].Code)
	})

	t.Run("clean document is an empty list", func(t *testing.T) {
		diags := diagnosticsFor(doc, &provider.ParsedDocument{})
		require.NotNil(t, diags)
		assert.Empty(t, diags)
	})

	t.Run("engine failure", func(t *testing.T) {
		diags := diagnosticsFor(doc, &provider.ParsedDocument{ValidateError: errors.New("validator X panicked")})
		require.Len(t, diags, 1)
		assert.Equal(t, DiagnosticSeverityError, diags[0].Severity)
		assert.Equal(t, Range{}, diags[0].Range)
		assert.Contains(t, diags[0].Message, "validator X panicked")
	})
}

func TestHoverAt(t *testing.T) {
	diags := []Diagnostic{
		{Range: Range{Start: Position{Line: 0, Character: 0}, End: Position{Line: 0, Character: 10}}, Code: "SentenceLength", Message: "too long"},
		{Range: Range{Start: Position{Line: 0, Character: 4}, End: Position{Line: 0, Character: 6}}, Code: "KatakanaEndHyphen", Message: "hyphen"},
		{Range: Range{}, Message: "parse failure"},
	}

	hover := hoverAt(diags, Position{Line: 0, Character: 5})
	require.NotNil(t, hover)
	assert.Equal(t, MarkupKindMarkdown, hover.Contents.Kind)
	assert.Equal(t, "**SentenceLength**: too long\n\n**KatakanaEndHyphen**: hyphen", hover.Contents.Value)
	require.NotNil(t, hover.Range)
	assert.Equal(t, diags[0].Range, *hover.Range)

	hover = hoverAt(diags, Position{Line: 0, Character: 2})
	require.NotNil(t, hover)
	assert.Equal(t, "**SentenceLength**: too long", hover.Contents.Value)

	assert.Nil(t, hoverAt(diags, Position{Line: 3, Character: 0}))
}
