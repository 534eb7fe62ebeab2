package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentStore_OpenGetClose(t *testing.T) {
	store := NewDocumentStore()

	uri := "file:///docs/readme.md"
	content := "# 概要\n\nこれはテストです。"

	store.Open(uri, content, 1)

	doc := store.Get(uri)
	require.NotNil(t, doc)
	assert.Equal(t, uri, doc.URI)
	assert.Equal(t, content, doc.Content)
	assert.Equal(t, 1, doc.Version)

	store.Close(uri)
	assert.Nil(t, store.Get(uri))
}

func TestDocumentStore_Update(t *testing.T) {
	store := NewDocumentStore()

	uri := "file:///docs/a.txt"
	store.Open(uri, "一。", 1)
	before := store.Get(uri)

	store.Update(uri, "二。\n三。", 2)

	doc := store.Get(uri)
	assert.Equal(t, "二。\n三。", doc.Content)
	assert.Equal(t, 2, doc.Version)
	assert.Equal(t, []int{0, 7}, doc.Lines)
	assert.Equal(t, "一。", before.Content, "earlier snapshots are not mutated")

	store.Update("file:///docs/missing.txt", "x", 1)
	assert.Nil(t, store.Get("file:///docs/missing.txt"), "update never opens a document")
}

func TestDocumentStore_List(t *testing.T) {
	store := NewDocumentStore()

	store.Open("file:///a.md", "a", 1)
	store.Open("file:///b.md", "b", 1)
	store.Open("file:///c.md", "c", 1)

	assert.ElementsMatch(t, []string{"file:///a.md", "file:///b.md", "file:///c.md"}, store.List())
}

func TestComputeLineOffsets(t *testing.T) {
	tests := []struct {
		content  string
		expected []int
	}{
		{"", []int{0}},
		{"abc", []int{0}},
		{"a\nb", []int{0, 2}},
		{"a\nb\nc", []int{0, 2, 4}},
		{"\n\n\n", []int{0, 1, 2, 3}},
		{"あ\nい", []int{0, 4}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, computeLineOffsets(tt.content), "content %q", tt.content)
	}
}

func TestDocument_PositionToOffset(t *testing.T) {
	content := "line0\nあいう\n😀x"
	doc := &Document{Content: content, Lines: computeLineOffsets(content)}

	tests := []struct {
		name     string
		pos      Position
		expected int
	}{
		{"start", Position{Line: 0, Character: 0}, 0},
		{"ascii", Position{Line: 0, Character: 3}, 3},
		{"second line start", Position{Line: 1, Character: 0}, 6},
		{"kana is one unit", Position{Line: 1, Character: 2}, 12},
		{"surrogate pair is two units", Position{Line: 2, Character: 2}, 20},
		{"after surrogate pair", Position{Line: 2, Character: 3}, len(content)},
		{"line beyond document", Position{Line: 100, Character: 0}, len(content)},
		{"character clamped to line", Position{Line: 0, Character: 100}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, doc.PositionToOffset(tt.pos))
		})
	}
}

func TestDocument_OffsetToPosition(t *testing.T) {
	content := "line0\nあいう\n😀x"
	doc := &Document{Content: content, Lines: computeLineOffsets(content)}

	tests := []struct {
		offset   int
		expected Position
	}{
		{0, Position{Line: 0, Character: 0}},
		{3, Position{Line: 0, Character: 3}},
		{6, Position{Line: 1, Character: 0}},
		{12, Position{Line: 1, Character: 2}},
		{20, Position{Line: 2, Character: 2}},
		{-1, Position{Line: 0, Character: 0}},
		{100, Position{Line: 2, Character: 3}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, doc.OffsetToPosition(tt.offset), "offset %d", tt.offset)
	}
}

func TestDocument_GetLine(t *testing.T) {
	content := "line0\r\nline1\n\nline3"
	doc := &Document{Content: content, Lines: computeLineOffsets(content)}

	assert.Equal(t, "line0", doc.GetLine(0))
	assert.Equal(t, "line1", doc.GetLine(1))
	assert.Equal(t, "", doc.GetLine(2))
	assert.Equal(t, "line3", doc.GetLine(3))
	assert.Equal(t, "", doc.GetLine(4))
	assert.Equal(t, "", doc.GetLine(-1))

	var nilDoc *Document
	assert.Equal(t, "", nilDoc.GetLine(0))
}

func TestRuneColumnToUTF16(t *testing.T) {
	tests := []struct {
		line     string
		col      int
		expected int
	}{
		{"abc", 0, 0},
		{"abc", 2, 2},
		{"あいう", 2, 2},
		{"😀a", 1, 2},
		{"😀a", 2, 3},
		{"abc", 10, 3},
		{"abc", -1, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, RuneColumnToUTF16(tt.line, tt.col), "line %q col %d", tt.line, tt.col)
	}
}

func TestURIToPath(t *testing.T) {
	tests := []struct {
		uri      string
		expected string
	}{
		{"file:///Users/test/readme.md", "/Users/test/readme.md"},
		{"file:///home/user/%E6%96%87%E6%9B%B8.txt", "/home/user/文書.txt"},
		{"file:///home/user/my%20notes.md", "/home/user/my notes.md"},
		{"/already/a/path.md", "/already/a/path.md"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, URIToPath(tt.uri), "uri %q", tt.uri)
	}
}

func TestPathToURI(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"/Users/test/readme.md", "file:///Users/test/readme.md"},
		{"/home/user/my notes.md", "file:///home/user/my%20notes.md"},
		{"file:///already/uri.md", "file:///already/uri.md"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, PathToURI(tt.path), "path %q", tt.path)
	}
}

func TestRange_Contains(t *testing.T) {
	r := Range{Start: Position{Line: 1, Character: 4}, End: Position{Line: 2, Character: 3}}

	assert.True(t, r.Contains(Position{Line: 1, Character: 4}))
	assert.True(t, r.Contains(Position{Line: 1, Character: 90}))
	assert.True(t, r.Contains(Position{Line: 2, Character: 3}))
	assert.False(t, r.Contains(Position{Line: 1, Character: 3}))
	assert.False(t, r.Contains(Position{Line: 2, Character: 4}))
	assert.False(t, r.Contains(Position{Line: 0, Character: 5}))
	assert.False(t, r.Contains(Position{Line: 3, Character: 0}))
}
