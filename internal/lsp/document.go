package lsp

import (
	"net/url"
	"strings"
	"sync"
	"unicode/utf16"
)

// Document represents an open text document in the editor.
type Document struct {
	URI     string // Document URI (file:///path/to/file.md)
	Content string // Full document content
	Version int    // Version number, incremented on each change
	Lines   []int  // Byte offsets of line starts for fast position lookups
}

// DocumentStore manages open documents in memory.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]*Document
}

// NewDocumentStore creates a new document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]*Document),
	}
}

// Open adds or updates a document in the store.
func (s *DocumentStore) Open(uri string, content string, version int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.documents[uri] = &Document{
		URI:     uri,
		Content: content,
		Version: version,
		Lines:   computeLineOffsets(content),
	}
}

// Close removes a document from the store.
func (s *DocumentStore) Close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.documents, uri)
}

// Get retrieves a document by URI.
func (s *DocumentStore) Get(uri string) *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.documents[uri]
}

// Update replaces an open document's content. Documents are immutable
// once handed out, so readers holding the old one are unaffected.
func (s *DocumentStore) Update(uri string, content string, version int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.documents[uri]; ok {
		s.documents[uri] = &Document{
			URI:     uri,
			Content: content,
			Version: version,
			Lines:   computeLineOffsets(content),
		}
	}
}

// List returns all open document URIs.
func (s *DocumentStore) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	uris := make([]string, 0, len(s.documents))
	for uri := range s.documents {
		uris = append(uris, uri)
	}
	return uris
}

// computeLineOffsets calculates byte offsets for each line start.
func computeLineOffsets(content string) []int {
	offsets := []int{0}

	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			offsets = append(offsets, i+1)
		}
	}

	return offsets
}

// PositionToOffset converts a Position to a byte offset in the document.
// Character counts UTF-16 code units and is clamped to the line.
func (d *Document) PositionToOffset(pos Position) int {
	if d == nil || len(d.Lines) == 0 {
		return 0
	}

	line := int(pos.Line)
	if line >= len(d.Lines) {
		return len(d.Content)
	}

	text := d.GetLine(line)
	return d.Lines[line] + byteOffsetOfUTF16(text, int(pos.Character))
}

// OffsetToPosition converts a byte offset to a Position.
func (d *Document) OffsetToPosition(offset int) Position {
	if d == nil || len(d.Lines) == 0 {
		return Position{}
	}

	if offset < 0 {
		offset = 0
	}
	if offset > len(d.Content) {
		offset = len(d.Content)
	}

	line := 0
	for i, lineOffset := range d.Lines {
		if lineOffset > offset {
			break
		}
		line = i
	}

	return Position{
		Line:      uint32(line), //nolint:gosec // G115: line index bounded by content length
		Character: uint32(utf16Len(d.Content[d.Lines[line]:offset])), //nolint:gosec // G115: bounded by content length
	}
}

// GetLine returns the content of a specific line without its terminator.
func (d *Document) GetLine(line int) string {
	if d == nil || line < 0 || line >= len(d.Lines) {
		return ""
	}

	start := d.Lines[line]
	end := len(d.Content)

	if line+1 < len(d.Lines) {
		end = d.Lines[line+1] - 1
		if end < start {
			end = start
		}
	}

	return strings.TrimSuffix(d.Content[start:end], "\r")
}

// RuneColumnToUTF16 converts a rune column within line to UTF-16 code
// units. Columns past the end clamp to the line length.
func RuneColumnToUTF16(line string, col int) int {
	n := 0
	for _, r := range line {
		if col <= 0 {
			break
		}
		n += utf16RuneLen(r)
		col--
	}
	return n
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16RuneLen(r)
	}
	return n
}

func utf16RuneLen(r rune) int {
	if n := utf16.RuneLen(r); n > 0 {
		return n
	}
	return 1
}

// byteOffsetOfUTF16 returns the byte offset in s of the UTF-16 unit
// offset units, clamped to len(s).
func byteOffsetOfUTF16(s string, units int) int {
	for i, r := range s {
		if units <= 0 {
			return i
		}
		units -= utf16RuneLen(r)
	}
	return len(s)
}

// URIToPath converts a file:// URI to a file system path.
func URIToPath(uri string) string {
	const prefix = "file://"
	if !strings.HasPrefix(uri, prefix) {
		return uri
	}
	path := uri[len(prefix):]
	if unescaped, err := url.PathUnescape(path); err == nil {
		return unescaped
	}
	return path
}

// PathToURI converts a file system path to a file:// URI.
func PathToURI(path string) string {
	if strings.HasPrefix(path, "file://") {
		return path
	}
	return "file://" + (&url.URL{Path: path}).EscapedPath()
}
