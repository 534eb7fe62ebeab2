// Package provider caches parsed and validated documents for editor
// integrations. Each open buffer is parsed and checked once per version.
package provider

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/tool-recommender-bot/redpen/pkg/model"
	"github.com/tool-recommender-bot/redpen/pkg/parser"
	"github.com/tool-recommender-bot/redpen/pkg/redpen"
	"github.com/tool-recommender-bot/redpen/pkg/validator"
)

// FormatFunc picks the input format for a document URI.
type FormatFunc func(uri string) parser.Format

// ParsedDocument holds the parse and validation results for one buffer
// version.
type ParsedDocument struct {
	URI     string
	Version int
	Content string
	Format  parser.Format

	Document   *model.Document
	ParseError error

	Errors        []validator.ValidationError
	ValidateError error

	ParsedAt time.Time
}

// HasErrors reports whether parsing or validation failed. Diagnostics
// alone do not count.
func (d *ParsedDocument) HasErrors() bool {
	return d.ParseError != nil || d.ValidateError != nil
}

// Err joins the parse and validation failures.
func (d *ParsedDocument) Err() error {
	return errors.Join(d.ParseError, d.ValidateError)
}

// Provider caches ParsedDocuments keyed by URI.
type Provider struct {
	documents   map[string]*ParsedDocument
	documentsMu sync.RWMutex

	rp        *redpen.RedPen
	formatFor FormatFunc
	logger    *slog.Logger
}

// New creates a Provider backed by rp. A nil formatFor guesses the format
// from the URI extension.
func New(rp *redpen.RedPen, formatFor FormatFunc, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if formatFor == nil {
		formatFor = parser.FormatForPath
	}
	return &Provider{
		documents: make(map[string]*ParsedDocument),
		rp:        rp,
		formatFor: formatFor,
		logger:    logger,
	}
}

// GetOrParse returns the cached result for uri, or parses and validates
// content when the cache holds an older version.
func (p *Provider) GetOrParse(ctx context.Context, uri, content string, version int) *ParsedDocument {
	p.documentsMu.RLock()
	doc, exists := p.documents[uri]
	if exists && doc.Version >= version {
		p.documentsMu.RUnlock()
		return doc
	}
	p.documentsMu.RUnlock()

	p.documentsMu.Lock()
	defer p.documentsMu.Unlock()

	doc, exists = p.documents[uri]
	if exists && doc.Version >= version {
		return doc
	}

	doc = p.parse(ctx, uri, content, version)
	p.documents[uri] = doc
	return doc
}

func (p *Provider) parse(ctx context.Context, uri, content string, version int) *ParsedDocument {
	start := time.Now()
	doc := &ParsedDocument{
		URI:      uri,
		Version:  version,
		Content:  content,
		Format:   p.formatFor(uri),
		ParsedAt: start,
	}

	doc.Document, doc.ParseError = parser.Parse(uri, []byte(content), doc.Format)
	if doc.ParseError != nil {
		p.logger.Debug("parse failed", "uri", uri, "error", doc.ParseError)
		return doc
	}

	doc.Errors, doc.ValidateError = p.rp.ValidateDocument(ctx, doc.Document)
	p.logger.Debug("document checked",
		"uri", uri,
		"version", version,
		"format", doc.Format.String(),
		"errors", len(doc.Errors),
		"duration", time.Since(start))
	return doc
}

// Get returns a cached ParsedDocument without parsing.
// Returns nil if not cached.
func (p *Provider) Get(uri string) *ParsedDocument {
	p.documentsMu.RLock()
	defer p.documentsMu.RUnlock()
	return p.documents[uri]
}

// Invalidate removes a document from the cache.
func (p *Provider) Invalidate(uri string) {
	p.documentsMu.Lock()
	defer p.documentsMu.Unlock()
	delete(p.documents, uri)
}

// InvalidateAll clears the entire document cache.
func (p *Provider) InvalidateAll() {
	p.documentsMu.Lock()
	defer p.documentsMu.Unlock()
	p.documents = make(map[string]*ParsedDocument)
}

// Len returns the number of cached documents.
func (p *Provider) Len() int {
	p.documentsMu.RLock()
	defer p.documentsMu.RUnlock()
	return len(p.documents)
}
