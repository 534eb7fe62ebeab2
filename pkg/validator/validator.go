package validator

import (
	"fmt"

	"github.com/tool-recommender-bot/redpen/pkg/model"
)

// Validator is the base interface all checks implement.
type Validator interface {
	// Name returns the stable name used for registry lookup and for
	// stamping diagnostics.
	Name() string

	// Configure binds settings before the first validate call. It is called
	// exactly once per run.
	Configure(cfg Config) error
}

// SentenceValidator inspects one sentence at a time.
type SentenceValidator interface {
	Validator
	ValidateSentence(s model.Sentence) ([]ValidationError, error)
}

// ParagraphValidator inspects one paragraph at a time.
type ParagraphValidator interface {
	Validator
	ValidateParagraph(p *model.Paragraph) ([]ValidationError, error)
}

// DocumentValidator inspects a whole document.
type DocumentValidator interface {
	Validator
	ValidateDocument(d *model.Document) ([]ValidationError, error)
}

// Granularity is the structural level a validator operates at.
type Granularity int

// Granularity levels.
const (
	GranularityUnknown Granularity = iota
	GranularitySentence
	GranularityParagraph
	GranularityDocument
)

// String returns the string representation of the granularity.
func (g Granularity) String() string {
	switch g {
	case GranularitySentence:
		return "sentence"
	case GranularityParagraph:
		return "paragraph"
	case GranularityDocument:
		return "document"
	default:
		return "unknown"
	}
}

// GranularityOf reports the level v operates at. A validator that
// implements none, or more than one, of the granularity interfaces is
// rejected.
func GranularityOf(v Validator) (Granularity, error) {
	var found []Granularity
	if _, ok := v.(SentenceValidator); ok {
		found = append(found, GranularitySentence)
	}
	if _, ok := v.(ParagraphValidator); ok {
		found = append(found, GranularityParagraph)
	}
	if _, ok := v.(DocumentValidator); ok {
		found = append(found, GranularityDocument)
	}

	switch len(found) {
	case 1:
		return found[0], nil
	case 0:
		return GranularityUnknown, fmt.Errorf("validator %q implements no granularity", v.Name())
	default:
		return GranularityUnknown, fmt.Errorf("validator %q implements %d granularities, want exactly one", v.Name(), len(found))
	}
}

// Base carries the name and bound configuration shared by most validators.
// Embed it and override Configure when settings need parsing.
type Base struct {
	name string
	cfg  Config
}

// NewBase returns a Base for the named validator.
func NewBase(name string) Base {
	return Base{name: name}
}

// Name implements Validator.
func (b *Base) Name() string { return b.name }

// Configure implements Validator by storing cfg.
func (b *Base) Configure(cfg Config) error {
	b.cfg = cfg
	return nil
}

// Config returns the bound configuration.
func (b *Base) Config() Config { return b.cfg }

// NewError builds a diagnostic for s stamped with the validator's name.
func (b *Base) NewError(s model.Sentence, message string) ValidationError {
	return ValidationError{
		Validator:     b.name,
		Message:       message,
		LineNumber:    s.LineNumber,
		StartPosition: s.StartPosition,
		Sentence:      s.Content,
	}
}
