package rules

import (
	"errors"
	"strings"

	"github.com/tool-recommender-bot/redpen/pkg/model"
	"github.com/tool-recommender-bot/redpen/pkg/validator"
)

const defaultParagraphStart = " "

func init() {
	validator.Register(validator.Definition{
		Name:        "ParagraphStartWith",
		Description: "Flags paragraphs whose first sentence does not begin with start_from.",
		Attributes:  []string{"start_from"},
		New:         func() validator.Validator { return newParagraphStartWith() },
	})
}

var paragraphStartWithMessages = validator.Messages{
	"en": {"default": "Paragraph does not start with \"%s\"."},
	"ja": {"default": "段落が「%s」で始まっていません。"},
}

type paragraphStartWith struct {
	validator.Base
	startFrom string
}

func newParagraphStartWith() *paragraphStartWith {
	return &paragraphStartWith{Base: validator.NewBase("ParagraphStartWith")}
}

func (v *paragraphStartWith) Configure(cfg validator.Config) error {
	if err := v.Base.Configure(cfg); err != nil {
		return err
	}
	v.startFrom = cfg.Attributes.String("start_from", defaultParagraphStart)
	if v.startFrom == "" {
		return &validator.ConfigError{Validator: cfg.Name, Attribute: "start_from", Err: errors.New("must not be empty")}
	}
	return nil
}

func (v *paragraphStartWith) ValidateParagraph(p *model.Paragraph) ([]validator.ValidationError, error) {
	first, ok := p.FirstSentence()
	if !ok || first.Content == "" {
		return nil, nil
	}
	if strings.HasPrefix(first.Content, v.startFrom) {
		return nil, nil
	}
	msg := paragraphStartWithMessages.Format(v.Config().Language, "default", v.startFrom)
	return []validator.ValidationError{v.NewError(first, msg)}, nil
}
