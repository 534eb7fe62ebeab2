package rules

import (
	"errors"

	"github.com/tool-recommender-bot/redpen/pkg/model"
	"github.com/tool-recommender-bot/redpen/pkg/validator"
)

const defaultMaxParagraphs = 6

func init() {
	validator.Register(validator.Definition{
		Name:        "ParagraphNumber",
		Description: "Flags sections holding more than max_num paragraphs.",
		Properties:  []string{"max_num"},
		New:         func() validator.Validator { return newParagraphNumber() },
	})
}

var paragraphNumberMessages = validator.Messages{
	"en": {"default": "The number of paragraphs (%d) exceeds the maximum of %d."},
	"ja": {"default": "段落数（%d）が最大値（%d）を超えています。"},
}

type paragraphNumber struct {
	validator.Base
	maxNum int
}

func newParagraphNumber() *paragraphNumber {
	return &paragraphNumber{Base: validator.NewBase("ParagraphNumber")}
}

func (v *paragraphNumber) Configure(cfg validator.Config) error {
	if err := v.Base.Configure(cfg); err != nil {
		return err
	}
	maxNum, err := cfg.Int("max_num", defaultMaxParagraphs)
	if err != nil {
		return err
	}
	if maxNum <= 0 {
		return &validator.ConfigError{Validator: cfg.Name, Attribute: "max_num", Err: errors.New("must be positive")}
	}
	v.maxNum = maxNum
	return nil
}

func (v *paragraphNumber) ValidateDocument(d *model.Document) ([]validator.ValidationError, error) {
	var errs []validator.ValidationError
	for _, sec := range d.Sections() {
		n := len(sec.Paragraphs())
		if n <= v.maxNum {
			continue
		}
		anchor := model.NewSentence("", sec.Line())
		if headers := sec.Headers(); len(headers) > 0 {
			anchor = headers[0]
		}
		msg := paragraphNumberMessages.Format(v.Config().Language, "default", n, v.maxNum)
		errs = append(errs, v.NewError(anchor, msg))
	}
	return errs, nil
}
