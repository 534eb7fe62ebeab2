package rules

import (
	"errors"
	"unicode/utf8"

	"github.com/tool-recommender-bot/redpen/pkg/model"
	"github.com/tool-recommender-bot/redpen/pkg/validator"
)

const defaultMaxSentenceLength = 30

func init() {
	validator.Register(validator.Definition{
		Name:        "SentenceLength",
		Description: "Flags sentences longer than max_len characters.",
		Properties:  []string{"max_len"},
		New:         func() validator.Validator { return newSentenceLength() },
	})
}

var sentenceLengthMessages = validator.Messages{
	"en": {"default": "The length of the sentence (%d) exceeds the maximum of %d."},
	"ja": {"default": "文の長さ（%d）が最大値（%d）を超えています。"},
}

type sentenceLength struct {
	validator.Base
	maxLen int
}

func newSentenceLength() *sentenceLength {
	return &sentenceLength{Base: validator.NewBase("SentenceLength")}
}

func (v *sentenceLength) Configure(cfg validator.Config) error {
	if err := v.Base.Configure(cfg); err != nil {
		return err
	}
	maxLen, err := cfg.Int("max_len", defaultMaxSentenceLength)
	if err != nil {
		return err
	}
	if maxLen <= 0 {
		return &validator.ConfigError{Validator: cfg.Name, Attribute: "max_len", Err: errors.New("must be positive")}
	}
	v.maxLen = maxLen
	return nil
}

func (v *sentenceLength) ValidateSentence(s model.Sentence) ([]validator.ValidationError, error) {
	n := utf8.RuneCountInString(s.Content)
	if n <= v.maxLen {
		return nil, nil
	}
	msg := sentenceLengthMessages.Format(v.Config().Language, "default", n, v.maxLen)
	return []validator.ValidationError{v.NewError(s, msg)}, nil
}
