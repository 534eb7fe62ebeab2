package rules

import (
	"sort"
	"strings"

	"github.com/tool-recommender-bot/redpen/pkg/model"
	"github.com/tool-recommender-bot/redpen/pkg/validator"
	"github.com/tool-recommender-bot/redpen/pkg/validator/skiplist"
)

func init() {
	validator.Register(validator.Definition{
		Name:        "InvalidExpression",
		Description: "Flags every occurrence of a forbidden expression.",
		Attributes:  []string{"list", "dict"},
		New:         func() validator.Validator { return newInvalidExpression() },
	})
}

var invalidExpressionMessages = validator.Messages{
	"en": {"default": "Found invalid expression \"%s\"."},
	"ja": {"default": "不正な表現「%s」が見つかりました。"},
}

type invalidExpression struct {
	validator.Base
	expressions []string
}

func newInvalidExpression() *invalidExpression {
	return &invalidExpression{Base: validator.NewBase("InvalidExpression")}
}

func (v *invalidExpression) Configure(cfg validator.Config) error {
	if err := v.Base.Configure(cfg); err != nil {
		return err
	}
	if !cfg.Attributes.Has("list") && !cfg.Attributes.Has("dict") {
		return &validator.ConfigError{Validator: cfg.Name, Attribute: "list", Err: validator.ErrMissingAttribute}
	}
	list, err := skiplist.Load(cfg, "list", "dict")
	if err != nil {
		return err
	}
	v.expressions = list.Words()
	return nil
}

type expressionMatch struct {
	offset int
	expr   string
}

func (v *invalidExpression) ValidateSentence(s model.Sentence) ([]validator.ValidationError, error) {
	var matches []expressionMatch
	for _, expr := range v.expressions {
		for start := 0; ; {
			i := strings.Index(s.Content[start:], expr)
			if i < 0 {
				break
			}
			matches = append(matches, expressionMatch{offset: start + i, expr: expr})
			start += i + len(expr)
		}
	}
	if len(matches) == 0 {
		return nil, nil
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].offset != matches[j].offset {
			return matches[i].offset < matches[j].offset
		}
		return matches[i].expr < matches[j].expr
	})

	errs := make([]validator.ValidationError, 0, len(matches))
	for _, m := range matches {
		msg := invalidExpressionMessages.Format(v.Config().Language, "default", m.expr)
		errs = append(errs, v.NewError(s, msg))
	}
	return errs, nil
}
