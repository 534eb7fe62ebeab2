package rules

import (
	"unicode"

	"golang.org/x/text/width"

	"github.com/tool-recommender-bot/redpen/pkg/model"
	"github.com/tool-recommender-bot/redpen/pkg/validator"
	"github.com/tool-recommender-bot/redpen/pkg/validator/skiplist"
)

const (
	prolongedSoundMark = 'ー' // U+30FC
	katakanaMiddleDot  = '・' // U+30FB

	// minKatakanaRunLength counts the trailing prolonged sound mark.
	minKatakanaRunLength = 4
)

func init() {
	validator.Register(validator.Definition{
		Name:        "KatakanaEndHyphen",
		Description: "Flags katakana words of four or more characters that end with a long-vowel mark.",
		Attributes:  []string{"list", "dict", "fold_width"},
		New:         func() validator.Validator { return newKatakanaEndHyphen() },
	})
}

var katakanaEndHyphenMessages = validator.Messages{
	"en": {"default": "Katakana word \"%s\" ends with a hyphen."},
	"ja": {"default": "カタカナ語「%s」の語尾に長音記号が付いています。"},
}

type katakanaEndHyphen struct {
	validator.Base
	skip      *skiplist.List
	foldWidth bool
}

func newKatakanaEndHyphen() *katakanaEndHyphen {
	return &katakanaEndHyphen{Base: validator.NewBase("KatakanaEndHyphen")}
}

func (v *katakanaEndHyphen) Configure(cfg validator.Config) error {
	if err := v.Base.Configure(cfg); err != nil {
		return err
	}

	skip, err := skiplist.Load(cfg, "list", "dict")
	if err != nil {
		return err
	}
	v.skip = skip

	fold, err := cfg.Attributes.Bool("fold_width", false)
	if err != nil {
		return &validator.ConfigError{Validator: cfg.Name, Attribute: "fold_width", Err: err}
	}
	v.foldWidth = fold
	return nil
}

func (v *katakanaEndHyphen) ValidateSentence(s model.Sentence) ([]validator.ValidationError, error) {
	text := s.Content
	if v.foldWidth {
		text = width.Widen.String(text)
	}

	var errs []validator.ValidationError
	for _, term := range katakanaEndHyphenTerms(text) {
		if v.skip.Contains(term) {
			continue
		}
		msg := katakanaEndHyphenMessages.Format(v.Config().Language, "default", term)
		errs = append(errs, v.NewError(s, msg))
	}
	return errs, nil
}

// katakanaEndHyphenTerms returns, in order, every katakana run long enough
// to qualify that ends with the prolonged sound mark.
func katakanaEndHyphenTerms(text string) []string {
	var (
		terms []string
		run   []rune
	)
	flush := func() {
		if len(run) >= minKatakanaRunLength && run[len(run)-1] == prolongedSoundMark {
			terms = append(terms, string(run))
		}
		run = run[:0]
	}

	for _, r := range text {
		if isKatakanaRunRune(r) {
			run = append(run, r)
			continue
		}
		flush()
	}
	flush()
	return terms
}

// isKatakanaRunRune reports whether r continues a katakana run. The
// prolonged sound mark belongs to the Common script, so it is added
// explicitly. The middle dot separates words.
func isKatakanaRunRune(r rune) bool {
	if r == prolongedSoundMark {
		return true
	}
	return r != katakanaMiddleDot && unicode.Is(unicode.Katakana, r)
}
