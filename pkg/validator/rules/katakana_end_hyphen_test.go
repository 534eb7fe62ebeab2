package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tool-recommender-bot/redpen/pkg/model"
	"github.com/tool-recommender-bot/redpen/pkg/validator"
)

func TestKatakanaEndHyphen(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty sentence", "", 0},
		{"hiragana", "あ", 0},
		{"single katakana", "ア", 0},
		{"two characters", "ドア", 0},
		{"three characters ending in mark", "ミラー", 0},
		{"four characters ending in mark", "コーヒー", 1},
		{"word mid sentence", "コンピューターが壊れた。", 1},
		{"word without mark", "コンピュータが壊れた。", 0},
		{"after kanji", "僕のコンピューターが壊れた。", 1},
		{"after kanji without mark", "僕のコンピュータが壊れた。", 0},
		{"at end of sentence", "僕のコンピューター", 1},
		{"at end without mark", "僕のコンピュータ", 0},
		{"two words split by middle dot", "コーヒー・コンピューター", 2},
		{"latin text", "The coffee is hot.", 0},
		{"half width without folding", "ｺｰﾋｰ", 0},
	}

	v := configured(t, "KatakanaEndHyphen", validator.Config{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, validateSentence(t, v, tt.text), tt.want)
		})
	}
}

func TestKatakanaEndHyphen_Diagnostic(t *testing.T) {
	v := configured(t, "KatakanaEndHyphen", validator.Config{})

	sv := v.(validator.SentenceValidator)
	s := model.NewSentence("濃いコーヒーは胃にわるい。", 12)
	errs, err := sv.ValidateSentence(s)
	require.NoError(t, err)
	require.Len(t, errs, 1)

	assert.Equal(t, "KatakanaEndHyphen", errs[0].Validator)
	assert.Equal(t, 12, errs[0].LineNumber)
	assert.Equal(t, `Katakana word "コーヒー" ends with a hyphen.`, errs[0].Message)
	assert.Equal(t, s.Content, errs[0].Sentence)
}

func TestKatakanaEndHyphen_JapaneseMessage(t *testing.T) {
	v := configured(t, "KatakanaEndHyphen", validator.Config{Language: "ja"})
	errs := validateSentence(t, v, "コーヒー")
	require.Len(t, errs, 1)
	assert.Equal(t, "カタカナ語「コーヒー」の語尾に長音記号が付いています。", errs[0].Message)
}

func TestKatakanaEndHyphen_InlineSkipList(t *testing.T) {
	v := configured(t, "KatakanaEndHyphen", validator.Config{
		Attributes: validator.Attributes{"list": "コーヒー"},
	})

	assert.Empty(t, validateSentence(t, v, "濃いコーヒーは胃にわるい。"))

	errs := validateSentence(t, v, "コーヒー・コンピューター")
	require.Len(t, errs, 1, "only the exempt term is suppressed")
	assert.Contains(t, errs[0].Message, "コンピューター")
}

func TestKatakanaEndHyphen_DictSkipList(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skip.txt"), []byte("コーヒー\nミキサー\n"), 0o600))

	v := configured(t, "KatakanaEndHyphen", validator.Config{
		BaseDir:    dir,
		Attributes: validator.Attributes{"dict": "skip.txt"},
	})
	assert.Empty(t, validateSentence(t, v, "コーヒーと紅茶と、どちらがお好きですか。"))
}

func TestKatakanaEndHyphen_MissingDict(t *testing.T) {
	v, err := validator.New("KatakanaEndHyphen")
	require.NoError(t, err)

	err = v.Configure(validator.Config{
		Name:       "KatakanaEndHyphen",
		BaseDir:    t.TempDir(),
		Attributes: validator.Attributes{"dict": "missing.txt"},
	})
	var resErr *validator.ResourceError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "KatakanaEndHyphen", resErr.Validator)
}

func TestKatakanaEndHyphen_FoldWidth(t *testing.T) {
	v := configured(t, "KatakanaEndHyphen", validator.Config{
		Attributes: validator.Attributes{"fold_width": "true"},
	})
	errs := validateSentence(t, v, "ｺｰﾋｰ")
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "コーヒー")

	bad, err := validator.New("KatakanaEndHyphen")
	require.NoError(t, err)
	err = bad.Configure(validator.Config{Name: "KatakanaEndHyphen", Attributes: validator.Attributes{"fold_width": "sometimes"}})
	var cfgErr *validator.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "fold_width", cfgErr.Attribute)
}

func TestKatakanaEndHyphenTerms(t *testing.T) {
	assert.Equal(t, []string{"コーヒー", "コンピューター"}, katakanaEndHyphenTerms("コーヒー・コンピューター"))
	assert.Equal(t, []string{"サーバー"}, katakanaEndHyphenTerms("このサーバーは"))
	assert.Nil(t, katakanaEndHyphenTerms("ミラー"))
	assert.Nil(t, katakanaEndHyphenTerms(""))
}
