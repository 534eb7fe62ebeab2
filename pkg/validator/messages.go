package validator

import (
	"fmt"

	"golang.org/x/text/language"
)

// Messages holds per-language message templates keyed by message key.
// Templates use fmt verbs.
type Messages map[string]map[string]string

// Format renders key for lang. The lookup tries the base language of the
// tag and falls back to English, then to the key itself.
func (m Messages) Format(lang, key string, args ...any) string {
	tmpl, ok := m.lookup(lang, key)
	if !ok {
		tmpl, ok = m.lookup("en", key)
	}
	if !ok {
		return key
	}
	return fmt.Sprintf(tmpl, args...)
}

func (m Messages) lookup(lang, key string) (string, bool) {
	base := lang
	if tag, err := language.Parse(lang); err == nil {
		b, _ := tag.Base()
		base = b.String()
	}
	byKey, ok := m[base]
	if !ok {
		return "", false
	}
	tmpl, ok := byKey[key]
	return tmpl, ok
}
