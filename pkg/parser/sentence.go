package parser

import (
	"strings"
	"unicode"

	"golang.org/x/text/width"

	"github.com/tool-recommender-bot/redpen/pkg/model"
)

// line is one source line of a block, already stripped of block markup.
type line struct {
	text   string
	number int
	// column is the rune offset of text within the source line.
	column int
	// cols, when set, holds the source column of each rune of text.
	cols []int
}

func (ln line) col(i int) int {
	if i < len(ln.cols) {
		return ln.cols[i]
	}
	return ln.column + i
}

// closingRunes may follow a terminator and stay in the same sentence.
const closingRunes = "\"')]}」』）】’”»"

func isFullWidthStop(r rune) bool {
	return r == '。' || r == '？' || r == '！'
}

func isStop(r rune) bool {
	return r == '.' || r == '?' || r == '!'
}

// terminates reports whether runes[i] ends a sentence. Full-width stops
// always do. ASCII stops only when followed, after any closing quotes, by
// whitespace or the end of the line, so "3.14" and "e.g.," stay whole.
func terminates(runes []rune, i int) bool {
	r := runes[i]
	if isFullWidthStop(r) {
		return true
	}
	if !isStop(r) {
		return false
	}
	j := i + 1
	for j < len(runes) && strings.ContainsRune(closingRunes, runes[j]) {
		j++
	}
	return j >= len(runes) || unicode.IsSpace(runes[j])
}

func isWide(r rune) bool {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return true
	}
	return false
}

// splitSentences splits the lines of one block into sentences. A sentence
// continuing onto the next line is joined with a space unless either side
// of the break is a wide character. keepIndent keeps the leading
// whitespace of the first sentence.
func splitSentences(lines []line, keepIndent bool) []model.Sentence {
	var (
		out          []model.Sentence
		buf          strings.Builder
		started      bool
		pendingBreak bool
		startLine    int
		startCol     int
		last         rune
	)

	emit := func() {
		text := strings.TrimRightFunc(buf.String(), unicode.IsSpace)
		if started && strings.TrimSpace(text) != "" {
			s := model.NewSentence(text, startLine)
			s.StartPosition = startCol
			out = append(out, s)
		}
		buf.Reset()
		started = false
		pendingBreak = false
	}

	for li, ln := range lines {
		runes := []rune(ln.text)
		for i := 0; i < len(runes); i++ {
			r := runes[i]
			if !started {
				indent := keepIndent && li == 0 && len(out) == 0
				if unicode.IsSpace(r) && !indent {
					continue
				}
				started = true
				startLine = ln.number
				startCol = ln.col(i)
			}
			if pendingBreak {
				if unicode.IsSpace(r) {
					continue
				}
				if !isWide(last) && !isWide(r) {
					buf.WriteByte(' ')
				}
				pendingBreak = false
			}

			buf.WriteRune(r)
			last = r
			if !terminates(runes, i) {
				continue
			}
			for i+1 < len(runes) && strings.ContainsRune(closingRunes, runes[i+1]) {
				i++
				buf.WriteRune(runes[i])
			}
			emit()
		}
		if started {
			pendingBreak = true
		}
	}
	emit()

	return out
}
