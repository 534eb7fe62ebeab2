package parser

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"github.com/tool-recommender-bot/redpen/pkg/model"
)

type frontMatter struct {
	Title string `yaml:"title"`
}

func isFrontMatterDelim(s string) bool {
	s = strings.TrimRight(s, " \t")
	return s == "---" || s == "..."
}

// splitFrontMatter parses a leading YAML block delimited by "---" lines
// and returns the index of the first body line. A leading "---" without
// a closing delimiter, or whose block is not a YAML mapping, is left to
// the body as a thematic break or setext underline.
func splitFrontMatter(lines []string) (frontMatter, int) {
	var fm frontMatter
	if len(lines) == 0 || strings.TrimRight(lines[0], " \t") != "---" {
		return fm, 0
	}

	for i := 1; i < len(lines); i++ {
		if !isFrontMatterDelim(lines[i]) {
			continue
		}
		block := strings.Join(lines[1:i], "\n")
		if err := yaml.Unmarshal([]byte(block), &fm); err != nil {
			return frontMatter{}, 0
		}
		return fm, i + 1
	}
	return fm, 0
}

func newMarkdown() goldmark.Markdown {
	return goldmark.New(goldmark.WithExtensions(
		extension.Table,
		extension.Strikethrough,
		extension.TaskList,
	))
}

type markdownParser struct{}

// Parse maps ATX and setext headings to sections at their level. Text
// before the first heading goes into a level-1 section without heading.
// Each list item is its own paragraph. Code blocks, tables and HTML
// blocks are skipped.
func (markdownParser) Parse(name string, src []byte) (*model.Document, error) {
	return parseMarkdown(name, sourceLines(src), "")
}

func parseMarkdown(name string, lines []string, fallbackTitle string) (*model.Document, error) {
	fm, body := splitFrontMatter(lines)
	// Front matter lines are blanked, not removed, so offsets keep
	// mapping to source lines.
	blanked := make([]string, len(lines))
	copy(blanked[body:], lines[body:])
	source := []byte(strings.Join(blanked, "\n"))

	root := newMarkdown().Parser().Parse(text.NewReader(source))

	w := &markdownWalker{
		b:      model.NewDocumentBuilder(name),
		source: source,
		starts: lineStarts(source),
	}
	if err := ast.Walk(root, w.visit); err != nil {
		return nil, &ParseError{Source: name, Message: err.Error()}
	}

	title := fm.Title
	if title == "" {
		title = w.firstTitle
	}
	if title == "" {
		title = fallbackTitle
	}
	w.b.SetTitle(title)

	doc, err := w.b.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return doc, nil
}

func lineStarts(source []byte) []int {
	starts := []int{0}
	for i, c := range source {
		if c == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

type markdownWalker struct {
	b          *model.DocumentBuilder
	source     []byte
	starts     []int
	hasSection bool
	firstTitle string
}

func (w *markdownWalker) visit(n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	switch node := n.(type) {
	case *ast.Heading:
		w.heading(node)
		return ast.WalkSkipChildren, nil
	case *ast.Paragraph, *ast.TextBlock:
		w.paragraph(node)
		return ast.WalkSkipChildren, nil
	case *ast.CodeBlock, *ast.FencedCodeBlock, *ast.HTMLBlock, *east.Table:
		return ast.WalkSkipChildren, nil
	}
	return ast.WalkContinue, nil
}

func (w *markdownWalker) heading(n *ast.Heading) {
	lines := w.inlineLines(n)
	w.b.AddSection(n.Level, splitSentences(lines, false)...)
	w.hasSection = true

	if n.Level == 1 && w.firstTitle == "" {
		w.firstTitle = joinLines(lines)
	}
}

func (w *markdownWalker) paragraph(n ast.Node) {
	sentences := splitSentences(w.inlineLines(n), false)
	if len(sentences) == 0 {
		return
	}
	if !w.hasSection {
		w.b.AddSection(1)
		w.hasSection = true
	}
	w.b.AddParagraph()
	for _, s := range sentences {
		w.b.AddSentence(s)
	}
}

// position maps a byte offset in the source to a 1-based line number and
// a rune column.
func (w *markdownWalker) position(offset int) (int, int) {
	idx := sort.Search(len(w.starts), func(i int) bool { return w.starts[i] > offset }) - 1
	if idx < 0 {
		idx = 0
	}
	return idx + 1, utf8.RuneCount(w.source[w.starts[idx]:offset])
}

// inlineLines collects the visible text of a block, one line per source
// line, with the source column of every rune.
func (w *markdownWalker) inlineLines(n ast.Node) []line {
	c := &inlineCollector{w: w}
	c.collect(n)
	c.breakLine()
	return c.lines
}

type inlineCollector struct {
	w     *markdownWalker
	lines []line
	cur   line
	runes []rune
	// next is the column given to text without a source segment.
	next int
}

func (c *inlineCollector) collect(n ast.Node) {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch v := child.(type) {
		case *ast.Text:
			c.segment(v.Segment, !v.IsRaw())
			if v.SoftLineBreak() || v.HardLineBreak() {
				c.breakLine()
			}
		case *ast.String:
			for _, r := range string(v.Value) {
				c.add(r, c.cur.number, c.next)
			}
		case *ast.AutoLink, *ast.RawHTML:
		default:
			c.collect(child)
		}
	}
}

// segment adds the text of seg. With unescape set, a backslash before
// ASCII punctuation is dropped.
func (c *inlineCollector) segment(seg text.Segment, unescape bool) {
	value := seg.Value(c.w.source)
	for i := 0; i < len(value); {
		r, size := utf8.DecodeRune(value[i:])
		if r == '\n' {
			c.breakLine()
			i += size
			continue
		}
		if unescape && r == '\\' && i+1 < len(value) && isASCIIPunct(value[i+1]) {
			i += size
			continue
		}
		number, col := c.w.position(seg.Start + i)
		c.add(r, number, col)
		i += size
	}
}

func (c *inlineCollector) add(r rune, number, col int) {
	if len(c.runes) > 0 && number != c.cur.number {
		c.breakLine()
	}
	if len(c.runes) == 0 {
		c.cur.number = number
	}
	c.runes = append(c.runes, r)
	c.cur.cols = append(c.cur.cols, col)
	c.next = col + 1
}

func (c *inlineCollector) breakLine() {
	end := len(c.runes)
	for end > 0 && unicode.IsSpace(c.runes[end-1]) {
		end--
	}
	if end > 0 {
		c.cur.text = string(c.runes[:end])
		c.cur.cols = c.cur.cols[:end]
		c.cur.column = c.cur.cols[0]
		c.lines = append(c.lines, c.cur)
	}
	c.cur = line{number: c.cur.number}
	c.runes = nil
}

func isASCIIPunct(b byte) bool {
	return b < utf8.RuneSelf && unicode.IsPunct(rune(b)) || strings.IndexByte("$+<=>^`|~", b) >= 0
}

func joinLines(lines []line) string {
	parts := make([]string, 0, len(lines))
	for _, ln := range lines {
		parts = append(parts, strings.TrimSpace(ln.text))
	}
	return strings.Join(parts, " ")
}
