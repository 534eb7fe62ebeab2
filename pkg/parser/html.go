package parser

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/tool-recommender-bot/redpen/pkg/model"
)

var htmlTitleRe = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)

type htmlParser struct{}

// Parse converts the HTML to Markdown and parses that. The <title>
// element is used when the body has no level-1 heading.
func (htmlParser) Parse(name string, src []byte) (*model.Document, error) {
	md, err := htmltomarkdown.ConvertString(string(src))
	if err != nil {
		return nil, &ParseError{Source: name, Message: fmt.Sprintf("html conversion failed: %v", err)}
	}

	var title string
	if m := htmlTitleRe.FindSubmatch(src); m != nil {
		title = strings.TrimSpace(html.UnescapeString(string(m[1])))
	}

	return parseMarkdown(name, sourceLines([]byte(md)), title)
}
