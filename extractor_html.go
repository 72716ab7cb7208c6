// Copyright 2026 Conductor OSS
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package textract

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	htmlcharset "golang.org/x/net/html/charset"
)

var htmlTypes = []Matcher{
	Exact("text/html"),
	Exact("application/xhtml+xml"),
	Exact("text/xml"),
	Exact("application/xml"),
	Exact("application/rss+xml"),
	Exact("application/atom+xml"),
}

// lineMark stands in for a line break while the markup is parsed, since the
// parser would otherwise fold real line breaks into the text.
const lineMark = "|||||"

const blockTags = `br|p|div|section|aside|button|header|footer|li|article|blockquote|cite|code|h1|h2|h3|h4|h5|h6|legend|nav`

var (
	reBlockOpen    = regexp.MustCompile(`< *(` + blockTags + `)((.*?)>)`)
	reBlockClose   = regexp.MustCompile(`</ *?(` + blockTags + `)>`)
	reInlineClose  = regexp.MustCompile(`< */(td|a|option) *>`)
	reInlineOpen   = regexp.MustCompile(`< *(a|td|option)`)
	reSelfClosing  = regexp.MustCompile(`< *(br|hr) +/>`)
	reLineMark     = regexp.MustCompile(regexp.QuoteMeta(lineMark))
	reBreakSpacing = []*regexp.Regexp{
		regexp.MustCompile(`(\n\x{00A0}|\x{00A0}\n|\n | \n)+`),
		regexp.MustCompile(`(\r\x{00A0}|\x{00A0}\r|\r | \r)+`),
		regexp.MustCompile(`(\v\x{00A0}|\x{00A0}\v|\v | \v)+`),
		regexp.MustCompile(`(\t\x{00A0}|\x{00A0}\t|\t | \t)+`),
	}
	reBreakRun = regexp.MustCompile(`[\n\r\t\v]+`)
)

// HTMLExtractor handles HTML and generic XML. Other extractors that produce
// HTML hand it to ExtractString.
type HTMLExtractor struct{}

// NewHTMLExtractor creates a new HTMLExtractor.
func NewHTMLExtractor() *HTMLExtractor {
	return &HTMLExtractor{}
}

func (e *HTMLExtractor) Name() string { return "html" }

func (e *HTMLExtractor) Types() []Matcher { return htmlTypes }

func (e *HTMLExtractor) InputKind() InputKind { return InputBuffer }

func (e *HTMLExtractor) Extract(_ context.Context, in Input, opts *Options) (string, error) {
	data := in.Bytes()
	enc, _, _ := htmlcharset.DetermineEncoding(data, "text/html")
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decode html: %w", err)
	}
	return e.ExtractString(string(decoded), opts)
}

// ExtractString returns the text of an HTML document. Block elements
// start new lines, table cells, links and options are spaced apart, and
// scripts and styles are dropped.
func (e *HTMLExtractor) ExtractString(markup string, opts *Options) (string, error) {
	markup = reBlockOpen.ReplaceAllString(markup, "<$1$2"+lineMark)
	markup = reInlineClose.ReplaceAllString(markup, " </$1>")
	markup = reInlineOpen.ReplaceAllString(markup, " <$1")
	markup = reSelfClosing.ReplaceAllString(markup, lineMark+"<$1/>")
	markup = reBlockClose.ReplaceAllString(markup, lineMark+"</$1>")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<textractwrapper>" + markup + "</textractwrapper>"))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	doc.Find("script, style, noscript").Remove()

	root := doc.Find("textractwrapper").First()
	var text string
	if opts != nil && opts.IncludeAltText {
		text = textWithAlt(root)
	} else {
		text = root.Text()
	}

	text = reLineMark.ReplaceAllString(text, "\n")
	for _, re := range reBreakSpacing {
		text = re.ReplaceAllString(text, "\n")
	}
	return reBreakRun.ReplaceAllString(text, "\n"), nil
}

// textWithAlt is Text, except that images contribute their alt text and
// inputs their value.
func textWithAlt(s *goquery.Selection) string {
	switch {
	case s.Is("img"):
		return " " + s.AttrOr("alt", "") + " "
	case s.Is("input"):
		return s.AttrOr("value", "")
	}

	var b strings.Builder
	s.Contents().Each(func(_ int, child *goquery.Selection) {
		node := child.Get(0)
		switch node.Type {
		case html.TextNode:
			b.WriteString(node.Data)
		case html.ElementNode:
			if child.Is("img, input") || child.Find("img[alt], input[value]").Length() > 0 {
				b.WriteString(textWithAlt(child))
			} else {
				b.WriteString(child.Text())
			}
		}
	})
	return b.String()
}
