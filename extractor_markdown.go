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
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdownTypes = []Matcher{
	Exact("text/x-markdown"),
	Exact("text/markdown"),
}

// MarkdownExtractor renders Markdown to HTML and extracts the text of that.
type MarkdownExtractor struct {
	html *HTMLExtractor
	md   goldmark.Markdown
}

// NewMarkdownExtractor creates a new MarkdownExtractor.
func NewMarkdownExtractor(html *HTMLExtractor) *MarkdownExtractor {
	return &MarkdownExtractor{
		html: html,
		md:   goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

func (e *MarkdownExtractor) Name() string { return "markdown" }

func (e *MarkdownExtractor) Types() []Matcher { return markdownTypes }

func (e *MarkdownExtractor) InputKind() InputKind { return InputBuffer }

func (e *MarkdownExtractor) Extract(_ context.Context, in Input, opts *Options) (string, error) {
	var buf bytes.Buffer
	if err := e.md.Convert(in.Bytes(), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return e.html.ExtractString(buf.String(), opts)
}
