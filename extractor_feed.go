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
	"strings"

	"github.com/mmcdole/gofeed"
)

var feedTypes = []Matcher{
	Exact("application/rss+xml"),
	Exact("application/atom+xml"),
	Exact("application/feed+json"),
}

// FeedExtractor handles RSS, Atom and JSON feeds: the feed title and
// description, then each item's title and body. HTML bodies are reduced
// to their text.
type FeedExtractor struct {
	html *HTMLExtractor
}

// NewFeedExtractor creates a new FeedExtractor.
func NewFeedExtractor(html *HTMLExtractor) *FeedExtractor {
	return &FeedExtractor{html: html}
}

func (e *FeedExtractor) Name() string { return "feed" }

func (e *FeedExtractor) Types() []Matcher { return feedTypes }

func (e *FeedExtractor) InputKind() InputKind { return InputBuffer }

func (e *FeedExtractor) Extract(_ context.Context, in Input, opts *Options) (string, error) {
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(in.Bytes()))
	if err != nil {
		return "", fmt.Errorf("parse feed: %w", err)
	}

	var lines []string
	add := func(s string) error {
		if strings.ContainsAny(s, "<>") {
			text, err := e.html.ExtractString(s, opts)
			if err != nil {
				return err
			}
			s = text
		}
		if s = strings.TrimSpace(s); s != "" {
			lines = append(lines, s)
		}
		return nil
	}

	if err := add(feed.Title); err != nil {
		return "", err
	}
	if err := add(feed.Description); err != nil {
		return "", err
	}
	for _, item := range feed.Items {
		body := item.Content
		if body == "" {
			body = item.Description
		}
		if err := add(item.Title); err != nil {
			return "", err
		}
		if err := add(body); err != nil {
			return "", err
		}
	}
	return strings.Join(lines, "\n"), nil
}
