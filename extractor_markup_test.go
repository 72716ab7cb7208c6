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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTMLExtractString(t *testing.T) {
	e := NewHTMLExtractor()

	tests := []struct {
		name   string
		markup string
		opts   *Options
		want   string
	}{
		{"block elements", "<p>Hello</p><p>World</p>", nil, "\nHello\nWorld\n"},
		{"closing tag ends the line", "<div>one</div>two", nil, "\none\ntwo"},
		{"scripts and styles dropped", "<div>Keep<script>var x;</script><style>p{}</style></div>", nil, "\nKeep\n"},
		{"table cells spaced", "<table><tr><td>a</td><td>b</td></tr></table>", nil, " a  b "},
		{"alt text ignored", `<p>See <img src="c.png" alt="a cat"></p>`, nil, "\nSee\n"},
		{"alt text included", `<p>See <img src="c.png" alt="a cat"></p>`, &Options{IncludeAltText: true}, "\nSee  a cat\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.ExtractString(tt.markup, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHTMLExtractorDecodesCharset(t *testing.T) {
	markup := []byte("<html><head><meta charset=\"iso-8859-1\"></head><body><p>caf\xe9</p></body></html>")

	got, err := NewHTMLExtractor().Extract(context.Background(), Buffer(markup), &Options{})
	require.NoError(t, err)
	assert.Contains(t, got, "café")
}

func TestMarkdownExtractor(t *testing.T) {
	e := NewMarkdownExtractor(NewHTMLExtractor())
	md := "# Title\n\nSome *emphasis*.\n\n| a | b |\n|---|---|\n| 1 | 2 |\n"

	got, err := e.Extract(context.Background(), Buffer([]byte(md)), &Options{})
	require.NoError(t, err)
	assert.Contains(t, got, "Title")
	assert.Contains(t, got, "Some emphasis.")
	assert.NotContains(t, got, "*")
	assert.NotContains(t, got, "|---|")
}

func TestFeedExtractor(t *testing.T) {
	e := NewFeedExtractor(NewHTMLExtractor())
	ctx := context.Background()

	t.Run("rss", func(t *testing.T) {
		rss := `<?xml version="1.0"?><rss version="2.0"><channel><title>Blog</title>` +
			`<description>News and notes</description>` +
			`<item><title>First post</title><description>&lt;p&gt;Hello &lt;b&gt;there&lt;/b&gt;&lt;/p&gt;</description></item>` +
			`<item><title>Second</title><description>Plain body</description></item>` +
			`</channel></rss>`

		got, err := e.Extract(ctx, Buffer([]byte(rss)), &Options{})
		require.NoError(t, err)
		assert.Equal(t, "Blog\nNews and notes\nFirst post\nHello there\nSecond\nPlain body", got)
	})

	t.Run("atom", func(t *testing.T) {
		atom := `<?xml version="1.0" encoding="utf-8"?><feed xmlns="http://www.w3.org/2005/Atom">` +
			`<title>Atom feed</title><entry><title>Entry one</title>` +
			`<content type="html">&lt;p&gt;Body text&lt;/p&gt;</content></entry></feed>`

		got, err := e.Extract(ctx, Buffer([]byte(atom)), &Options{})
		require.NoError(t, err)
		assert.Contains(t, got, "Atom feed")
		assert.Contains(t, got, "Entry one")
		assert.Contains(t, got, "Body text")
		assert.NotContains(t, got, "<p>")
	})

	t.Run("not a feed", func(t *testing.T) {
		_, err := e.Extract(ctx, Buffer([]byte("just words")), &Options{})
		assert.Error(t, err)
	})
}

func TestIpynbExtractor(t *testing.T) {
	nb := `{"cells":[` +
		`{"cell_type":"markdown","source":["# Title\n","Intro"]},` +
		`{"cell_type":"code","source":"print(1)","outputs":[` +
		`{"output_type":"stream","text":["1\n"]},` +
		`{"output_type":"execute_result","data":{"text/plain":["42"]}}]}` +
		`],"nbformat":4}`

	got, err := NewIpynbExtractor().Extract(context.Background(), Buffer([]byte(nb)), &Options{})
	require.NoError(t, err)
	assert.Equal(t, "# Title\nIntro\n\nprint(1)\n\n1\n\n42", got)

	_, err = NewIpynbExtractor().Extract(context.Background(), Buffer([]byte("{")), &Options{})
	assert.ErrorIs(t, err, ErrNotOfClaimedType)
}

func TestTextExtractor(t *testing.T) {
	e := NewTextExtractor()
	ctx := context.Background()

	got, err := e.Extract(ctx, Buffer([]byte("plain")), &Options{})
	require.NoError(t, err)
	assert.Equal(t, "plain", got)

	utf16 := []byte{0xFF, 0xFE, 'h', 0, 'i', 0}
	got, err = e.Extract(ctx, Buffer(utf16), &Options{})
	require.NoError(t, err)
	assert.Equal(t, "hi", got)
}

func TestDetectType(t *testing.T) {
	tests := []struct {
		declared string
		name     string
		data     string
		want     string
	}{
		{"text/html; charset=utf-8", "page", "", "text/html"},
		{"application/octet-stream", "report.docx", "", "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
		{"", "notes.TXT", "", "text/plain"},
		{"", "download", "%PDF-1.4\n", "application/pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detectType(tt.declared, tt.name, []byte(tt.data)))
		})
	}
}
