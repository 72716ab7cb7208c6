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
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
)

var pdfTypes = []Matcher{
	Exact("application/pdf"),
}

// PDFExtractor runs pdftotext from poppler-utils.
type PDFExtractor struct {
	// Command is the pdftotext binary. Defaults to "pdftotext" on PATH.
	Command string
}

// NewPDFExtractor creates a new PDFExtractor.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{Command: "pdftotext"}
}

func (e *PDFExtractor) Name() string { return "pdf" }

func (e *PDFExtractor) Types() []Matcher { return pdfTypes }

func (e *PDFExtractor) InputKind() InputKind { return InputFilePath }

func (e *PDFExtractor) Probe(ctx context.Context, _ *Options) (bool, error) {
	return probeBanner(ctx, "pdftotext version", "PDFs", e.Command, "-v")
}

// Extract returns the pages of the document joined by spaces. Without
// PdfToText options pdftotext runs in raw mode, which keeps words of
// multi-column layouts together.
func (e *PDFExtractor) Extract(ctx context.Context, in Input, opts *Options) (string, error) {
	path, err := filepath.Abs(in.Path())
	if err != nil {
		return "", err
	}

	args := append(pdfToTextArgs(opts.PdfToText), path, "-")
	stdout, _, err := runCommand(ctx, opts.Exec, e.Command, args...)
	if err != nil {
		return "", err
	}

	pages := strings.Split(string(stdout), "\f")
	if pages[len(pages)-1] == "" {
		pages = pages[:len(pages)-1]
	}
	return strings.TrimSpace(strings.Join(pages, " ")), nil
}

// pdfToTextArgs builds the pdftotext flags, less the input and output
// arguments.
func pdfToTextArgs(o *PdfToTextOptions) []string {
	if o == nil {
		o = &PdfToTextOptions{Layout: "raw"}
	}
	layout, enc := o.Layout, o.Encoding
	if layout == "" {
		layout = "layout"
	}
	if enc == "" {
		enc = "UTF-8"
	}

	var args []string
	if o.FirstPage > 0 {
		args = append(args, "-f", strconv.Itoa(o.FirstPage))
	}
	if o.LastPage > 0 {
		args = append(args, "-l", strconv.Itoa(o.LastPage))
	}
	if o.Resolution > 0 {
		args = append(args, "-r", strconv.Itoa(o.Resolution))
	}
	if c := o.Crop; c != nil {
		args = append(args,
			"-x", strconv.Itoa(c.X),
			"-y", strconv.Itoa(c.Y),
			"-W", strconv.Itoa(c.W),
			"-H", strconv.Itoa(c.H),
		)
	}
	switch layout {
	case "layout", "raw", "htmlmeta":
		args = append(args, "-"+layout)
	}
	args = append(args, "-enc", enc)
	if o.EOL != "" {
		args = append(args, "-eol", o.EOL)
	}
	if o.OwnerPassword != "" {
		args = append(args, "-opw", o.OwnerPassword)
	}
	if o.UserPassword != "" {
		args = append(args, "-upw", o.UserPassword)
	}
	return args
}

// NativePDFExtractor reads PDFs in-process. It needs no external tools
// but copes worse than pdftotext with unusual fonts and layouts.
type NativePDFExtractor struct{}

// NewNativePDFExtractor creates a new NativePDFExtractor.
func NewNativePDFExtractor() *NativePDFExtractor {
	return &NativePDFExtractor{}
}

func (e *NativePDFExtractor) Name() string { return "pdf-native" }

func (e *NativePDFExtractor) Types() []Matcher { return pdfTypes }

func (e *NativePDFExtractor) InputKind() InputKind { return InputBuffer }

func (e *NativePDFExtractor) Extract(ctx context.Context, in Input, _ *Options) (text string, err error) {
	// The pdf package panics on some malformed documents.
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("read pdf: %v", v)
		}
	}()

	data := in.Bytes()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotOfClaimedType, err)
	}

	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pages = append(pages, pageText(page))
	}
	return strings.TrimSpace(strings.Join(pages, " ")), nil
}

// pageText joins the text of each row on a page, inserting a space
// wherever the gap between two runs is wider than a fifth of the font size.
func pageText(page pdf.Page) string {
	rows, err := page.GetTextByRow()
	if err != nil || len(rows) == 0 {
		text, _ := page.GetPlainText(nil)
		return text
	}

	var b strings.Builder
	for _, row := range rows {
		var prev *pdf.Text
		for i := range row.Content {
			t := &row.Content[i]
			if t.S == "" {
				continue
			}
			if prev != nil && t.X-(prev.X+prev.W) > max(t.FontSize*0.2, 1) {
				b.WriteByte(' ')
			}
			b.WriteString(t.S)
			prev = t
		}
		b.WriteByte('\n')
	}
	return b.String()
}
