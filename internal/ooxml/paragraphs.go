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

package ooxml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
)

// Dialect names the elements, by local name, that carry text in one
// markup vocabulary.
type Dialect struct {
	// Paragraphs start and end a paragraph.
	Paragraphs []string
	// Text elements hold character data. When empty, all character data
	// inside a paragraph is text.
	Text []string
	// Tab, Break and Space are empty elements standing for a tab, a line
	// break and a run of spaces. Space may carry a count in its "c"
	// attribute.
	Tab, Break, Space string
}

var (
	// WordprocessingML is the body of a .docx.
	WordprocessingML = Dialect{Paragraphs: []string{"p"}, Text: []string{"t"}, Tab: "tab", Break: "br"}
	// DrawingML is the text of slides and notes in a .pptx.
	DrawingML = Dialect{Paragraphs: []string{"p"}, Text: []string{"t"}, Tab: "tab", Break: "br"}
	// OpenDocument is content.xml of ODF text, drawing and presentation files.
	OpenDocument = Dialect{Paragraphs: []string{"p", "h"}, Tab: "tab", Break: "line-break", Space: "s"}
)

// Paragraphs returns the text of every paragraph in data, in document
// order of their closing tags. Empty paragraphs are kept.
func Paragraphs(data []byte, d Dialect) ([]string, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	var (
		open   []*strings.Builder
		out    []string
		inText int
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, fmt.Errorf("parse xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			local := t.Name.Local
			if slices.Contains(d.Paragraphs, local) {
				open = append(open, &strings.Builder{})
				continue
			}
			if len(open) == 0 {
				continue
			}
			cur := open[len(open)-1]
			switch {
			case slices.Contains(d.Text, local):
				inText++
			case local == d.Tab:
				cur.WriteByte('\t')
			case local == d.Break:
				cur.WriteByte('\n')
			case local == d.Space:
				cur.WriteString(strings.Repeat(" ", spaceCount(t)))
			}
		case xml.EndElement:
			local := t.Name.Local
			if slices.Contains(d.Paragraphs, local) && len(open) > 0 {
				out = append(out, open[len(open)-1].String())
				open = open[:len(open)-1]
			} else if slices.Contains(d.Text, local) && inText > 0 {
				inText--
			}
		case xml.CharData:
			if len(open) > 0 && (len(d.Text) == 0 || inText > 0) {
				open[len(open)-1].Write(t)
			}
		}
	}
}

func spaceCount(t xml.StartElement) int {
	for _, attr := range t.Attr {
		if attr.Name.Local == "c" {
			if n, err := strconv.Atoi(attr.Value); err == nil && n > 0 {
				return n
			}
		}
	}
	return 1
}
