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
	"encoding/xml"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/nicholasgasior/textract-go/internal/ooxml"
)

const presentationPart = "ppt/presentation.xml"

var pptxTypes = []Matcher{
	Exact("application/vnd.openxmlformats-officedocument.presentationml.presentation"),
	Exact("application/vnd.openxmlformats-officedocument.presentationml.template"),
}

// PptxExtractor handles PowerPoint 2007+ presentations. Speaker notes
// follow the slide they belong to.
type PptxExtractor struct{}

// NewPptxExtractor creates a new PptxExtractor.
func NewPptxExtractor() *PptxExtractor {
	return &PptxExtractor{}
}

func (e *PptxExtractor) Name() string { return "pptx" }

func (e *PptxExtractor) Types() []Matcher { return pptxTypes }

func (e *PptxExtractor) InputKind() InputKind { return InputBuffer }

func (e *PptxExtractor) Extract(_ context.Context, in Input, _ *Options) (string, error) {
	pkg, err := ooxml.Open(in.Bytes())
	if err != nil {
		return "", err
	}

	slides := slideOrder(pkg)
	if len(slides) == 0 {
		return "", fmt.Errorf("%w: could not find slides", ErrNotOfClaimedType)
	}

	var b strings.Builder
	for _, slide := range slides {
		parts := []string{slide}
		if notes := notesFor(pkg, slide); notes != "" {
			parts = append(parts, notes)
		}
		for _, part := range parts {
			data, err := pkg.Read(part)
			if err != nil {
				return "", err
			}
			paragraphs, err := ooxml.Paragraphs(data, ooxml.DrawingML)
			if err != nil {
				return "", fmt.Errorf("read %s: %w", part, err)
			}
			for _, p := range paragraphs {
				b.WriteString(p)
				b.WriteByte('\n')
			}
		}
	}
	return b.String(), nil
}

// slideOrder returns slide parts in presentation order. Without usable
// presentation relationships it falls back to the slide file numbers.
func slideOrder(pkg *ooxml.Archive) []string {
	var slides []string
	if data, err := pkg.Read(presentationPart); err == nil {
		rels, _ := pkg.Relationships(presentationPart)
		for _, rid := range slideIDs(data) {
			rel, ok := rels[rid]
			if !ok {
				continue
			}
			if target := ooxml.ResolveTarget(presentationPart, rel.Target); pkg.Has(target) {
				slides = append(slides, target)
			}
		}
	}
	if len(slides) > 0 {
		return slides
	}

	for _, name := range pkg.Names() {
		if _, ok := slideNumber(name); ok {
			slides = append(slides, name)
		}
	}
	sort.SliceStable(slides, func(i, j int) bool {
		a, _ := slideNumber(slides[i])
		b, _ := slideNumber(slides[j])
		return a < b
	})
	return slides
}

func slideIDs(presentation []byte) []string {
	var ids []string
	dec := xml.NewDecoder(bytes.NewReader(presentation))
	for {
		tok, err := dec.Token()
		if err != nil {
			return ids
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "sldId" {
			continue
		}
		for _, attr := range se.Attr {
			if attr.Name.Local == "id" && strings.Contains(attr.Name.Space, "relationships") {
				ids = append(ids, attr.Value)
			}
		}
	}
}

func slideNumber(name string) (int, bool) {
	rest, ok := strings.CutPrefix(name, "ppt/slides/slide")
	if !ok {
		return 0, false
	}
	rest, ok = strings.CutSuffix(rest, ".xml")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	return n, err == nil
}

func notesFor(pkg *ooxml.Archive, slide string) string {
	rels, err := pkg.Relationships(slide)
	if err != nil {
		return ""
	}
	for _, rel := range rels {
		if strings.HasSuffix(rel.Type, "/notesSlide") {
			if target := ooxml.ResolveTarget(slide, rel.Target); pkg.Has(target) {
				return target
			}
		}
	}
	return ""
}
