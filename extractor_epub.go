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
	"encoding/xml"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/nicholasgasior/textract-go/internal/ooxml"
)

const epubContainer = "META-INF/container.xml"

var epubTypes = []Matcher{
	Exact("application/epub+zip"),
}

type epubContainerDoc struct {
	Rootfiles []struct {
		FullPath  string `xml:"full-path,attr"`
		MediaType string `xml:"media-type,attr"`
	} `xml:"rootfiles>rootfile"`
}

type epubPackage struct {
	Manifest []struct {
		ID        string `xml:"id,attr"`
		Href      string `xml:"href,attr"`
		MediaType string `xml:"media-type,attr"`
	} `xml:"manifest>item"`
	Spine []struct {
		IDRef string `xml:"idref,attr"`
	} `xml:"spine>itemref"`
}

// EpubExtractor handles EPUB books. Chapters are read in spine order and
// each goes through the HTML extractor.
type EpubExtractor struct {
	html *HTMLExtractor
}

// NewEpubExtractor creates a new EpubExtractor.
func NewEpubExtractor(html *HTMLExtractor) *EpubExtractor {
	return &EpubExtractor{html: html}
}

func (e *EpubExtractor) Name() string { return "epub" }

func (e *EpubExtractor) Types() []Matcher { return epubTypes }

func (e *EpubExtractor) InputKind() InputKind { return InputBuffer }

func (e *EpubExtractor) Extract(ctx context.Context, in Input, opts *Options) (string, error) {
	pkg, err := ooxml.Open(in.Bytes())
	if err != nil {
		return "", err
	}

	opfPath, err := epubRootfile(pkg)
	if err != nil {
		return "", err
	}
	chapters, err := epubChapters(pkg, opfPath)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, chapter := range chapters {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		data, err := pkg.Read(chapter)
		if err != nil {
			return "", err
		}
		text, err := e.html.ExtractString(string(data), opts)
		if err != nil {
			return "", fmt.Errorf("chapter %s: %w", chapter, err)
		}
		b.WriteString(text)
		b.WriteByte('\n')
	}
	return b.String(), nil
}

func epubRootfile(pkg *ooxml.Archive) (string, error) {
	data, err := pkg.Read(epubContainer)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: no %s", ErrNotOfClaimedType, epubContainer)
	}
	if err != nil {
		return "", err
	}

	var container epubContainerDoc
	if err := xml.Unmarshal(data, &container); err != nil {
		return "", fmt.Errorf("parse %s: %w", epubContainer, err)
	}
	for _, rf := range container.Rootfiles {
		if rf.MediaType == "" || rf.MediaType == "application/oebps-package+xml" {
			return rf.FullPath, nil
		}
	}
	return "", fmt.Errorf("rootfile not found in %s", epubContainer)
}

// epubChapters returns the archive paths of the spine's content documents.
func epubChapters(pkg *ooxml.Archive, opfPath string) ([]string, error) {
	data, err := pkg.Read(opfPath)
	if err != nil {
		return nil, err
	}
	var opf epubPackage
	if err := xml.Unmarshal(data, &opf); err != nil {
		return nil, fmt.Errorf("parse %s: %w", opfPath, err)
	}

	hrefs := make(map[string]string, len(opf.Manifest))
	for _, item := range opf.Manifest {
		if strings.Contains(item.MediaType, "html") {
			hrefs[item.ID] = item.Href
		}
	}

	var chapters []string
	for _, ref := range opf.Spine {
		href, ok := hrefs[ref.IDRef]
		if !ok {
			continue
		}
		href, _, _ = strings.Cut(href, "#")
		chapters = append(chapters, ooxml.ResolveTarget(opfPath, href))
	}
	return chapters, nil
}
