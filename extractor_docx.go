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
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/nicholasgasior/textract-go/internal/ooxml"
)

var docxTypes = []Matcher{
	Exact("application/vnd.openxmlformats-officedocument.wordprocessingml.document"),
	Exact("application/vnd.openxmlformats-officedocument.wordprocessingml.template"),
	Exact("application/vnd.ms-word.document.macroenabled.12"),
}

// DocxExtractor handles Word 2007+ documents.
type DocxExtractor struct{}

// NewDocxExtractor creates a new DocxExtractor.
func NewDocxExtractor() *DocxExtractor {
	return &DocxExtractor{}
}

func (e *DocxExtractor) Name() string { return "docx" }

func (e *DocxExtractor) Types() []Matcher { return docxTypes }

func (e *DocxExtractor) InputKind() InputKind { return InputBuffer }

func (e *DocxExtractor) Extract(_ context.Context, in Input, _ *Options) (string, error) {
	pkg, err := ooxml.Open(in.Bytes())
	if err != nil {
		return "", err
	}

	body, err := pkg.Read("word/document.xml")
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: no word/document.xml", ErrNotOfClaimedType)
	}
	if err != nil {
		return "", err
	}

	paragraphs, err := ooxml.Paragraphs(body, ooxml.WordprocessingML)
	if err != nil {
		return "", fmt.Errorf("read document.xml: %w", err)
	}
	return strings.TrimSpace(strings.Join(paragraphs, "\n")), nil
}
