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
	"strings"
)

var docTypes = []Matcher{
	Exact("application/msword"),
}

var textutilTypes = []Matcher{
	Exact("application/msword"),
	Exact("application/rtf"),
	Exact("text/rtf"),
}

// DocExtractor runs antiword on Word 97-2003 documents.
type DocExtractor struct {
	// Command is the antiword binary. Defaults to "antiword" on PATH.
	Command string
}

// NewDocExtractor creates a new DocExtractor.
func NewDocExtractor() *DocExtractor {
	return &DocExtractor{Command: "antiword"}
}

func (e *DocExtractor) Name() string { return "doc" }

func (e *DocExtractor) Types() []Matcher { return docTypes }

func (e *DocExtractor) InputKind() InputKind { return InputFilePath }

func (e *DocExtractor) Probe(_ context.Context, _ *Options) (bool, error) {
	return lookPath(e.Command, "DOCs")
}

func (e *DocExtractor) Extract(ctx context.Context, in Input, opts *Options) (string, error) {
	stdout, _, err := runCommand(ctx, opts.execFor("doc"), e.Command, "-m", "UTF-8.txt", in.Path())
	if err != nil {
		if strings.Contains(err.Error(), "is not a Word Document") {
			return "", fmt.Errorf("%w: %v", ErrNotOfClaimedType, err)
		}
		return "", err
	}
	return strings.ReplaceAll(strings.TrimSpace(string(stdout)), "[pic]", ""), nil
}

// TextutilExtractor uses the macOS textutil tool for Word and RTF
// documents.
type TextutilExtractor struct {
	// Command is the textutil binary. Defaults to "textutil" on PATH.
	Command string
}

// NewTextutilExtractor creates a new TextutilExtractor.
func NewTextutilExtractor() *TextutilExtractor {
	return &TextutilExtractor{Command: "textutil"}
}

func (e *TextutilExtractor) Name() string { return "textutil" }

func (e *TextutilExtractor) Types() []Matcher { return textutilTypes }

func (e *TextutilExtractor) InputKind() InputKind { return InputFilePath }

func (e *TextutilExtractor) Probe(_ context.Context, _ *Options) (bool, error) {
	return lookPath(e.Command, "DOCs")
}

func (e *TextutilExtractor) Extract(ctx context.Context, in Input, opts *Options) (string, error) {
	stdout, _, err := runCommand(ctx, opts.execFor("doc"), e.Command, "-convert", "txt", "-stdout", in.Path())
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(stdout)), nil
}
