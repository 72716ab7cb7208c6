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
	"strings"
)

var rtfTypes = []Matcher{
	Exact("application/rtf"),
	Exact("text/rtf"),
}

// RTFExtractor has unrtf convert RTF to HTML, whose text is then taken
// by the HTML extractor. unrtf's own text output drops sections and
// apostrophes.
type RTFExtractor struct {
	// Command is the unrtf binary. Defaults to "unrtf" on PATH.
	Command string
	html    *HTMLExtractor
}

// NewRTFExtractor creates a new RTFExtractor.
func NewRTFExtractor(html *HTMLExtractor) *RTFExtractor {
	return &RTFExtractor{Command: "unrtf", html: html}
}

func (e *RTFExtractor) Name() string { return "rtf" }

func (e *RTFExtractor) Types() []Matcher { return rtfTypes }

func (e *RTFExtractor) InputKind() InputKind { return InputFilePath }

func (e *RTFExtractor) Probe(_ context.Context, _ *Options) (bool, error) {
	return lookPath(e.Command, "RTFs")
}

func (e *RTFExtractor) Extract(ctx context.Context, in Input, opts *Options) (string, error) {
	stdout, _, err := runCommand(ctx, opts.execFor("rtf"), e.Command, "--html", "--nopict", in.Path())
	if err != nil {
		return "", err
	}
	return e.html.ExtractString(strings.TrimSpace(string(stdout)), &Options{})
}
