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

	"github.com/nicholasgasior/textract-go/internal/charset"
)

var textTypes = []Matcher{
	Pattern(`text/`),
	Exact("application/csv"),
	Exact("application/javascript"),
}

// TextExtractor handles plain text of any encoding.
type TextExtractor struct{}

// NewTextExtractor creates a new TextExtractor.
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

func (e *TextExtractor) Name() string { return "text" }

func (e *TextExtractor) Types() []Matcher { return textTypes }

func (e *TextExtractor) InputKind() InputKind { return InputBuffer }

func (e *TextExtractor) Extract(_ context.Context, in Input, _ *Options) (string, error) {
	return charset.Decode(in.Bytes())
}
