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

	"github.com/nicholasgasior/textract-go/internal/odf"
)

var odfTypes = []Matcher{
	Exact("application/vnd.oasis.opendocument.text"),
	Exact("application/vnd.oasis.opendocument.text-template"),
	Exact("application/vnd.oasis.opendocument.graphics"),
	Exact("application/vnd.oasis.opendocument.graphics-template"),
	Exact("application/vnd.oasis.opendocument.presentation"),
	Exact("application/vnd.oasis.opendocument.presentation-template"),
}

var odsTypes = []Matcher{
	Exact("application/vnd.oasis.opendocument.spreadsheet"),
	Exact("application/vnd.oasis.opendocument.spreadsheet-template"),
}

// ODFExtractor handles OpenDocument text, drawings and presentations.
type ODFExtractor struct{}

// NewODFExtractor creates a new ODFExtractor.
func NewODFExtractor() *ODFExtractor {
	return &ODFExtractor{}
}

func (e *ODFExtractor) Name() string { return "odf" }

func (e *ODFExtractor) Types() []Matcher { return odfTypes }

func (e *ODFExtractor) InputKind() InputKind { return InputBuffer }

func (e *ODFExtractor) Extract(_ context.Context, in Input, _ *Options) (string, error) {
	text, err := odf.Text(in.Bytes())
	if errors.Is(err, odf.ErrNoContent) {
		return "", fmt.Errorf("%w: %v", ErrNotOfClaimedType, err)
	}
	return text, err
}

// ODSExtractor handles OpenDocument spreadsheets. Each table becomes CSV.
type ODSExtractor struct{}

// NewODSExtractor creates a new ODSExtractor.
func NewODSExtractor() *ODSExtractor {
	return &ODSExtractor{}
}

func (e *ODSExtractor) Name() string { return "ods" }

func (e *ODSExtractor) Types() []Matcher { return odsTypes }

func (e *ODSExtractor) InputKind() InputKind { return InputBuffer }

func (e *ODSExtractor) Extract(_ context.Context, in Input, _ *Options) (string, error) {
	sheets, err := odf.Sheets(in.Bytes())
	if errors.Is(err, odf.ErrNoContent) {
		return "", fmt.Errorf("%w: %v", ErrNotOfClaimedType, err)
	}
	if err != nil {
		return "", err
	}

	tables := make([][][]string, 0, len(sheets))
	for _, s := range sheets {
		tables = append(tables, s.Rows)
	}
	return renderSheets(tables...)
}
