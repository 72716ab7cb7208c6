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

	"github.com/xuri/excelize/v2"
)

var xlsxTypes = []Matcher{
	Exact("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"),
	Exact("application/vnd.openxmlformats-officedocument.spreadsheetml.template"),
	Exact("application/vnd.ms-excel.sheet.macroenabled.12"),
	Exact("application/vnd.ms-excel.template.macroenabled.12"),
}

// XlsxExtractor handles Excel 2007+ workbooks. Each sheet becomes CSV.
type XlsxExtractor struct{}

// NewXlsxExtractor creates a new XlsxExtractor.
func NewXlsxExtractor() *XlsxExtractor {
	return &XlsxExtractor{}
}

func (e *XlsxExtractor) Name() string { return "xlsx" }

func (e *XlsxExtractor) Types() []Matcher { return xlsxTypes }

func (e *XlsxExtractor) InputKind() InputKind { return InputBuffer }

func (e *XlsxExtractor) Extract(_ context.Context, in Input, _ *Options) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(in.Bytes()))
	if err != nil {
		return "", fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	var sheets [][][]string
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return "", fmt.Errorf("read sheet %q: %w", name, err)
		}
		sheets = append(sheets, rows)
	}
	return renderSheets(sheets...)
}
