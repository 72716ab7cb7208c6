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

	"github.com/extrame/xls"
)

var xlsTypes = []Matcher{
	Exact("application/vnd.ms-excel"),
}

// XlsExtractor handles legacy Excel workbooks. The xls reader needs a
// file on disk, so buffers are written to a temp file first.
type XlsExtractor struct{}

// NewXlsExtractor creates a new XlsExtractor.
func NewXlsExtractor() *XlsExtractor {
	return &XlsExtractor{}
}

func (e *XlsExtractor) Name() string { return "xls" }

func (e *XlsExtractor) Types() []Matcher { return xlsTypes }

func (e *XlsExtractor) InputKind() InputKind { return InputFilePath }

func (e *XlsExtractor) Extract(_ context.Context, in Input, _ *Options) (string, error) {
	wb, err := xls.Open(in.Path(), "utf-8")
	if err != nil {
		return "", fmt.Errorf("open workbook: %w", err)
	}

	var sheets [][][]string
	for i := 0; i < wb.NumSheets(); i++ {
		sheet := wb.GetSheet(i)
		if sheet == nil {
			continue
		}
		var rows [][]string
		for r := 0; r <= int(sheet.MaxRow); r++ {
			row := sheet.Row(r)
			if row == nil {
				rows = append(rows, nil)
				continue
			}
			cells := make([]string, 0, row.LastCol())
			for c := 0; c < row.LastCol(); c++ {
				cells = append(cells, row.Col(c))
			}
			rows = append(rows, cells)
		}
		sheets = append(sheets, rows)
	}
	return renderSheets(sheets...)
}
