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
	"encoding/csv"
	"strings"
)

// renderSheets writes each sheet as CSV, one after the other. Rows of a
// sheet are padded to the width of its widest row.
func renderSheets(sheets ...[][]string) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)
	for _, rows := range sheets {
		width := 0
		for _, row := range rows {
			width = max(width, len(row))
		}
		for _, row := range rows {
			if len(row) < width {
				padded := make([]string, width)
				copy(padded, row)
				row = padded
			}
			if err := w.Write(row); err != nil {
				return "", err
			}
		}
	}
	w.Flush()
	return b.String(), w.Error()
}
