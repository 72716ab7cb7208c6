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

// Package odf reads the content of OpenDocument files.
package odf

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"

	"github.com/nicholasgasior/textract-go/internal/ooxml"
)

// ErrNoContent is returned for archives without a content.xml.
var ErrNoContent = errors.New("could not find content.xml")

// Sheet is one table of a spreadsheet.
type Sheet struct {
	Name string
	Rows [][]string
}

func readContent(data []byte) ([]byte, error) {
	pkg, err := ooxml.Open(data)
	if err != nil {
		return nil, err
	}
	content, err := pkg.Read("content.xml")
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoContent
	}
	return content, err
}

// Text returns the non-empty paragraphs and headings of a text, drawing or
// presentation document, one per line.
func Text(data []byte) (string, error) {
	content, err := readContent(data)
	if err != nil {
		return "", err
	}
	paragraphs, err := ooxml.Paragraphs(content, ooxml.OpenDocument)
	if err != nil {
		return "", err
	}

	kept := paragraphs[:0]
	for _, p := range paragraphs {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n"), nil
}

// Sheets returns the tables of a spreadsheet. Repeated rows and cells are
// expanded, except trailing empty ones, which are dropped.
func Sheets(data []byte) ([]Sheet, error) {
	content, err := readContent(data)
	if err != nil {
		return nil, err
	}

	dec := xml.NewDecoder(bytes.NewReader(content))
	var (
		sheets     []Sheet
		row        []string
		cell       strings.Builder
		inCell     bool
		paragraphs int
		cellRepeat int
		rowRepeat  int
		emptyCells int
		emptyRows  int
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return sheets, nil
		}
		if err != nil {
			return nil, fmt.Errorf("parse content.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "table":
				sheets = append(sheets, Sheet{Name: attr(t, "name")})
				emptyRows = 0
			case "table-row":
				row = nil
				emptyCells = 0
				rowRepeat = repeat(t, "number-rows-repeated")
			case "table-cell", "covered-table-cell":
				inCell = true
				cell.Reset()
				paragraphs = 0
				cellRepeat = repeat(t, "number-columns-repeated")
			case "annotation":
				if err := dec.Skip(); err != nil {
					return nil, fmt.Errorf("parse content.xml: %w", err)
				}
			case "p", "h":
				if inCell && paragraphs > 0 {
					cell.WriteByte('\n')
				}
				paragraphs++
			case "s":
				if inCell {
					cell.WriteString(strings.Repeat(" ", repeat(t, "c")))
				}
			case "tab":
				if inCell {
					cell.WriteByte('\t')
				}
			case "line-break":
				if inCell {
					cell.WriteByte('\n')
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "table-cell", "covered-table-cell":
				inCell = false
				value := cell.String()
				if value == "" {
					emptyCells += cellRepeat
					continue
				}
				for ; emptyCells > 0; emptyCells-- {
					row = append(row, "")
				}
				for i := 0; i < cellRepeat; i++ {
					row = append(row, value)
				}
			case "table-row":
				if len(sheets) == 0 {
					continue
				}
				if len(row) == 0 {
					emptyRows += rowRepeat
					continue
				}
				sheet := &sheets[len(sheets)-1]
				for ; emptyRows > 0; emptyRows-- {
					sheet.Rows = append(sheet.Rows, nil)
				}
				for i := 0; i < rowRepeat; i++ {
					sheet.Rows = append(sheet.Rows, row)
				}
			}
		case xml.CharData:
			if inCell {
				cell.Write(t)
			}
		}
	}
}

func attr(t xml.StartElement, local string) string {
	for _, a := range t.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

func repeat(t xml.StartElement, local string) int {
	if n, err := strconv.Atoi(attr(t, local)); err == nil && n > 0 {
		return n
	}
	return 1
}
