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

package odf

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicholasgasior/textract-go/internal/ooxml"
)

const ns = `xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0" ` +
	`xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0" ` +
	`xmlns:table="urn:oasis:names:tc:opendocument:xmlns:table:1.0"`

func packageWith(t *testing.T, content string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	if content != "" {
		w, err := zw.Create("content.xml")
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	w, err := zw.Create("mimetype")
	require.NoError(t, err)
	_, err = w.Write([]byte("application/vnd.oasis.opendocument.text"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestText(t *testing.T) {
	doc := packageWith(t, `<office:document-content `+ns+`><office:body><office:presentation>`+
		`<text:p>Slide title</text:p><text:p/><text:h>Section</text:h>`+
		`<text:p>one<text:line-break/>two</text:p>`+
		`</office:presentation></office:body></office:document-content>`)

	got, err := Text(doc)
	require.NoError(t, err)
	assert.Equal(t, "Slide title\nSection\none\ntwo", got)
}

func TestTextErrors(t *testing.T) {
	_, err := Text(packageWith(t, ""))
	assert.ErrorIs(t, err, ErrNoContent)

	_, err = Text([]byte("not a zip"))
	assert.ErrorIs(t, err, ooxml.ErrNotZip)
}

func TestSheets(t *testing.T) {
	doc := packageWith(t, `<office:document-content `+ns+`><office:body><office:spreadsheet>`+
		`<table:table table:name="First">`+
		`<table:table-row>`+
		`<table:table-cell><text:p>a</text:p></table:table-cell>`+
		`<table:table-cell table:number-columns-repeated="2"><text:p>b</text:p></table:table-cell>`+
		`<table:table-cell table:number-columns-repeated="1020"/>`+
		`</table:table-row>`+
		`<table:table-row table:number-rows-repeated="2"><table:table-cell/></table:table-row>`+
		`<table:table-row>`+
		`<table:table-cell/>`+
		`<table:table-cell><text:p>line1</text:p><text:p>line2</text:p>`+
		`<office:annotation><text:p>comment</text:p></office:annotation></table:table-cell>`+
		`</table:table-row>`+
		`<table:table-row table:number-rows-repeated="1048000"><table:table-cell table:number-columns-repeated="1024"/></table:table-row>`+
		`</table:table>`+
		`<table:table table:name="Second"><table:table-row>`+
		`<table:table-cell><text:p>x<text:s text:c="2"/>y</text:p></table:table-cell>`+
		`</table:table-row></table:table>`+
		`</office:spreadsheet></office:body></office:document-content>`)

	sheets, err := Sheets(doc)
	require.NoError(t, err)
	require.Len(t, sheets, 2)

	assert.Equal(t, "First", sheets[0].Name)
	assert.Equal(t, [][]string{
		{"a", "b", "b"},
		nil,
		nil,
		{"", "line1\nline2"},
	}, sheets[0].Rows)

	assert.Equal(t, "Second", sheets[1].Name)
	assert.Equal(t, [][]string{{"x  y"}}, sheets[1].Rows)
}
