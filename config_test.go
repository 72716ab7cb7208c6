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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOptionsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "textract.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
preserve_line_breaks: true
include_alt_text: true
exec:
  timeout: 5s
  max_buffer: 1024
images:
  exec:
    timeout: 1m
tesseract:
  lang: eng
pdftotext:
  layout: raw
  first_page: 2
  crop: {x: 1, y: 2, w: 3, h: 4}
`), 0o644))

	opts, err := LoadOptions(path)
	require.NoError(t, err)

	assert.True(t, opts.PreserveLineBreaks)
	assert.True(t, opts.IncludeAltText)
	assert.False(t, opts.PreserveOnlyMultipleLineBreaks)
	assert.Equal(t, ExecOptions{Timeout: 5 * time.Second, MaxBuffer: 1024}, opts.Exec)
	assert.Equal(t, "eng", opts.Tesseract.Lang)
	require.NotNil(t, opts.PdfToText)
	assert.Equal(t, "raw", opts.PdfToText.Layout)
	assert.Equal(t, 2, opts.PdfToText.FirstPage)
	assert.Equal(t, &Crop{X: 1, Y: 2, W: 3, H: 4}, opts.PdfToText.Crop)

	assert.Equal(t, time.Minute, opts.execFor("images").Timeout)
	assert.Equal(t, opts.Exec, opts.execFor("doc"))
	assert.Equal(t, opts.Exec, opts.execFor("rtf"))
}

func TestLoadOptionsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "textract.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"preserve_only_multiple_line_breaks": true, "tesseract": {"cmd": "--psm 6"}}`), 0o644))

	opts, err := LoadOptions(path)
	require.NoError(t, err)
	assert.True(t, opts.PreserveOnlyMultipleLineBreaks)
	assert.Equal(t, "--psm 6", opts.Tesseract.Cmd)
	assert.Nil(t, opts.PdfToText)
}

func TestLoadOptionsErrors(t *testing.T) {
	_, err := LoadOptions(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("exec: [not, a, map]"), 0o644))
	_, err = LoadOptions(path)
	assert.Error(t, err)
}
