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

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	textract "github.com/nicholasgasior/textract-go"
)

func TestFinish(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		err        error
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{"success", "hello", nil, 0, "hello\n", ""},
		{"failure", "", errors.New("boom"), 1, "", "Error: boom\n"},
		{
			"cleanup failure keeps text",
			"hello",
			&textract.CleanupError{Path: "/tmp/x", Err: errors.New("busy")},
			1,
			"hello\n",
			"Error: remove temp file /tmp/x: busy\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := finish(&stdout, &stderr, "", tt.text, tt.err)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantStdout, stdout.String())
			assert.Equal(t, tt.wantStderr, stderr.String())
		})
	}
}

func TestFinishWritesOutputFile(t *testing.T) {
	output := filepath.Join(t.TempDir(), "nested", "out.txt")
	var stdout, stderr bytes.Buffer

	code := finish(&stdout, &stderr, output, "hello", &textract.CleanupError{Path: "/tmp/x", Err: errors.New("busy")})
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String())

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
}
