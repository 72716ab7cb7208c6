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
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildZip returns an archive holding the given name, content pairs in
// order.
func buildZip(t *testing.T, entries ...string) []byte {
	t.Helper()
	require.Zero(t, len(entries)%2, "entries must be name, content pairs")

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for i := 0; i < len(entries); i += 2 {
		w, err := zw.Create(entries[i])
		require.NoError(t, err)
		_, err = w.Write([]byte(entries[i+1]))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// fakeTool writes an executable shell script and returns its path.
func fakeTool(t *testing.T, name, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755))
	return path
}

// stubExtractor is an extractor whose behaviour is given by funcs.
type stubExtractor struct {
	name    string
	types   []Matcher
	kind    InputKind
	extract func(ctx context.Context, in Input, opts *Options) (string, error)
}

func (s *stubExtractor) Name() string         { return s.name }
func (s *stubExtractor) Types() []Matcher     { return s.types }
func (s *stubExtractor) InputKind() InputKind { return s.kind }

func (s *stubExtractor) Extract(ctx context.Context, in Input, opts *Options) (string, error) {
	if s.extract == nil {
		return s.name, nil
	}
	return s.extract(ctx, in, opts)
}

// probedExtractor adds a probe to stubExtractor.
type probedExtractor struct {
	stubExtractor
	probe func(ctx context.Context) (bool, error)
}

func (p *probedExtractor) Probe(ctx context.Context, _ *Options) (bool, error) {
	return p.probe(ctx)
}
