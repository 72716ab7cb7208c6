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
	"path/filepath"
	"regexp"
	"strings"
)

// InputKind declares which form of input an extractor consumes.
type InputKind int

const (
	// InputBuffer extractors receive the document bytes.
	InputBuffer InputKind = iota
	// InputFilePath extractors receive a path to a file on disk.
	InputFilePath
)

func (k InputKind) String() string {
	if k == InputFilePath {
		return "filePath"
	}
	return "buffer"
}

// Input is either a file path or an in-memory buffer.
type Input struct {
	path string
	data []byte
	kind InputKind
	name string
}

// FilePath returns an Input that refers to the file at path.
func FilePath(path string) Input {
	return Input{path: path, kind: InputFilePath, name: filepath.Base(path)}
}

// Buffer returns an Input holding data in memory.
func Buffer(data []byte) Input {
	return Input{data: data, kind: InputBuffer}
}

// Kind reports whether the input is a path or a buffer.
func (in Input) Kind() InputKind { return in.kind }

// Path returns the file path of a path input.
func (in Input) Path() string { return in.path }

// Bytes returns the contents of a buffer input.
func (in Input) Bytes() []byte { return in.data }

// Name is the base name used in error messages. Buffers have no name
// unless one was attached with WithName.
func (in Input) Name() string {
	if in.name != "" {
		return in.name
	}
	if in.kind == InputBuffer {
		return "buffer"
	}
	return in.path
}

// WithName returns a copy of in that reports name in error messages.
func (in Input) WithName(name string) Input {
	in.name = name
	return in
}

// Matcher selects MIME types for an extractor. It is either an exact,
// case-insensitive type string or a regular expression.
type Matcher struct {
	exact   string
	pattern *regexp.Regexp
}

// Exact matches a single MIME type, ignoring case.
func Exact(mimeType string) Matcher {
	return Matcher{exact: normalizeType(mimeType)}
}

// Pattern matches any MIME type the expression finds a match in.
// It panics if expr does not compile.
func Pattern(expr string) Matcher {
	return Matcher{pattern: regexp.MustCompile(expr)}
}

// IsPattern reports whether m is a pattern matcher.
func (m Matcher) IsPattern() bool { return m.pattern != nil }

// Match reports whether the normalized MIME type is selected by m.
func (m Matcher) Match(mimeType string) bool {
	if m.pattern != nil {
		return m.pattern.MatchString(mimeType)
	}
	return m.exact == mimeType
}

func (m Matcher) String() string {
	if m.pattern != nil {
		return "/" + m.pattern.String() + "/"
	}
	return m.exact
}

// Extractor converts documents of the MIME types it declares into raw text.
// The input passed to Extract is always of the declared InputKind.
type Extractor interface {
	// Name identifies the extractor in logs and errors.
	Name() string

	// Types lists the MIME types the extractor claims, in order.
	Types() []Matcher

	// InputKind declares whether Extract wants a path or a buffer.
	InputKind() InputKind

	// Extract returns the raw, uncleansed text of the document. opts is
	// never nil. An extractor whose own temp files could not be removed
	// returns the text together with a *CleanupError.
	Extract(ctx context.Context, in Input, opts *Options) (string, error)
}

// Prober is implemented by extractors that depend on something outside
// the process, such as an external binary. Extractors without Probe are
// always capable.
type Prober interface {
	// Probe reports whether the extractor can run in this environment.
	// A false result or an error marks it incapable for the process lifetime.
	Probe(ctx context.Context, opts *Options) (bool, error)
}

func normalizeType(mimeType string) string {
	return strings.ToLower(strings.TrimSpace(mimeType))
}
