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
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Options controls a single extraction. The zero value folds line breaks
// into spaces and uses each extractor's defaults.
type Options struct {
	// PreserveLineBreaks keeps line breaks in the output.
	PreserveLineBreaks bool `yaml:"preserve_line_breaks" json:"preserve_line_breaks"`

	// PreserveOnlyMultipleLineBreaks turns single line breaks into spaces
	// but keeps runs of two or more as paragraph breaks.
	PreserveOnlyMultipleLineBreaks bool `yaml:"preserve_only_multiple_line_breaks" json:"preserve_only_multiple_line_breaks"`

	// IncludeAltText inlines image alt text and input values when
	// extracting HTML.
	IncludeAltText bool `yaml:"include_alt_text" json:"include_alt_text"`

	// Exec is the default for extractors that run external programs.
	Exec ExecOptions `yaml:"exec" json:"exec"`

	// Per-extractor overrides of Exec.
	Doc    *ExtractorExecOptions `yaml:"doc" json:"doc"`
	Images *ExtractorExecOptions `yaml:"images" json:"images"`
	RTF    *ExtractorExecOptions `yaml:"rtf" json:"rtf"`
	DXF    *ExtractorExecOptions `yaml:"dxf" json:"dxf"`

	Tesseract TesseractOptions  `yaml:"tesseract" json:"tesseract"`
	PdfToText *PdfToTextOptions `yaml:"pdftotext" json:"pdftotext"`
}

// ExecOptions are passed through to the external programs an extractor runs.
type ExecOptions struct {
	// Timeout kills the program after the given duration. Zero means no limit.
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
	// MaxBuffer caps stdout and stderr in bytes. Zero means no limit.
	MaxBuffer int `yaml:"max_buffer" json:"max_buffer"`
	// Dir is the working directory of the program.
	Dir string `yaml:"dir" json:"dir"`
	// Env is appended to the current environment.
	Env []string `yaml:"env" json:"env"`
}

// ExtractorExecOptions overrides ExecOptions for one extractor.
type ExtractorExecOptions struct {
	Exec ExecOptions `yaml:"exec" json:"exec"`
}

// TesseractOptions configures OCR. Lang takes precedence over Cmd.
type TesseractOptions struct {
	// Lang is passed as -l.
	Lang string `yaml:"lang" json:"lang"`
	// Cmd holds raw command-line flags, e.g. "-l chi_sim --psm 10".
	Cmd string `yaml:"cmd" json:"cmd"`
}

// PdfToTextOptions are passed through to pdftotext. Zero fields are omitted.
type PdfToTextOptions struct {
	FirstPage  int   `yaml:"first_page" json:"first_page"`
	LastPage   int   `yaml:"last_page" json:"last_page"`
	Resolution int   `yaml:"resolution" json:"resolution"`
	Crop       *Crop `yaml:"crop" json:"crop"`
	// Layout is one of "layout", "raw" or "htmlmeta". Defaults to "layout"
	// when options are given and "raw" when PdfToText is nil.
	Layout string `yaml:"layout" json:"layout"`
	// Encoding defaults to UTF-8.
	Encoding string `yaml:"encoding" json:"encoding"`
	// EOL is one of "unix", "dos" or "mac".
	EOL           string `yaml:"eol" json:"eol"`
	OwnerPassword string `yaml:"owner_password" json:"owner_password"`
	UserPassword  string `yaml:"user_password" json:"user_password"`
}

// Crop is the page area pdftotext reads, in pixels.
type Crop struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
	W int `yaml:"w" json:"w"`
	H int `yaml:"h" json:"h"`
}

// LoadOptions reads Options from a YAML or JSON file.
func LoadOptions(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read options: %w", err)
	}
	opts := &Options{}
	if err := yaml.Unmarshal(data, opts); err != nil {
		return nil, fmt.Errorf("parse options %s: %w", path, err)
	}
	return opts, nil
}

// execFor returns the exec options for the named extractor group, which
// is one of "doc", "images", "rtf" or "dxf".
func (o *Options) execFor(group string) ExecOptions {
	var override *ExtractorExecOptions
	switch group {
	case "doc":
		override = o.Doc
	case "images":
		override = o.Images
	case "rtf":
		override = o.RTF
	case "dxf":
		override = o.DXF
	}
	if override != nil {
		return override.Exec
	}
	return o.Exec
}
