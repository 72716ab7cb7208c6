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
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var imageTypes = []Matcher{
	Exact("image/png"),
	Exact("image/jpeg"),
	Exact("image/gif"),
	Exact("image/tiff"),
	Exact("image/bmp"),
}

// ImageExtractor runs tesseract OCR on images.
type ImageExtractor struct {
	// Command is the tesseract binary. Defaults to "tesseract" on PATH.
	Command string
}

// NewImageExtractor creates a new ImageExtractor.
func NewImageExtractor() *ImageExtractor {
	return &ImageExtractor{Command: "tesseract"}
}

func (e *ImageExtractor) Name() string { return "images" }

func (e *ImageExtractor) Types() []Matcher { return imageTypes }

func (e *ImageExtractor) InputKind() InputKind { return InputFilePath }

func (e *ImageExtractor) Probe(ctx context.Context, _ *Options) (bool, error) {
	return probeBanner(ctx, "Usage:", "images", e.Command)
}

// Extract has tesseract write its result into a private temp directory
// and reads it back. The directory is removed on every path.
func (e *ImageExtractor) Extract(ctx context.Context, in Input, opts *Options) (text string, err error) {
	dir, err := os.MkdirTemp("", tempPattern)
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	defer func() {
		if rerr := os.RemoveAll(dir); rerr != nil && err == nil {
			err = &CleanupError{Path: dir, Err: rerr}
		}
	}()

	name := filepath.Base(in.Path())
	outBase := filepath.Join(dir, strings.TrimSuffix(name, filepath.Ext(name)))

	if _, _, err := runCommand(ctx, opts.execFor("images"), e.Command, tesseractArgs(in.Path(), outBase, opts.Tesseract)...); err != nil {
		return "", err
	}

	data, err := os.ReadFile(outBase + ".txt")
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("tesseract output %s.txt does not exist", outBase)
	}
	if err != nil {
		return "", fmt.Errorf("read tesseract output: %w", err)
	}
	return string(data), nil
}

func tesseractArgs(input, outBase string, o TesseractOptions) []string {
	args := []string{input, outBase}
	switch {
	case o.Lang != "":
		args = append(args, "-l", o.Lang)
	case o.Cmd != "":
		args = append(args, strings.Fields(o.Cmd)...)
	}
	return append(args, "quiet")
}
