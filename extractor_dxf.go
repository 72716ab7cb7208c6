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
	"strings"
)

var dxfTypes = []Matcher{
	Exact("application/dxf"),
	Exact("application/x-autocad"),
	Exact("application/x-dxf"),
	Exact("drawing/x-dxf"),
	Exact("image/vnd.dxf"),
	Exact("image/x-autocad"),
	Exact("image/x-dxf"),
	Exact("zz-application/zz-winassoc-dxf"),
}

// DXFExtractor runs drawingtotext on AutoCAD drawings.
type DXFExtractor struct {
	// Command is the drawingtotext binary. Defaults to "drawingtotext" on PATH.
	Command string
}

// NewDXFExtractor creates a new DXFExtractor.
func NewDXFExtractor() *DXFExtractor {
	return &DXFExtractor{Command: "drawingtotext"}
}

func (e *DXFExtractor) Name() string { return "dxf" }

func (e *DXFExtractor) Types() []Matcher { return dxfTypes }

func (e *DXFExtractor) InputKind() InputKind { return InputFilePath }

func (e *DXFExtractor) Probe(_ context.Context, _ *Options) (bool, error) {
	return lookPath(e.Command, "DXFs")
}

// Extract fails if drawingtotext writes anything to stderr, even when it
// exits cleanly.
func (e *DXFExtractor) Extract(ctx context.Context, in Input, opts *Options) (string, error) {
	stdout, stderr, err := runCommand(ctx, opts.execFor("dxf"), e.Command, in.Path())
	if err != nil {
		return "", err
	}
	if msg := strings.TrimSpace(string(stderr)); msg != "" {
		return "", fmt.Errorf("%s: %s", e.Command, msg)
	}
	return string(stdout), nil
}
