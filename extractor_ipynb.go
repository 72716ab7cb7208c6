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
	"encoding/json"
	"fmt"
	"strings"
)

var ipynbTypes = []Matcher{
	Exact("application/x-ipynb+json"),
}

type notebook struct {
	Cells []struct {
		CellType string          `json:"cell_type"`
		Source   json.RawMessage `json:"source"`
		Outputs  []struct {
			Text json.RawMessage            `json:"text"`
			Data map[string]json.RawMessage `json:"data"`
		} `json:"outputs"`
	} `json:"cells"`
}

// IpynbExtractor handles Jupyter notebooks: cell sources followed by the
// plain text of their outputs.
type IpynbExtractor struct{}

// NewIpynbExtractor creates a new IpynbExtractor.
func NewIpynbExtractor() *IpynbExtractor {
	return &IpynbExtractor{}
}

func (e *IpynbExtractor) Name() string { return "ipynb" }

func (e *IpynbExtractor) Types() []Matcher { return ipynbTypes }

func (e *IpynbExtractor) InputKind() InputKind { return InputBuffer }

func (e *IpynbExtractor) Extract(_ context.Context, in Input, _ *Options) (string, error) {
	var nb notebook
	if err := json.Unmarshal(in.Bytes(), &nb); err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotOfClaimedType, err)
	}

	var sections []string
	for _, cell := range nb.Cells {
		if src := strings.TrimSpace(multiline(cell.Source)); src != "" {
			sections = append(sections, src)
		}
		for _, out := range cell.Outputs {
			text := multiline(out.Text)
			if text == "" {
				text = multiline(out.Data["text/plain"])
			}
			if text = strings.TrimSpace(text); text != "" {
				sections = append(sections, text)
			}
		}
	}
	return strings.Join(sections, "\n\n"), nil
}

// multiline decodes a notebook string, stored either whole or as a list
// of lines.
func multiline(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var lines []string
	if err := json.Unmarshal(raw, &lines); err == nil {
		return strings.Join(lines, "")
	}
	return ""
}
