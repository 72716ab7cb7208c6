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

// Package charset decodes text of unknown encoding to UTF-8.
package charset

import (
	"bytes"
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrUndetected is returned when no known encoding decodes the input.
var ErrUndetected = errors.New("could not detect encoding")

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// chardet reports a few names that are not WHATWG labels.
var aliases = map[string]string{
	"gb-18030": "gb18030",
}

// Decode returns data as UTF-8. Valid UTF-8 and BOM-marked UTF-16 are
// taken as is. Anything else goes through charset detection, and of the
// candidates that decode cleanly the most plausible text wins.
func Decode(data []byte) (string, error) {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return string(data[len(bomUTF8):]), nil
	case bytes.HasPrefix(data, bomUTF16LE), bytes.HasPrefix(data, bomUTF16BE):
		out, _, err := transform.Bytes(xunicode.BOMOverride(xunicode.UTF8.NewDecoder()), data)
		if err != nil {
			return "", err
		}
		return string(out), nil
	case utf8.Valid(data):
		return string(data), nil
	}

	results, err := chardet.NewTextDetector().DetectAll(data)
	if err != nil {
		return "", ErrUndetected
	}

	var (
		best      string
		bestScore int
		found     bool
	)
	for _, r := range results {
		enc := Lookup(r.Charset)
		if enc == nil {
			continue
		}
		out, err := enc.NewDecoder().Bytes(data)
		if err != nil {
			continue
		}
		text := string(out)
		if s := score(text, r.Confidence); !found || s > bestScore {
			best, bestScore, found = text, s, true
		}
	}
	if !found {
		return "", ErrUndetected
	}
	return best, nil
}

// Lookup returns the encoding for a charset name, or nil if it is unknown.
func Lookup(name string) encoding.Encoding {
	label := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := aliases[label]; ok {
		label = alias
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil
	}
	return enc
}

// score rates how much decoded text looks like language rather than
// noise. chardet tends to mistake CJK double-byte text for Latin code
// pages, so script-specific letters count for more than ASCII.
func score(text string, confidence int) int {
	s := confidence
	for _, r := range text {
		switch {
		case r == utf8.RuneError:
			s -= 10
		case r < 0x20 && r != '\n' && r != '\r' && r != '\t':
			s -= 5
		case unicode.In(r, unicode.Hiragana, unicode.Katakana):
			s += 5
		case unicode.Is(unicode.Hangul, r):
			s += 3
		case unicode.Is(unicode.Han, r), r >= 0xFF01 && r <= 0xFFEF:
			s += 2
		case r < utf8.RuneSelf && unicode.IsLetter(r):
			s++
		case r >= 0x80 && r <= 0x9F:
			s -= 5
		}
	}
	return s
}
