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
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"runtime"
	"sync"
)

// Textract extracts plain text from documents. It is safe for concurrent
// use. Extractor probe results are cached for the lifetime of the instance.
type Textract struct {
	registry   *Registry
	logger     *slog.Logger
	client     *http.Client
	extractors []Extractor
	nativePDF  bool
}

// New creates a Textract with the built-in extractors unless WithExtractors
// is given.
func New(opts ...Option) (*Textract, error) {
	t := &Textract{}
	for _, opt := range opts {
		opt(t)
	}
	if t.logger == nil {
		t.logger = slog.Default()
	}
	if t.client == nil {
		t.client = http.DefaultClient
	}
	if t.extractors == nil {
		t.extractors = builtinExtractors(runtime.GOOS, t.nativePDF)
	}

	t.registry = NewRegistry(t.logger)
	for _, e := range t.extractors {
		if err := t.registry.Register(e); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// builtinExtractors lists the built-in extractors in registration order.
// On macOS textutil handles Word and RTF documents.
func builtinExtractors(goos string, nativePDF bool) []Extractor {
	html := NewHTMLExtractor()

	var list []Extractor
	if goos == "darwin" {
		list = append(list, NewTextutilExtractor())
	} else {
		list = append(list, NewDocExtractor())
	}
	list = append(list,
		NewDocxExtractor(),
		NewDXFExtractor(),
		NewEpubExtractor(html),
		NewFeedExtractor(html),
		html,
		NewImageExtractor(),
		NewMarkdownExtractor(html),
		NewODFExtractor(),
	)
	if nativePDF {
		list = append(list, NewNativePDFExtractor())
	} else {
		list = append(list, NewPDFExtractor())
	}
	list = append(list, NewPptxExtractor())
	if goos != "darwin" {
		list = append(list, NewRTFExtractor(html))
	}
	list = append(list,
		NewTextExtractor(),
		NewXlsxExtractor(),
		NewXlsExtractor(),
		NewODSExtractor(),
		NewIpynbExtractor(),
	)
	return list
}

// Extract resolves the extractor for mimeType, hands it the input in the
// form it wants and cleanses the result. If a temp file made for the
// extractor cannot be removed afterwards, the text is returned together
// with a *CleanupError.
func (t *Textract) Extract(ctx context.Context, mimeType string, in Input, opts *Options) (text string, err error) {
	if opts == nil {
		opts = &Options{}
	}

	e, err := t.registry.Resolve(ctx, mimeType, opts)
	if err != nil {
		var notFound *TypeNotFoundError
		if errors.As(err, &notFound) {
			notFound.File = in.Name()
		}
		return "", err
	}

	src, release, err := materialize(in, e.InputKind())
	if err != nil {
		return "", &ExtractionError{Extractor: e.Name(), File: in.Name(), Err: err}
	}
	defer func() {
		if cerr := release(); cerr != nil {
			t.logger.Warn("temp file cleanup failed", "extractor", e.Name(), "error", cerr)
			if err == nil {
				err = cerr
			}
		}
	}()

	raw, err := e.Extract(ctx, src, opts)
	var cleanup *CleanupError
	if errors.As(err, &cleanup) {
		t.logger.Warn("temp file cleanup failed", "extractor", e.Name(), "error", err)
		return Cleanse(raw, opts), err
	}
	if err != nil {
		t.logger.Debug("extraction failed", "extractor", e.Name(), "file", in.Name(), "error", err)
		return "", &ExtractionError{Extractor: e.Name(), File: in.Name(), Err: err}
	}
	return Cleanse(raw, opts), nil
}

// FromFile extracts the file at path, deriving its MIME type from the
// extension or, failing that, its contents.
func (t *Textract) FromFile(ctx context.Context, filePath string, opts *Options) (string, error) {
	mimeType, err := DetectFileType(filePath)
	if err != nil {
		return "", fmt.Errorf("detect type: %w", err)
	}
	return t.Extract(ctx, mimeType, FilePath(filePath), opts)
}

// FromBuffer extracts data of the given MIME type.
func (t *Textract) FromBuffer(ctx context.Context, mimeType string, data []byte, opts *Options) (string, error) {
	return t.Extract(ctx, mimeType, Buffer(data), opts)
}

// FromURL downloads rawURL and extracts the response body. The type comes
// from the Content-Type header, the URL's extension or the body itself.
func (t *Textract) FromURL(ctx context.Context, rawURL string, opts *Options) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetch URL: unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	name := path.Base(u.Path)
	if name == "." || name == "/" {
		name = u.Host
	}
	mimeType := detectType(resp.Header.Get("Content-Type"), name, data)
	return t.Extract(ctx, mimeType, Buffer(data).WithName(name), opts)
}

// ProbeAll probes every extractor up front and reports which can run here.
func (t *Textract) ProbeAll(ctx context.Context, opts *Options) ([]ProbeStatus, error) {
	if opts == nil {
		opts = &Options{}
	}
	return t.registry.ProbeAll(ctx, opts)
}

var defaultTextract = sync.OnceValue(func() *Textract {
	t, err := New()
	if err != nil {
		panic(err)
	}
	return t
})

// Default returns the process-wide instance used by the package-level
// functions.
func Default() *Textract {
	return defaultTextract()
}

// Extract calls Default().Extract.
func Extract(ctx context.Context, mimeType string, in Input, opts *Options) (string, error) {
	return Default().Extract(ctx, mimeType, in, opts)
}

// FromFile calls Default().FromFile.
func FromFile(ctx context.Context, filePath string, opts *Options) (string, error) {
	return Default().FromFile(ctx, filePath, opts)
}

// FromBuffer calls Default().FromBuffer.
func FromBuffer(ctx context.Context, mimeType string, data []byte, opts *Options) (string, error) {
	return Default().FromBuffer(ctx, mimeType, data, opts)
}

// FromURL calls Default().FromURL.
func FromURL(ctx context.Context, rawURL string, opts *Options) (string, error) {
	return Default().FromURL(ctx, rawURL, opts)
}
