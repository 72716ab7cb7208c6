package textract

import (
	"log/slog"
	"net/http"
)

// Option configures a Textract instance.
type Option func(*Textract)

// WithLogger sets the logger used for probe outcomes and failures
// (default: slog.Default()).
func WithLogger(logger *slog.Logger) Option {
	return func(t *Textract) {
		t.logger = logger
	}
}

// WithHTTPClient sets the client FromURL downloads with.
func WithHTTPClient(client *http.Client) Option {
	return func(t *Textract) {
		t.client = client
	}
}

// WithExtractors replaces the built-in extractor table. Extractors are
// registered in the given order, so earlier ones win shared MIME types.
func WithExtractors(extractors ...Extractor) Option {
	return func(t *Textract) {
		t.extractors = extractors
	}
}

// WithNativePDF extracts PDFs in-process instead of running pdftotext.
// It has no effect together with WithExtractors.
func WithNativePDF() Option {
	return func(t *Textract) {
		t.nativePDF = true
	}
}
