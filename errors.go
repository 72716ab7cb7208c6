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
	"errors"
	"fmt"
	"strings"
)

// ErrNotOfClaimedType is wrapped by extractors when the underlying tool
// reports that the document is not of the MIME type it was given as.
var ErrNotOfClaimedType = errors.New("document is not of the claimed type")

// failedToInitialize is the reason recorded when a probe returns false
// without an error.
const failedToInitialize = "Extractor failed to initialize"

// TypeNotFoundError is returned when no capable extractor exists for a
// MIME type. A non-empty Reason means an extractor claims the type but its
// probe failed.
type TypeNotFoundError struct {
	MIMEType  string
	File      string
	Extractor string
	Reason    string
}

func (e *TypeNotFoundError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "no extractor for type %q", e.MIMEType)
	if e.File != "" {
		fmt.Fprintf(&b, ", file %q", e.File)
	}
	if e.Reason != "" {
		fmt.Fprintf(&b, ": extractor for type exists, but failed to initialize: %s", e.Reason)
	}
	return b.String()
}

// Incapable reports whether an extractor exists for the type but failed its probe.
func (e *TypeNotFoundError) Incapable() bool {
	return e.Reason != ""
}

// ExtractionError is returned when the selected extractor fails.
type ExtractionError struct {
	Extractor string
	File      string
	Err       error
}

func (e *ExtractionError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s: extracting %q: %v", e.Extractor, e.File, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Extractor, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// CleanupError reports a temporary file that could not be removed. It is
// returned alongside the extracted text, which remains valid.
type CleanupError struct {
	Path string
	Err  error
}

func (e *CleanupError) Error() string {
	return fmt.Sprintf("remove temp file %s: %v", e.Path, e.Err)
}

func (e *CleanupError) Unwrap() error {
	return e.Err
}

// IsTypeNotFound reports whether err means no capable extractor exists for
// the requested type, whether or not one claims it.
func IsTypeNotFound(err error) bool {
	var target *TypeNotFoundError
	return errors.As(err, &target)
}

// IsExtractorIncapable reports whether err means an extractor claims the
// type but cannot run in this environment.
func IsExtractorIncapable(err error) bool {
	var target *TypeNotFoundError
	return errors.As(err, &target) && target.Incapable()
}
