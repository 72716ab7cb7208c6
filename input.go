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
	"io/fs"
	"os"
)

const tempPattern = "textract-*"

func noRelease() error { return nil }

// materialize converts in to the kind an extractor wants. Buffers are
// written to a private temp file, paths are read into memory. The returned
// release func must be called on every path once the extractor is done; it
// removes any temp file and reports a failure as *CleanupError.
func materialize(in Input, want InputKind) (Input, func() error, error) {
	if in.kind == want {
		return in, noRelease, nil
	}

	if want == InputBuffer {
		data, err := os.ReadFile(in.path)
		if err != nil {
			return Input{}, noRelease, fmt.Errorf("read input: %w", err)
		}
		return Buffer(data).WithName(in.Name()), noRelease, nil
	}

	f, err := os.CreateTemp("", tempPattern)
	if err != nil {
		return Input{}, noRelease, fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()
	release := func() error {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return &CleanupError{Path: path, Err: err}
		}
		return nil
	}

	if _, err := f.Write(in.data); err != nil {
		f.Close()
		release()
		return Input{}, noRelease, fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		release()
		return Input{}, noRelease, fmt.Errorf("close temp file: %w", err)
	}

	return Input{path: path, kind: InputFilePath, name: in.Name()}, release, nil
}
