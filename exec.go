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
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// probeTimeout bounds a banner check, since probes ignore caller cancellation.
var probeTimeout = 10 * time.Second

var errMaxBuffer = errors.New("output exceeded max buffer")

// cappedBuffer keeps at most max bytes and drops the rest, so the child
// never blocks on a full pipe. A zero max means no limit.
type cappedBuffer struct {
	buf      bytes.Buffer
	max      int
	exceeded bool
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	if b.exceeded {
		return len(p), nil
	}
	if b.max > 0 && b.buf.Len()+len(p) > b.max {
		b.exceeded = true
		return len(p), nil
	}
	return b.buf.Write(p)
}

func (b *cappedBuffer) Bytes() []byte { return b.buf.Bytes() }

func (b *cappedBuffer) String() string { return b.buf.String() }

// runCommand runs name with args and returns what it wrote to stdout and
// stderr. A non-zero exit is an error that carries the trimmed stderr.
func runCommand(ctx context.Context, eo ExecOptions, name string, args ...string) ([]byte, []byte, error) {
	if eo.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, eo.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = eo.Dir
	if len(eo.Env) > 0 {
		cmd.Env = append(os.Environ(), eo.Env...)
	}
	stdout := &cappedBuffer{max: eo.MaxBuffer}
	stderr := &cappedBuffer{max: eo.MaxBuffer}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	switch {
	case stdout.exceeded || stderr.exceeded:
		return nil, nil, fmt.Errorf("%s: %w (%d bytes)", name, errMaxBuffer, eo.MaxBuffer)
	case err == nil:
		return stdout.Bytes(), stderr.Bytes(), nil
	case ctx.Err() != nil:
		return nil, nil, fmt.Errorf("%s: %w", name, ctx.Err())
	}

	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		return stdout.Bytes(), stderr.Bytes(), fmt.Errorf("%s: %w: %s", name, err, msg)
	}
	return stdout.Bytes(), stderr.Bytes(), fmt.Errorf("%s: %w", name, err)
}

func notInstalled(name, what string) error {
	return fmt.Errorf("INFO: '%s' does not appear to be installed, so textract will be unable to extract %s.", name, what)
}

// lookPath probes for a binary on PATH.
func lookPath(name, what string) (bool, error) {
	if _, err := exec.LookPath(name); err != nil {
		return false, notInstalled(name, what)
	}
	return true, nil
}

// probeBanner runs name with args and looks for banner in anything it
// prints. Tools that print usage or version text and exit non-zero still
// pass.
func probeBanner(ctx context.Context, banner, what, name string, args ...string) (bool, error) {
	stdout, stderr, err := runCommand(ctx, ExecOptions{Timeout: probeTimeout}, name, args...)
	if bytes.Contains(stdout, []byte(banner)) || bytes.Contains(stderr, []byte(banner)) {
		return true, nil
	}
	if err != nil && strings.Contains(err.Error(), banner) {
		return true, nil
	}
	return false, notInstalled(name, what)
}
