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
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T, extractors ...Extractor) *Registry {
	t.Helper()
	r := NewRegistry(nil)
	for _, e := range extractors {
		require.NoError(t, r.Register(e))
	}
	return r
}

func TestRegistryResolve(t *testing.T) {
	first := &stubExtractor{name: "first", types: []Matcher{Exact("text/html")}}
	second := &stubExtractor{name: "second", types: []Matcher{Exact("text/html"), Exact("text/csv")}}
	catchAll := &stubExtractor{name: "catch-all", types: []Matcher{Pattern(`^text/`)}}
	laterPattern := &stubExtractor{name: "later", types: []Matcher{Pattern(`^text/.*`)}}
	r := newTestRegistry(t, first, catchAll, second, laterPattern)

	tests := []struct {
		mimeType string
		want     string
	}{
		{"text/html", "first"},
		{"TEXT/HTML ", "first"},
		{"text/csv", "second"},
		{"text/plain", "catch-all"},
	}
	for _, tt := range tests {
		t.Run(tt.mimeType, func(t *testing.T) {
			e, err := r.Resolve(context.Background(), tt.mimeType, &Options{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.Name())
		})
	}
}

func TestRegistryUnknownType(t *testing.T) {
	r := newTestRegistry(t, &stubExtractor{name: "html", types: []Matcher{Exact("text/html")}})

	_, err := r.Resolve(context.Background(), "application/x-unknown", &Options{})
	require.Error(t, err)
	assert.True(t, IsTypeNotFound(err))
	assert.False(t, IsExtractorIncapable(err))
	assert.Equal(t, `no extractor for type "application/x-unknown"`, err.Error())
}

func TestRegistryRejectsDuplicateTypes(t *testing.T) {
	r := NewRegistry(nil)
	err := r.Register(&stubExtractor{name: "dup", types: []Matcher{Exact("text/html"), Exact("text/html")}})
	assert.Error(t, err)
}

func TestRegistryProbesOnceUnderConcurrency(t *testing.T) {
	var calls atomic.Int32
	e := &probedExtractor{
		stubExtractor: stubExtractor{name: "slow", types: []Matcher{Exact("application/x-slow")}},
		probe: func(context.Context) (bool, error) {
			calls.Add(1)
			time.Sleep(20 * time.Millisecond)
			return true, nil
		},
	}
	r := newTestRegistry(t, e)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := r.Resolve(context.Background(), "application/x-slow", &Options{})
			assert.NoError(t, err)
			assert.Equal(t, "slow", got.Name())
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestRegistryProbesOncePerExtractorAcrossTypes(t *testing.T) {
	var calls atomic.Int32
	e := &probedExtractor{
		stubExtractor: stubExtractor{
			name:  "multi",
			types: []Matcher{Exact("a/x"), Exact("a/y"), Pattern(`^b/`)},
		},
		probe: func(context.Context) (bool, error) {
			calls.Add(1)
			time.Sleep(20 * time.Millisecond)
			return true, nil
		},
	}
	r := newTestRegistry(t, e)

	mimeTypes := []string{"a/x", "A/Y", "b/z", "b/q"}
	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(mimeType string) {
			defer wg.Done()
			got, err := r.Resolve(context.Background(), mimeType, &Options{})
			assert.NoError(t, err)
			if got != nil {
				assert.Equal(t, "multi", got.Name())
			}
		}(mimeTypes[i%len(mimeTypes)])
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		statuses, err := r.ProbeAll(context.Background(), &Options{})
		assert.NoError(t, err)
		assert.Len(t, statuses, 1)
	}()
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestRegistryRemembersIncapable(t *testing.T) {
	var calls atomic.Int32
	e := &probedExtractor{
		stubExtractor: stubExtractor{name: "missing", types: []Matcher{Exact("application/x-missing")}},
		probe: func(context.Context) (bool, error) {
			calls.Add(1)
			return false, errors.New("binary not found")
		},
	}
	r := newTestRegistry(t, e)

	for i := 0; i < 3; i++ {
		_, err := r.Resolve(context.Background(), "application/x-missing", &Options{})
		require.Error(t, err)
		assert.True(t, IsExtractorIncapable(err))
		assert.Contains(t, err.Error(), "extractor for type exists, but failed to initialize: binary not found")
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestRegistryProbeFalseWithoutError(t *testing.T) {
	e := &probedExtractor{
		stubExtractor: stubExtractor{name: "off", types: []Matcher{Exact("application/x-off")}},
		probe:         func(context.Context) (bool, error) { return false, nil },
	}
	r := newTestRegistry(t, e)

	_, err := r.Resolve(context.Background(), "application/x-off", &Options{})
	var notFound *TypeNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "off", notFound.Extractor)
	assert.Equal(t, "Extractor failed to initialize", notFound.Reason)
}

func TestRegistryRecoversProbePanic(t *testing.T) {
	e := &probedExtractor{
		stubExtractor: stubExtractor{name: "panics", types: []Matcher{Exact("application/x-panic")}},
		probe:         func(context.Context) (bool, error) { panic("boom") },
	}
	r := newTestRegistry(t, e)

	_, err := r.Resolve(context.Background(), "application/x-panic", &Options{})
	require.Error(t, err)
	assert.True(t, IsExtractorIncapable(err))
	assert.Contains(t, err.Error(), "probe panicked: boom")
}

func TestRegistryCancelledWaiterDoesNotAbortProbe(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32
	e := &probedExtractor{
		stubExtractor: stubExtractor{name: "blocked", types: []Matcher{Exact("application/x-blocked")}},
		probe: func(ctx context.Context) (bool, error) {
			calls.Add(1)
			<-release
			return ctx.Err() == nil, nil
		},
	}
	r := newTestRegistry(t, e)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Resolve(ctx, "application/x-blocked", &Options{})
	assert.ErrorIs(t, err, context.Canceled)

	close(release)
	got, err := r.Resolve(context.Background(), "application/x-blocked", &Options{})
	require.NoError(t, err)
	assert.Equal(t, "blocked", got.Name())
	assert.Equal(t, int32(1), calls.Load())
}

func TestRegistryProbeAll(t *testing.T) {
	ok := &stubExtractor{name: "ok", types: []Matcher{Exact("text/plain"), Pattern(`^text/`)}}
	broken := &probedExtractor{
		stubExtractor: stubExtractor{name: "broken", types: []Matcher{Exact("application/pdf")}},
		probe:         func(context.Context) (bool, error) { return false, errors.New("not installed") },
	}
	r := newTestRegistry(t, ok, broken)

	statuses, err := r.ProbeAll(context.Background(), &Options{})
	require.NoError(t, err)
	require.Len(t, statuses, 2)

	assert.Equal(t, ProbeStatus{Extractor: "ok", Types: []string{"text/plain", "/^text//"}, Capable: true}, statuses[0])
	assert.Equal(t, ProbeStatus{Extractor: "broken", Types: []string{"application/pdf"}, Reason: "not installed"}, statuses[1])

	_, err = r.Resolve(context.Background(), "application/pdf", &Options{})
	assert.True(t, IsExtractorIncapable(err))
}
