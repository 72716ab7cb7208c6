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
	"log/slog"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// probeConcurrency bounds ProbeAll.
const probeConcurrency = 4

type probeOutcome struct {
	capable bool
	reason  string
}

type patternEntry struct {
	matcher Matcher
	index   int
}

// Registry maps MIME types to extractors. Extractors are probed lazily, at
// most once each, the first time a type they own is resolved. Probe
// outcomes and resolved types are recorded once and never change.
type Registry struct {
	mu         sync.RWMutex
	extractors []Extractor
	exact      map[string]int
	patterns   []patternEntry

	// capable holds types already resolved to a capable extractor.
	capable map[string]Extractor
	// outcomes holds the probe result of every probed extractor, by index.
	outcomes map[int]probeOutcome

	probes singleflight.Group
	logger *slog.Logger
}

// NewRegistry returns an empty registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		exact:    make(map[string]int),
		capable:  make(map[string]Extractor),
		outcomes: make(map[int]probeOutcome),
		logger:   logger,
	}
}

// Register appends e. For exact types already claimed by an earlier
// extractor the earlier one keeps ownership.
func (r *Registry) Register(e Extractor) error {
	types := e.Types()
	seen := make(map[string]bool, len(types))
	for _, m := range types {
		key := m.String()
		if seen[key] {
			return fmt.Errorf("register %s: duplicate type %s", e.Name(), key)
		}
		seen[key] = true
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := len(r.extractors)
	r.extractors = append(r.extractors, e)
	for _, m := range types {
		if m.IsPattern() {
			r.patterns = append(r.patterns, patternEntry{matcher: m, index: idx})
			continue
		}
		if _, taken := r.exact[m.exact]; !taken {
			r.exact[m.exact] = idx
		}
	}
	return nil
}

// Resolve returns the extractor for mimeType, probing it first if it has
// not been probed yet. Concurrent callers share a single probe. If ctx
// ends while waiting, Resolve returns ctx.Err() and the probe still
// completes and is recorded.
func (r *Registry) Resolve(ctx context.Context, mimeType string, opts *Options) (Extractor, error) {
	key := normalizeType(mimeType)

	r.mu.RLock()
	e, ok := r.capable[key]
	r.mu.RUnlock()
	if ok {
		return e, nil
	}

	idx, ok := r.lookup(key)
	if !ok {
		return nil, &TypeNotFoundError{MIMEType: mimeType}
	}
	e = r.at(idx)

	outcome, err := r.probe(ctx, idx, opts)
	if err != nil {
		return nil, err
	}
	if !outcome.capable {
		return nil, &TypeNotFoundError{MIMEType: mimeType, Extractor: e.Name(), Reason: outcome.reason}
	}

	r.mu.Lock()
	if prev, ok := r.capable[key]; ok {
		e = prev
	} else {
		r.capable[key] = e
	}
	r.mu.Unlock()
	return e, nil
}

// ProbeStatus describes the recorded probe outcome of one extractor.
type ProbeStatus struct {
	Extractor string
	Types     []string
	Capable   bool
	Reason    string
}

// ProbeAll probes every registered extractor concurrently and returns
// their outcomes in registration order. Outcomes are recorded exactly as
// if each extractor had been reached through Resolve.
func (r *Registry) ProbeAll(ctx context.Context, opts *Options) ([]ProbeStatus, error) {
	r.mu.RLock()
	n := len(r.extractors)
	r.mu.RUnlock()

	statuses := make([]ProbeStatus, n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(probeConcurrency)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			outcome, err := r.probe(gctx, i, opts)
			if err != nil {
				return err
			}
			e := r.at(i)
			types := make([]string, 0, len(e.Types()))
			for _, m := range e.Types() {
				types = append(types, m.String())
			}
			statuses[i] = ProbeStatus{
				Extractor: e.Name(),
				Types:     types,
				Capable:   outcome.capable,
				Reason:    outcome.reason,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return statuses, nil
}

// lookup finds the owner of a normalized type: the first exact claim, or
// failing that the first matching pattern in registration order.
func (r *Registry) lookup(key string) (int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if idx, ok := r.exact[key]; ok {
		return idx, true
	}
	for _, p := range r.patterns {
		if p.matcher.Match(key) {
			return p.index, true
		}
	}
	return 0, false
}

func (r *Registry) at(idx int) Extractor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.extractors[idx]
}

func (r *Registry) outcome(idx int) (probeOutcome, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out, ok := r.outcomes[idx]
	return out, ok
}

// probe returns the recorded outcome for the extractor at idx, running its
// probe if none is recorded. The probe runs detached from ctx so that a
// caller giving up cannot cause a cancellation to be recorded as the
// extractor's permanent outcome.
func (r *Registry) probe(ctx context.Context, idx int, opts *Options) (probeOutcome, error) {
	if out, ok := r.outcome(idx); ok {
		return out, nil
	}

	probeCtx := context.WithoutCancel(ctx)
	ch := r.probes.DoChan(strconv.Itoa(idx), func() (any, error) {
		if out, ok := r.outcome(idx); ok {
			return out, nil
		}

		e := r.at(idx)
		out := runProbe(probeCtx, e, opts)

		r.mu.Lock()
		if prev, ok := r.outcomes[idx]; ok {
			out = prev
		} else {
			r.outcomes[idx] = out
		}
		r.mu.Unlock()

		if out.capable {
			r.logger.Debug("extractor available", "extractor", e.Name())
		} else {
			r.logger.Info("extractor unavailable", "extractor", e.Name(), "reason", out.reason)
		}
		return out, nil
	})

	select {
	case <-ctx.Done():
		return probeOutcome{}, ctx.Err()
	case res := <-ch:
		return res.Val.(probeOutcome), nil
	}
}

func runProbe(ctx context.Context, e Extractor, opts *Options) (out probeOutcome) {
	p, ok := e.(Prober)
	if !ok {
		return probeOutcome{capable: true}
	}

	defer func() {
		if v := recover(); v != nil {
			out = probeOutcome{reason: fmt.Sprintf("probe panicked: %v", v)}
		}
	}()

	passed, err := p.Probe(ctx, opts)
	switch {
	case err != nil:
		return probeOutcome{reason: err.Error()}
	case !passed:
		return probeOutcome{reason: failedToInitialize}
	}
	return probeOutcome{capable: true}
}
