// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package conformance drives every lane strategy of every kernel against
// the scalar references and reports where they disagree.
//
// Reductions (dot, l2, matmul cells) are compared within a reordering bound
// of Tolerance * (n+1) * 2^-23 * Σ|term|. Elementwise kernels and bf16
// addition must match bit for bit. Each check runs at the epoch/remainder
// boundary sizes of its strategy's width plus random sizes up to MaxN.
package conformance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"runtime"
	"slices"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/ajroetker/go-kernels/hwy/lane"
)

// ErrMismatch is wrapped by every Failure.
var ErrMismatch = errors.New("conformance: kernel disagrees with reference")

// Config controls a conformance run.
type Config struct {
	// Seed makes the random inputs reproducible.
	Seed uint64
	// MaxN bounds the random vector lengths.
	MaxN int
	// RandomSizes is the number of random lengths added to the boundary set.
	RandomSizes int
	// Tolerance scales the reordering error bound of reductions.
	Tolerance float64
	// Workers bounds concurrent checks; <= 0 means GOMAXPROCS.
	Workers int
	// MaxWidth skips strategies wider than this; 0 checks them all.
	MaxWidth lane.Width
	Logger   *slog.Logger
}

// DefaultConfig returns the configuration used by kernelcheck verify.
func DefaultConfig() Config {
	return Config{
		Seed:        1,
		MaxN:        4096,
		RandomSizes: 8,
		Tolerance:   2,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MaxN <= 0 {
		c.MaxN = d.MaxN
	}
	if c.RandomSizes < 0 {
		c.RandomSizes = 0
	}
	if c.Tolerance <= 0 {
		c.Tolerance = d.Tolerance
	}
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	return c
}

// Result summarizes one check against one strategy.
type Result struct {
	Check    string
	Strategy string
	Width    int
	Cases    int
	Failed   int
	// WorstRatio is the largest observed error divided by its bound; 0 for
	// bit-exact checks that passed.
	WorstRatio float64
}

// Failure is one case where a kernel disagreed with its reference.
type Failure struct {
	Check    string
	Strategy string
	N        int
	Detail   string
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s/%s n=%d: %s", f.Check, f.Strategy, f.N, f.Detail)
}

// Unwrap lets errors.Is match ErrMismatch.
func (f Failure) Unwrap() error {
	return ErrMismatch
}

// Report is the outcome of Run.
type Report struct {
	Results  []Result
	Failures []Failure
}

// OK reports whether every case passed.
func (r *Report) OK() bool {
	return len(r.Failures) == 0
}

// Strategies lists the strategy names that were exercised.
func (r *Report) Strategies() []string {
	names := lo.Uniq(lo.Map(r.Results, func(res Result, _ int) string { return res.Strategy }))
	slices.Sort(names)
	return names
}

// Run executes every check concurrently. It returns an error wrapping
// ErrMismatch (one joined Failure per disagreement) when any kernel is off,
// or the context error when ctx is cancelled first. The report is returned
// alongside a mismatch error. A check that panics is recorded as a failed
// case of that check; the remaining checks still run.
func Run(ctx context.Context, cfg Config) (*Report, error) {
	cfg = cfg.withDefaults()
	all := lo.Filter(jobs(), func(j job, _ int) bool {
		return cfg.MaxWidth == 0 || j.strategy == conversionStrategy || lane.Width(j.width) <= cfg.MaxWidth
	})
	return run(ctx, cfg, all)
}

func run(ctx context.Context, cfg Config, all []job) (*Report, error) {

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)

	results := make([]Result, len(all))
	failures := make([][]Failure, len(all))
	for i, j := range all {
		g.Go(func() error {
			r := newRunner(ctx, cfg, j, uint64(i))
			r.guard(j.run)
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = r.result()
			failures[i] = r.failures
			cfg.Logger.Debug("check finished",
				"check", j.check, "strategy", j.strategy, "cases", r.cases, "failed", r.failed)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("conformance: %w", err)
	}

	report := &Report{Results: results, Failures: lo.Flatten(failures)}
	cfg.Logger.Info("conformance run complete",
		"checks", len(results), "strategies", len(report.Strategies()), "failures", len(report.Failures))
	if !report.OK() {
		errs := lo.Map(report.Failures, func(f Failure, _ int) error { return f })
		return report, fmt.Errorf("%d mismatches: %w", len(errs), errors.Join(errs...))
	}
	return report, nil
}

// Sizes returns the lengths a check of the given width runs at: 0, 1, w-1,
// w, w+1, 2w, 2w+1 plus count random lengths in [0, maxN], sorted and
// deduplicated.
func Sizes(rng *rand.Rand, width, maxN, count int) []int {
	w := max(width, 1)
	sizes := []int{0, 1, w - 1, w, w + 1, 2 * w, 2*w + 1}
	for range count {
		sizes = append(sizes, rng.IntN(maxN+1))
	}
	sizes = lo.Uniq(lo.Filter(sizes, func(n int, _ int) bool { return n >= 0 }))
	slices.Sort(sizes)
	return sizes
}
