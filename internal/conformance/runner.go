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

package conformance

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/ajroetker/go-kernels/hwy"
)

const (
	float32Eps = 1.0 / (1 << 23)

	// maxFailuresPerCheck keeps a badly broken kernel from flooding the
	// report; Result.Failed still counts every failing case.
	maxFailuresPerCheck = 5
)

// runner carries the state of one check against one strategy.
type runner struct {
	ctx      context.Context
	cfg      Config
	rng      *rand.Rand
	check    string
	strategy string
	width    int

	// n is the size of the case in progress, -1 before the first one.
	n int

	cases    int
	failed   int
	worst    float64
	failures []Failure
}

func newRunner(ctx context.Context, cfg Config, j job, index uint64) *runner {
	return &runner{
		ctx:      ctx,
		cfg:      cfg,
		rng:      rand.New(rand.NewPCG(cfg.Seed, index)),
		check:    j.check,
		strategy: j.strategy,
		width:    j.width,
		n:        -1,
	}
}

// sizes returns the lengths for this runner's width.
func (r *runner) sizes() []int {
	return Sizes(r.rng, r.width, r.cfg.MaxN, r.cfg.RandomSizes)
}

// guard runs check, recording a panic as one failed case at the size the
// check was working on.
func (r *runner) guard(check func(*runner)) {
	defer func() {
		if p := recover(); p != nil {
			r.cases++
			r.fail(r.n, "panic: %v", p)
		}
	}()
	check(r)
}

// begin marks the start of the size-n case and reports whether to run it.
func (r *runner) begin(n int) bool {
	r.n = n
	return !r.cancelled()
}

// cancelled reports whether the run was cancelled; loops stop on true.
func (r *runner) cancelled() bool {
	return r.ctx.Err() != nil
}

func (r *runner) floats(n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = r.rng.Float32()*2 - 1
	}
	return out
}

// bf16s returns n random bf16 values spanning several binades.
func (r *runner) bf16s(n int) []hwy.BFloat16 {
	out := make([]hwy.BFloat16, n)
	for i := range out {
		x := (r.rng.Float32()*2 - 1) * float32(int(1)<<r.rng.IntN(16))
		out[i] = hwy.Float32ToBFloat16(x)
	}
	return out
}

func (r *runner) fail(n int, format string, args ...any) {
	r.failed++
	if len(r.failures) < maxFailuresPerCheck {
		r.failures = append(r.failures, Failure{
			Check:    r.check,
			Strategy: r.strategy,
			N:        n,
			Detail:   fmt.Sprintf(format, args...),
		})
	}
}

// approx compares a reduction against its reference. mag is Σ|term| of
// the reduced terms.
func (r *runner) approx(n int, got, want float32, mag float64) {
	r.cases++
	bound := r.cfg.Tolerance*float64(n+1)*float32Eps*mag + math.SmallestNonzeroFloat32
	diff := math.Abs(float64(got) - float64(want))
	if math.IsNaN(diff) {
		r.fail(n, "got %v, reference %v", got, want)
		return
	}
	r.worst = max(r.worst, diff/bound)
	if diff > bound {
		r.fail(n, "got %v, reference %v, |diff| %.3g exceeds bound %.3g", got, want, diff, bound)
	}
}

// exact records a case that must match bit for bit.
func (r *runner) exact(n int, ok bool, format string, args ...any) {
	r.cases++
	if !ok {
		r.fail(n, format, args...)
	}
}

func (r *runner) result() Result {
	return Result{
		Check:      r.check,
		Strategy:   r.strategy,
		Width:      r.width,
		Cases:      r.cases,
		Failed:     r.failed,
		WorstRatio: r.worst,
	}
}
