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

package main

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ajroetker/go-kernels/hwy/contrib/dot"
	"github.com/ajroetker/go-kernels/hwy/contrib/matmul"
	"github.com/ajroetker/go-kernels/hwy/contrib/vec"
	"github.com/ajroetker/go-kernels/hwy/contrib/workerpool"
)

type benchConfig struct {
	n       int
	size    int
	iters   int
	seed    uint64
	par     bool
	printer *message.Printer
}

func newBenchCmd(opts *options) *cobra.Command {
	cfg := benchConfig{n: 4096, size: 128, iters: 2000, seed: 1}
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time dot, l2, multo and matmul for every strategy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfg.n <= 0 || cfg.size <= 0 || cfg.iters <= 0 {
				return fmt.Errorf("--n, --size and --iters must be positive")
			}
			cfg.printer = message.NewPrinter(language.English)
			return runBench(cmd.Context(), cmd.OutOrStdout(), opts, cfg)
		},
	}
	flags := cmd.Flags()
	flags.IntVar(&cfg.n, "n", cfg.n, "vector length for dot, l2 and multo")
	flags.IntVar(&cfg.size, "size", cfg.size, "square matrix size for matmul")
	flags.IntVar(&cfg.iters, "iters", cfg.iters, "iterations per vector kernel; matmul runs fewer")
	flags.Uint64Var(&cfg.seed, "seed", cfg.seed, "seed for the random inputs")
	flags.BoolVar(&cfg.par, "parallel", true, "also time the worker-pool matmul")
	return cmd
}

// sink keeps the reductions from being optimized away.
var sink float32

func runBench(ctx context.Context, w io.Writer, opts *options, cfg benchConfig) error {
	rng := rand.New(rand.NewPCG(cfg.seed, 0))
	a, b := randomFloats(rng, cfg.n), randomFloats(rng, cfg.n)
	dst := make([]float32, cfg.n)
	p := cfg.printer

	p.Fprintf(w, "vector kernels, n = %d, %d iterations\n", cfg.n, cfg.iters)
	flops := 2 * float64(cfg.n)
	for _, k := range dot.Kernels() {
		if !opts.fits(k.Width) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		report(w, p, "dot", k.Name, flops, timeIt(cfg.iters, func() { sink += k.Fn.Dot(a, b) }))
		report(w, p, "dot-unrolled", k.Name, flops, timeIt(cfg.iters, func() { sink += k.Fn.DotUnrolled(a, b) }))
		report(w, p, "l2", k.Name, 3*float64(cfg.n), timeIt(cfg.iters, func() { sink += k.Fn.L2Squared(a, b) }))
	}
	for _, k := range vec.Kernels() {
		if !opts.fits(k.Width) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		report(w, p, "multo", k.Name, float64(cfg.n), timeIt(cfg.iters, func() { k.Fn.MulTo(dst, a, b) }))
	}

	s := cfg.size
	ma, mb, mc := randomFloats(rng, s*s), randomFloats(rng, s*s), make([]float32, s*s)
	mmIters := max(cfg.iters/100, 1)
	mmFlops := 2 * float64(s) * float64(s) * float64(s)
	p.Fprintf(w, "\nmatmul, %d x %d, %d iterations\n", s, s, mmIters)
	for _, k := range matmul.Kernels() {
		if !opts.fits(k.Width) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		report(w, p, "blocked", k.Name, mmFlops, timeIt(mmIters, func() { k.Fn.Blocked(ma, mb, mc, s, s, s) }))
		report(w, p, "inner", k.Name, mmFlops, timeIt(mmIters, func() { k.Fn.InnerProduct(ma, mb, mc, s, s, s) }))
	}
	if cfg.par {
		pool := workerpool.New(workerpool.WithLogger(opts.logger))
		defer pool.Close()
		kernel := fmt.Sprintf("parallel(%d)", pool.NumWorkers())
		report(w, p, kernel, matmul.Strategy(), mmFlops, timeIt(mmIters, func() { matmul.ParallelMatMul(pool, ma, mb, mc, s, s, s) }))
	}
	return nil
}

func timeIt(iters int, fn func()) time.Duration {
	fn()
	start := time.Now()
	for range iters {
		fn()
	}
	return time.Since(start) / time.Duration(iters)
}

func report(w io.Writer, p *message.Printer, kernel, strategy string, flops float64, perOp time.Duration) {
	gflops := flops / max(float64(perOp.Nanoseconds()), 1)
	p.Fprintf(w, "  %-14s %-8s %12d ns/op %9.2f GFLOP/s\n", kernel, strategy, perOp.Nanoseconds(), gflops)
}

func randomFloats(rng *rand.Rand, n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = rng.Float32()*2 - 1
	}
	return out
}
