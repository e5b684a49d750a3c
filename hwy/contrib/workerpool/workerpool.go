// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a persistent worker pool for splitting kernel
// calls across goroutines. The kernels in hwy/contrib are single-threaded;
// callers that want row-parallel matrix products or concurrent conformance
// checks create one Pool and reuse it, instead of spawning goroutines per
// call.
//
// Usage:
//
//	pool := workerpool.New(workerpool.WithWorkers(runtime.GOMAXPROCS(0)))
//	defer pool.Close()
//
//	pool.ParallelFor(m, func(start, end int) {
//	    processRows(start, end)
//	})
package workerpool

import (
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a persistent worker pool that can be reused across many parallel
// operations. Workers are spawned once at creation and reused.
type Pool struct {
	numWorkers int
	logger     *slog.Logger
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool
}

// workItem is one worker's share of a parallel call.
type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// Option configures a Pool.
type Option func(*Pool)

// WithWorkers sets the number of workers. Values <= 0 mean GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(p *Pool) {
		p.numWorkers = n
	}
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pool) {
		if l != nil {
			p.logger = l
		}
	}
}

// New creates a worker pool. Workers are spawned immediately and persist
// until Close is called.
func New(opts ...Option) *Pool {
	p := &Pool{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(p)
	}
	if p.numWorkers <= 0 {
		p.numWorkers = runtime.GOMAXPROCS(0)
	}
	// Buffer enough for all workers to have pending work
	p.workC = make(chan workItem, p.numWorkers*2)

	for range p.numWorkers {
		go p.worker()
	}
	p.logger.Debug("worker pool started", "workers", p.numWorkers)

	return p
}

func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close shuts down the worker pool. Work already submitted completes.
// Calling Close multiple times is safe. Calls made after Close run
// sequentially on the caller's goroutine.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
		p.logger.Debug("worker pool closed", "workers", p.numWorkers)
	})
}

// ParallelFor executes fn over [0, n) split into one contiguous range per
// worker. fn receives (start, end) and must process [start, end).
// Blocks until all work completes.
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	workers := min(p.numWorkers, n)
	if workers == 1 || p.closed.Load() {
		fn(0, n)
		return
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		p.workC <- workItem{
			fn:      func() { fn(start, end) },
			barrier: &wg,
		}
	}
	wg.Wait()
}

// ParallelForAtomic executes fn(i) for each i in [0, n). Workers claim
// indices from a shared counter, which balances uneven work per index.
// Blocks until all work completes.
func (p *Pool) ParallelForAtomic(n int, fn func(i int)) {
	if n <= 0 {
		return
	}

	workers := min(p.numWorkers, n)
	if workers == 1 || p.closed.Load() {
		for i := range n {
			fn(i)
		}
		return
	}

	var next atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		p.workC <- workItem{
			fn: func() {
				for {
					i := int(next.Add(1)) - 1
					if i >= n {
						return
					}
					fn(i)
				}
			},
			barrier: &wg,
		}
	}
	wg.Wait()
}
