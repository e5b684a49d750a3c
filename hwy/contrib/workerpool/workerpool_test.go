// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParallelForCoversRange(t *testing.T) {
	pool := New(WithWorkers(4))
	defer pool.Close()
	assert.Equal(t, 4, pool.NumWorkers())

	for _, n := range []int{0, 1, 3, 4, 5, 17, 1000} {
		hits := make([]int32, n)
		pool.ParallelFor(n, func(start, end int) {
			for i := start; i < end; i++ {
				atomic.AddInt32(&hits[i], 1)
			}
		})
		for i, h := range hits {
			assert.Equal(t, int32(1), h, "n=%d index %d", n, i)
		}
	}
}

func TestParallelForAtomicCoversRange(t *testing.T) {
	pool := New(WithWorkers(3))
	defer pool.Close()

	const n = 257
	var mu sync.Mutex
	seen := make(map[int]int)
	pool.ParallelForAtomic(n, func(i int) {
		mu.Lock()
		seen[i]++
		mu.Unlock()
	})
	assert.Len(t, seen, n)
	for i := range n {
		assert.Equal(t, 1, seen[i], "index %d", i)
	}
}

func TestDefaultWorkers(t *testing.T) {
	pool := New(WithWorkers(0), WithLogger(nil))
	defer pool.Close()
	assert.Positive(t, pool.NumWorkers())
}

func TestClosedPoolRunsSequentially(t *testing.T) {
	pool := New(WithWorkers(2))
	pool.Close()
	pool.Close()

	var calls int
	pool.ParallelFor(10, func(start, end int) {
		calls++
		assert.Equal(t, 0, start)
		assert.Equal(t, 10, end)
	})
	assert.Equal(t, 1, calls)

	var sum int
	pool.ParallelForAtomic(4, func(i int) { sum += i })
	assert.Equal(t, 6, sum)
}
