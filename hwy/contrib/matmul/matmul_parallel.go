// Copyright 2024 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package matmul

import "github.com/ajroetker/go-kernels/hwy/contrib/workerpool"

// Parallel tuning parameters
const (
	// MinParallelOps is the minimum number of operations before parallelizing
	MinParallelOps = 64 * 64 * 64

	// RowsPerStrip defines how many rows each worker processes at a time.
	// Tuned for good load balancing while keeping strips large enough for cache efficiency.
	RowsPerStrip = 64
)

// ParallelMatMul computes C = A * B by handing horizontal strips of
// RowsPerStrip rows to the pool, each strip running MatMul on its own rows
// of A and C. Strips write disjoint parts of C and only read B, so the
// result equals MatMul exactly.
//
// Products smaller than MinParallelOps, or a nil pool, run on the calling
// goroutine. Preconditions are checked once up front, as in MatMul.
func ParallelMatMul(pool *workerpool.Pool, a, b, c []float32, m, n, k int) {
	checkShapes(a, b, c, m, n, k)
	if pool == nil || m*n*k < MinParallelOps {
		MatMul(a, b, c, m, n, k)
		return
	}

	numStrips := (m + RowsPerStrip - 1) / RowsPerStrip
	pool.ParallelForAtomic(numStrips, func(strip int) {
		rowStart := strip * RowsPerStrip
		rowEnd := min(rowStart+RowsPerStrip, m)

		aStrip := a[rowStart*k : rowEnd*k]
		cStrip := c[rowStart*n : rowEnd*n]
		MatMul(aStrip, b, cStrip, rowEnd-rowStart, n, k)
	})
}
