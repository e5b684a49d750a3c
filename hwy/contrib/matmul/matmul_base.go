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

package matmul

import (
	"fmt"

	"github.com/ajroetker/go-kernels/hwy"
	"github.com/ajroetker/go-kernels/hwy/lane"
)

// checkShapes panics unless the buffers cover an (m x k) * (k x n) product.
func checkShapes(a, b, c []float32, m, n, k int) {
	if m < 0 || n < 0 || k < 0 {
		panic(fmt.Sprintf("matmul: negative dimension m=%d n=%d k=%d", m, n, k))
	}
	hwy.CheckLen("matmul", "a", len(a), m*k)
	hwy.CheckLen("matmul", "b", len(b), k*n)
	hwy.CheckLen("matmul", "c", len(c), m*n)
}

// BaseMatMul computes C = A * B one cell at a time. Cell (i, j) runs the dot
// reduction over row i of A, loaded contiguously, and column j of B,
// gathered with stride n.
//
// Panics with a *hwy.BoundsError if a buffer is shorter than its shape.
func BaseMatMul[V any, O lane.Ops[V]](ops O, a, b, c []float32, m, n, k int) {
	checkShapes(a, b, c, m, n, k)
	if k == 0 {
		// An empty inner dimension leaves b with no rows to index.
		clear(c[:m*n])
		return
	}

	w := ops.Lanes()
	epoch, remain := hwy.Split(k, w)

	for i := range m {
		row := a[i*k : (i+1)*k]
		for j := range n {
			col := b[j:]

			acc := ops.Zero()
			if epoch > 0 {
				acc = ops.Mul(ops.Load(row), ops.Gather(col, n))
			}
			for e := 1; e < epoch; e++ {
				p := e * w
				acc = ops.MulAdd(ops.Load(row[p:]), ops.Gather(col[p*n:], n), acc)
			}
			sum := ops.ReduceSum(acc)

			for p := epoch * w; p < epoch*w+remain; p++ {
				sum += row[p] * col[p*n]
			}
			c[i*n+j] = sum
		}
	}
}
