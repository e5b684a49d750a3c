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

import "github.com/ajroetker/go-kernels/hwy/lane"

// BaseBlockedMatMul computes C = A * B by broadcasting A[i,p] across
// lane-wide strips of row p of B.
//
// The N dimension is split into panels of params.Nc columns and the K
// dimension into blocks of params.Kc, so the Kc x Nc panel of B being
// streamed stays in L2 while every row of A passes over it. Partial sums
// are parked in C between K blocks; a float32 store and reload is exact, so
// each cell still accumulates p = 0..k-1 in order.
//
// Panics with a *hwy.BoundsError if a buffer is shorter than its shape.
func BaseBlockedMatMul[V any, O lane.Ops[V]](ops O, params CacheParams, a, b, c []float32, m, n, k int) {
	checkShapes(a, b, c, m, n, k)
	if k == 0 {
		clear(c[:m*n])
		return
	}

	w := ops.Lanes()
	kc := max(params.Kc, 1)
	nc := max(params.Nc, w)

	for jc := 0; jc < n; jc += nc {
		jEnd := min(jc+nc, n)
		for pc := 0; pc < k; pc += kc {
			pEnd := min(pc+kc, k)
			first := pc == 0

			for i := range m {
				aRow := a[i*k : (i+1)*k]
				cRow := c[i*n : (i+1)*n]

				j := jc
				for ; j+w <= jEnd; j += w {
					acc := ops.Zero()
					if !first {
						acc = ops.Load(cRow[j:])
					}
					for p := pc; p < pEnd; p++ {
						acc = ops.MulAdd(ops.Set(aRow[p]), ops.Load(b[p*n+j:]), acc)
					}
					ops.Store(acc, cRow[j:])
				}

				// Columns left over after the last full strip.
				for ; j < jEnd; j++ {
					var sum float32
					if !first {
						sum = cRow[j]
					}
					for p := pc; p < pEnd; p++ {
						sum += aRow[p] * b[p*n+j]
					}
					cRow[j] = sum
				}
			}
		}
	}
}
