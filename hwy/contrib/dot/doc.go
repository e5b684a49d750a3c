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

// Package dot provides vectorized reductions over float32 slices: the dot
// product and the squared Euclidean distance.
//
// # Functions
//
//   - Dot(a, b) and DotN(a, b, n): Σ a[i]*b[i]
//   - L2Squared(a, b) and L2SquaredN(a, b, n): Σ (a[i]-b[i])²
//   - L2Distance(a, b): sqrt(L2Squared(a, b))
//   - DotBatch(queries, keys): one Dot per pair
//   - DotUnrolled, L2SquaredUnrolled: two interleaved accumulators
//   - DotScalar, L2SquaredScalar: the left-to-right reference
//
// # Algorithm
//
// With w lanes, n elements split into epoch = n/w full vectors and
// remain = n%w tail elements:
//  1. The first full vector initializes the accumulator with its per-lane
//     product (or squared difference).
//  2. Every further full vector is multiply-added into the accumulator.
//  3. The accumulator is reduced to one float32 with the strategy's
//     horizontal sum (see package lane for the tree).
//  4. The tail is added on with scalar code.
//
// n == 0 returns 0 and n < w is all tail. Because the vector path adds in a
// different order than the reference, results agree with DotScalar within
// floating-point rounding, not bit for bit.
//
// # Dispatch
//
// Every kernel is instantiated for the scalar, x4 and x8 strategies; builds
// with GOEXPERIMENT=simd on amd64 add the avx and avx2 strategies. The
// widest strategy allowed by lane.Selected is bound at init. Kernels
// returns all of them for conformance testing.
//
// # Example Usage
//
//	import "github.com/ajroetker/go-kernels/hwy/contrib/dot"
//
//	a := []float32{1, 2, 3, 4, 5, 6, 7, 8, 9}
//	b := []float32{1, 1, 1, 1, 1, 1, 1, 1, 1}
//	dot.Dot(a, b)       // 45
//	dot.L2Squared(a, b) // 204
package dot
