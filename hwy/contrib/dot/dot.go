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

package dot

import (
	"math"

	"github.com/ajroetker/go-kernels/hwy"
	"github.com/ajroetker/go-kernels/hwy/lane"
)

// Impl is the set of reduction kernels instantiated for one lane strategy.
type Impl struct {
	Dot               func(a, b []float32) float32
	L2Squared         func(a, b []float32) float32
	DotUnrolled       func(a, b []float32) float32
	L2SquaredUnrolled func(a, b []float32) float32
}

var (
	impls   lane.Table[Impl]
	current lane.Kernel[Impl]
)

func init() {
	register[float32](lane.Scalar{})
	register[[4]float32](lane.X4{})
	register[[8]float32](lane.X8{})
	bind()
}

// register instantiates every kernel for ops.
func register[V any, O lane.Ops[V]](ops O) {
	impls.Register(lane.Width(ops.Lanes()), ops.Name(), Impl{
		Dot:               func(a, b []float32) float32 { return BaseDot[V](ops, a, b) },
		L2Squared:         func(a, b []float32) float32 { return BaseL2Squared[V](ops, a, b) },
		DotUnrolled:       func(a, b []float32) float32 { return BaseDotUnrolled[V](ops, a, b) },
		L2SquaredUnrolled: func(a, b []float32) float32 { return BaseL2SquaredUnrolled[V](ops, a, b) },
	})
}

// bind points the exported functions at the preferred strategy.
func bind() {
	current = impls.Select()
}

// Kernels returns every instantiation, narrowest first.
func Kernels() []lane.Kernel[Impl] {
	return impls.All()
}

// Strategy names the lane strategy the exported functions dispatch to.
func Strategy() string {
	return current.Name
}

// Dot computes the dot product of two float32 slices.
// The result is the sum of element-wise products: Σ(a[i] * b[i]).
//
// If the slices have different lengths, the computation uses the minimum length.
// Returns 0 if either slice is empty.
//
// Example:
//
//	a := []float32{1, 2, 3}
//	b := []float32{4, 5, 6}
//	result := Dot(a, b)  // 1*4 + 2*5 + 3*6 = 32
func Dot(a, b []float32) float32 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	return current.Fn.Dot(a, b)
}

// DotN computes the dot product of the first n elements of a and b.
// It panics with a *hwy.BoundsError if either slice is shorter than n.
func DotN(a, b []float32, n int) float32 {
	hwy.CheckLen("dot", "a", len(a), n)
	hwy.CheckLen("dot", "b", len(b), n)
	return Dot(a[:n], b[:n])
}

// DotUnrolled is Dot with two interleaved accumulators.
func DotUnrolled(a, b []float32) float32 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	return current.Fn.DotUnrolled(a, b)
}

// L2Squared computes the squared Euclidean distance Σ (a[i]-b[i])².
//
// If the slices have different lengths, the computation uses the minimum length.
// Returns 0 if either slice is empty.
func L2Squared(a, b []float32) float32 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	return current.Fn.L2Squared(a, b)
}

// L2SquaredN computes the squared distance over the first n elements.
// It panics with a *hwy.BoundsError if either slice is shorter than n.
func L2SquaredN(a, b []float32, n int) float32 {
	hwy.CheckLen("l2", "a", len(a), n)
	hwy.CheckLen("l2", "b", len(b), n)
	return L2Squared(a[:n], b[:n])
}

// L2SquaredUnrolled is L2Squared with two interleaved accumulators.
func L2SquaredUnrolled(a, b []float32) float32 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	return current.Fn.L2SquaredUnrolled(a, b)
}

// L2Distance returns the Euclidean distance between a and b.
func L2Distance(a, b []float32) float32 {
	return float32(math.Sqrt(float64(L2Squared(a, b))))
}

// DotBatch computes multiple dot products efficiently.
// For each i, computes the dot product of queries[i] and keys[i].
//
// This is useful for batch operations in ML applications (e.g., attention mechanisms).
// Returns a slice of results with length min(len(queries), len(keys)).
//
// Example:
//
//	queries := [][]float32{{1, 2}, {3, 4}}
//	keys := [][]float32{{5, 6}, {7, 8}}
//	results := DotBatch(queries, keys)  // [17, 53]
func DotBatch(queries, keys [][]float32) []float32 {
	n := min(len(queries), len(keys))
	results := make([]float32, n)

	for i := 0; i < n; i++ {
		results[i] = Dot(queries[i], keys[i])
	}

	return results
}
