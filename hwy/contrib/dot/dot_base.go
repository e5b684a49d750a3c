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
	"github.com/ajroetker/go-kernels/hwy"
	"github.com/ajroetker/go-kernels/hwy/lane"
)

// BaseDot computes Σ a[i]*b[i] over min(len(a), len(b)) elements using the
// lane strategy ops. See the package documentation for the loop structure.
func BaseDot[V any, O lane.Ops[V]](ops O, a, b []float32) float32 {
	n := min(len(a), len(b))
	w := ops.Lanes()
	epoch, remain := hwy.Split(n, w)

	acc := ops.Zero()
	if epoch > 0 {
		acc = ops.Mul(ops.Load(a), ops.Load(b))
	}
	for i := 1; i < epoch; i++ {
		off := i * w
		acc = ops.MulAdd(ops.Load(a[off:]), ops.Load(b[off:]), acc)
	}
	sum := ops.ReduceSum(acc)

	for i := epoch * w; i < epoch*w+remain; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

// BaseL2Squared computes Σ (a[i]-b[i])² over min(len(a), len(b)) elements.
func BaseL2Squared[V any, O lane.Ops[V]](ops O, a, b []float32) float32 {
	n := min(len(a), len(b))
	w := ops.Lanes()
	epoch, remain := hwy.Split(n, w)

	acc := ops.Zero()
	if epoch > 0 {
		d := ops.Sub(ops.Load(a), ops.Load(b))
		acc = ops.Mul(d, d)
	}
	for i := 1; i < epoch; i++ {
		off := i * w
		d := ops.Sub(ops.Load(a[off:]), ops.Load(b[off:]))
		acc = ops.MulAdd(d, d, acc)
	}
	sum := ops.ReduceSum(acc)

	for i := epoch * w; i < epoch*w+remain; i++ {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return sum
}

// BaseDotUnrolled is BaseDot with two accumulators fed alternate vectors,
// combined lane-wise before the horizontal sum. It hides multiply-add
// latency on long inputs; the sum differs from BaseDot only by rounding.
func BaseDotUnrolled[V any, O lane.Ops[V]](ops O, a, b []float32) float32 {
	n := min(len(a), len(b))
	w := ops.Lanes()
	epoch, remain := hwy.Split(n, w)

	acc0, acc1 := ops.Zero(), ops.Zero()
	i := 0
	for ; i+2 <= epoch; i += 2 {
		off := i * w
		acc0 = ops.MulAdd(ops.Load(a[off:]), ops.Load(b[off:]), acc0)
		acc1 = ops.MulAdd(ops.Load(a[off+w:]), ops.Load(b[off+w:]), acc1)
	}
	if i < epoch {
		off := i * w
		acc0 = ops.MulAdd(ops.Load(a[off:]), ops.Load(b[off:]), acc0)
	}
	sum := ops.ReduceSum(ops.Add(acc0, acc1))

	for j := epoch * w; j < epoch*w+remain; j++ {
		sum += a[j] * b[j]
	}
	return sum
}

// BaseL2SquaredUnrolled is BaseL2Squared with two interleaved accumulators.
func BaseL2SquaredUnrolled[V any, O lane.Ops[V]](ops O, a, b []float32) float32 {
	n := min(len(a), len(b))
	w := ops.Lanes()
	epoch, remain := hwy.Split(n, w)

	acc0, acc1 := ops.Zero(), ops.Zero()
	i := 0
	for ; i+2 <= epoch; i += 2 {
		off := i * w
		d0 := ops.Sub(ops.Load(a[off:]), ops.Load(b[off:]))
		d1 := ops.Sub(ops.Load(a[off+w:]), ops.Load(b[off+w:]))
		acc0 = ops.MulAdd(d0, d0, acc0)
		acc1 = ops.MulAdd(d1, d1, acc1)
	}
	if i < epoch {
		off := i * w
		d := ops.Sub(ops.Load(a[off:]), ops.Load(b[off:]))
		acc0 = ops.MulAdd(d, d, acc0)
	}
	sum := ops.ReduceSum(ops.Add(acc0, acc1))

	for j := epoch * w; j < epoch*w+remain; j++ {
		diff := a[j] - b[j]
		sum += diff * diff
	}
	return sum
}
