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

package lane

// X4 is a portable four-lane strategy over [4]float32. The compiler keeps
// small arrays in registers and unrolls the fixed-trip loops, which is
// enough to get 128-bit code on targets without archsimd.
type X4 struct{}

func (X4) Name() string { return "x4" }
func (X4) Lanes() int { return 4 }

func (X4) Zero() [4]float32 { return [4]float32{} }

func (X4) Set(x float32) [4]float32 { return [4]float32{x, x, x, x} }

func (X4) Load(src []float32) [4]float32 { return [4]float32(src[:4]) }

func (X4) Gather(src []float32, stride int) [4]float32 {
	_ = src[3*stride]
	return [4]float32{src[0], src[stride], src[2*stride], src[3*stride]}
}

func (X4) Store(v [4]float32, dst []float32) { copy(dst[:4], v[:]) }

func (X4) Mul(a, b [4]float32) [4]float32 {
	return [4]float32{a[0] * b[0], a[1] * b[1], a[2] * b[2], a[3] * b[3]}
}

func (X4) Add(a, b [4]float32) [4]float32 {
	return [4]float32{a[0] + b[0], a[1] + b[1], a[2] + b[2], a[3] + b[3]}
}

func (X4) Sub(a, b [4]float32) [4]float32 {
	return [4]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2], a[3] - b[3]}
}

func (X4) MulAdd(a, b, acc [4]float32) [4]float32 {
	return [4]float32{
		a[0]*b[0] + acc[0],
		a[1]*b[1] + acc[1],
		a[2]*b[2] + acc[2],
		a[3]*b[3] + acc[3],
	}
}

// ReduceSum computes (v0+v2) + (v1+v3).
func (X4) ReduceSum(v [4]float32) float32 {
	return reduce4(v[0], v[1], v[2], v[3])
}

// X8 is a portable eight-lane strategy over [8]float32.
type X8 struct{}

func (X8) Name() string { return "x8" }
func (X8) Lanes() int { return 8 }

func (X8) Zero() [8]float32 { return [8]float32{} }

func (X8) Set(x float32) [8]float32 { return [8]float32{x, x, x, x, x, x, x, x} }

func (X8) Load(src []float32) [8]float32 { return [8]float32(src[:8]) }

func (X8) Gather(src []float32, stride int) [8]float32 {
	_ = src[7*stride]
	var v [8]float32
	for i := range v {
		v[i] = src[i*stride]
	}
	return v
}

func (X8) Store(v [8]float32, dst []float32) { copy(dst[:8], v[:]) }

func (X8) Mul(a, b [8]float32) [8]float32 {
	for i := range a {
		a[i] *= b[i]
	}
	return a
}

func (X8) Add(a, b [8]float32) [8]float32 {
	for i := range a {
		a[i] += b[i]
	}
	return a
}

func (X8) Sub(a, b [8]float32) [8]float32 {
	for i := range a {
		a[i] -= b[i]
	}
	return a
}

func (X8) MulAdd(a, b, acc [8]float32) [8]float32 {
	for i := range acc {
		acc[i] += a[i] * b[i]
	}
	return acc
}

// ReduceSum folds the high four lanes onto the low four, then reduces
// those as X4 does.
func (X8) ReduceSum(v [8]float32) float32 {
	return reduce4(v[0]+v[4], v[1]+v[5], v[2]+v[6], v[3]+v[7])
}

// reduce4 is the last two levels of every reduction tree: movehl then
// shuffle-and-add.
func reduce4(t0, t1, t2, t3 float32) float32 {
	return (t0 + t2) + (t1 + t3)
}
