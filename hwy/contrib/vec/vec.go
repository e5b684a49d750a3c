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

package vec

import (
	"github.com/ajroetker/go-kernels/hwy"
	"github.com/ajroetker/go-kernels/hwy/lane"
)

// Impl is the set of elementwise kernels instantiated for one strategy.
type Impl struct {
	MulTo   func(dst, a, b []float32)
	AddBF16 func(dst, a, b []hwy.BFloat16)
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

func register[V any, O lane.Ops[V]](ops O) {
	impls.Register(lane.Width(ops.Lanes()), ops.Name(), Impl{
		MulTo:   func(dst, a, b []float32) { BaseMulTo[V](ops, dst, a, b) },
		AddBF16: func(dst, a, b []hwy.BFloat16) { BaseAddBF16[V](ops, dst, a, b) },
	})
}

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

// MulTo sets dst[i] = a[i] * b[i] for i < min(len(a), len(b)).
// It panics with a *hwy.BoundsError if dst is shorter than that.
func MulTo(dst, a, b []float32) {
	n := min(len(a), len(b))
	hwy.CheckLen("multo", "dst", len(dst), n)
	current.Fn.MulTo(dst[:n], a[:n], b[:n])
}

// MulToN multiplies the first n lanes of a and b into dst.
func MulToN(dst, a, b []float32, n int) {
	hwy.CheckLen("multo", "a", len(a), n)
	hwy.CheckLen("multo", "b", len(b), n)
	hwy.CheckLen("multo", "dst", len(dst), n)
	current.Fn.MulTo(dst[:n], a[:n], b[:n])
}

// Float32ToBF16 narrows every element of src into dst with round to
// nearest even. It panics with a *hwy.BoundsError if dst is shorter than src.
func Float32ToBF16(dst []hwy.BFloat16, src []float32) {
	hwy.CheckLen("f32_to_bf16", "dst", len(dst), len(src))
	float32ToBF16Blocked(dst, src)
}

// BF16ToFloat32 widens every element of src into dst. Widening is exact.
// It panics with a *hwy.BoundsError if dst is shorter than src.
func BF16ToFloat32(dst []float32, src []hwy.BFloat16) {
	hwy.CheckLen("bf16_to_f32", "dst", len(dst), len(src))
	bf16ToFloat32Blocked(dst, src)
}

// AddBF16 sets dst[i] = bf16(f32(a[i]) + f32(b[i])) for
// i < min(len(a), len(b)). It panics with a *hwy.BoundsError if dst is
// shorter than that.
func AddBF16(dst, a, b []hwy.BFloat16) {
	n := min(len(a), len(b))
	hwy.CheckLen("bf16_add", "dst", len(dst), n)
	current.Fn.AddBF16(dst[:n], a[:n], b[:n])
}
