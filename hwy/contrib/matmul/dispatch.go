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

// Kernel is the signature shared by every matmul entry point.
type Kernel func(a, b, c []float32, m, n, k int)

// Impl is the pair of kernels instantiated for one lane strategy.
type Impl struct {
	Blocked      Kernel
	InnerProduct Kernel
}

var (
	impls   lane.Table[Impl]
	current lane.Kernel[Impl]

	// cacheParams is read by every blocked kernel call.
	cacheParams = DefaultCacheParams()
)

func init() {
	register[float32](lane.Scalar{})
	register[[4]float32](lane.X4{})
	register[[8]float32](lane.X8{})
	bind()
}

func register[V any, O lane.Ops[V]](ops O) {
	impls.Register(lane.Width(ops.Lanes()), ops.Name(), Impl{
		Blocked: func(a, b, c []float32, m, n, k int) {
			BaseBlockedMatMul[V](ops, cacheParams, a, b, c, m, n, k)
		},
		InnerProduct: func(a, b, c []float32, m, n, k int) {
			BaseMatMul[V](ops, a, b, c, m, n, k)
		},
	})
}

func bind() {
	current = impls.Select()
	hwy.Logger().Debug("matmul blocking", "kc", cacheParams.Kc, "nc", cacheParams.Nc)
}

// Kernels returns every instantiation, narrowest first.
func Kernels() []lane.Kernel[Impl] {
	return impls.All()
}

// Strategy names the lane strategy the exported functions dispatch to.
func Strategy() string {
	return current.Name
}

// Params returns the blocking parameters in use.
func Params() CacheParams {
	return cacheParams
}

// MatMul computes C = A * B with the cache-blocked broadcast kernel of the
// selected strategy. It panics with a *hwy.BoundsError if len(a) < m*k,
// len(b) < k*n or len(c) < m*n.
func MatMul(a, b, c []float32, m, n, k int) {
	current.Fn.Blocked(a, b, c, m, n, k)
}

// InnerProductMatMul computes C = A * B one row-times-column reduction per
// cell with the selected strategy. Same preconditions as MatMul.
func InnerProductMatMul(a, b, c []float32, m, n, k int) {
	current.Fn.InnerProduct(a, b, c, m, n, k)
}

// MatMulView computes c = a * b over matrix views. It returns an error
// wrapping hwy.ErrShape when the dimensions do not chain, or
// hwy.ErrBufferTooSmall when a view's buffer does not cover its shape.
func MatMulView(a, b, c hwy.Matrix[float32]) error {
	views := []struct {
		name string
		m    hwy.Matrix[float32]
	}{{"a", a}, {"b", b}, {"c", c}}
	for _, v := range views {
		if err := v.m.Validate(); err != nil {
			return fmt.Errorf("matmul: %s: %w", v.name, err)
		}
	}
	if a.Cols != b.Rows {
		return fmt.Errorf("%w: a is %dx%d but b is %dx%d", hwy.ErrShape, a.Rows, a.Cols, b.Rows, b.Cols)
	}
	if c.Rows != a.Rows || c.Cols != b.Cols {
		return fmt.Errorf("%w: c is %dx%d, want %dx%d", hwy.ErrShape, c.Rows, c.Cols, a.Rows, b.Cols)
	}
	MatMul(a.Data, b.Data, c.Data, a.Rows, b.Cols, a.Cols)
	return nil
}
