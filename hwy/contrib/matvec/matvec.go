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

// Package matvec computes matrix-vector products, the single-column case of
// matmul, as one dot reduction per matrix row.
package matvec

import (
	"fmt"

	"github.com/ajroetker/go-kernels/hwy"
	"github.com/ajroetker/go-kernels/hwy/lane"
)

// Kernel is the signature of a matrix-vector entry point.
type Kernel func(m []float32, rows, cols int, v, result []float32)

var (
	impls   lane.Table[Kernel]
	current lane.Kernel[Kernel]
)

func init() {
	register[float32](lane.Scalar{})
	register[[4]float32](lane.X4{})
	register[[8]float32](lane.X8{})
	bind()
}

func register[V any, O lane.Ops[V]](ops O) {
	impls.Register(lane.Width(ops.Lanes()), ops.Name(), func(m []float32, rows, cols int, v, result []float32) {
		BaseMatVec[V](ops, m, rows, cols, v, result)
	})
}

func bind() {
	current = impls.Select()
}

// Kernels returns every instantiation, narrowest first.
func Kernels() []lane.Kernel[Kernel] {
	return impls.All()
}

// Strategy names the lane strategy MatVec dispatches to.
func Strategy() string {
	return current.Name
}

// MatVec computes the matrix-vector product result = M * v, where M is a
// row-major rows x cols matrix.
//
// Example:
//
//	// 2x3 matrix:
//	//   [1 2 3]
//	//   [4 5 6]
//	m := []float32{1, 2, 3, 4, 5, 6}
//	v := []float32{1, 0, 1}
//	result := make([]float32, 2)
//	MatVec(m, 2, 3, v, result)  // result = [4, 10]
//
// It panics with a *hwy.BoundsError if len(m) < rows*cols, len(v) < cols
// or len(result) < rows.
func MatVec(m []float32, rows, cols int, v, result []float32) {
	current.Fn(m, rows, cols, v, result)
}

// MatVecView computes result = m * v over a matrix view. It returns an
// error wrapping hwy.ErrShape when v or result do not match m's shape.
func MatVecView(m hwy.Matrix[float32], v, result []float32) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("matvec: m: %w", err)
	}
	if len(v) != m.Cols {
		return fmt.Errorf("%w: v has %d elements, m has %d columns", hwy.ErrShape, len(v), m.Cols)
	}
	if len(result) != m.Rows {
		return fmt.Errorf("%w: result has %d elements, m has %d rows", hwy.ErrShape, len(result), m.Rows)
	}
	MatVec(m.Data, m.Rows, m.Cols, v, result)
	return nil
}
