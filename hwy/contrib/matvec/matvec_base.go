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

package matvec

import (
	"fmt"

	"github.com/ajroetker/go-kernels/hwy"
	"github.com/ajroetker/go-kernels/hwy/contrib/dot"
	"github.com/ajroetker/go-kernels/hwy/lane"
)

func checkShapes(m []float32, rows, cols int, v, result []float32) {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("matvec: negative dimension rows=%d cols=%d", rows, cols))
	}
	hwy.CheckLen("matvec", "m", len(m), rows*cols)
	hwy.CheckLen("matvec", "v", len(v), cols)
	hwy.CheckLen("matvec", "result", len(result), rows)
}

// BaseMatVec computes result = M * v with one dot reduction per row of M,
// so each result[i] equals dot.BaseDot over that row bit for bit.
//
// Panics with a *hwy.BoundsError if:
//   - len(m) < rows * cols
//   - len(v) < cols
//   - len(result) < rows
func BaseMatVec[V any, O lane.Ops[V]](ops O, m []float32, rows, cols int, v, result []float32) {
	checkShapes(m, rows, cols, v, result)
	v = v[:cols]
	for i := range rows {
		result[i] = dot.BaseDot[V](ops, m[i*cols:(i+1)*cols], v)
	}
}
