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

// MatVecScalar is the reference matrix-vector product: result[i] is the
// left-to-right sum of m[i*cols+j] * v[j]. Shapes are not checked.
func MatVecScalar(m []float32, rows, cols int, v, result []float32) {
	for i := range rows {
		row := m[i*cols : (i+1)*cols]
		var sum float32
		for j, x := range row {
			sum += float32(x * v[j])
		}
		result[i] = sum
	}
}
