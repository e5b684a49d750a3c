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

// MatMulScalar is the reference product. Each cell is accumulated over p in
// order from zero, and each product is rounded to float32 before the add.
//
// Preconditions: len(a) >= m*k, len(b) >= k*n, len(c) >= m*n. They are not
// checked here; violating them reads or writes out of range.
func MatMulScalar(a, b, c []float32, m, n, k int) {
	for i := range m {
		for j := range n {
			var sum float32
			for p := range k {
				sum += float32(a[i*k+p] * b[p*n+j])
			}
			c[i*n+j] = sum
		}
	}
}
