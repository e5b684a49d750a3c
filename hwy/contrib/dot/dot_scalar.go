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

// DotScalar is the reference dot product: a single accumulator added left
// to right over min(len(a), len(b)) elements. Each product is rounded to
// float32 before the add so the compiler cannot contract it into an FMA.
func DotScalar(a, b []float32) float32 {
	n := min(len(a), len(b))
	var sum float32
	for i := 0; i < n; i++ {
		sum += float32(a[i] * b[i])
	}
	return sum
}

// L2SquaredScalar is the reference squared Euclidean distance.
func L2SquaredScalar(a, b []float32) float32 {
	n := min(len(a), len(b))
	var sum float32
	for i := 0; i < n; i++ {
		diff := a[i] - b[i]
		sum += float32(diff * diff)
	}
	return sum
}
