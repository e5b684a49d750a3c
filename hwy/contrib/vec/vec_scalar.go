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

import "github.com/ajroetker/go-kernels/hwy"

// MulToScalar sets dst[i] = a[i] * b[i] for i < min(len(a), len(b)).
func MulToScalar(dst, a, b []float32) {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		dst[i] = a[i] * b[i]
	}
}

// Float32ToBF16Scalar narrows each src[i] into dst[i].
func Float32ToBF16Scalar(dst []hwy.BFloat16, src []float32) {
	for i, f := range src {
		dst[i] = hwy.Float32ToBFloat16(f)
	}
}

// BF16ToFloat32Scalar widens each src[i] into dst[i].
func BF16ToFloat32Scalar(dst []float32, src []hwy.BFloat16) {
	for i, b := range src {
		dst[i] = hwy.BFloat16ToFloat32(b)
	}
}

// AddBF16Scalar sets dst[i] = bf16(f32(a[i]) + f32(b[i])).
func AddBF16Scalar(dst, a, b []hwy.BFloat16) {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		dst[i] = hwy.AddBFloat16(a[i], b[i])
	}
}
