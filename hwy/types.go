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

// Package hwy holds the pieces shared by every kernel package: runtime CPU
// dispatch, the BFloat16 scalar type, the epoch/remainder split used by all
// vector loops, and the bounds-carrying views kernels check their buffers
// against.
//
// The kernels themselves live under hwy/contrib and are written once as
// generics over a lane strategy (see hwy/lane), then instantiated for the
// scalar, 4-wide and 8-wide targets.
//
//	import "github.com/ajroetker/go-kernels/hwy/contrib/dot"
//
//	a := []float32{1, 2, 3, 4, 5, 6, 7, 8, 9}
//	b := []float32{1, 1, 1, 1, 1, 1, 1, 1, 1}
//	dot.Dot(a, b) // 45
package hwy

// Floats is a constraint for floating-point types.
type Floats interface {
	~float32 | ~float64
}
