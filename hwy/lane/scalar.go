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

// Scalar is the one-lane strategy. Kernels instantiated with it reduce to
// the plain loop, so it doubles as the fallback on every architecture.
type Scalar struct{}

func (Scalar) Name() string { return "scalar" }
func (Scalar) Lanes() int { return 1 }
func (Scalar) Zero() float32 { return 0 }
func (Scalar) Set(x float32) float32 { return x }
func (Scalar) Load(src []float32) float32 { return src[0] }
func (Scalar) Gather(src []float32, _ int) float32 { return src[0] }
func (Scalar) Store(v float32, dst []float32) { dst[0] = v }
func (Scalar) Mul(a, b float32) float32 { return a * b }
func (Scalar) Add(a, b float32) float32 { return a + b }
func (Scalar) Sub(a, b float32) float32 { return a - b }
func (Scalar) MulAdd(a, b, acc float32) float32 { return a*b + acc }
func (Scalar) ReduceSum(v float32) float32 { return v }
