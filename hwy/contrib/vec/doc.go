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

// Package vec provides elementwise kernels: lane-wise multiply into a
// destination, and bfloat16 conversion and addition.
//
// None of these reduce across lanes, so every strategy produces the same
// bits as the scalar references (MulToScalar, AddBF16Scalar, ...). The
// vector body covers epoch = n/w full vectors and a scalar loop finishes
// the remain = n%w tail, exactly as in package dot without the reduction.
//
// bfloat16 narrowing rounds to nearest even. AddBF16 widens both operands,
// adds in float32 and narrows the sum, so a + b is rounded twice relative to
// exact arithmetic and bf16(f32(x)) is not x in general. That loss is the
// contract of the format.
package vec
