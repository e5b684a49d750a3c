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

// Package matmul multiplies row-major float32 matrices.
//
// All functions take (a, b, c, m, n, k) and compute C = A * B where
//   - A is M x K (row-major)
//   - B is K x N (row-major)
//   - C is M x N (row-major)
//
// In the d1/d2/d3 naming of a (d1 x d2) * (d2 x d3) product, m = d1,
// k = d2 and n = d3.
//
// Two kernel shapes are provided, each instantiated for every lane strategy:
//
//   - InnerProductMatMul reduces each cell C[i,j] as the dot product of row i
//     of A and column j of B. The row is contiguous and vector-loaded; the
//     column is strided by n and gathered. The reduction follows package dot
//     exactly, so every cell equals dot.Dot of the same row and column.
//   - MatMul broadcasts A[i,p] against contiguous strips of row p of B and
//     keeps one accumulator per strip across the K loop, blocked by
//     CacheParams. The K loop runs in order for every cell, so the result
//     matches MatMulScalar up to multiply-add contraction.
//
// MatMulView takes hwy.Matrix views and reports shape errors instead of
// panicking. ParallelMatMul splits rows across a workerpool.Pool; the
// kernels themselves never start goroutines.
package matmul
