//go:build amd64 && goexperiment.simd

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

import "simd/archsimd"

// AVX2 is the eight-lane strategy over archsimd.Float32x8.
//
// MulAdd issues VMULPS then VADDPS rather than VFMADD so the rounding of
// each product matches the X8 strategy and the scalar reference.
type AVX2 struct{}

func (AVX2) Name() string { return "avx2" }
func (AVX2) Lanes() int { return 8 }

func (AVX2) Zero() archsimd.Float32x8 { return archsimd.BroadcastFloat32x8(0) }

func (AVX2) Set(x float32) archsimd.Float32x8 { return archsimd.BroadcastFloat32x8(x) }

func (AVX2) Load(src []float32) archsimd.Float32x8 { return archsimd.LoadFloat32x8Slice(src) }

func (AVX2) Gather(src []float32, stride int) archsimd.Float32x8 {
	_ = src[7*stride]
	var buf [8]float32
	for i := range buf {
		buf[i] = src[i*stride]
	}
	return archsimd.LoadFloat32x8Slice(buf[:])
}

func (AVX2) Store(v archsimd.Float32x8, dst []float32) { v.StoreSlice(dst) }

func (AVX2) Mul(a, b archsimd.Float32x8) archsimd.Float32x8 { return a.Mul(b) }

func (AVX2) Add(a, b archsimd.Float32x8) archsimd.Float32x8 { return a.Add(b) }

func (AVX2) Sub(a, b archsimd.Float32x8) archsimd.Float32x8 { return a.Sub(b) }

func (AVX2) MulAdd(a, b, acc archsimd.Float32x8) archsimd.Float32x8 {
	return a.Mul(b).Add(acc)
}

// ReduceSum adds the high 128 bits onto the low 128 bits, then finishes
// with the four-lane tree.
func (AVX2) ReduceSum(v archsimd.Float32x8) float32 {
	t := v.GetLo().Add(v.GetHi())
	return reduce4(t.GetElem(0), t.GetElem(1), t.GetElem(2), t.GetElem(3))
}

// AVX is the four-lane strategy over archsimd.Float32x4. archsimd encodes
// 128-bit operations with VEX prefixes, so it needs AVX rather than SSE2.
type AVX struct{}

func (AVX) Name() string { return "avx" }
func (AVX) Lanes() int { return 4 }

func (AVX) Zero() archsimd.Float32x4 { return archsimd.Float32x4{} }

func (AVX) Set(x float32) archsimd.Float32x4 {
	buf := [4]float32{x, x, x, x}
	return archsimd.LoadFloat32x4Slice(buf[:])
}

func (AVX) Load(src []float32) archsimd.Float32x4 { return archsimd.LoadFloat32x4Slice(src) }

func (AVX) Gather(src []float32, stride int) archsimd.Float32x4 {
	_ = src[3*stride]
	buf := [4]float32{src[0], src[stride], src[2*stride], src[3*stride]}
	return archsimd.LoadFloat32x4Slice(buf[:])
}

func (AVX) Store(v archsimd.Float32x4, dst []float32) { v.StoreSlice(dst) }

func (AVX) Mul(a, b archsimd.Float32x4) archsimd.Float32x4 { return a.Mul(b) }

func (AVX) Add(a, b archsimd.Float32x4) archsimd.Float32x4 { return a.Add(b) }

func (AVX) Sub(a, b archsimd.Float32x4) archsimd.Float32x4 { return a.Sub(b) }

func (AVX) MulAdd(a, b, acc archsimd.Float32x4) archsimd.Float32x4 {
	return a.Mul(b).Add(acc)
}

func (AVX) ReduceSum(v archsimd.Float32x4) float32 {
	return reduce4(v.GetElem(0), v.GetElem(1), v.GetElem(2), v.GetElem(3))
}

// HasAVX2 reports whether the AVX2 strategy can run on this CPU.
func HasAVX2() bool { return archsimd.X86.AVX2() }

// HasAVX reports whether the AVX strategy can run on this CPU.
func HasAVX() bool { return archsimd.X86.AVX() }
