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

import (
	"github.com/ajroetker/go-kernels/hwy"
	"github.com/ajroetker/go-kernels/hwy/lane"
)

// maxLanes bounds the staging buffers used to promote bf16 lanes.
const maxLanes = 8

// BaseMulTo sets dst[i] = a[i] * b[i] for i < min(len(a), len(b)) using the
// lane strategy ops. dst must hold at least that many elements.
func BaseMulTo[V any, O lane.Ops[V]](ops O, dst, a, b []float32) {
	n := min(len(a), len(b))
	w := ops.Lanes()
	epoch, remain := hwy.Split(n, w)

	for i := range epoch {
		off := i * w
		ops.Store(ops.Mul(ops.Load(a[off:]), ops.Load(b[off:])), dst[off:])
	}
	for i := epoch * w; i < epoch*w+remain; i++ {
		dst[i] = a[i] * b[i]
	}
}

// BaseAddBF16 sets dst[i] = bf16(f32(a[i]) + f32(b[i])) for
// i < min(len(a), len(b)). Each full vector of bf16 lanes is promoted into
// a float32 staging buffer, added with ops and demoted with round to
// nearest even, which matches AddBF16Scalar bit for bit.
func BaseAddBF16[V any, O lane.Ops[V]](ops O, dst, a, b []hwy.BFloat16) {
	n := min(len(a), len(b))
	w := ops.Lanes()
	if w > maxLanes {
		panic("vec: strategy wider than the bf16 staging buffer")
	}
	epoch, remain := hwy.Split(n, w)

	var fa, fb, sum [maxLanes]float32
	for i := range epoch {
		off := i * w
		promote(fa[:w], a[off:off+w])
		promote(fb[:w], b[off:off+w])
		ops.Store(ops.Add(ops.Load(fa[:]), ops.Load(fb[:])), sum[:])
		demote(dst[off:off+w], sum[:w])
	}
	for i := epoch * w; i < epoch*w+remain; i++ {
		dst[i] = hwy.AddBFloat16(a[i], b[i])
	}
}

func promote(dst []float32, src []hwy.BFloat16) {
	for i := range dst {
		dst[i] = hwy.BFloat16ToFloat32(src[i])
	}
}

func demote(dst []hwy.BFloat16, src []float32) {
	for i := range dst {
		dst[i] = hwy.Float32ToBFloat16(src[i])
	}
}

// float32ToBF16Blocked narrows src into dst eight lanes per block. The
// fixed-size array views let the compiler drop per-element bounds checks
// and unroll the block.
func float32ToBF16Blocked(dst []hwy.BFloat16, src []float32) {
	hwy.ProcessWithTail(len(src), maxLanes,
		func(off int) {
			s := (*[maxLanes]float32)(src[off:])
			d := (*[maxLanes]hwy.BFloat16)(dst[off:])
			for j := range s {
				d[j] = hwy.Float32ToBFloat16(s[j])
			}
		},
		func(off, count int) {
			for i := off; i < off+count; i++ {
				dst[i] = hwy.Float32ToBFloat16(src[i])
			}
		})
}

// bf16ToFloat32Blocked widens src into dst eight lanes per block.
func bf16ToFloat32Blocked(dst []float32, src []hwy.BFloat16) {
	hwy.ProcessWithTail(len(src), maxLanes,
		func(off int) {
			s := (*[maxLanes]hwy.BFloat16)(src[off:])
			d := (*[maxLanes]float32)(dst[off:])
			for j := range s {
				d[j] = hwy.BFloat16ToFloat32(s[j])
			}
		},
		func(off, count int) {
			for i := off; i < off+count; i++ {
				dst[i] = hwy.BFloat16ToFloat32(src[i])
			}
		})
}
