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

// Package lane defines the vector width strategies the kernel packages are
// written against. A strategy bundles a lane count with the handful of
// primitives a loop needs: load, store, multiply, add, fused multiply-add
// and a horizontal sum with a fixed reduction tree.
//
// Every kernel in hwy/contrib is a generic function over Ops, instantiated
// once per strategy:
//
//	Scalar  1 lane   plain float32, the fallback everywhere
//	X4      4 lanes  portable [4]float32
//	X8      8 lanes  portable [8]float32
//	AVX     4 lanes  archsimd.Float32x4 (amd64, GOEXPERIMENT=simd)
//	AVX2    8 lanes  archsimd.Float32x8 (amd64, GOEXPERIMENT=simd)
//
// The horizontal sum folds the high half onto the low half until one lane is
// left. For eight lanes v0..v7:
//
//	t_i = v_i + v_{i+4}        i = 0..3
//	sum = (t0 + t2) + (t1 + t3)
//
// X8 and AVX2 use the same tree, so they agree bit for bit on the same input
// whenever their multiply-add rounding agrees.
package lane

import (
	"fmt"
	"strconv"

	"github.com/ajroetker/go-kernels/hwy"
)

// Ops is a vector width strategy over float32 lanes held in V.
//
// Load, Gather and Store do not check bounds beyond what slice indexing
// does; kernels check their operands once up front.
type Ops[V any] interface {
	// Name identifies the strategy, e.g. "x8" or "avx2".
	Name() string
	// Lanes is the number of float32 values in V.
	Lanes() int
	// Zero returns the additive identity.
	Zero() V
	// Set broadcasts x to every lane.
	Set(x float32) V
	// Load reads Lanes() contiguous values from src.
	Load(src []float32) V
	// Gather reads src[0], src[stride], ..., src[(Lanes()-1)*stride].
	Gather(src []float32, stride int) V
	// Store writes Lanes() values to dst.
	Store(v V, dst []float32)
	Mul(a, b V) V
	Add(a, b V) V
	Sub(a, b V) V
	// MulAdd returns a*b + acc. Whether the product is rounded before the
	// add depends on the strategy.
	MulAdd(a, b, acc V) V
	// ReduceSum adds all lanes with the tree documented on the package.
	ReduceSum(v V) float32
}

// Width is a lane count a kernel can be instantiated for.
type Width int

const (
	W1 Width = 1
	W4 Width = 4
	W8 Width = 8
)

func (w Width) String() string {
	return strconv.Itoa(int(w)) + "-wide"
}

// ParseWidth accepts "1", "4", "8" and "scalar".
func ParseWidth(s string) (Width, error) {
	switch s {
	case "1", "scalar":
		return W1, nil
	case "4":
		return W4, nil
	case "8":
		return W8, nil
	}
	return 0, fmt.Errorf("lane: invalid width %q (want 1, 4 or 8)", s)
}

// Selected returns the width kernels dispatch to on this machine: the
// detected register width in float32 lanes, capped at 8, or the HWY_LANES
// value when it is set. HWY_NO_SIMD selects W1 unless HWY_LANES overrides it.
func Selected() Width {
	if n := hwy.LanesEnv(); n > 0 {
		return Width(n)
	}
	if hwy.CurrentLevel() == hwy.DispatchScalar {
		return W1
	}
	return widthForLanes(hwy.MaxLanes[float32]())
}

// widthForLanes maps a register's float32 lane count to the widest
// strategy width that fits in it.
func widthForLanes(lanes int) Width {
	switch {
	case lanes >= 8:
		return W8
	case lanes >= 4:
		return W4
	default:
		return W1
	}
}
