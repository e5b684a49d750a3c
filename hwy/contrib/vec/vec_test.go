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
	"math"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-kernels/hwy"
)

func sizesFor(w int) []int {
	sizes := []int{0, 1, 2 * w, 2*w + 1, 17, 64, 1000}
	if w > 1 {
		sizes = append(sizes, w-1, w, w+1)
	}
	return sizes
}

func randomFloats(rng *rand.Rand, n int, scale float32) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = (rng.Float32()*2 - 1) * scale
	}
	return out
}

func randomBF16(rng *rand.Rand, n int) []hwy.BFloat16 {
	out := make([]hwy.BFloat16, n)
	for i := range out {
		out[i] = hwy.Float32ToBFloat16((rng.Float32()*2 - 1) * 1000)
	}
	return out
}

func TestMulToMatchesScalar(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 12))
	for _, k := range Kernels() {
		t.Run(k.Name, func(t *testing.T) {
			for _, n := range sizesFor(int(k.Width)) {
				a, b := randomFloats(rng, n, 10), randomFloats(rng, n, 10)
				want := make([]float32, n)
				got := make([]float32, n)
				MulToScalar(want, a, b)
				k.Fn.MulTo(got, a, b)
				if diff := cmp.Diff(want, got); diff != "" {
					t.Errorf("n=%d mismatch (-scalar +%s):\n%s", n, k.Name, diff)
				}
			}
		})
	}
}

func TestMulTo(t *testing.T) {
	a := []float32{1, 2, 3, 4, 5, 6, 7, 8, 9}
	b := []float32{9, 8, 7, 6, 5, 4, 3, 2, 1}
	dst := make([]float32, 9)
	MulTo(dst, a, b)
	assert.Equal(t, []float32{9, 16, 21, 24, 25, 24, 21, 16, 9}, dst)

	// Only the first n lanes are written.
	dst = []float32{-1, -1, -1, -1}
	MulToN(dst, a, b, 2)
	assert.Equal(t, []float32{9, 16, -1, -1}, dst)

	assert.PanicsWithError(t, "multo: dst has 4 elements, need 9", func() { MulTo(dst, a, b) })
	assert.PanicsWithError(t, "multo: a has 9 elements, need 10", func() { MulToN(dst, a, b, 10) })
}

func TestAddBF16BitExact(t *testing.T) {
	rng := rand.New(rand.NewPCG(13, 14))
	for _, k := range Kernels() {
		t.Run(k.Name, func(t *testing.T) {
			for _, n := range sizesFor(int(k.Width)) {
				a, b := randomBF16(rng, n), randomBF16(rng, n)
				want := make([]hwy.BFloat16, n)
				got := make([]hwy.BFloat16, n)
				AddBF16Scalar(want, a, b)
				k.Fn.AddBF16(got, a, b)
				require.Equal(t, want, got, "n=%d", n)
			}
		})
	}
}

func TestAddBF16SpecialValues(t *testing.T) {
	a := []hwy.BFloat16{hwy.BFloat16Inf, hwy.BFloat16One, hwy.BFloat16MaxValue, hwy.BFloat16NaN,
		hwy.BFloat16NegZero, hwy.BFloat16One, hwy.BFloat16Inf, hwy.BFloat16One, hwy.BFloat16NegOne}
	b := []hwy.BFloat16{hwy.BFloat16One, hwy.BFloat16NegOne, hwy.BFloat16MaxValue, hwy.BFloat16One,
		hwy.BFloat16NegZero, hwy.BFloat16One, hwy.BFloat16NegInf, hwy.BFloat16Zero, hwy.BFloat16NegOne}
	got := make([]hwy.BFloat16, len(a))
	AddBF16(got, a, b)

	assert.Equal(t, hwy.BFloat16Inf, got[0])
	assert.True(t, got[1].IsZero())
	assert.Equal(t, hwy.BFloat16Inf, got[2], "overflow rounds to infinity")
	assert.True(t, got[3].IsNaN())
	assert.Equal(t, hwy.BFloat16NegZero, got[4])
	assert.Equal(t, float32(2), got[5].Float32())
	assert.True(t, got[6].IsNaN(), "inf + -inf")
	assert.Equal(t, hwy.BFloat16One, got[7])
	assert.Equal(t, float32(-2), got[8].Float32())
}

func TestBF16RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(15, 16))
	src := randomFloats(rng, 1001, 1e6)
	src[0] = 0
	src[1] = float32(math.Inf(-1))

	bf := make([]hwy.BFloat16, len(src))
	back := make([]float32, len(src))
	Float32ToBF16(bf, src)
	BF16ToFloat32(back, bf)

	want := make([]hwy.BFloat16, len(src))
	Float32ToBF16Scalar(want, src)
	require.Equal(t, want, bf)

	inexact := 0
	for i, x := range src {
		if back[i] != x {
			inexact++
		}
		if math.IsInf(float64(x), 0) || x == 0 {
			assert.Equal(t, x, back[i])
			continue
		}
		rel := math.Abs(float64(back[i]-x)) / math.Abs(float64(x))
		assert.LessOrEqual(t, rel, hwy.BFloat16Epsilon/2, "element %d: %v -> %v", i, x, back[i])
	}
	// Random float32 values almost never fit in 8 significant bits.
	assert.Positive(t, inexact)

	// Widening is exact: a second trip through bf16 changes nothing.
	again := make([]hwy.BFloat16, len(back))
	Float32ToBF16(again, back)
	assert.Equal(t, bf, again)

	widened := make([]float32, len(bf))
	BF16ToFloat32Scalar(widened, bf)
	assert.Equal(t, back, widened)
}

func TestConversionsAtBlockBoundaries(t *testing.T) {
	rng := rand.New(rand.NewPCG(17, 18))
	for _, n := range []int{0, 1, maxLanes - 1, maxLanes, maxLanes + 1, 2 * maxLanes, 2*maxLanes + 3} {
		src := randomFloats(rng, n, 100)
		got := make([]hwy.BFloat16, n)
		want := make([]hwy.BFloat16, n)
		Float32ToBF16(got, src)
		Float32ToBF16Scalar(want, src)
		assert.Equal(t, want, got, "narrow n=%d", n)

		wide := make([]float32, n)
		wantWide := make([]float32, n)
		BF16ToFloat32(wide, got)
		BF16ToFloat32Scalar(wantWide, got)
		assert.Equal(t, wantWide, wide, "widen n=%d", n)
	}
}

func TestConversionBounds(t *testing.T) {
	assert.PanicsWithError(t, "f32_to_bf16: dst has 1 elements, need 2", func() {
		Float32ToBF16(make([]hwy.BFloat16, 1), []float32{1, 2})
	})
	assert.PanicsWithError(t, "bf16_to_f32: dst has 0 elements, need 1", func() {
		BF16ToFloat32(nil, []hwy.BFloat16{hwy.BFloat16One})
	})
	assert.PanicsWithError(t, "bf16_add: dst has 2 elements, need 3", func() {
		a := []hwy.BFloat16{1, 2, 3}
		AddBF16(make([]hwy.BFloat16, 2), a, a)
	})
	assert.NotPanics(t, func() {
		Float32ToBF16(nil, nil)
		AddBF16(nil, nil, []hwy.BFloat16{1})
	})
}
