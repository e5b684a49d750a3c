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

package matmul

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-kernels/hwy"
	"github.com/ajroetker/go-kernels/hwy/contrib/dot"
	"github.com/ajroetker/go-kernels/hwy/contrib/workerpool"
	"github.com/ajroetker/go-kernels/hwy/lane"
)

var approx = cmpopts.EquateApprox(1e-4, 1e-3)

func randomMatrix(rng *rand.Rand, rows, cols int) []float32 {
	out := make([]float32, rows*cols)
	for i := range out {
		out[i] = rng.Float32()*2 - 1
	}
	return out
}

func identity(n int) []float32 {
	out := make([]float32, n*n)
	for i := range n {
		out[i*n+i] = 1
	}
	return out
}

// allKernels flattens every strategy's kernels into named entries.
func allKernels() map[string]Kernel {
	out := make(map[string]Kernel)
	for _, k := range Kernels() {
		out[k.Name+"/blocked"] = k.Fn.Blocked
		out[k.Name+"/inner"] = k.Fn.InnerProduct
	}
	return out
}

func TestMatMulConcrete(t *testing.T) {
	for name, kernel := range allKernels() {
		t.Run(name, func(t *testing.T) {
			a := []float32{1, 2, 3, 4, 5, 6}
			b := []float32{7, 8, 9, 10, 11, 12}
			c := make([]float32, 4)
			kernel(a, b, c, 2, 2, 3)
			assert.Equal(t, []float32{58, 64, 139, 154}, c)

			a = []float32{1, 2, 3, 4}
			b = []float32{5, 6, 7, 8}
			kernel(a, b, c, 2, 2, 2)
			assert.Equal(t, []float32{19, 22, 43, 50}, c)
		})
	}
}

func TestMatMulIdentity(t *testing.T) {
	rng := rand.New(rand.NewPCG(21, 22))
	for _, d := range []int{1, 3, 4, 8, 9, 17} {
		for _, n := range []int{1, 5, 8, 16, 19} {
			b := randomMatrix(rng, d, n)
			for name, kernel := range allKernels() {
				c := make([]float32, d*n)
				kernel(identity(d), b, c, d, n, d)
				assert.Equal(t, b, c, "%s d=%d n=%d", name, d, n)
			}
		}
	}
}

func TestMatMulMatchesScalar(t *testing.T) {
	rng := rand.New(rand.NewPCG(23, 24))
	shapes := [][3]int{
		{0, 4, 4}, {4, 0, 4}, {4, 4, 0},
		{1, 1, 1}, {2, 3, 4}, {3, 7, 5},
		{4, 8, 8}, {5, 9, 17}, {8, 16, 3},
		{7, 33, 65}, {16, 16, 16}, {13, 40, 31},
	}
	for _, s := range shapes {
		m, n, k := s[0], s[1], s[2]
		a := randomMatrix(rng, m, k)
		b := randomMatrix(rng, k, n)
		want := make([]float32, m*n)
		MatMulScalar(a, b, want, m, n, k)

		for name, kernel := range allKernels() {
			t.Run(fmt.Sprintf("%s/%dx%dx%d", name, m, n, k), func(t *testing.T) {
				c := make([]float32, m*n)
				for i := range c {
					c[i] = 99 // every cell must be overwritten
				}
				kernel(a, b, c, m, n, k)
				if diff := cmp.Diff(want, c, approx); diff != "" {
					t.Errorf("mismatch (-scalar +got):\n%s", diff)
				}
			})
		}
	}
}

func TestInnerProductCellsMatchDot(t *testing.T) {
	rng := rand.New(rand.NewPCG(25, 26))
	const m, n, k = 3, 5, 19
	a := randomMatrix(rng, m, k)
	b := randomMatrix(rng, k, n)
	c := make([]float32, m*n)

	for _, kd := range dot.Kernels() {
		km, ok := lookup(kd.Name)
		require.True(t, ok, kd.Name)
		km.InnerProduct(a, b, c, m, n, k)
		for i := range m {
			for j := range n {
				col := make([]float32, k)
				for p := range k {
					col[p] = b[p*n+j]
				}
				assert.Equal(t, kd.Fn.Dot(a[i*k:(i+1)*k], col), c[i*n+j],
					"%s cell (%d,%d)", kd.Name, i, j)
			}
		}
	}
}

func lookup(name string) (Impl, bool) {
	for _, k := range Kernels() {
		if k.Name == name {
			return k.Fn, true
		}
	}
	return Impl{}, false
}

func TestBlockingDoesNotChangeResults(t *testing.T) {
	rng := rand.New(rand.NewPCG(27, 28))
	const m, n, k = 5, 21, 10
	a := randomMatrix(rng, m, k)
	b := randomMatrix(rng, k, n)

	wide := make([]float32, m*n)
	BaseBlockedMatMul[[8]float32](lane.X8{}, CacheParams{Kc: 512, Nc: 4096}, a, b, wide, m, n, k)

	for _, p := range []CacheParams{{Kc: 3, Nc: 8}, {Kc: 1, Nc: 16}, {Kc: 10, Nc: 1}} {
		c := make([]float32, m*n)
		BaseBlockedMatMul[[8]float32](lane.X8{}, p, a, b, c, m, n, k)
		assert.Equal(t, wide, c, "params %+v", p)

		c4 := make([]float32, m*n)
		BaseBlockedMatMul[[4]float32](lane.X4{}, p, a, b, c4, m, n, k)
		if diff := cmp.Diff(wide, c4, approx); diff != "" {
			t.Errorf("x4 params %+v:\n%s", p, diff)
		}
	}
}

func TestMatMulBounds(t *testing.T) {
	a := make([]float32, 6)
	b := make([]float32, 6)
	c := make([]float32, 4)

	assert.NotPanics(t, func() { MatMul(a, b, c, 2, 2, 3) })
	assert.PanicsWithError(t, "matmul: a has 6 elements, need 8", func() { MatMul(a, b, c, 2, 2, 4) })
	assert.PanicsWithError(t, "matmul: c has 4 elements, need 6", func() { InnerProductMatMul(a, b, c, 2, 3, 2) })
	assert.Panics(t, func() { MatMul(a, b, c, -1, -1, 2) })
}

func TestMatMulView(t *testing.T) {
	a, err := hwy.NewMatrix([]float32{1, 2, 3, 4, 5, 6}, 2, 3)
	require.NoError(t, err)
	b, err := hwy.NewMatrix([]float32{7, 8, 9, 10, 11, 12}, 3, 2)
	require.NoError(t, err)
	c, err := hwy.NewMatrix(make([]float32, 4), 2, 2)
	require.NoError(t, err)

	require.NoError(t, MatMulView(a, b, c))
	assert.Equal(t, []float32{58, 64, 139, 154}, c.Data)

	// a * a does not chain.
	assert.ErrorIs(t, MatMulView(a, a, c), hwy.ErrShape)

	wrongOut := hwy.Matrix[float32]{Data: make([]float32, 6), Rows: 3, Cols: 2}
	assert.ErrorIs(t, MatMulView(a, b, wrongOut), hwy.ErrShape)

	short := hwy.Matrix[float32]{Data: make([]float32, 3), Rows: 2, Cols: 2}
	err = MatMulView(a, b, short)
	assert.ErrorIs(t, err, hwy.ErrBufferTooSmall)
	assert.Contains(t, err.Error(), "matmul: c:")
}

func TestMatMulEmptyInner(t *testing.T) {
	for name, kernel := range allKernels() {
		t.Run(name, func(t *testing.T) {
			c := []float32{99, 99, 99, 99, 99, 99}
			require.NotPanics(t, func() { kernel(nil, nil, c, 2, 3, 0) })
			assert.Equal(t, make([]float32, 6), c)
		})
	}

	c := []float32{99, 99, 99, 99, 99, 99}
	InnerProductMatMul(nil, nil, c, 2, 3, 0)
	assert.Equal(t, make([]float32, 6), c)

	av, err := hwy.NewMatrix[float32](nil, 2, 0)
	require.NoError(t, err)
	bv, err := hwy.NewMatrix[float32](nil, 0, 3)
	require.NoError(t, err)
	cv, err := hwy.NewMatrix([]float32{1, 2, 3, 4, 5, 6}, 2, 3)
	require.NoError(t, err)
	require.NoError(t, MatMulView(av, bv, cv))
	assert.Equal(t, make([]float32, 6), cv.Data)
}

func TestMatMulViewReportsFirstInvalid(t *testing.T) {
	shortA := hwy.Matrix[float32]{Data: make([]float32, 1), Rows: 2, Cols: 2}
	shortB := hwy.Matrix[float32]{Data: make([]float32, 1), Rows: 2, Cols: 2}
	shortC := hwy.Matrix[float32]{Data: make([]float32, 1), Rows: 2, Cols: 2}
	for range 20 {
		err := MatMulView(shortA, shortB, shortC)
		require.ErrorIs(t, err, hwy.ErrBufferTooSmall)
		assert.Contains(t, err.Error(), "matmul: a:")
	}
}

func TestParallelMatMul(t *testing.T) {
	pool := workerpool.New(workerpool.WithWorkers(4))
	defer pool.Close()

	rng := rand.New(rand.NewPCG(29, 30))
	for _, s := range [][3]int{{3, 4, 5}, {200, 70, 40}, {130, 64, 64}} {
		m, n, k := s[0], s[1], s[2]
		a := randomMatrix(rng, m, k)
		b := randomMatrix(rng, k, n)

		want := make([]float32, m*n)
		MatMul(a, b, want, m, n, k)
		got := make([]float32, m*n)
		ParallelMatMul(pool, a, b, got, m, n, k)
		assert.Equal(t, want, got, "%dx%dx%d", m, n, k)

		ParallelMatMul(nil, a, b, got, m, n, k)
		assert.Equal(t, want, got)
	}
}

func TestCacheParams(t *testing.T) {
	tests := []struct {
		l1d, l2 int
		want    CacheParams
	}{
		{32 << 10, 256 << 10, CacheParams{Kc: 227, Nc: 144}},
		{0, -1, CacheParams{Kc: 227, Nc: 144}},
		{1 << 20, 32 << 20, CacheParams{Kc: 512, Nc: 4096}},
		{1 << 10, 4 << 10, CacheParams{Kc: 32, Nc: 64}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cacheParamsFor(tt.l1d, tt.l2), "l1d=%d l2=%d", tt.l1d, tt.l2)
	}

	p := Params()
	assert.Positive(t, p.Kc)
	assert.Zero(t, p.Nc%8)
}
