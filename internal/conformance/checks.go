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

package conformance

import (
	"math"
	"slices"

	"github.com/samber/lo"

	"github.com/ajroetker/go-kernels/hwy"
	"github.com/ajroetker/go-kernels/hwy/contrib/dot"
	"github.com/ajroetker/go-kernels/hwy/contrib/matmul"
	"github.com/ajroetker/go-kernels/hwy/contrib/matvec"
	"github.com/ajroetker/go-kernels/hwy/contrib/vec"
	"github.com/ajroetker/go-kernels/hwy/lane"
)

// job is one check bound to one strategy.
type job struct {
	check    string
	strategy string
	width    int
	run      func(r *runner)
}

// maxMatMulK caps the inner dimension of matmul cases so the O(n^3)
// reference stays cheap at large MaxN.
const maxMatMulK = 256

// conversionStrategy names the jobs whose kernels are not per strategy.
const conversionStrategy = "blocked"

func jobs() []job {
	var out []job
	for _, k := range dot.Kernels() {
		name, w := k.Name, int(k.Width)
		out = append(out,
			job{"dot", name, w, reduction(k.Fn.Dot, dot.DotScalar, dotMagnitude)},
			job{"dot-unrolled", name, w, reduction(k.Fn.DotUnrolled, dot.DotScalar, dotMagnitude)},
			job{"l2", name, w, reduction(k.Fn.L2Squared, dot.L2SquaredScalar, l2Magnitude)},
			job{"l2-unrolled", name, w, reduction(k.Fn.L2SquaredUnrolled, dot.L2SquaredScalar, l2Magnitude)},
			job{"l2-symmetry", name, w, l2Symmetry(k.Fn.L2Squared)},
			job{"l2-self", name, w, l2Self(k.Fn.L2Squared)},
		)
		if mm, ok := lo.Find(matmul.Kernels(), func(m lane.Kernel[matmul.Impl]) bool { return m.Name == name }); ok {
			out = append(out, job{"scenarios", name, w, scenarios(k.Fn, mm.Fn)})
		}
	}
	for _, k := range vec.Kernels() {
		name, w := k.Name, int(k.Width)
		out = append(out,
			job{"multo", name, w, mulTo(k.Fn.MulTo)},
			job{"bf16-add", name, w, addBF16(k.Fn.AddBF16)},
		)
	}
	for _, k := range matmul.Kernels() {
		name, w := k.Name, int(k.Width)
		out = append(out,
			job{"matmul-blocked", name, w, matMul(k.Fn.Blocked)},
			job{"matmul-inner", name, w, matMul(k.Fn.InnerProduct)},
			job{"matmul-identity", name, w, matMulIdentity(k.Fn.Blocked, k.Fn.InnerProduct)},
		)
	}
	for _, k := range matvec.Kernels() {
		out = append(out, job{"matvec", k.Name, int(k.Width), matVec(k.Fn)})
	}
	out = append(out, job{"bf16-roundtrip", conversionStrategy, 8, bf16RoundTrip})
	return out
}

func dotMagnitude(a, b []float32) float64 {
	var mag float64
	for i := range a {
		mag += math.Abs(float64(a[i]) * float64(b[i]))
	}
	return mag
}

func l2Magnitude(a, b []float32) float64 {
	var mag float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		mag += d * d
	}
	return mag
}

func reduction(fn, ref func(a, b []float32) float32, mag func(a, b []float32) float64) func(*runner) {
	return func(r *runner) {
		for _, n := range r.sizes() {
			if !r.begin(n) {
				return
			}
			a, b := r.floats(n), r.floats(n)
			r.approx(n, fn(a, b), ref(a, b), mag(a, b))
		}
	}
}

func l2Symmetry(fn func(a, b []float32) float32) func(*runner) {
	return func(r *runner) {
		for _, n := range r.sizes() {
			if !r.begin(n) {
				return
			}
			a, b := r.floats(n), r.floats(n)
			ab, ba := fn(a, b), fn(b, a)
			r.exact(n, ab == ba, "l2(a, b) = %v but l2(b, a) = %v", ab, ba)
		}
	}
}

func l2Self(fn func(a, b []float32) float32) func(*runner) {
	return func(r *runner) {
		for _, n := range r.sizes() {
			if !r.begin(n) {
				return
			}
			a := r.floats(n)
			got := fn(a, a)
			r.exact(n, got == 0, "l2(a, a) = %v", got)
		}
	}
}

func mulTo(fn func(dst, a, b []float32)) func(*runner) {
	return func(r *runner) {
		for _, n := range r.sizes() {
			if !r.begin(n) {
				return
			}
			a, b := r.floats(n), r.floats(n)
			got, want := make([]float32, n), make([]float32, n)
			fn(got, a, b)
			vec.MulToScalar(want, a, b)
			idx := firstDiff(got, want)
			r.exact(n, idx < 0, "lane %d: got %v, reference %v", idx, at(got, idx), at(want, idx))
		}
	}
}

func addBF16(fn func(dst, a, b []hwy.BFloat16)) func(*runner) {
	return func(r *runner) {
		for _, n := range r.sizes() {
			if !r.begin(n) {
				return
			}
			a, b := r.bf16s(n), r.bf16s(n)
			got, want := make([]hwy.BFloat16, n), make([]hwy.BFloat16, n)
			fn(got, a, b)
			vec.AddBF16Scalar(want, a, b)
			idx := firstDiff(got, want)
			r.exact(n, idx < 0, "lane %d: got %#04x, reference %#04x", idx, at(got, idx), at(want, idx))
		}
	}
}

func bf16RoundTrip(r *runner) {
	for _, n := range r.sizes() {
		if !r.begin(n) {
			return
		}
		src := r.floats(n)
		for i := range src {
			src[i] *= 1e4
		}
		bf := make([]hwy.BFloat16, n)
		back := make([]float32, n)
		vec.Float32ToBF16(bf, src)
		vec.BF16ToFloat32(back, bf)

		ref := make([]hwy.BFloat16, n)
		vec.Float32ToBF16Scalar(ref, src)
		r.exact(n, slices.Equal(bf, ref), "narrowing differs from the scalar conversion")

		worst := 0.0
		for i, x := range src {
			if x != 0 {
				worst = max(worst, math.Abs(float64(back[i]-x))/math.Abs(float64(x)))
			}
		}
		r.exact(n, worst <= hwy.BFloat16Epsilon/2,
			"relative round-trip error %.3g exceeds half a bf16 ulp", worst)
	}
}

// matMul runs (m x k) * (k x n) products with k taken from the size list.
func matMul(fn matmul.Kernel) func(*runner) {
	return func(r *runner) {
		for _, k := range r.sizes() {
			if !r.begin(k) {
				return
			}
			k = min(k, maxMatMulK)
			r.n = k
			m, n := 1+k%4, 2*r.width+1
			a := hwy.Matrix[float32]{Data: r.floats(m * k), Rows: m, Cols: k}
			b := hwy.Matrix[float32]{Data: r.floats(k * n), Rows: k, Cols: n}
			got, want := make([]float32, m*n), make([]float32, m*n)
			fn(a.Data, b.Data, got, m, n, k)
			matmul.MatMulScalar(a.Data, b.Data, want, m, n, k)

			for i := range m {
				for j := range n {
					var mag float64
					for p := range k {
						mag += math.Abs(float64(a.At(i, p)) * float64(b.At(p, j)))
					}
					r.approx(k, got[i*n+j], want[i*n+j], mag)
				}
			}
		}
	}
}

// matVec runs rows x k products with k taken from the size list.
func matVec(fn matvec.Kernel) func(*runner) {
	return func(r *runner) {
		for _, k := range r.sizes() {
			if !r.begin(k) {
				return
			}
			rows := 1 + k%5
			m := hwy.Matrix[float32]{Data: r.floats(rows * k), Rows: rows, Cols: k}
			v := r.floats(k)
			got, want := make([]float32, rows), make([]float32, rows)
			fn(m.Data, rows, k, v, got)
			matvec.MatVecScalar(m.Data, rows, k, v, want)
			for i := range rows {
				r.approx(k, got[i], want[i], dotMagnitude(m.Row(i), v))
			}
		}
	}
}

func matMulIdentity(kernels ...matmul.Kernel) func(*runner) {
	return func(r *runner) {
		for _, d := range []int{1, r.width - 1, r.width, r.width + 1, 2*r.width + 1} {
			if d < 1 {
				continue
			}
			r.n = d
			n := 3*r.width + 2
			eye := make([]float32, d*d)
			for i := range d {
				eye[i*d+i] = 1
			}
			b := r.floats(d * n)
			for _, fn := range kernels {
				c := make([]float32, d*n)
				fn(eye, b, c, d, n, d)
				r.exact(d, slices.Equal(b, c), "I_%d * B != B", d)
			}
		}
	}
}

func scenarios(d dot.Impl, mm matmul.Impl) func(*runner) {
	return func(r *runner) {
		a := []float32{1, 2, 3, 4, 5, 6, 7, 8, 9}
		ones := []float32{1, 1, 1, 1, 1, 1, 1, 1, 1}
		var l2Want float32
		for _, x := range a {
			l2Want += (x - 1) * (x - 1)
		}
		got := d.Dot(a, ones)
		r.exact(9, got == 45, "dot([1..9], ones) = %v, want 45", got)
		got = d.L2Squared(a, ones)
		r.exact(9, got == l2Want, "l2([1..9], ones) = %v, want %v", got, l2Want)
		got = d.L2Squared([]float32{1, 2, 3, 4}, []float32{5, 6, 7, 8})
		r.exact(4, got == 64, "l2([1..4], [5..8]) = %v, want 64", got)

		for _, fn := range []matmul.Kernel{mm.Blocked, mm.InnerProduct} {
			c := make([]float32, 4)
			fn([]float32{1, 2, 3, 4, 5, 6}, []float32{7, 8, 9, 10, 11, 12}, c, 2, 2, 3)
			r.exact(6, slices.Equal(c, []float32{58, 64, 139, 154}),
				"[[1,2,3],[4,5,6]] * [[7,8],[9,10],[11,12]] = %v", c)
			fn([]float32{1, 2, 3, 4}, []float32{5, 6, 7, 8}, c, 2, 2, 2)
			r.exact(4, slices.Equal(c, []float32{19, 22, 43, 50}),
				"[[1,2],[3,4]] * [[5,6],[7,8]] = %v", c)
		}
	}
}

// firstDiff returns the first index where got and want differ, or -1.
func firstDiff[T comparable](got, want []T) int {
	for i := range got {
		if got[i] != want[i] {
			return i
		}
	}
	return -1
}

// at returns s[i], or the zero value when i is out of range.
func at[T any](s []T, i int) T {
	var zero T
	if i < 0 || i >= len(s) {
		return zero
	}
	return s[i]
}
