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

import (
	"cmp"
	"slices"

	"github.com/samber/lo"

	"github.com/ajroetker/go-kernels/hwy"
)

// Kernel is one instantiation of a kernel function F for a strategy.
type Kernel[F any] struct {
	Width Width
	Name  string // strategy name, see Ops.Name
	Fn    F
}

// Table collects the instantiations of one kernel. Packages fill it from
// init functions: the portable strategies first, then the archsimd ones
// from z_*.go files, which sort after and therefore run later. The last
// registration for a width becomes the preferred kernel for that width.
//
// A Table is not safe for concurrent Register calls; reads after init are.
type Table[F any] struct {
	all       []Kernel[F]
	preferred map[Width]Kernel[F]
}

// Register adds fn under the given width and strategy name.
func (t *Table[F]) Register(w Width, name string, fn F) {
	if t.preferred == nil {
		t.preferred = make(map[Width]Kernel[F])
	}
	k := Kernel[F]{Width: w, Name: name, Fn: fn}
	t.all = append(t.all, k)
	t.preferred[w] = k
}

// Lookup returns the preferred kernel for width w.
func (t *Table[F]) Lookup(w Width) (Kernel[F], bool) {
	k, ok := t.preferred[w]
	return k, ok
}

// All returns every registered kernel ordered by width, then by
// registration order.
func (t *Table[F]) All() []Kernel[F] {
	out := slices.Clone(t.all)
	slices.SortStableFunc(out, func(a, b Kernel[F]) int {
		return cmp.Compare(a.Width, b.Width)
	})
	return out
}

// Select returns the preferred kernel for the widest registered width that
// does not exceed Selected(). It panics if nothing narrow enough has been
// registered, which means the package forgot its scalar instantiation.
func (t *Table[F]) Select() Kernel[F] {
	limit := Selected()
	fits := lo.Filter(lo.Values(t.preferred), func(k Kernel[F], _ int) bool {
		return k.Width <= limit
	})
	if len(fits) == 0 {
		panic("lane: no kernel registered at or below " + limit.String())
	}
	k := lo.MaxBy(fits, func(a, b Kernel[F]) bool { return a.Width > b.Width })
	hwy.Logger().Debug("kernel selected", "strategy", k.Name, "width", k.Width, "limit", limit)
	return k
}
