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

import (
	"testing"

	"simd/archsimd"

	"github.com/stretchr/testify/assert"
)

func TestAVX2(t *testing.T) {
	if !HasAVX2() {
		t.Skip("AVX2 not available")
	}
	checkOps[archsimd.Float32x8](t, AVX2{})
}

func TestAVX(t *testing.T) {
	if !HasAVX() {
		t.Skip("AVX not available")
	}
	checkOps[archsimd.Float32x4](t, AVX{})
}

func TestAVX2MatchesX8Tree(t *testing.T) {
	if !HasAVX2() {
		t.Skip("AVX2 not available")
	}
	src := []float32{1e8, 1, 0.5, -3, -1e8, 1, 7e-3, 3}
	assert.Equal(t, X8{}.ReduceSum(X8{}.Load(src)), AVX2{}.ReduceSum(AVX2{}.Load(src)))
}
