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

package hwy

import (
	"math"
	"testing"
)

func TestBFloat16Constants(t *testing.T) {
	tests := []struct {
		name     string
		value    BFloat16
		expected float32
	}{
		{"Zero", BFloat16Zero, 0.0},
		{"One", BFloat16One, 1.0},
		{"NegOne", BFloat16NegOne, -1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BFloat16ToFloat32(tt.value)
			if got != tt.expected {
				t.Errorf("BFloat16%s: got %v, want %v", tt.name, got, tt.expected)
			}
		})
	}

	t.Run("Infinity", func(t *testing.T) {
		if !BFloat16Inf.IsInf() || BFloat16Inf.IsNegative() {
			t.Error("BFloat16Inf should be positive infinity")
		}
		if !BFloat16NegInf.IsInf() || !BFloat16NegInf.IsNegative() {
			t.Error("BFloat16NegInf should be negative infinity")
		}
	})

	t.Run("NaN", func(t *testing.T) {
		if !BFloat16NaN.IsNaN() || BFloat16NaN.IsInf() {
			t.Error("BFloat16NaN should be NaN")
		}
	})

	t.Run("MaxValue", func(t *testing.T) {
		m := BFloat16ToFloat32(BFloat16MaxValue)
		if m < 3e38 || m > float32(math.MaxFloat32) {
			t.Errorf("BFloat16MaxValue: got %v, expected ~3.39e38", m)
		}
	})
}

func TestFloat32ToBFloat16Rounding(t *testing.T) {
	tests := []struct {
		name string
		in   uint32
		want BFloat16
	}{
		{"Exact", 0x3F800000, 0x3F80},
		{"BelowHalfTruncates", 0x3F807FFF, 0x3F80},
		{"AboveHalfRoundsUp", 0x3F808001, 0x3F81},
		{"TieToEvenDown", 0x3F808000, 0x3F80},
		{"TieToEvenUp", 0x3F818000, 0x3F82},
		{"NegativeTie", 0xBF818000, 0xBF82},
		{"OverflowToInf", 0x7F7FFFFF, 0x7F80},
		{"Inf", 0x7F800000, 0x7F80},
		{"NegZero", 0x80000000, 0x8000},
		{"Denormal", 0x00018000, 0x0002},
		{"QuietNaN", 0x7FC00000, 0x7FC0},
		{"SignallingNaNStaysNaN", 0x7F800001, 0x7FC0},
		{"NegativeNaN", 0xFFC00001, 0xFFC0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Float32ToBFloat16(math.Float32frombits(tt.in))
			if got != tt.want {
				t.Errorf("Float32ToBFloat16(%#08x) = %#04x, want %#04x", tt.in, got, tt.want)
			}
		})
	}
}

func TestBFloat16RoundTrip(t *testing.T) {
	// Every finite bf16 widens and narrows back to itself.
	for bits := 0; bits <= 0xFFFF; bits++ {
		b := BFloat16(bits)
		if b.IsNaN() {
			if !Float32ToBFloat16(b.Float32()).IsNaN() {
				t.Fatalf("NaN %#04x lost its NaN-ness", bits)
			}
			continue
		}
		if got := Float32ToBFloat16(b.Float32()); got != b {
			t.Fatalf("round trip %#04x -> %#04x", bits, got)
		}
	}
}

func TestFloat32ToBFloat16RelativeError(t *testing.T) {
	values := []float32{1, 3.14159, -2.71828, 1e-20, 6.02e23, 0.1, 123456.789}
	for _, v := range values {
		got := BFloat16ToFloat32(Float32ToBFloat16(v))
		rel := math.Abs(float64(got-v)) / math.Abs(float64(v))
		// Half an ulp of an 8-bit significand.
		if rel > BFloat16Epsilon/2 {
			t.Errorf("%v -> %v: relative error %g", v, got, rel)
		}
	}
}

func TestAddBFloat16(t *testing.T) {
	tests := []struct {
		a, b float32
		want float32
	}{
		{1, 1, 2},
		{1, -1, 0},
		// 256 + 1 is not representable with 8 significant bits; the tie
		// rounds to the even significand.
		{256, 1, 256},
		{256, 3, 260},
	}
	for _, tt := range tests {
		got := AddBFloat16(Float32ToBFloat16(tt.a), Float32ToBFloat16(tt.b)).Float32()
		if got != tt.want {
			t.Errorf("AddBFloat16(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
