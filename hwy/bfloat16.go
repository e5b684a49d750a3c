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

import "math"

// BFloat16 is a Brain Float 16 value: the upper half of a float32.
//
// Format: Sign (1 bit) | Exponent (8 bits) | Mantissa (7 bits)
//
//	S | EEEEEEEE | MMMMMMM
//
// The exponent range matches float32, so widening is exact and narrowing
// only drops mantissa bits. Narrowing rounds to nearest even, which is what
// the ARM bfloat16_t conversion and the AVX-512 BF16 VCVTNEPS2BF16
// instruction produce.
type BFloat16 uint16

// BFloat16 constants for special values.
const (
	BFloat16Zero     BFloat16 = 0x0000 // Positive zero
	BFloat16NegZero  BFloat16 = 0x8000 // Negative zero
	BFloat16One      BFloat16 = 0x3F80 // 1.0
	BFloat16NegOne   BFloat16 = 0xBF80 // -1.0
	BFloat16MaxValue BFloat16 = 0x7F7F // ~3.39e38 (max finite value)
	BFloat16Inf      BFloat16 = 0x7F80 // Positive infinity
	BFloat16NegInf   BFloat16 = 0xFF80 // Negative infinity
	BFloat16NaN      BFloat16 = 0x7FC0 // Quiet NaN (canonical)

	// BFloat16Epsilon is the distance from 1.0 to the next bf16 value (2^-7).
	BFloat16Epsilon = 1.0 / 128
)

// BFloat16ToFloat32 converts a single BFloat16 to float32.
// This is a simple bit shift since bfloat16 is truncated float32.
func BFloat16ToFloat32(b BFloat16) float32 {
	return math.Float32frombits(uint32(b) << 16)
}

// Float32ToBFloat16 converts a float32 to BFloat16.
// Uses round-to-nearest-even on the truncated bits.
func Float32ToBFloat16(f float32) BFloat16 {
	bits := math.Float32bits(f)

	// NaN keeps its sign and becomes quiet; rounding could otherwise carry
	// a signalling NaN's payload into infinity.
	if bits&0x7FFFFFFF > 0x7F800000 {
		return BFloat16((bits >> 16) | 0x0040)
	}

	// Bit 15 is the rounding bit. Adding 0x7FFF plus the lowest kept bit
	// rounds up above the halfway point and to even on a tie.
	rounding := uint32(0x7FFF) + ((bits >> 16) & 1)
	bits += rounding

	return BFloat16(bits >> 16)
}

// AddBFloat16 adds two bf16 values in float32 and rounds the sum back.
// The result is not the exact sum: bf16 keeps 8 significant bits.
func AddBFloat16(a, b BFloat16) BFloat16 {
	return Float32ToBFloat16(BFloat16ToFloat32(a) + BFloat16ToFloat32(b))
}

// IsNaN returns true if b is a NaN value.
func (b BFloat16) IsNaN() bool {
	return b&0x7F80 == 0x7F80 && b&0x7F != 0
}

// IsInf returns true if b is positive or negative infinity.
func (b BFloat16) IsInf() bool {
	return b&0x7FFF == 0x7F80
}

// IsZero returns true if b is positive or negative zero.
func (b BFloat16) IsZero() bool {
	return b&0x7FFF == 0
}

// IsNegative returns true if the sign bit is set.
func (b BFloat16) IsNegative() bool {
	return b&0x8000 != 0
}

// Float32 converts this BFloat16 to float32.
func (b BFloat16) Float32() float32 {
	return BFloat16ToFloat32(b)
}

// Bits returns the raw uint16 representation.
func (b BFloat16) Bits() uint16 {
	return uint16(b)
}
