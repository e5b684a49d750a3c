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

import "github.com/klauspost/cpuid/v2"

// CacheParams holds the blocking parameters of BaseBlockedMatMul.
//   - Kc: K-blocking, the length of the A row segment reused per strip (L1)
//   - Nc: N-blocking, the width of the B panel kept resident (L2)
type CacheParams struct {
	Kc int
	Nc int
}

// Fallback sizes when cpuid cannot read the cache hierarchy.
const (
	defaultL1D = 32 << 10
	defaultL2  = 256 << 10
)

// DefaultCacheParams derives blocking parameters from the detected L1D and
// L2 sizes.
//
// Kc floats of an A row plus one lane strip of B per p must fit in a
// quarter of L1D. The Kc x Nc panel of B must fit in half of L2. Nc is a
// multiple of 8 so full strips never straddle a panel edge for any strategy.
func DefaultCacheParams() CacheParams {
	return cacheParamsFor(cpuid.CPU.Cache.L1D, cpuid.CPU.Cache.L2)
}

func cacheParamsFor(l1d, l2 int) CacheParams {
	if l1d <= 0 {
		l1d = defaultL1D
	}
	if l2 <= 0 {
		l2 = defaultL2
	}

	// Each p touches one A value and one 8-lane strip of B: 36 bytes.
	kc := min(max(l1d/4/36, 32), 512)
	nc := min(max(l2/2/(4*kc), 64), 4096) &^ 7
	return CacheParams{Kc: kc, Nc: nc}
}
