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

// Split divides n elements into full vectors of width lanes and a tail.
// epoch is the number of full-width iterations and remain the leftover
// element count, always less than width. A width below 1 is treated as 1.
//
//	epoch, remain := hwy.Split(len(a), ops.Lanes())
//	// a[:epoch*width] goes through the vector loop,
//	// a[epoch*width:] through the scalar tail.
func Split(n, width int) (epoch, remain int) {
	if n <= 0 {
		return 0, 0
	}
	width = max(width, 1)
	return n / width, n % width
}

// ProcessWithTail calls fullFn(offset) for every full vector of width lanes
// and tailFn(offset, count) once for the remainder, if any.
func ProcessWithTail(size, width int, fullFn func(offset int), tailFn func(offset, count int)) {
	epoch, remain := Split(size, width)
	for i := range epoch {
		fullFn(i * width)
	}
	if remain > 0 {
		tailFn(epoch*width, remain)
	}
}
