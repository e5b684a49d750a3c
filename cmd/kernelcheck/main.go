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

// Command kernelcheck inspects, verifies and benchmarks the vectorized
// kernels on the running machine.
//
// Usage:
//
//	kernelcheck info                      # CPU features and dispatch choices
//	kernelcheck verify --max-n 8192       # every strategy against the scalar references
//	kernelcheck bench --n 4096 --lanes 4  # time the 4-wide and narrower strategies
//
// HWY_NO_SIMD and HWY_LANES are read at startup and decide which strategy
// the exported functions use. --lanes only narrows which registered
// strategies verify and bench visit.
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
