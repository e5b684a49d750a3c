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

// Package cpuinfo collects the CPU features relevant to kernel dispatch:
// what golang.org/x/sys/cpu and klauspost/cpuid detect, and what the hwy
// dispatcher and lane selection made of it.
package cpuinfo

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/klauspost/cpuid/v2"
	"golang.org/x/sys/cpu"

	"github.com/ajroetker/go-kernels/hwy"
	"github.com/ajroetker/go-kernels/hwy/lane"
)

// Flag is one named CPU feature and whether it is present.
type Flag struct {
	Name string
	Has  bool
	Note string
}

// Report is a snapshot of the host and of the dispatch decisions.
type Report struct {
	GOOS   string
	GOARCH string
	NumCPU int

	Level    hwy.DispatchLevel
	WidthB   int
	Name     string
	FMA      bool
	Selected lane.Width

	Brand         string
	Vendor        string
	PhysicalCores int
	LogicalCores  int
	CacheLine     int
	L1D, L2, L3   int

	// Flags are the x/sys/cpu booleans for this architecture.
	Flags []Flag
	// Features is the full cpuid feature list.
	Features []string
}

// Collect takes a Report of the running machine.
func Collect() Report {
	r := Report{
		GOOS:   runtime.GOOS,
		GOARCH: runtime.GOARCH,
		NumCPU: runtime.NumCPU(),

		Level:    hwy.CurrentLevel(),
		WidthB:   hwy.CurrentWidth(),
		Name:     hwy.CurrentName(),
		FMA:      hwy.HasFMA(),
		Selected: lane.Selected(),

		Brand:         cpuid.CPU.BrandName,
		Vendor:        cpuid.CPU.VendorString,
		PhysicalCores: cpuid.CPU.PhysicalCores,
		LogicalCores:  cpuid.CPU.LogicalCores,
		CacheLine:     cpuid.CPU.CacheLine,
		L1D:           cpuid.CPU.Cache.L1D,
		L2:            cpuid.CPU.Cache.L2,
		L3:            cpuid.CPU.Cache.L3,
		Features:      cpuid.CPU.FeatureSet(),
	}

	switch runtime.GOARCH {
	case "arm64":
		r.Flags = arm64Flags()
	case "amd64":
		r.Flags = amd64Flags()
	}
	return r
}

func arm64Flags() []Flag {
	return []Flag{
		{"ASIMD", cpu.ARM64.HasASIMD, "NEON baseline"},
		{"FP", cpu.ARM64.HasFP, "Floating point"},
		{"FPHP", cpu.ARM64.HasFPHP, "FP16 scalar, ARMv8.2-A"},
		{"ASIMDHP", cpu.ARM64.HasASIMDHP, "FP16 NEON, ARMv8.2-A"},
		{"ASIMDFHM", cpu.ARM64.HasASIMDFHM, "FP16 FMA, ARMv8.4-A"},
		{"ASIMDDP", cpu.ARM64.HasASIMDDP, "dot product"},
		{"SVE", cpu.ARM64.HasSVE, "Scalable Vector Extension"},
		{"SVE2", cpu.ARM64.HasSVE2, ""},
		{"I8MM", cpu.ARM64.HasI8MM, "int8 matrix multiply"},
	}
}

func amd64Flags() []Flag {
	return []Flag{
		{"SSE2", cpu.X86.HasSSE2, ""},
		{"SSE41", cpu.X86.HasSSE41, ""},
		{"SSE42", cpu.X86.HasSSE42, ""},
		{"AVX", cpu.X86.HasAVX, ""},
		{"AVX2", cpu.X86.HasAVX2, ""},
		{"FMA", cpu.X86.HasFMA, ""},
		{"AVX512F", cpu.X86.HasAVX512F, ""},
		{"AVX512BW", cpu.X86.HasAVX512BW, ""},
		{"AVX512VL", cpu.X86.HasAVX512VL, ""},
		{"AVX512BF16", cpu.X86.HasAVX512BF16, "bf16 dot/convert"},
	}
}

// WriteTo prints the report as plain text, one section per detector.
func (r Report) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "GOOS: %s\n", r.GOOS)
	fmt.Fprintf(&b, "GOARCH: %s\n", r.GOARCH)
	fmt.Fprintf(&b, "NumCPU: %d\n", r.NumCPU)
	b.WriteString("\n")

	fmt.Fprintf(&b, "Highway dispatch level: %s\n", r.Level)
	fmt.Fprintf(&b, "Highway dispatch width: %d bytes\n", r.WidthB)
	fmt.Fprintf(&b, "Highway dispatch name: %s\n", r.Name)
	fmt.Fprintf(&b, "Highway FMA: %v\n", r.FMA)
	fmt.Fprintf(&b, "Selected lanes: %s\n", r.Selected)
	b.WriteString("\n")

	fmt.Fprintf(&b, "=== golang.org/x/sys/cpu.%s ===\n", strings.ToUpper(r.GOARCH))
	for _, f := range r.Flags {
		if f.Note != "" {
			fmt.Fprintf(&b, "  Has%-10s %v (%s)\n", f.Name+":", f.Has, f.Note)
		} else {
			fmt.Fprintf(&b, "  Has%-10s %v\n", f.Name+":", f.Has)
		}
	}
	b.WriteString("\n")

	b.WriteString("=== github.com/klauspost/cpuid/v2 ===\n")
	fmt.Fprintf(&b, "  Brand:  %s\n", r.Brand)
	fmt.Fprintf(&b, "  Vendor: %s\n", r.Vendor)
	fmt.Fprintf(&b, "  Cores:  %d physical, %d logical\n", r.PhysicalCores, r.LogicalCores)
	fmt.Fprintf(&b, "  Cache:  line %d, L1D %s, L2 %s, L3 %s\n",
		r.CacheLine, formatSize(r.L1D), formatSize(r.L2), formatSize(r.L3))
	fmt.Fprintf(&b, "  Features: %s\n", strings.Join(r.Features, " "))

	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

// formatSize prints a cache size in KiB or MiB; cpuid reports -1 when the
// size is unknown.
func formatSize(bytes int) string {
	switch {
	case bytes <= 0:
		return "unknown"
	case bytes >= 1<<20 && bytes%(1<<20) == 0:
		return fmt.Sprintf("%dMiB", bytes>>20)
	default:
		return fmt.Sprintf("%dKiB", bytes>>10)
	}
}
