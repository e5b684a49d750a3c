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

package main

import (
	"fmt"
	"io"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ajroetker/go-kernels/hwy/contrib/dot"
	"github.com/ajroetker/go-kernels/hwy/contrib/matmul"
	"github.com/ajroetker/go-kernels/hwy/contrib/matvec"
	"github.com/ajroetker/go-kernels/hwy/contrib/vec"
	"github.com/ajroetker/go-kernels/hwy/lane"
	"github.com/ajroetker/go-kernels/internal/cpuinfo"
)

func newInfoCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print CPU features and the strategy each kernel package dispatches to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInfo(cmd.OutOrStdout(), opts)
		},
	}
}

// kernelPackage describes one package's registry for display.
type kernelPackage struct {
	name       string
	active     string
	strategies []string
	widths     []lane.Width
}

func kernelPackages() []kernelPackage {
	return []kernelPackage{
		describe("dot", dot.Strategy(), dot.Kernels()),
		describe("vec", vec.Strategy(), vec.Kernels()),
		describe("matmul", matmul.Strategy(), matmul.Kernels()),
		describe("matvec", matvec.Strategy(), matvec.Kernels()),
	}
}

func describe[F any](name, active string, kernels []lane.Kernel[F]) kernelPackage {
	return kernelPackage{
		name:       name,
		active:     active,
		strategies: lo.Map(kernels, func(k lane.Kernel[F], _ int) string { return k.Name }),
		widths:     lo.Map(kernels, func(k lane.Kernel[F], _ int) lane.Width { return k.Width }),
	}
}

func runInfo(w io.Writer, opts *options) error {
	if _, err := cpuinfo.Collect().WriteTo(w); err != nil {
		return err
	}

	title := cases.Title(language.English)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== Kernel strategies ===")
	for _, p := range kernelPackages() {
		fmt.Fprintf(w, "  %-8s active %s\n", title.String(p.name)+":", p.active)
		for i, s := range p.strategies {
			mark := " "
			if !opts.fits(p.widths[i]) {
				mark = "-"
			}
			fmt.Fprintf(w, "    %s %-8s %s\n", mark, s, p.widths[i])
		}
	}
	params := matmul.Params()
	fmt.Fprintf(w, "  Matmul blocking: Kc %d, Nc %d\n", params.Kc, params.Nc)
	return nil
}
