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
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/ajroetker/go-kernels/internal/conformance"
)

func newVerifyCmd(opts *options) *cobra.Command {
	cfg := conformance.DefaultConfig()
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check every lane strategy against the scalar references",
		Long: `verify runs each kernel at the epoch/remainder boundary lengths of its
strategy plus random lengths, and compares against the scalar references.
Reductions must stay within a reordering bound; elementwise and bf16 kernels
must match bit for bit. The exit status is non-zero on any mismatch.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg.MaxWidth = opts.maxWidth
			cfg.Logger = opts.logger
			report, err := conformance.Run(cmd.Context(), cfg)
			if report != nil {
				if werr := writeReport(cmd.OutOrStdout(), report); werr != nil {
					return werr
				}
			}
			if errors.Is(err, conformance.ErrMismatch) {
				return fmt.Errorf("%d checks failed", countFailed(report))
			}
			return err
		},
	}
	flags := cmd.Flags()
	flags.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "seed for the random inputs")
	flags.IntVar(&cfg.MaxN, "max-n", cfg.MaxN, "largest random vector length")
	flags.IntVar(&cfg.RandomSizes, "sizes", cfg.RandomSizes, "random lengths per check in addition to the boundary lengths")
	flags.Float64Var(&cfg.Tolerance, "tolerance", cfg.Tolerance, "scale of the reduction error bound")
	flags.IntVar(&cfg.Workers, "workers", 0, "concurrent checks, 0 for GOMAXPROCS")
	return cmd
}

func writeReport(w io.Writer, report *conformance.Report) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "CHECK\tSTRATEGY\tWIDTH\tCASES\tFAILED\tWORST")
	for _, r := range report.Results {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%.3f\n", r.Check, r.Strategy, r.Width, r.Cases, r.Failed, r.WorstRatio)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, f := range report.Failures {
		fmt.Fprintf(w, "FAIL %v\n", f)
	}
	if report.OK() {
		_, err := fmt.Fprintf(w, "ok: %d checks over %v\n", len(report.Results), report.Strategies())
		return err
	}
	return nil
}

func countFailed(report *conformance.Report) int {
	if report == nil {
		return 0
	}
	return lo.CountBy(report.Results, func(r conformance.Result) bool { return r.Failed > 0 })
}
