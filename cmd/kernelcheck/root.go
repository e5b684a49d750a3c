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
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ajroetker/go-kernels/hwy"
	"github.com/ajroetker/go-kernels/hwy/lane"
)

// options are the persistent flags shared by every subcommand.
type options struct {
	lanes    string
	logLevel string

	logger   *slog.Logger
	maxWidth lane.Width // 0 means no cap
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:          "kernelcheck",
		Short:        "Inspect, verify and benchmark the vectorized kernels",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd.ErrOrStderr())
		},
	}
	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.lanes, "lanes", "", "only visit strategies up to this width: 1 (scalar), 4 or 8")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn or error")

	cmd.AddCommand(newInfoCmd(opts), newVerifyCmd(opts), newBenchCmd(opts))
	return cmd
}

func (o *options) setup(w io.Writer) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(o.logLevel)); err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	o.logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	hwy.SetLogger(o.logger)

	o.maxWidth = 0
	if o.lanes != "" {
		width, err := lane.ParseWidth(o.lanes)
		if err != nil {
			return fmt.Errorf("--lanes: %w", err)
		}
		o.maxWidth = width
	}
	return nil
}

// fits reports whether a strategy of width w passes the --lanes cap.
func (o *options) fits(w lane.Width) bool {
	return o.maxWidth == 0 || w <= o.maxWidth
}
