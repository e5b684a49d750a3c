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
	"log/slog"
	"sync/atomic"
)

var (
	logger  atomic.Pointer[slog.Logger]
	discard = slog.New(slog.DiscardHandler)
)

// SetLogger installs the logger used for dispatch decisions and environment
// override warnings. A nil logger restores the default, which discards.
// Kernels never log on their hot path.
func SetLogger(l *slog.Logger) {
	logger.Store(l)
}

// Logger returns the package logger.
func Logger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return discard
}
