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
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestInfo(t *testing.T) {
	out, err := execute(t, "info")
	require.NoError(t, err)
	assert.Contains(t, out, "Highway dispatch level")
	assert.Contains(t, out, "=== Kernel strategies ===")
	for _, pkg := range []string{"Dot:", "Vec:", "Matmul:", "Matvec:"} {
		assert.Contains(t, out, pkg)
	}
	assert.Contains(t, out, "scalar")
}

func TestVerify(t *testing.T) {
	out, err := execute(t, "verify", "--max-n", "64", "--sizes", "1", "--seed", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "CHECK")
	assert.Contains(t, out, "ok: ")
	assert.NotContains(t, out, "FAIL")
}

func TestVerifyScalarOnly(t *testing.T) {
	out, err := execute(t, "--lanes", "scalar", "verify", "--max-n", "32", "--sizes", "1")
	require.NoError(t, err)
	for _, strategy := range []string{"x4", "x8", "avx", "avx2"} {
		assert.NotContains(t, out, " "+strategy+" ")
	}
	assert.Contains(t, out, "[blocked scalar]")
}

func TestBench(t *testing.T) {
	out, err := execute(t, "--lanes", "4", "bench", "--n", "64", "--size", "8", "--iters", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "dot")
	assert.Contains(t, out, "blocked")
	assert.Contains(t, out, "parallel")
	assert.Contains(t, out, "GFLOP/s")
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "  dot ") || strings.HasPrefix(line, "  blocked ") {
			assert.NotContains(t, line, "x8", line)
			assert.NotContains(t, line, "avx2", line)
		}
	}
}

func TestBadFlags(t *testing.T) {
	_, err := execute(t, "--lanes", "3", "info")
	assert.ErrorContains(t, err, "--lanes")

	_, err = execute(t, "--log-level", "loud", "info")
	assert.ErrorContains(t, err, "--log-level")

	_, err = execute(t, "bench", "--iters", "0")
	assert.Error(t, err)
}
