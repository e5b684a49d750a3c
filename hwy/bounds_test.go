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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckLen(t *testing.T) {
	assert.NotPanics(t, func() { CheckLen("dot", "a", 4, 4) })
	assert.NotPanics(t, func() { CheckLen("dot", "a", 4, 0) })
	assert.PanicsWithError(t, "dot: b has 3 elements, need 4", func() {
		CheckLen("dot", "b", 3, 4)
	})
	assert.Panics(t, func() { CheckLen("dot", "n", 3, -1) })
}

func TestBoundsErrorUnwrap(t *testing.T) {
	var err error = &BoundsError{Op: "matmul", Operand: "c", Len: 1, Need: 4}
	assert.ErrorIs(t, err, ErrBufferTooSmall)

	var be *BoundsError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "c", be.Operand)
}

func TestNewMatrix(t *testing.T) {
	data := []float32{1, 2, 3, 4, 5, 6, 7}
	m, err := NewMatrix(data, 2, 3)
	require.NoError(t, err)
	assert.Len(t, m.Data, 6)
	assert.Equal(t, []float32{4, 5, 6}, m.Row(1))
	assert.Equal(t, float32(2), m.At(0, 1))
	assert.NoError(t, m.Validate())

	_, err = NewMatrix(data, 3, 3)
	assert.True(t, errors.Is(err, ErrBufferTooSmall))

	_, err = NewMatrix(data, -1, 3)
	assert.ErrorIs(t, err, ErrShape)

	empty, err := NewMatrix[float32](nil, 0, 5)
	require.NoError(t, err)
	assert.Empty(t, empty.Data)

	assert.ErrorIs(t, Matrix[float32]{Data: data, Rows: 4, Cols: 2}.Validate(), ErrBufferTooSmall)
}
