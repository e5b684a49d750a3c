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
	"fmt"
)

var (
	// ErrShape reports dimensions that cannot describe a matrix product.
	ErrShape = errors.New("hwy: shape mismatch")

	// ErrBufferTooSmall reports a buffer shorter than its declared extent.
	ErrBufferTooSmall = errors.New("hwy: buffer too small")
)

// BoundsError describes a kernel operand shorter than the element count the
// caller asked for. Count-taking kernels panic with a *BoundsError before
// touching any memory, so a violated precondition fails the same way on
// every run instead of reading past a buffer.
type BoundsError struct {
	Op      string // kernel name, e.g. "dot"
	Operand string // operand name, e.g. "b"
	Len     int    // elements available
	Need    int    // elements required
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("%s: %s has %d elements, need %d", e.Op, e.Operand, e.Len, e.Need)
}

// Unwrap lets errors.Is match ErrBufferTooSmall.
func (e *BoundsError) Unwrap() error {
	return ErrBufferTooSmall
}

// CheckLen panics with a *BoundsError when have < need or need < 0.
func CheckLen(op, operand string, have, need int) {
	if need < 0 || have < need {
		panic(&BoundsError{Op: op, Operand: operand, Len: have, Need: need})
	}
}

// Matrix is a row-major view over a caller-owned buffer. It does not own
// Data and never copies it.
type Matrix[T Floats] struct {
	Data []T
	Rows int
	Cols int
}

// NewMatrix binds data to a rows x cols shape. The buffer may be longer
// than rows*cols; the extra elements are ignored.
func NewMatrix[T Floats](data []T, rows, cols int) (Matrix[T], error) {
	if rows < 0 || cols < 0 {
		return Matrix[T]{}, fmt.Errorf("%w: negative dimension %dx%d", ErrShape, rows, cols)
	}
	if len(data) < rows*cols {
		return Matrix[T]{}, fmt.Errorf("%dx%d matrix over %d elements: %w",
			rows, cols, len(data), ErrBufferTooSmall)
	}
	return Matrix[T]{Data: data[:rows*cols], Rows: rows, Cols: cols}, nil
}

// Validate checks that the view's buffer covers its shape.
func (m Matrix[T]) Validate() error {
	if m.Rows < 0 || m.Cols < 0 {
		return fmt.Errorf("%w: negative dimension %dx%d", ErrShape, m.Rows, m.Cols)
	}
	if len(m.Data) < m.Rows*m.Cols {
		return fmt.Errorf("%dx%d matrix over %d elements: %w",
			m.Rows, m.Cols, len(m.Data), ErrBufferTooSmall)
	}
	return nil
}

// Row returns row i as a subslice of Data.
func (m Matrix[T]) Row(i int) []T {
	return m.Data[i*m.Cols : (i+1)*m.Cols]
}

// At returns the element at row i, column j.
func (m Matrix[T]) At(i, j int) T {
	return m.Data[i*m.Cols+j]
}
