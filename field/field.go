// Package field provides the immutable N-dimensional float32 sample grid
// consumed by the contour and peak packages.
//
// Samples are stored in row-major order: the last axis varies fastest, so a
// rank-2 field of shape [H, W] is indexed as [y][x]. Positions reported by
// the peak package follow the same axis order.
package field

import (
	"errors"
	"fmt"
)

var (
	// ErrInputShape is returned when an input has the wrong rank or its
	// length does not match the declared shape.
	ErrInputShape = errors.New("field: invalid input shape")
	// ErrInputType is returned when an input is not a numeric array.
	ErrInputType = errors.New("field: invalid input type")
)

// Field is an N-dimensional array of float32 samples.
// A Field is never mutated after construction and is safe for concurrent
// readers.
type Field struct {
	shape   []int
	strides []int
	data    []float32
}

// New wraps data with the given shape. The slice is not copied; callers
// must not modify it while the Field is in use.
func New(data []float32, shape ...int) (*Field, error) {
	if len(shape) == 0 {
		return nil, fmt.Errorf("%w: rank must be >= 1", ErrInputShape)
	}

	total := 1
	for d, n := range shape {
		if n <= 0 {
			return nil, fmt.Errorf("%w: axis %d has size %d", ErrInputShape, d, n)
		}
		total *= n
	}

	if len(data) != total {
		return nil, fmt.Errorf("%w: %d samples for shape %v", ErrInputShape, len(data), shape)
	}

	s := append([]int(nil), shape...)

	return &Field{shape: s, strides: rowMajorStrides(s), data: data}, nil
}

// Zeros returns a zero-filled field with the given shape.
func Zeros(shape ...int) (*Field, error) {
	total := 1
	for _, n := range shape {
		if n <= 0 {
			return New(nil, shape...)
		}
		total *= n
	}

	return New(make([]float32, total), shape...)
}

func rowMajorStrides(shape []int) []int {
	strides := make([]int, len(shape))
	step := 1
	for d := len(shape) - 1; d >= 0; d-- {
		strides[d] = step
		step *= shape[d]
	}
	return strides
}

// Rank returns the number of axes.
func (f *Field) Rank() int { return len(f.shape) }

// Len returns the total number of samples.
func (f *Field) Len() int { return len(f.data) }

// Dim returns the size of axis d.
func (f *Field) Dim(d int) int { return f.shape[d] }

// Stride returns the linear step between neighbours along axis d.
func (f *Field) Stride(d int) int { return f.strides[d] }

// Shape returns a copy of the axis sizes.
func (f *Field) Shape() []int { return append([]int(nil), f.shape...) }

// Data exposes the backing samples in row-major order. It must be treated as
// read-only.
func (f *Field) Data() []float32 { return f.data }

// Offset converts an N-D index to its linear offset.
func (f *Field) Offset(idx []int) int {
	off := 0
	for d, i := range idx {
		off += i * f.strides[d]
	}
	return off
}

// Unravel writes the N-D index of linear offset off into idx.
func (f *Field) Unravel(off int, idx []int) {
	for d, s := range f.strides {
		idx[d] = off / s
		off -= idx[d] * s
	}
}

// At returns the sample at the given N-D index.
func (f *Field) At(idx ...int) float32 {
	return f.data[f.Offset(idx)]
}

// AtOffset returns the sample at a linear offset.
func (f *Field) AtOffset(off int) float32 {
	return f.data[off]
}

// Contains reports whether idx lies inside the field bounds.
func (f *Field) Contains(idx []int) bool {
	if len(idx) != len(f.shape) {
		return false
	}
	for d, i := range idx {
		if i < 0 || i >= f.shape[d] {
			return false
		}
	}
	return true
}

// OnBoundary reports whether idx touches the first or last plane along
// axis d.
func (f *Field) OnBoundary(idx []int, d int) bool {
	return idx[d] <= 0 || idx[d] >= f.shape[d]-1
}

// RequireRank returns ErrInputShape unless the field has exactly rank axes.
func (f *Field) RequireRank(rank int) error {
	if f == nil {
		return fmt.Errorf("%w: nil field", ErrInputType)
	}
	if len(f.shape) != rank {
		return fmt.Errorf("%w: need ndim %d, got %d", ErrInputShape, rank, len(f.shape))
	}
	return nil
}
