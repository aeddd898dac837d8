package peak

import (
	"fmt"

	"github.com/cwbudde/algo-nmr/field"
)

// Region is an axis-aligned box of grid points, inclusive at both ends.
type Region struct {
	First []int
	Last  []int
}

// NewRegion creates a region after checking that the bounds agree in
// dimensionality and that First[d] <= Last[d].
func NewRegion(first, last []int) (Region, error) {
	if len(first) == 0 || len(first) != len(last) {
		return Region{}, fmt.Errorf("%w: region bounds of length %d and %d", field.ErrInputShape, len(first), len(last))
	}
	for d := range first {
		if first[d] > last[d] {
			return Region{}, fmt.Errorf("%w: region axis %d runs from %d to %d", field.ErrInputShape, d, first[d], last[d])
		}
	}
	return Region{
		First: append([]int(nil), first...),
		Last:  append([]int(nil), last...),
	}, nil
}

// RegionFromArray converts the 2 x N layout [[first...], [last...]].
func RegionFromArray(a [][]int32) (Region, error) {
	if len(a) != 2 {
		return Region{}, fmt.Errorf("%w: region array needs 2 rows, got %d", field.ErrInputShape, len(a))
	}
	first := make([]int, len(a[0]))
	last := make([]int, len(a[1]))
	for d, v := range a[0] {
		first[d] = int(v)
	}
	for d, v := range a[1] {
		last[d] = int(v)
	}
	return NewRegion(first, last)
}

// Rank returns the number of axes.
func (r Region) Rank() int { return len(r.First) }

// Shape returns the number of grid points along each axis.
func (r Region) Shape() []int {
	shape := make([]int, len(r.First))
	for d := range shape {
		shape[d] = r.Last[d] - r.First[d] + 1
	}
	return shape
}

// Len returns the number of grid points in the region.
func (r Region) Len() int {
	n := 1
	for _, s := range r.Shape() {
		n *= s
	}
	return n
}

func (r Region) checkRank(data *field.Field) error {
	if len(r.First) != data.Rank() || len(r.Last) != data.Rank() {
		return fmt.Errorf("%w: region has %d axes, data has %d", field.ErrInputShape, len(r.First), data.Rank())
	}
	return nil
}

func (r Region) checkBounds(data *field.Field) error {
	if err := r.checkRank(data); err != nil {
		return err
	}
	for d := range r.First {
		if r.First[d] < 0 || r.First[d] > r.Last[d] || r.Last[d] >= data.Dim(d) {
			return fmt.Errorf("%w: region axis %d [%d, %d] outside [0, %d)", field.ErrInputShape, d, r.First[d], r.Last[d], data.Dim(d))
		}
	}
	return nil
}
