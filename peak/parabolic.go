package peak

import (
	"fmt"

	"github.com/cwbudde/algo-nmr/field"
	"github.com/cwbudde/algo-nmr/internal/core"
)

// fallbackLinewidth is reported for an axis whose parabolic fit failed.
const fallbackLinewidth = 1.0

// Fit is a refined or fitted peak.
type Fit struct {
	Height    float64
	Position  []float64
	Linewidth []float64
}

// FitParabolicToNDim fits a parabola along axis dim through point and its
// two neighbours. It returns the absolute vertex position on that axis, the
// vertex height and the linewidth.
func FitParabolicToNDim(data *field.Field, point []int, dim int) (position, height, linewidth float64, err error) {
	if dim < 0 || dim >= data.Rank() || len(point) != data.Rank() {
		return 0, 0, 0, fmt.Errorf("%w: axis %d of point %v in rank-%d data", field.ErrInputShape, dim, point, data.Rank())
	}
	if !data.Contains(point) {
		return 0, 0, 0, fmt.Errorf("%w: point %v outside data", field.ErrInputShape, point)
	}
	if data.OnBoundary(point, dim) {
		return 0, 0, 0, fmt.Errorf("%w: axis %d index %d of %d", ErrBoundary, dim, point[dim], data.Dim(dim))
	}

	off := data.Offset(point)
	stride := data.Stride(dim)
	offset, height, linewidth, err := FitParabolic1D(
		float64(data.AtOffset(off-stride)),
		float64(data.AtOffset(off)),
		float64(data.AtOffset(off+stride)),
	)
	if err != nil {
		return 0, 0, 0, err
	}

	return float64(point[dim]) + offset, height, linewidth, nil
}

// FitParabolicPeaks refines each initial position with one parabolic fit
// per axis around the nearest interior grid point.
//
// All axes are fitted around the same grid point. The reported height comes
// from the last axis that fitted; an axis that fails keeps its grid
// coordinate and a linewidth of 1. The region is checked for shape only.
func FitParabolicPeaks(data *field.Field, region Region, peaks [][]float64) ([]Fit, error) {
	if data == nil {
		return nil, fmt.Errorf("data: %w", field.ErrInputType)
	}
	if err := region.checkRank(data); err != nil {
		return nil, err
	}
	if err := checkPeaks(peaks, data.Rank()); err != nil {
		return nil, err
	}

	rank := data.Rank()
	fits := make([]Fit, len(peaks))
	grid := make([]int, rank)

	for j, guess := range peaks {
		for d := range rank {
			grid[d] = interiorIndex(guess[d], data.Dim(d))
		}

		fit := Fit{
			Height:    float64(data.At(grid...)),
			Position:  make([]float64, rank),
			Linewidth: make([]float64, rank),
		}
		for d := range rank {
			pos, h, lw, err := FitParabolicToNDim(data, grid, d)
			if err != nil {
				fit.Position[d] = float64(grid[d])
				fit.Linewidth[d] = fallbackLinewidth
				continue
			}
			fit.Position[d] = pos
			fit.Linewidth[d] = lw
			fit.Height = h
		}
		fits[j] = fit
	}

	return fits, nil
}

// interiorIndex rounds x to the nearest grid index that has neighbours on
// both sides, or to the nearest valid index on axes shorter than three.
func interiorIndex(x float64, n int) int {
	i := core.RoundIndex(x)
	if n >= 3 {
		return core.ClampInt(i, 1, n-2)
	}
	return core.ClampInt(i, 0, n-1)
}

func checkPeaks(peaks [][]float64, rank int) error {
	for j, p := range peaks {
		if len(p) != rank {
			return fmt.Errorf("%w: peak %d has %d coordinates, data has %d axes", field.ErrInputShape, j, len(p), rank)
		}
		for d, v := range p {
			if !core.IsFinite(v) {
				return fmt.Errorf("%w: peak %d axis %d is %g", field.ErrInputShape, j, d, v)
			}
		}
	}
	return nil
}
