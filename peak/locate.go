package peak

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-nmr/field"
)

// FindParams selects which extrema FindPeaks reports.
type FindParams struct {
	// HaveHigh enables maxima with value >= High.
	HaveHigh bool
	High     float32
	// HaveLow enables minima with value <= Low.
	HaveLow bool
	Low     float32

	// Nonadjacent compares against all 3^N-1 surrounding points instead of
	// the 2N axis neighbours, and rejects points on any boundary face.
	Nonadjacent bool

	// DropFactor, when positive, requires the intensity to recede
	// monotonically by DropFactor*|height| in both directions of every axis.
	DropFactor float32

	// MinLinewidth holds one minimum linewidth per axis; axes with a
	// non-positive entry are not checked. Empty disables the test.
	MinLinewidth []float32

	// Buffer, ExcludedRegions, DiagonalExclusionDims and
	// DiagonalExclusionTransform are accepted but not applied.
	Buffer                     []int
	ExcludedRegions            [][][]float32
	DiagonalExclusionDims      [][]int
	DiagonalExclusionTransform [][]float32
}

// Extremum is a grid point reported by FindPeaks.
type Extremum struct {
	Position []int
	Height   float32
}

// Locator finds local extrema. A Locator holds only configuration.
type Locator struct {
	cfg Config
}

// NewLocator creates a locator with the given options.
func NewLocator(opts ...Option) *Locator {
	return &Locator{cfg: ApplyOptions(opts...)}
}

// FindPeaks runs a default Locator.
func FindPeaks(data *field.Field, params FindParams) ([]Extremum, error) {
	return NewLocator().FindPeaks(data, params)
}

// FindPeaks scans data in row-major order and returns every point that
// passes the threshold, extremum, drop and linewidth tests, in scan order.
//
// A point at or above High is tested as a maximum; otherwise a point at or
// below Low is tested as a minimum. Neighbours equal to the candidate do
// not reject it.
func (l *Locator) FindPeaks(data *field.Field, params FindParams) ([]Extremum, error) {
	if data == nil {
		return nil, fmt.Errorf("data: %w", field.ErrInputType)
	}
	rank := data.Rank()
	if len(params.MinLinewidth) != 0 && len(params.MinLinewidth) != rank {
		return nil, fmt.Errorf("%w: minLinewidth has %d entries, data has %d axes", field.ErrInputShape, len(params.MinLinewidth), rank)
	}
	if len(params.Buffer) > 0 || len(params.ExcludedRegions) > 0 ||
		len(params.DiagonalExclusionDims) > 0 || len(params.DiagonalExclusionTransform) > 0 {
		l.cfg.logf("peak: buffer and exclusion parameters are not applied")
	}
	if !params.HaveHigh && !params.HaveLow {
		return nil, nil
	}

	s := scan{data: data, idx: make([]int, rank)}
	if params.Nonadjacent {
		s.cube = cubeOffsets(data)
	}

	var found []Extremum
	for off, v := range data.Data() {
		var maximum bool
		switch {
		case params.HaveHigh && v >= params.High:
			maximum = true
		case params.HaveLow && v <= params.Low:
			maximum = false
		default:
			continue
		}

		data.Unravel(off, s.idx)
		if !s.extremum(off, v, maximum) {
			continue
		}
		if params.DropFactor > 0 && !s.drops(off, v, float64(params.DropFactor)*math.Abs(float64(v)), maximum) {
			continue
		}
		if !l.wideEnough(s, v, params.MinLinewidth, maximum) {
			continue
		}

		found = append(found, Extremum{
			Position: append([]int(nil), s.idx...),
			Height:   v,
		})
	}

	l.cfg.logf("peak: found %d extrema in %v", len(found), data.Shape())
	return found, nil
}

// scan holds the per-candidate state of FindPeaks.
type scan struct {
	data *field.Field
	idx  []int
	cube []int
}

// beats reports whether neighbour v2 disqualifies candidate v.
func beats(v2, v float32, maximum bool) bool {
	if maximum {
		return v2 > v
	}
	return v2 < v
}

func (s scan) extremum(off int, v float32, maximum bool) bool {
	if s.cube != nil {
		for d := range s.idx {
			if s.data.OnBoundary(s.idx, d) {
				return false
			}
		}
		for _, delta := range s.cube {
			if beats(s.data.AtOffset(off+delta), v, maximum) {
				return false
			}
		}
		return true
	}

	for d, i := range s.idx {
		stride := s.data.Stride(d)
		if i > 0 && beats(s.data.AtOffset(off-stride), v, maximum) {
			return false
		}
		if i < s.data.Dim(d)-1 && beats(s.data.AtOffset(off+stride), v, maximum) {
			return false
		}
	}
	return true
}

// drops checks both directions of every axis.
func (s scan) drops(off int, v float32, drop float64, maximum bool) bool {
	for d := range s.idx {
		if !s.dropsAlong(off, d, 1, v, drop, maximum) || !s.dropsAlong(off, d, -1, v, drop, maximum) {
			return false
		}
	}
	return true
}

// dropsAlong walks from the candidate along axis d in direction dir. It
// fails on the first sample that moves back towards the candidate, and when
// the array edge is reached before the intensity has dropped far enough.
func (s scan) dropsAlong(off, d, dir int, v float32, drop float64, maximum bool) bool {
	stride := s.data.Stride(d) * dir
	peak := float64(v)
	prev := peak
	for i, o := s.idx[d]+dir, off+stride; i >= 0 && i < s.data.Dim(d); i, o = i+dir, o+stride {
		cur := float64(s.data.AtOffset(o))
		if maximum {
			if cur > prev {
				return false
			}
			if peak-cur >= drop {
				return true
			}
		} else {
			if cur < prev {
				return false
			}
			if cur-peak >= drop {
				return true
			}
		}
		prev = cur
	}
	return false
}

func (l *Locator) wideEnough(s scan, v float32, minLinewidth []float32, maximum bool) bool {
	for d, minLW := range minLinewidth {
		if minLW <= 0 {
			continue
		}

		var lw float64
		switch l.cfg.LinewidthMethod {
		case LinewidthHalfMax:
			lw = HalfMaxLinewidth(s.data, s.idx, d, maximum)
		default:
			var err error
			if _, _, lw, err = FitParabolicToNDim(s.data, s.idx, d); err != nil {
				return false
			}
		}
		if lw < float64(minLW) {
			return false
		}
	}
	return true
}

// HalfMaxLinewidth measures the full width at half height of the extremum
// at point along axis dim. It walks outward in both directions until the
// intensity passes half of the peak value and interpolates the crossing
// linearly. A side that never crosses is clamped to the array edge.
func HalfMaxLinewidth(data *field.Field, point []int, dim int, maximum bool) float64 {
	off := data.Offset(point)
	peak := float64(data.AtOffset(off))
	hi := halfMaxPosition(data, point, off, dim, 1, peak, maximum)
	lo := halfMaxPosition(data, point, off, dim, -1, peak, maximum)
	return hi - lo
}

func halfMaxPosition(data *field.Field, point []int, off, dim, dir int, peak float64, maximum bool) float64 {
	half := 0.5 * peak
	prev := peak
	stride := data.Stride(dim) * dir
	n := data.Dim(dim)

	for i, o := point[dim]+dir, off+stride; i >= 0 && i < n; i, o = i+dir, o+stride {
		cur := float64(data.AtOffset(o))
		if (maximum && cur < half) || (!maximum && cur > half) {
			return float64(i) - float64(dir)*(half-cur)/(prev-cur)
		}
		prev = cur
	}

	if dir > 0 {
		return float64(n - 1)
	}
	return 0
}

// cubeOffsets returns the linear offsets of all 3^N-1 neighbours of an
// interior point.
func cubeOffsets(data *field.Field) []int {
	offsets := []int{0}
	for d := range data.Rank() {
		stride := data.Stride(d)
		next := make([]int, 0, 3*len(offsets))
		for _, o := range offsets {
			next = append(next, o-stride, o, o+stride)
		}
		offsets = next
	}

	out := offsets[:0]
	for _, o := range offsets {
		if o != 0 {
			out = append(out, o)
		}
	}
	return out
}
