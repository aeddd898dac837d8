package contour

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-nmr/field"
)

// ErrMonotonicity is returned when a level sequence changes direction.
var ErrMonotonicity = errors.New("contour: levels not monotonic")

// Polyline is a flat sequence of x, y pairs in grid units. x runs along the
// last (fastest) axis of the field and y along the first.
type Polyline []float32

// NumPoints returns the number of x, y pairs.
func (p Polyline) NumPoints() int { return len(p) / 2 }

// Result holds the polylines of each level, in level order.
type Result [][]Polyline

// NumVertices returns the number of points traced at each level.
func (r Result) NumVertices() []int {
	counts := make([]int, len(r))
	for l, polylines := range r {
		for _, p := range polylines {
			counts[l] += p.NumPoints()
		}
	}
	return counts
}

// Tracer computes contour polylines. A Tracer holds only configuration and
// may be shared between goroutines.
type Tracer struct {
	cfg Config
}

// NewTracer creates a tracer with the given options.
func NewTracer(opts ...Option) *Tracer {
	return &Tracer{cfg: ApplyOptions(opts...)}
}

// Config returns the tracer settings.
func (t *Tracer) Config() Config { return t.cfg }

// CalculateContours traces data at every level with the default settings.
func CalculateContours(data *field.Field, levels []float32) (Result, error) {
	return NewTracer().CalculateContours(data, levels)
}

// CalculateContours traces the rank-2 field data at each level.
//
// Levels with more than one element must be monotonic (non-decreasing or
// non-increasing). Every level is processed even when an earlier level
// produced no vertices. Only components of at least two vertices become
// polylines.
func (t *Tracer) CalculateContours(data *field.Field, levels []float32) (Result, error) {
	if err := data.RequireRank(2); err != nil {
		return nil, fmt.Errorf("data: %w", err)
	}
	if err := CheckLevels(levels); err != nil {
		return nil, err
	}

	height, width := data.Dim(0), data.Dim(1)
	samples := data.Data()

	result := make(Result, len(levels))
	var verts []vertex
	for l, level := range levels {
		verts = findVertices(samples, height, width, level, verts)
		result[l] = t.polylines(verts)
	}

	return result, nil
}

func (t *Tracer) polylines(verts []vertex) []Polyline {
	components := linkVertices(verts, t.cfg.LinkDistance, t.cfg.Linker)

	out := make([]Polyline, 0, len(components))
	for _, comp := range components {
		if len(comp) < 2 {
			continue
		}
		p := make(Polyline, 0, 2*len(comp))
		for _, i := range comp {
			p = append(p, verts[i].x, verts[i].y)
		}
		out = append(out, p)
	}
	return out
}

// CheckLevels verifies that levels never change direction. Empty and
// single-element sequences are always valid.
func CheckLevels(levels []float32) error {
	if len(levels) < 2 {
		return nil
	}

	increasing := levels[0] <= levels[1]
	for l := 2; l < len(levels); l++ {
		prev, cur := levels[l-1], levels[l]
		if increasing && prev > cur {
			return fmt.Errorf("%w: levels initially increasing but later decrease", ErrMonotonicity)
		}
		if !increasing && prev < cur {
			return fmt.Errorf("%w: levels initially decreasing but later increase", ErrMonotonicity)
		}
	}

	return nil
}
