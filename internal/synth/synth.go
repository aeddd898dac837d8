// Package synth renders synthetic N-dimensional spectra made of Gaussian and
// Lorentzian peaks.
package synth

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-nmr/field"
)

// Shape selects the line shape of a synthetic peak.
type Shape int

const (
	Gaussian Shape = iota
	Lorentzian
)

// Peak describes one synthetic peak. Center and Linewidth (FWHM) are given
// per axis in grid units.
type Peak struct {
	Shape     Shape
	Height    float64
	Center    []float64
	Linewidth []float64
}

// Value evaluates the peak at grid index idx.
func (p Peak) Value(idx []int) float64 {
	v := p.Height
	for d, i := range idx {
		dx := float64(i) - p.Center[d]
		lw := p.Linewidth[d]
		switch p.Shape {
		case Lorentzian:
			v *= lw * lw / (lw*lw + 4*dx*dx)
		default:
			v *= math.Exp(-4 * math.Ln2 * (dx / lw) * (dx / lw))
		}
	}
	return v
}

// Render sums peaks on a grid of the given shape.
func Render(shape []int, peaks ...Peak) (*field.Field, error) {
	f, err := field.Zeros(shape...)
	if err != nil {
		return nil, err
	}
	for j, p := range peaks {
		if len(p.Center) != len(shape) || len(p.Linewidth) != len(shape) {
			return nil, fmt.Errorf("%w: peak %d is not %d-dimensional", field.ErrInputShape, j, len(shape))
		}
	}

	data := f.Data()
	idx := make([]int, len(shape))
	for off := range data {
		f.Unravel(off, idx)
		var v float64
		for _, p := range peaks {
			v += p.Value(idx)
		}
		data[off] = float32(v)
	}
	return f, nil
}

// AddNoise returns a copy of f with uniform noise in [-amplitude, amplitude].
// The same seed always yields the same noise.
func AddNoise(f *field.Field, seed int64, amplitude float64) *field.Field {
	rng := rand.New(rand.NewSource(seed))
	data := append([]float32(nil), f.Data()...)
	for i := range data {
		data[i] += float32((rng.Float64()*2 - 1) * amplitude)
	}

	out, err := field.New(data, f.Shape()...)
	if err != nil {
		// f was already a valid field of the same size.
		panic(err)
	}
	return out
}
