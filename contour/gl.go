package contour

import (
	"fmt"

	"github.com/cwbudde/algo-nmr/field"
)

// Colour is an RGBA colour with components in [0, 1].
type Colour [4]float32

// GLBuffer holds flat line-primitive buffers.
//
// Vertices holds 2*NumVertices coordinates, Colours holds 4*NumVertices
// components and Indices holds NumIndices entries, each in [0, NumVertices).
// Consecutive index pairs form line segments.
type GLBuffer struct {
	NumIndices  int
	NumVertices int
	Indices     []uint32
	Vertices    []float32
	Colours     []float32
}

// GLList packs contours of fields with the default settings.
func GLList(fields []*field.Field, posLevels, negLevels []float32, posColour, negColour Colour, flatten bool) (GLBuffer, error) {
	return NewTracer().GLList(fields, posLevels, negLevels, posColour, negColour, flatten)
}

// GLList traces every field at the positive and then the negative levels and
// packs all polylines into a single buffer. Each polyline becomes a line
// strip expressed as index pairs (i, i+1).
//
// flatten is accepted for compatibility and has no effect.
//
// All inputs are validated before any output is produced; an error yields
// an empty buffer.
func (t *Tracer) GLList(fields []*field.Field, posLevels, negLevels []float32, posColour, negColour Colour, flatten bool) (GLBuffer, error) {
	_ = flatten

	for i, f := range fields {
		if err := f.RequireRank(2); err != nil {
			return GLBuffer{}, fmt.Errorf("dataArray %d: %w", i, err)
		}
	}
	if err := CheckLevels(posLevels); err != nil {
		return GLBuffer{}, fmt.Errorf("posLevels: %w", err)
	}
	if err := CheckLevels(negLevels); err != nil {
		return GLBuffer{}, fmt.Errorf("negLevels: %w", err)
	}

	var buf glBuilder
	for _, f := range fields {
		for _, pass := range []struct {
			levels []float32
			colour Colour
		}{
			{posLevels, posColour},
			{negLevels, negColour},
		} {
			if len(pass.levels) == 0 {
				continue
			}
			result, err := t.CalculateContours(f, pass.levels)
			if err != nil {
				return GLBuffer{}, err
			}
			for _, polylines := range result {
				for _, p := range polylines {
					buf.addStrip(p, pass.colour)
				}
			}
		}
	}

	return buf.finish(), nil
}

type glBuilder struct {
	indices  []uint32
	vertices []float32
	colours  []float32
	offset   uint32
}

func (b *glBuilder) addStrip(p Polyline, colour Colour) {
	n := p.NumPoints()
	if n < 2 {
		return
	}

	b.vertices = append(b.vertices, p[:2*n]...)
	for range n {
		b.colours = append(b.colours, colour[:]...)
	}
	for i := range uint32(n - 1) {
		b.indices = append(b.indices, b.offset+i, b.offset+i+1)
	}
	b.offset += uint32(n)
}

func (b *glBuilder) finish() GLBuffer {
	return GLBuffer{
		NumIndices:  len(b.indices),
		NumVertices: int(b.offset),
		Indices:     b.indices,
		Vertices:    b.vertices,
		Colours:     b.colours,
	}
}
