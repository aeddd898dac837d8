package contour

import (
	"math"

	"github.com/cwbudde/algo-nmr/internal/core"
)

// Cell edges, counter-clockwise from the bottom.
const (
	edgeBottom = iota
	edgeRight
	edgeTop
	edgeLeft
)

// degenerateSpan is the corner difference below which an edge crossing is
// placed at the edge midpoint.
const degenerateSpan = 1e-10

// vertex is one interpolated edge crossing.
type vertex struct {
	x, y float32
	cell int
	edge int8
}

// edgePairs maps a 4-bit corner case to the crossed edge pairs. Bits are
// bottom-left (1), bottom-right (2), top-right (4), top-left (8).
var edgePairs = [16][][2]int8{
	{},
	{{edgeLeft, edgeBottom}},
	{{edgeBottom, edgeRight}},
	{{edgeLeft, edgeRight}},
	{{edgeRight, edgeTop}},
	{{edgeLeft, edgeBottom}, {edgeRight, edgeTop}}, // saddle
	{{edgeBottom, edgeTop}},
	{{edgeLeft, edgeTop}},
	{{edgeTop, edgeLeft}},
	{{edgeBottom, edgeTop}},
	{{edgeBottom, edgeRight}, {edgeTop, edgeLeft}}, // saddle
	{{edgeRight, edgeTop}},
	{{edgeRight, edgeLeft}},
	{{edgeBottom, edgeRight}},
	{{edgeBottom, edgeLeft}},
	{},
}

// cellCase classifies the four corners of a cell against level.
func cellCase(bl, br, tr, tl, level float32) int {
	c := 0
	if bl >= level {
		c |= 1
	}
	if br >= level {
		c |= 2
	}
	if tr >= level {
		c |= 4
	}
	if tl >= level {
		c |= 8
	}
	return c
}

// crossing returns the fraction along v1->v2 where level is reached.
func crossing(v1, v2, level float32) float64 {
	span := float64(v2) - float64(v1)
	if math.Abs(span) < degenerateSpan {
		return 0.5
	}
	return core.Clamp((float64(level)-float64(v1))/span, 0, 1)
}

// findVertices scans all cells of a height x width grid and emits one vertex
// per crossed edge pair, located on the first edge of the pair.
func findVertices(data []float32, height, width int, level float32, dst []vertex) []vertex {
	dst = dst[:0]
	for y := range height - 1 {
		row := data[y*width : (y+2)*width]
		for x := range width - 1 {
			bl := row[x]
			br := row[x+1]
			tl := row[width+x]
			tr := row[width+x+1]

			c := cellCase(bl, br, tr, tl, level)
			if c == 0 || c == 15 {
				continue
			}

			cell := y*(width-1) + x
			for _, pair := range edgePairs[c] {
				vx, vy := edgePoint(x, y, pair[0], bl, br, tr, tl, level)
				dst = append(dst, vertex{x: vx, y: vy, cell: cell, edge: pair[0]})
			}
		}
	}
	return dst
}

func edgePoint(x, y int, edge int8, bl, br, tr, tl, level float32) (float32, float32) {
	fx, fy := float64(x), float64(y)
	switch edge {
	case edgeBottom:
		return float32(fx + crossing(bl, br, level)), float32(fy)
	case edgeRight:
		return float32(fx + 1), float32(fy + crossing(br, tr, level))
	case edgeTop:
		return float32(fx + crossing(tl, tr, level)), float32(fy + 1)
	default:
		return float32(fx), float32(fy + crossing(bl, tl, level))
	}
}
