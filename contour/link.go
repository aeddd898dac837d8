package contour

import "math"

// linkVertices groups vertices into connected components where an edge joins
// any two vertices closer than dist. Components are returned as vertex
// indices in traversal order.
func linkVertices(verts []vertex, dist float64, linker Linker) [][]int {
	if len(verts) == 0 {
		return nil
	}

	var neighbours func(i int, visit func(j int))
	switch linker {
	case LinkPairwise:
		neighbours = func(_ int, visit func(j int)) {
			for j := range verts {
				visit(j)
			}
		}
	default:
		idx := newSpatialIndex(dist)
		idx.build(verts)
		neighbours = func(i int, visit func(j int)) {
			idx.query(verts[i], visit)
		}
	}

	dist2 := dist * dist
	visited := make([]bool, len(verts))
	var components [][]int
	var stack []int

	for start := range verts {
		if visited[start] {
			continue
		}

		var component []int
		stack = append(stack[:0], start)
		for len(stack) > 0 {
			i := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if visited[i] {
				continue
			}
			visited[i] = true
			component = append(component, i)

			vi := verts[i]
			neighbours(i, func(j int) {
				if visited[j] {
					return
				}
				dx := float64(vi.x) - float64(verts[j].x)
				dy := float64(vi.y) - float64(verts[j].y)
				if dx*dx+dy*dy < dist2 {
					stack = append(stack, j)
				}
			})
		}
		components = append(components, component)
	}

	return components
}

// spatialIndex buckets vertices on a regular grid whose cell size equals the
// link distance, so every neighbour within that distance lies in the 3x3
// block of buckets around a vertex.
type spatialIndex struct {
	cellSize float64
	grid     map[int64][]int
}

func newSpatialIndex(cellSize float64) *spatialIndex {
	return &spatialIndex{cellSize: cellSize}
}

func (si *spatialIndex) build(verts []vertex) {
	si.grid = make(map[int64][]int, len(verts)/4+1)
	for i, v := range verts {
		cx, cy := si.cellOf(v)
		key := cellKey(cx, cy)
		si.grid[key] = append(si.grid[key], i)
	}
}

func (si *spatialIndex) cellOf(v vertex) (int64, int64) {
	return int64(math.Floor(float64(v.x) / si.cellSize)),
		int64(math.Floor(float64(v.y) / si.cellSize))
}

// query calls visit for every vertex in the 3x3 bucket neighbourhood of v.
func (si *spatialIndex) query(v vertex, visit func(j int)) {
	cx, cy := si.cellOf(v)
	for dy := int64(-1); dy <= 1; dy++ {
		for dx := int64(-1); dx <= 1; dx++ {
			for _, j := range si.grid[cellKey(cx+dx, cy+dy)] {
				visit(j)
			}
		}
	}
}

// cellKey packs signed bucket coordinates with zigzag encoding and Szudzik
// pairing.
func cellKey(cx, cy int64) int64 {
	a := zigzag(cx)
	b := zigzag(cy)
	if a >= b {
		return a*a + a + b
	}
	return a + b*b
}

func zigzag(v int64) int64 {
	if v >= 0 {
		return 2 * v
	}
	return -2*v - 1
}
