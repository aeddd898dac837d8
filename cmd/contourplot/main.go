// Command contourplot traces a synthetic 2-D spectrum and writes the contour
// vertices as a PNG (or SVG/PDF, chosen by the output extension).
//
// Usage:
//
//	contourplot [flags]
//
// Positive levels grow geometrically from -base by -factor; negative levels
// mirror them. Without -base the lowest level sits at -sigmas times the
// estimated noise. Positive contours are drawn red, negative ones blue.
//
// Examples:
//
//	contourplot -out contours.png
//	contourplot -levels 12 -base 0.5 -factor 1.3 -out dense.svg
//	contourplot -linker pairwise -noise 0.3
package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/cwbudde/algo-nmr/contour"
	"github.com/cwbudde/algo-nmr/internal/synth"
	"github.com/cwbudde/algo-nmr/stats"
)

var demoPeaks = []synth.Peak{
	{Shape: synth.Gaussian, Height: 40, Center: []float64{40, 60}, Linewidth: []float64{10, 14}},
	{Shape: synth.Lorentzian, Height: 25, Center: []float64{90, 30}, Linewidth: []float64{8, 8}},
	{Shape: synth.Gaussian, Height: -20, Center: []float64{100, 100}, Linewidth: []float64{12, 9}},
}

func main() {
	rows := flag.Int("rows", 128, "number of grid points along y")
	cols := flag.Int("cols", 128, "number of grid points along x")
	noise := flag.Float64("noise", 0.1, "uniform noise amplitude")
	seed := flag.Int64("seed", 1, "noise seed")
	levels := flag.Int("levels", 8, "number of positive (and negative) levels")
	base := flag.Float64("base", 0, "lowest absolute contour level (0 derives it from the noise)")
	sigmas := flag.Float64("sigmas", 8, "automatic base level in units of the estimated noise")
	factor := flag.Float64("factor", 1.5, "ratio between successive levels")
	linker := flag.String("linker", "spatial-index", "vertex linking: spatial-index or pairwise")
	out := flag.String("out", "contours.png", "output image path")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: contourplot [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Traces a synthetic 2-D spectrum and plots the contour vertices.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	l, err := parseLinker(*linker)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	clean, err := synth.Render([]int{*rows, *cols}, demoPeaks...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	data := synth.AddNoise(clean, *seed, *noise)

	lowest := *base
	if lowest <= 0 {
		lowest = *sigmas * stats.Noise(data)
		if lowest <= 0 {
			lowest = 0.02 * stats.Calculate(data).AbsMax
		}
	}
	pos, neg, err := geometricLevels(lowest, *factor, *levels)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	tr := contour.NewTracer(contour.WithLinker(l))
	posContours, err := tr.CalculateContours(data, pos)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: positive levels: %v\n", err)
		os.Exit(1)
	}
	negContours, err := tr.CalculateContours(data, neg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: negative levels: %v\n", err)
		os.Exit(1)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%d x %d spectrum, %d levels (%s)", *rows, *cols, *levels, l)
	p.X.Label.Text = "x (points)"
	p.Y.Label.Text = "y (points)"
	p.X.Min, p.X.Max = 0, float64(*cols-1)
	p.Y.Min, p.Y.Max = 0, float64(*rows-1)

	red := color.RGBA{R: 200, A: 255}
	blue := color.RGBA{B: 200, A: 255}
	for _, layer := range []struct {
		result contour.Result
		colour color.Color
	}{
		{posContours, red},
		{negContours, blue},
	} {
		if err := addContours(p, layer.result, layer.colour); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	if err := p.Save(8*vg.Inch, 8*vg.Inch, *out); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to save %s: %v\n", *out, err)
		os.Exit(1)
	}

	fmt.Printf("base level: %.4g\n", lowest)
	fmt.Printf("positive vertices per level: %v\n", posContours.NumVertices())
	fmt.Printf("negative vertices per level: %v\n", negContours.NumVertices())
	fmt.Printf("wrote %s\n", *out)
}

func parseLinker(name string) (contour.Linker, error) {
	for _, l := range []contour.Linker{contour.LinkSpatialIndex, contour.LinkPairwise} {
		if l.String() == name {
			return l, nil
		}
	}
	return 0, fmt.Errorf("unknown linker %q (want spatial-index or pairwise)", name)
}

// geometricLevels returns n increasing positive levels base*factor^i and
// the mirrored decreasing negative levels.
func geometricLevels(base, factor float64, n int) (pos, neg []float32, err error) {
	if base <= 0 || factor <= 1 || n < 1 {
		return nil, nil, fmt.Errorf("need base > 0, factor > 1 and at least one level")
	}
	level := base
	for range n {
		pos = append(pos, float32(level))
		neg = append(neg, float32(-level))
		level *= factor
	}
	return pos, neg, nil
}

// addContours draws every polyline of r as a scatter of its vertices.
// Vertex order within a polyline follows the linking traversal, not the
// curve, so points are not joined.
func addContours(p *plot.Plot, r contour.Result, c color.Color) error {
	for _, polylines := range r {
		for _, pl := range polylines {
			pts := make(plotter.XYs, pl.NumPoints())
			for i := range pts {
				pts[i] = plotter.XY{X: float64(pl[2*i]), Y: float64(pl[2*i+1])}
			}
			s, err := plotter.NewScatter(pts)
			if err != nil {
				return err
			}
			s.GlyphStyle.Color = c
			s.GlyphStyle.Radius = vg.Points(1)
			p.Add(s)
		}
	}
	return nil
}
