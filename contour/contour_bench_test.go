package contour

import (
	"strconv"
	"testing"

	"github.com/cwbudde/algo-nmr/field"
	"github.com/cwbudde/algo-nmr/internal/testutil"
)

func BenchmarkCalculateContours(b *testing.B) {
	levels := []float32{0.1, 0.2, 0.4, 0.8, 1.6, 3.2}
	for _, n := range []int{64, 256, 512} {
		data := testutil.WithNoise(testutil.Spectrum([]int{n, n},
			testutil.Peak{Height: 4, Center: []float64{float64(n) / 3, float64(n) / 2}, Linewidth: []float64{float64(n) / 8, float64(n) / 6}},
			testutil.Peak{Shape: testutil.Lorentzian, Height: 2, Center: []float64{float64(n) * 0.7, float64(n) * 0.3}, Linewidth: []float64{float64(n) / 10, float64(n) / 10}},
		), 1, 0.05)

		for _, linker := range []Linker{LinkSpatialIndex, LinkPairwise} {
			if linker == LinkPairwise && n > 256 {
				continue
			}
			tr := NewTracer(WithLinker(linker))
			b.Run(linker.String()+"/"+strconv.Itoa(n), func(b *testing.B) {
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					if _, err := tr.CalculateContours(data, levels); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

func BenchmarkGLList(b *testing.B) {
	data := testutil.GaussianSpectrum([]int{256, 256}, []float64{128, 100}, 10, []float64{40, 60})
	fields := []*field.Field{testutil.WithNoise(data, 2, 0.1)}
	pos := []float32{0.5, 1, 2, 4, 8}
	neg := []float32{-0.5, -1}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = GLList(fields, pos, neg, Colour{1, 0, 0, 1}, Colour{0, 0, 1, 1}, false)
	}
}
