package peak

import (
	"strconv"
	"testing"

	"github.com/cwbudde/algo-nmr/internal/testutil"
)

func BenchmarkFindPeaks(b *testing.B) {
	for _, n := range []int{64, 256} {
		data := testutil.WithNoise(testutil.Spectrum([]int{n, n},
			testutil.Peak{Height: 10, Center: []float64{float64(n) / 3, float64(n) / 2}, Linewidth: []float64{4, 5}},
			testutil.Peak{Height: -6, Center: []float64{float64(n) * 0.7, float64(n) * 0.2}, Linewidth: []float64{3, 3}},
		), 5, 0.1)
		params := FindParams{HaveHigh: true, High: 2, HaveLow: true, Low: -2, DropFactor: 0.3, MinLinewidth: []float32{1, 1}}

		b.Run("adjacent/"+strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_, _ = FindPeaks(data, params)
			}
		})
		params.Nonadjacent = true
		b.Run("nonadjacent/"+strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_, _ = FindPeaks(data, params)
			}
		})
	}
}

func BenchmarkFitPeaks(b *testing.B) {
	data := testutil.GaussianSpectrum([]int{40, 40}, []float64{20.3, 19.6}, 100, []float64{3, 4})
	region, err := NewRegion([]int{12, 12}, []int{28, 28})
	if err != nil {
		b.Fatal(err)
	}
	peaks := [][]float64{{20, 20}}

	for _, method := range []Method{MethodGaussian, MethodLorentzian} {
		b.Run(method.String(), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := FitPeaks(data, region, peaks, method); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkFitParabolicPeaks(b *testing.B) {
	data := testutil.GaussianSpectrum([]int{64, 64, 32}, []float64{30.2, 31.7, 15.4}, 50, []float64{3, 3, 2})
	region, err := NewRegion([]int{0, 0, 0}, []int{63, 63, 31})
	if err != nil {
		b.Fatal(err)
	}
	peaks := [][]float64{{30, 32, 15}, {10, 10, 10}, {60, 2, 30}}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = FitParabolicPeaks(data, region, peaks)
	}
}
