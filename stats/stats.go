// Package stats summarises the intensities of a field and estimates its
// noise level for contour bases and peak thresholds.
package stats

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-nmr/field"
)

// madScale converts a median absolute deviation to a Gaussian standard
// deviation.
const madScale = 1.4826

// Summary holds intensity statistics of a field.
type Summary struct {
	Count    int
	Mean     float64
	RMS      float64
	Variance float64 // population variance
	StdDev   float64
	Max      float64
	MaxPos   []int
	Min      float64
	MinPos   []int
	AbsMax   float64 // max(|Max|, |Min|)
	Skewness float64
	Kurtosis float64 // excess kurtosis
}

// Calculate computes all statistics in a single pass using Welford's online
// algorithm for the higher-order moments. A nil field yields a zero Summary.
func Calculate(f *field.Field) Summary {
	if f == nil {
		return Summary{}
	}
	data := f.Data()
	n := len(data)

	var mean, m2, m3, m4, sumSq float64
	maxVal, minVal := float64(data[0]), float64(data[0])
	maxOff, minOff := 0, 0

	for i, v := range data {
		x := float64(v)

		ni := float64(i + 1)
		delta := x - mean
		deltaN := delta / ni
		deltaN2 := deltaN * deltaN
		term1 := delta * deltaN * float64(i)

		// M4 before M3 before M2.
		m4 += term1*deltaN2*(ni*ni-3*ni+3) + 6*deltaN2*m2 - 4*deltaN*m3
		m3 += term1*deltaN*(float64(i)-1) - 3*deltaN*m2
		m2 += term1
		mean += deltaN

		sumSq += x * x

		if x > maxVal {
			maxVal, maxOff = x, i
		}
		if x < minVal {
			minVal, minOff = x, i
		}
	}

	nf := float64(n)
	variance := m2 / nf

	var skewness, kurtosis float64
	if variance > 0 {
		skewness = (m3 / nf) / (variance * math.Sqrt(variance))
		kurtosis = (m4/nf)/(variance*variance) - 3
	}

	s := Summary{
		Count:    n,
		Mean:     mean,
		RMS:      math.Sqrt(sumSq / nf),
		Variance: variance,
		StdDev:   math.Sqrt(variance),
		Max:      maxVal,
		MaxPos:   make([]int, f.Rank()),
		Min:      minVal,
		MinPos:   make([]int, f.Rank()),
		AbsMax:   math.Max(math.Abs(maxVal), math.Abs(minVal)),
		Skewness: skewness,
		Kurtosis: kurtosis,
	}
	f.Unravel(maxOff, s.MaxPos)
	f.Unravel(minOff, s.MinPos)
	return s
}

// Noise estimates the standard deviation of the noise floor from the median
// absolute deviation around the median. Peaks occupy a small fraction of a
// typical spectrum and barely move either median.
func Noise(f *field.Field) float64 {
	if f == nil {
		return 0
	}
	x := make([]float64, f.Len())
	for i, v := range f.Data() {
		x[i] = float64(v)
	}
	slices.Sort(x)
	median := stat.Quantile(0.5, stat.Empirical, x, nil)

	for i, v := range x {
		x[i] = math.Abs(v - median)
	}
	slices.Sort(x)
	return madScale * stat.Quantile(0.5, stat.Empirical, x, nil)
}
