// Package testutil provides synthetic spectra and tolerance assertions for
// tests.
package testutil

import (
	"github.com/cwbudde/algo-nmr/field"
	"github.com/cwbudde/algo-nmr/internal/synth"
)

// Peak describes one synthetic peak, see [synth.Peak].
type Peak = synth.Peak

const (
	Gaussian   = synth.Gaussian
	Lorentzian = synth.Lorentzian
)

// Spectrum renders the sum of peaks and panics on a dimension mismatch.
func Spectrum(shape []int, peaks ...Peak) *field.Field {
	f, err := synth.Render(shape, peaks...)
	if err != nil {
		panic(err)
	}
	return f
}

// GaussianSpectrum renders a single Gaussian peak.
func GaussianSpectrum(shape []int, center []float64, height float64, linewidth []float64) *field.Field {
	return Spectrum(shape, Peak{Shape: Gaussian, Height: height, Center: center, Linewidth: linewidth})
}

// LorentzianSpectrum renders a single Lorentzian peak.
func LorentzianSpectrum(shape []int, center []float64, height float64, linewidth []float64) *field.Field {
	return Spectrum(shape, Peak{Shape: Lorentzian, Height: height, Center: center, Linewidth: linewidth})
}

// WithNoise returns a copy of f with deterministic uniform noise added.
func WithNoise(f *field.Field, seed int64, amplitude float64) *field.Field {
	return synth.AddNoise(f, seed, amplitude)
}

// Constant returns a field filled with value.
func Constant(value float32, shape ...int) *field.Field {
	f, err := field.Zeros(shape...)
	if err != nil {
		panic(err)
	}
	data := f.Data()
	for i := range data {
		data[i] = value
	}
	return f
}
