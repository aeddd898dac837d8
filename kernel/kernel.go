// Package kernel exposes the contour and peak routines behind call contracts
// that accept loosely typed numeric arrays.
//
// A Kernel is an explicit strategy object: callers pick the tracer, locator
// and fitter settings when constructing it instead of flipping a global
// switch. Inputs may be *field.Field values or nested slices and arrays of
// any numeric type; they are converted to float32 before processing.
package kernel

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/cwbudde/algo-nmr/contour"
	"github.com/cwbudde/algo-nmr/field"
	"github.com/cwbudde/algo-nmr/peak"
)

// ErrNotImplemented is returned by FitPeaks when the kernel was built
// without a nonlinear fit backend.
var ErrNotImplemented = errors.New("kernel: not implemented")

// Kernel bundles configured contour and peak components. It holds no
// mutable state and may be shared between goroutines.
type Kernel struct {
	cfg     Config
	tracer  *contour.Tracer
	locator *peak.Locator
	fitter  *peak.Fitter
}

// New creates a kernel with the given options.
func New(opts ...Option) *Kernel {
	cfg := ApplyOptions(opts...)
	k := &Kernel{
		cfg:     cfg,
		tracer:  contour.NewTracer(cfg.ContourOptions...),
		locator: peak.NewLocator(cfg.LocatorOptions...),
	}
	if cfg.FitBackend {
		k.fitter = peak.NewFitter(cfg.FitterOptions...)
	}
	return k
}

// Config returns the kernel configuration.
func (k *Kernel) Config() Config { return k.cfg }

// CalculateContours traces a rank-2 array at each level.
func (k *Kernel) CalculateContours(data, levels any) (contour.Result, error) {
	f, err := field.FromValues(data)
	if err != nil {
		return nil, fmt.Errorf("data: %w", err)
	}
	lv, err := field.Vector(levels)
	if err != nil {
		return nil, fmt.Errorf("levels: %w", err)
	}
	return k.tracer.CalculateContours(f, lv)
}

// ContourerGLList traces every array at the positive and negative levels
// and packs the polylines into line buffers. Colours must have exactly four
// components and flatten must be 0 or 1.
func (k *Kernel) ContourerGLList(dataArrays []any, posLevels, negLevels, posColour, negColour any, flatten int) (contour.GLBuffer, error) {
	if flatten != 0 && flatten != 1 {
		return contour.GLBuffer{}, fmt.Errorf("flatten: %w: must be 0 or 1, got %d", field.ErrInputType, flatten)
	}

	fields := make([]*field.Field, len(dataArrays))
	for i, a := range dataArrays {
		f, err := field.FromValues(a)
		if err != nil {
			return contour.GLBuffer{}, fmt.Errorf("dataArray %d: %w", i, err)
		}
		fields[i] = f
	}

	pos, err := field.Vector(posLevels)
	if err != nil {
		return contour.GLBuffer{}, fmt.Errorf("posLevels: %w", err)
	}
	neg, err := field.Vector(negLevels)
	if err != nil {
		return contour.GLBuffer{}, fmt.Errorf("negLevels: %w", err)
	}
	pc, err := colour(posColour)
	if err != nil {
		return contour.GLBuffer{}, fmt.Errorf("posColour: %w", err)
	}
	nc, err := colour(negColour)
	if err != nil {
		return contour.GLBuffer{}, fmt.Errorf("negColour: %w", err)
	}

	return k.tracer.GLList(fields, pos, neg, pc, nc, flatten == 1)
}

// FindPeaks locates extrema in an N-D array.
func (k *Kernel) FindPeaks(data any, params peak.FindParams) ([]peak.Extremum, error) {
	f, err := field.FromValues(data)
	if err != nil {
		return nil, fmt.Errorf("data: %w", err)
	}
	return k.locator.FindPeaks(f, params)
}

// FitParabolicPeaks refines initial positions with parabolic fits. region is
// a 2 x N integer array and peaks a P x N array of positions.
func (k *Kernel) FitParabolicPeaks(data, region, peaks any) ([]peak.Fit, error) {
	f, r, p, err := fitInputs(data, region, peaks)
	if err != nil {
		return nil, err
	}
	return peak.FitParabolicPeaks(f, r, p)
}

// FitPeaks fits Gaussian (method 0) or Lorentzian (method 1) line shapes.
func (k *Kernel) FitPeaks(data, region, peaks any, method int) ([]peak.Fit, error) {
	m, err := peak.ParseMethod(method)
	if err != nil {
		return nil, err
	}
	if k.fitter == nil {
		return nil, fmt.Errorf("%w: no nonlinear fit backend configured", ErrNotImplemented)
	}

	f, r, p, err := fitInputs(data, region, peaks)
	if err != nil {
		return nil, err
	}
	res, err := k.fitter.Fit(f, r, p, m)
	if err != nil {
		return nil, err
	}
	return res.Peaks, nil
}

func fitInputs(data, region, peaks any) (*field.Field, peak.Region, [][]float64, error) {
	f, err := field.FromValues(data)
	if err != nil {
		return nil, peak.Region{}, nil, fmt.Errorf("data: %w", err)
	}
	r, err := coerceRegion(region, f.Rank())
	if err != nil {
		return nil, peak.Region{}, nil, fmt.Errorf("regionArray: %w", err)
	}
	p, err := coercePeaks(peaks, f.Rank())
	if err != nil {
		return nil, peak.Region{}, nil, fmt.Errorf("peakArray: %w", err)
	}
	return f, r, p, nil
}

func coerceRegion(v any, rank int) (peak.Region, error) {
	if r, ok := v.(peak.Region); ok {
		return r, nil
	}
	f, err := field.FromValues(v)
	if err != nil {
		return peak.Region{}, err
	}
	if f.Rank() != 2 || f.Dim(0) != 2 || f.Dim(1) != rank {
		return peak.Region{}, fmt.Errorf("%w: need shape [2 %d], got %v", field.ErrInputShape, rank, f.Shape())
	}

	first := make([]int, rank)
	last := make([]int, rank)
	for d := range rank {
		first[d] = int(f.At(0, d))
		last[d] = int(f.At(1, d))
	}
	return peak.NewRegion(first, last)
}

func coercePeaks(v any, rank int) ([][]float64, error) {
	if p, ok := v.([][]float64); ok {
		return p, nil
	}
	if rv := reflect.ValueOf(v); rv.IsValid() && rv.Kind() == reflect.Slice && rv.Len() == 0 {
		return nil, nil
	}

	f, err := field.FromValues(v)
	if err != nil {
		return nil, err
	}
	if f.Rank() != 2 || f.Dim(1) != rank {
		return nil, fmt.Errorf("%w: need shape [npeaks %d], got %v", field.ErrInputShape, rank, f.Shape())
	}

	out := make([][]float64, f.Dim(0))
	for j := range out {
		out[j] = make([]float64, rank)
		for d := range rank {
			out[j][d] = float64(f.At(j, d))
		}
	}
	return out, nil
}

func colour(v any) (contour.Colour, error) {
	c, err := field.Vector(v)
	if err != nil {
		return contour.Colour{}, err
	}
	if len(c) != 4 {
		return contour.Colour{}, fmt.Errorf("%w: need 4 components, got %d", field.ErrInputShape, len(c))
	}
	return contour.Colour(c), nil
}
