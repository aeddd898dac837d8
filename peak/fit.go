package peak

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-nmr/field"
	"github.com/cwbudde/algo-nmr/internal/core"
	"github.com/cwbudde/algo-nmr/internal/lm"
)

// FitResult is the outcome of a nonlinear fit.
type FitResult struct {
	Peaks []Fit
	// Uncertainties holds one-sigma errors per peak, ordered as height,
	// centers and linewidths.
	Uncertainties     [][]float64
	ReducedChiSquared float64
	Iterations        int
	// Converged is false when the iteration cap was reached first. The
	// parameters are still the best found.
	Converged bool
}

// Fitter fits sums of Gaussian or Lorentzian peaks. A Fitter holds only
// configuration.
type Fitter struct {
	cfg Config
}

// NewFitter creates a fitter with the given options.
func NewFitter(opts ...Option) *Fitter {
	return &Fitter{cfg: ApplyOptions(opts...)}
}

// FitPeaks runs a default Fitter and returns only the fitted peaks.
func FitPeaks(data *field.Field, region Region, peaks [][]float64, method Method) ([]Fit, error) {
	res, err := NewFitter().Fit(data, region, peaks, method)
	if err != nil {
		return nil, err
	}
	return res.Peaks, nil
}

// Fit fits one line shape per initial position to the samples inside
// region.
//
// Each peak starts at the sampled height of its nearest grid point, at the
// given position and with the configured initial linewidth on every axis.
// Fitted positions are absolute grid coordinates and linewidths are
// reported as magnitudes. Convergence is best effort; only a non-finite fit
// state is an error.
func (f *Fitter) Fit(data *field.Field, region Region, peaks [][]float64, method Method) (FitResult, error) {
	if err := method.Validate(); err != nil {
		return FitResult{}, err
	}
	if data == nil {
		return FitResult{}, fmt.Errorf("data: %w", field.ErrInputType)
	}
	if err := region.checkBounds(data); err != nil {
		return FitResult{}, err
	}
	if err := checkPeaks(peaks, data.Rank()); err != nil {
		return FitResult{}, err
	}
	if len(peaks) == 0 {
		return FitResult{Converged: true}, nil
	}

	model := newRegionModel(data, region, method, len(peaks))
	initial := f.initialParams(data, region, peaks)

	sol, err := lm.Solve(model, initial, lm.Settings{
		MaxIterations: f.cfg.MaxIterations,
		Tolerance:     f.cfg.Tolerance,
	})
	if err != nil {
		return FitResult{}, fmt.Errorf("%w: %w", ErrNonConvergence, err)
	}
	f.cfg.logf("peak: %s fit of %d peaks: %d iterations, reduced chi2 %.4g, converged %v",
		method, len(peaks), sol.Iterations, sol.ReducedChiSquared, sol.Converged)

	rank := data.Rank()
	stride := 1 + 2*rank
	res := FitResult{
		Peaks:             make([]Fit, len(peaks)),
		Uncertainties:     make([][]float64, len(peaks)),
		ReducedChiSquared: sol.ReducedChiSquared,
		Iterations:        sol.Iterations,
		Converged:         sol.Converged,
	}
	for j := range peaks {
		p := sol.Params[j*stride : (j+1)*stride]
		fit := Fit{
			Height:    p[0],
			Position:  make([]float64, rank),
			Linewidth: make([]float64, rank),
		}
		for d := range rank {
			fit.Position[d] = p[1+d] + float64(region.First[d])
			fit.Linewidth[d] = math.Abs(p[1+rank+d])
		}
		res.Peaks[j] = fit
		res.Uncertainties[j] = append([]float64(nil), sol.Uncertainties[j*stride:(j+1)*stride]...)
	}

	return res, nil
}

func (f *Fitter) initialParams(data *field.Field, region Region, peaks [][]float64) []float64 {
	rank := data.Rank()
	params := make([]float64, 0, len(peaks)*(1+2*rank))
	grid := make([]int, rank)

	for _, guess := range peaks {
		for d := range rank {
			grid[d] = core.ClampInt(core.RoundIndex(guess[d]), 0, data.Dim(d)-1)
		}
		params = append(params, float64(data.At(grid...)))
		for d := range rank {
			params = append(params, guess[d]-float64(region.First[d]))
		}
		for range rank {
			params = append(params, f.cfg.InitialLinewidth)
		}
	}
	return params
}

// regionModel is the least-squares problem of a sum of separable peaks over
// a cropped region. Coordinates are relative to the region origin.
type regionModel struct {
	method Method
	rank   int
	npeaks int
	extent []int
	// axisIndex[d][k] is the axis-d coordinate of sample k.
	axisIndex [][]int
	obs       []float64

	shape, factor, colA, colB []float64
	profile                   [3][]float64
}

func newRegionModel(data *field.Field, region Region, method Method, npeaks int) *regionModel {
	extent := region.Shape()
	n := region.Len()
	rank := len(extent)

	m := &regionModel{
		method:    method,
		rank:      rank,
		npeaks:    npeaks,
		extent:    extent,
		axisIndex: make([][]int, rank),
		obs:       make([]float64, n),
		shape:     make([]float64, n),
		factor:    make([]float64, n),
		colA:      make([]float64, n),
		colB:      make([]float64, n),
	}
	longest := 0
	for d := range rank {
		m.axisIndex[d] = make([]int, n)
		longest = max(longest, extent[d])
	}
	for i := range m.profile {
		m.profile[i] = make([]float64, longest)
	}

	local := make([]int, rank)
	global := make([]int, rank)
	for k := range n {
		for d := range rank {
			m.axisIndex[d][k] = local[d]
			global[d] = region.First[d] + local[d]
		}
		m.obs[k] = float64(data.At(global...))

		for d := rank - 1; d >= 0; d-- {
			local[d]++
			if local[d] < extent[d] {
				break
			}
			local[d] = 0
		}
	}
	return m
}

func (m *regionModel) NumParams() int    { return m.npeaks * (1 + 2*m.rank) }
func (m *regionModel) NumResiduals() int { return len(m.obs) }

// Residuals writes model minus data.
func (m *regionModel) Residuals(dst, params []float64) {
	vecmath.ScaleBlock(dst, m.obs, -1)
	stride := 1 + 2*m.rank
	for j := range m.npeaks {
		p := params[j*stride : (j+1)*stride]
		m.evalShape(p)
		vecmath.ScaleBlock(m.colA, m.shape, p[0])
		vecmath.AddBlockInPlace(dst, m.colA)
	}
}

// Jacobian fills one column per parameter: the unit-height shape for the
// height, and height*shape*dlog for centers and linewidths.
func (m *regionModel) Jacobian(dst *mat.Dense, params []float64) {
	stride := 1 + 2*m.rank
	for j := range m.npeaks {
		p := params[j*stride : (j+1)*stride]
		m.evalShape(p)
		dst.SetCol(j*stride, m.shape)

		for d := range m.rank {
			m.axisProfile(p, d)
			for which, col := range [2]int{j*stride + 1 + d, j*stride + 1 + m.rank + d} {
				m.expand(d, m.profile[1+which])
				vecmath.MulBlock(m.colA, m.shape, m.factor)
				vecmath.ScaleBlock(m.colB, m.colA, p[0])
				dst.SetCol(col, m.colB)
			}
		}
	}
}

// evalShape fills m.shape with the unit-height line shape of peak p.
func (m *regionModel) evalShape(p []float64) {
	for k := range m.shape {
		m.shape[k] = 1
	}
	for d := range m.rank {
		m.axisProfile(p, d)
		m.expand(d, m.profile[0])
		vecmath.MulBlockInPlace(m.shape, m.factor)
	}
}

// axisProfile evaluates the axis-d factor and its log-derivatives along the
// region extent.
func (m *regionModel) axisProfile(p []float64, d int) {
	center, lw := p[1+d], p[1+m.rank+d]
	for i := range m.extent[d] {
		m.profile[0][i], m.profile[1][i], m.profile[2][i] = m.method.axis(float64(i)-center, lw)
	}
}

// expand broadcasts a per-axis profile over all region samples into m.factor.
func (m *regionModel) expand(d int, profile []float64) {
	for k, i := range m.axisIndex[d] {
		m.factor[k] = profile[i]
	}
}
