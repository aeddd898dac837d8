package peak

import (
	"fmt"
	"math"
)

const (
	degenerateCurvature = 1e-10
	fourLn2             = 4 * math.Ln2
)

// FitParabolic1D fits y = ax² + bx + c through samples at x = -1, 0, 1 and
// returns the vertex offset from the middle sample, the height at the vertex
// and the full width at half of that height.
func FitParabolic1D(left, middle, right float64) (offset, height, linewidth float64, err error) {
	a := 0.5 * (left + right - 2*middle)
	b := 0.5 * (right - left)
	c := middle

	if math.Abs(a) < degenerateCurvature {
		return 0, 0, 0, fmt.Errorf("%w: curvature %g", ErrDegenerateFit, a)
	}

	offset = -b / (2 * a)
	height = a*offset*offset + b*offset + c

	disc := b*b - 4*a*(c-0.5*height)
	if disc <= 0 {
		return 0, 0, 0, fmt.Errorf("%w: no half-height crossing", ErrDegenerateFit)
	}
	half := (math.Sqrt(disc) - b) / (2 * a)
	linewidth = 2 * math.Abs(offset-half)

	return offset, height, linewidth, nil
}

// Method selects the line shape of a nonlinear fit.
type Method int

const (
	MethodGaussian   Method = 0
	MethodLorentzian Method = 1
)

// ParseMethod converts a numeric selector (0 Gaussian, 1 Lorentzian).
func ParseMethod(v int) (Method, error) {
	m := Method(v)
	if err := m.Validate(); err != nil {
		return 0, err
	}
	return m, nil
}

// Validate returns ErrInvalidMethod for unknown methods.
func (m Method) Validate() error {
	switch m {
	case MethodGaussian, MethodLorentzian:
		return nil
	default:
		return fmt.Errorf("%w: %d (want 0 Gaussian or 1 Lorentzian)", ErrInvalidMethod, int(m))
	}
}

func (m Method) String() string {
	switch m {
	case MethodGaussian:
		return "gaussian"
	case MethodLorentzian:
		return "lorentzian"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// axis evaluates the one-axis factor of the line shape at offset dx from
// the center, and the derivatives of its logarithm with respect to the
// center and the linewidth.
func (m Method) axis(dx, lw float64) (v, dlogCenter, dlogWidth float64) {
	if m == MethodLorentzian {
		den := lw*lw + 4*dx*dx
		return lw * lw / den, 8 * dx / den, 8 * dx * dx / (lw * den)
	}
	u := dx / lw
	return math.Exp(-fourLn2 * u * u), 2 * fourLn2 * dx / (lw * lw), 2 * fourLn2 * dx * dx / (lw * lw * lw)
}

// Gaussian is the separable line shape
// h·exp(-4ln2·Σ((x_d-c_d)/lw_d)²).
type Gaussian struct {
	Height    float64
	Center    []float64
	Linewidth []float64
}

// Validate checks dimensions and that every linewidth is positive.
func (g Gaussian) Validate() error { return validateShape(g.Center, g.Linewidth) }

// Value evaluates the model at x.
func (g Gaussian) Value(x []float64) float64 {
	return value(MethodGaussian, g.Height, g.Center, g.Linewidth, x)
}

// Gradient writes the partial derivatives at x into dst, ordered as height,
// centers (one per axis) and linewidths (one per axis). dst must hold
// 1+2N values.
func (g Gaussian) Gradient(x, dst []float64) {
	gradient(MethodGaussian, g.Height, g.Center, g.Linewidth, x, dst)
}

// Lorentzian is the separable line shape h·Π lw_d²/(lw_d²+4(x_d-c_d)²).
type Lorentzian struct {
	Height    float64
	Center    []float64
	Linewidth []float64
}

// Validate checks dimensions and that every linewidth is positive.
func (l Lorentzian) Validate() error { return validateShape(l.Center, l.Linewidth) }

// Value evaluates the model at x.
func (l Lorentzian) Value(x []float64) float64 {
	return value(MethodLorentzian, l.Height, l.Center, l.Linewidth, x)
}

// Gradient writes the partial derivatives at x into dst in the same order
// as [Gaussian.Gradient].
func (l Lorentzian) Gradient(x, dst []float64) {
	gradient(MethodLorentzian, l.Height, l.Center, l.Linewidth, x, dst)
}

func validateShape(center, linewidth []float64) error {
	if len(center) != len(linewidth) {
		return fmt.Errorf("peak: %d centers for %d linewidths", len(center), len(linewidth))
	}
	for d, lw := range linewidth {
		if !(lw > 0) {
			return fmt.Errorf("%w: axis %d has %g", ErrInvalidLinewidth, d, lw)
		}
	}
	return nil
}

func value(m Method, h float64, center, lw, x []float64) float64 {
	v := h
	for d := range center {
		f, _, _ := m.axis(x[d]-center[d], lw[d])
		v *= f
	}
	return v
}

func gradient(m Method, h float64, center, lw, x, dst []float64) {
	n := len(center)
	shape := 1.0
	for d := range n {
		f, dc, dw := m.axis(x[d]-center[d], lw[d])
		shape *= f
		dst[1+d] = dc
		dst[1+n+d] = dw
	}
	dst[0] = shape
	for j := 1; j <= 2*n; j++ {
		dst[j] *= h * shape
	}
}
