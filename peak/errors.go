package peak

import "errors"

var (
	// ErrDegenerateFit is returned when a parabola is flat or has no
	// half-height crossing.
	ErrDegenerateFit = errors.New("peak: degenerate parabolic fit")
	// ErrBoundary is returned when a three-point fit would need a
	// neighbour outside the array.
	ErrBoundary = errors.New("peak: point on array boundary")
	// ErrInvalidMethod is returned for a fit method other than Gaussian or
	// Lorentzian.
	ErrInvalidMethod = errors.New("peak: invalid fit method")
	// ErrInvalidLinewidth is returned when a model linewidth is not positive.
	ErrInvalidLinewidth = errors.New("peak: linewidth must be positive")
	// ErrNonConvergence is returned when the nonlinear fit reaches a
	// non-finite state.
	ErrNonConvergence = errors.New("peak: fit did not converge")
)
