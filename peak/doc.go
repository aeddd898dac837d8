// Package peak locates, refines and fits peaks in N-dimensional fields.
//
// The package provides three levels of precision:
//
//   - [Locator.FindPeaks] scans the grid for local extrema above a threshold
//   - [FitParabolicPeaks] refines grid positions with three-point parabolas
//   - [Fitter.Fit] runs a damped least-squares fit of Gaussian or
//     Lorentzian line shapes over a region
//
// Positions are fractional grid coordinates in axis order (first axis
// first). Linewidths are full widths at half maximum in grid units.
package peak
