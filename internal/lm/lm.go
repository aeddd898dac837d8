// Package lm implements a damped Gauss-Newton (Levenberg-Marquardt)
// least-squares solver over gonum matrices.
package lm

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ErrNonFinite is returned when residuals or the Jacobian contain NaN or Inf.
var ErrNonFinite = errors.New("lm: non-finite residuals")

const (
	defaultMaxIterations = 100
	defaultTolerance     = 1e-8
	initialDamping       = 1e-3
	maxDamping           = 1e12
	dampingFloor         = 1e-12
)

// Problem is a nonlinear least-squares model. Residuals are model minus
// data; the Jacobian has one row per residual and one column per parameter.
type Problem interface {
	NumParams() int
	NumResiduals() int
	Residuals(dst, params []float64)
	Jacobian(dst *mat.Dense, params []float64)
}

// Settings controls the iteration.
type Settings struct {
	// MaxIterations bounds the number of accepted or rejected Jacobian
	// evaluations. Zero selects 100.
	MaxIterations int
	// Tolerance is the relative decrease in the sum of squares, and the
	// relative step size, below which the fit is considered converged.
	// Zero selects 1e-8.
	Tolerance float64
}

// Result holds the solution.
type Result struct {
	Params []float64
	// Uncertainties are one-sigma parameter errors scaled by the reduced
	// chi-squared. They are NaN when the normal matrix is singular or there
	// are no degrees of freedom.
	Uncertainties []float64
	// ChiSquared is the final sum of squared residuals.
	ChiSquared float64
	// ReducedChiSquared is ChiSquared divided by the degrees of freedom.
	ReducedChiSquared float64
	Iterations        int
	Converged         bool
}

// Solve minimises the sum of squared residuals of p starting from initial.
// Reaching the iteration limit is not an error; Result.Converged reports it.
func Solve(p Problem, initial []float64, s Settings) (Result, error) {
	n, m := p.NumParams(), p.NumResiduals()
	if len(initial) != n {
		return Result{}, fmt.Errorf("lm: %d initial parameters for %d-parameter problem", len(initial), n)
	}
	if s.MaxIterations <= 0 {
		s.MaxIterations = defaultMaxIterations
	}
	if s.Tolerance <= 0 {
		s.Tolerance = defaultTolerance
	}

	params := append([]float64(nil), initial...)
	trial := make([]float64, n)
	res := make([]float64, m)
	trialRes := make([]float64, m)

	p.Residuals(res, params)
	chi := floats.Dot(res, res)
	if !finite(chi) {
		return Result{}, ErrNonFinite
	}

	jac := mat.NewDense(m, n, nil)
	normal := mat.NewSymDense(n, nil)
	damped := mat.NewSymDense(n, nil)
	var grad, step mat.VecDense
	var chol mat.Cholesky

	lambda := initialDamping
	converged := false
	iter := 0

	for iter < s.MaxIterations && !converged {
		iter++

		p.Jacobian(jac, params)
		if !finite(mat.Sum(jac)) {
			return Result{}, fmt.Errorf("%w: jacobian at iteration %d", ErrNonFinite, iter)
		}
		normal.SymOuterK(1, jac.T())
		grad.MulVec(jac.T(), mat.NewVecDense(m, res))

		damped.CopySym(normal)
		for j := range n {
			d := normal.At(j, j)
			damped.SetSym(j, j, d+lambda*math.Max(d, dampingFloor))
		}

		if !chol.Factorize(damped) {
			lambda *= 10
			if lambda > maxDamping {
				break
			}
			continue
		}
		if err := chol.SolveVecTo(&step, &grad); err != nil {
			lambda *= 10
			if lambda > maxDamping {
				break
			}
			continue
		}

		delta := step.RawVector().Data
		floats.AddScaledTo(trial, params, -1, delta)
		p.Residuals(trialRes, trial)
		trialChi := floats.Dot(trialRes, trialRes)

		if !finite(trialChi) || trialChi >= chi {
			lambda *= 10
			if lambda > maxDamping {
				// No downhill step left at any damping: a local minimum.
				converged = true
			}
			continue
		}

		decrease := (chi - trialChi) / math.Max(chi, math.SmallestNonzeroFloat64)
		stepNorm := floats.Norm(delta, 2)
		copy(params, trial)
		copy(res, trialRes)
		chi = trialChi
		lambda = math.Max(lambda/10, dampingFloor)

		if decrease < s.Tolerance || stepNorm < s.Tolerance*(floats.Norm(params, 2)+s.Tolerance) {
			converged = true
		}
	}

	out := Result{
		Params:     params,
		ChiSquared: chi,
		Iterations: iter,
		Converged:  converged,
	}
	dof := m - n
	if dof > 0 {
		out.ReducedChiSquared = chi / float64(dof)
	}
	out.Uncertainties = uncertainties(p, jac, params, out.ReducedChiSquared, dof)
	return out, nil
}

// uncertainties returns sqrt(diag((JᵀJ)⁻¹) * reducedChi) at params.
func uncertainties(p Problem, jac *mat.Dense, params []float64, reducedChi float64, dof int) []float64 {
	n := len(params)
	out := make([]float64, n)
	for j := range out {
		out[j] = math.NaN()
	}
	if dof <= 0 {
		return out
	}

	p.Jacobian(jac, params)
	normal := mat.NewSymDense(n, nil)
	normal.SymOuterK(1, jac.T())

	var chol mat.Cholesky
	if !chol.Factorize(normal) {
		return out
	}
	var cov mat.SymDense
	if err := chol.InverseTo(&cov); err != nil {
		return out
	}
	for j := range out {
		if v := cov.At(j, j) * reducedChi; v >= 0 {
			out[j] = math.Sqrt(v)
		}
	}
	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
