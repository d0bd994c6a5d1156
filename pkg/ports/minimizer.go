package ports

import "context"

// Objective is a scalar function of a parameter vector. Large returned
// values mean "bad, move away"; the minimizer must not interpret them as a
// special signal.
type Objective func(x []float64) float64

// MinResult is the outcome of one minimization.
type MinResult struct {
	// Best is the parameter vector at the located minimum.
	Best []float64
	// Value is the objective value at Best.
	Value float64
	// Evaluations is the number of objective calls made, when known.
	Evaluations int
}

// Minimizer is an opaque numerical optimizer. init, lo and hi must have the
// same length; lo/hi entries may be -Inf/+Inf for unbounded dimensions.
type Minimizer interface {
	Minimize(ctx context.Context, obj Objective, init, lo, hi []float64) (MinResult, error)
}
