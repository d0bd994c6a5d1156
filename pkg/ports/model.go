package ports

import "github.com/hepworks/nllfit/pkg/domain"

// Model is a probability density over a single bounded observable. The
// density reads its shape from the model's parameters, whose current values
// are mutated between evaluations by the minimizer driver or by explicit
// user-set calls.
type Model interface {
	// Observable returns the observable the density is defined over.
	Observable() domain.Observable

	// Parameters returns the model's parameters. The returned pointers are
	// the live parameters: setting a value changes subsequent evaluations.
	Parameters() []*domain.Parameter

	// Snapshot captures the current parameter values by name.
	Snapshot() domain.ParamSnapshot

	// Density evaluates the unnormalized density at x under the current
	// parameter values. It fails with domain.ErrOutOfSupport when the model
	// defines zero probability at x.
	Density(x float64) (float64, error)

	// Normalization returns the integral of the unnormalized density over
	// the observable's range under the current parameter values.
	Normalization() (float64, error)

	// Generate draws n independent samples from the normalized density,
	// restricted to the observable's range. It must never place a sample
	// outside the range regardless of where the support boundary sits.
	Generate(n int) (domain.Dataset, error)
}
