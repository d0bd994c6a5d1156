// Package simplex adapts the Nelder-Mead simplex optimizer from
// github.com/andrew-torda/goutil to the ports.Minimizer interface.
package simplex

import (
	"context"
	"fmt"
	"math"

	gosimplex "github.com/andrew-torda/goutil/simplex"
	"github.com/hepworks/nllfit/pkg/ports"
)

// Minimizer runs a bounded Nelder-Mead search. The zero value is not usable;
// construct with New.
type Minimizer struct {
	maxSteps int
	restarts int
}

// Option configures the minimizer.
type Option func(*Minimizer)

// WithMaxSteps bounds the number of simplex steps per restart.
func WithMaxSteps(n int) Option {
	return func(m *Minimizer) {
		m.maxSteps = n
	}
}

// WithRestarts sets how many times the search is restarted from the best
// point found. The simplex method is fragile from a single start; two starts
// are much more tolerant.
func WithRestarts(n int) Option {
	return func(m *Minimizer) {
		m.restarts = n
	}
}

// New creates a simplex minimizer with sensible defaults.
func New(opts ...Option) *Minimizer {
	m := &Minimizer{maxSteps: 500, restarts: 2}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Minimize implements ports.Minimizer. Infinite bounds entries are clamped
// to the float32 range the underlying library works in.
func (m *Minimizer) Minimize(ctx context.Context, obj ports.Objective, init, lo, hi []float64) (ports.MinResult, error) {
	if len(init) == 0 || len(init) != len(lo) || len(init) != len(hi) {
		return ports.MinResult{}, fmt.Errorf("minimize: init/lo/hi length mismatch (%d/%d/%d)",
			len(init), len(lo), len(hi))
	}

	evals := 0
	cost := func(x []float32) (float32, error) {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		evals++
		return float32(obj(toF64(x))), nil
	}

	ctrl := gosimplex.NewSplxCtrl(cost, toF32(init), m.maxSteps)
	if err := ctrl.Span(spans(init, lo, hi)); err != nil {
		return ports.MinResult{}, fmt.Errorf("simplex span: %w", err)
	}
	ctrl.Lower(clampF32(lo, -1))
	ctrl.Upper(clampF32(hi, 1))

	res, err := ctrl.Run(m.restarts)
	if cerr := ctx.Err(); cerr != nil {
		return ports.MinResult{}, cerr
	}
	if err != nil {
		return ports.MinResult{}, fmt.Errorf("simplex run: %w", err)
	}

	best := toF64(res.BestPrm)
	// Evaluate once more at the minimum: reports the objective in full
	// precision and leaves the model parameters at the fitted values.
	value := obj(best)
	return ports.MinResult{Best: best, Value: value, Evaluations: evals + 1}, nil
}

// spans derives the initial simplex spread per dimension: a quarter of the
// bounded range, or a tenth of the start value for unbounded dimensions.
func spans(init, lo, hi []float64) []float32 {
	out := make([]float32, len(init))
	for i := range init {
		w := hi[i] - lo[i]
		switch {
		case !math.IsInf(w, 0) && w > 0:
			out[i] = float32(w / 4)
		case init[i] != 0:
			out[i] = float32(math.Abs(init[i]) / 10)
		default:
			out[i] = 1
		}
	}
	return out
}

func clampF32(v []float64, sign int) []float32 {
	out := make([]float32, len(v))
	for i, x := range v {
		if math.IsInf(x, 0) {
			out[i] = float32(sign) * math.MaxFloat32 / 4
			continue
		}
		out[i] = float32(x)
	}
	return out
}

func toF32(v []float64) []float32 {
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(x)
	}
	return out
}

func toF64(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}
