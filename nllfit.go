package nllfit

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/hepworks/nllfit/internal/likelihood"
	"github.com/hepworks/nllfit/internal/logging"
	"github.com/hepworks/nllfit/pkg/adapters/simplex"
	"github.com/hepworks/nllfit/pkg/domain"
	"github.com/hepworks/nllfit/pkg/policy"
	"github.com/hepworks/nllfit/pkg/ports"
)

// Version is the library version, set at build time for releases.
var Version = "0.1.0"

// Fitter is the high-level entry point for the nllfit library. It wraps the
// internal likelihood evaluator and scanner and drives the configured
// minimizer.
//
// A Fitter is not safe for concurrent use: the model parameters and the
// policy's diagnostic state are shared mutable state.
type Fitter struct {
	model     ports.Model
	data      domain.Dataset
	pol       policy.Policy
	minimizer ports.Minimizer
	hooks     domain.LifecycleHooks
	logger    *slog.Logger

	eval    *likelihood.Evaluator
	scanner *likelihood.Scanner
}

// Option defines a functional option for configuring the Fitter.
type Option func(*Fitter)

// WithPolicy selects the evaluation error policy (default: Wall with a
// count-only diagnostic cap).
func WithPolicy(p policy.Policy) Option {
	return func(f *Fitter) {
		f.pol = p
	}
}

// WithMinimizer injects a custom minimizer, bypassing the default simplex
// adapter.
func WithMinimizer(m ports.Minimizer) Option {
	return func(f *Fitter) {
		f.minimizer = m
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(h domain.LifecycleHooks) Option {
	return func(f *Fitter) {
		f.hooks = h
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(f *Fitter) {
		f.logger = l
	}
}

// New creates a Fitter for the model and dataset.
func New(model ports.Model, data domain.Dataset, opts ...Option) (*Fitter, error) {
	if model == nil {
		return nil, fmt.Errorf("model is required")
	}
	if data.Len() == 0 {
		return nil, fmt.Errorf("dataset %q is empty", data.Name())
	}

	f := &Fitter{model: model, data: data}
	for _, opt := range opts {
		opt(f)
	}
	if f.pol == nil {
		f.pol = policy.Wall(0)
	}
	if f.minimizer == nil {
		f.minimizer = simplex.New()
	}
	if f.logger == nil {
		f.logger = logging.NewNop()
	}

	f.eval = likelihood.New(model, data, f.pol,
		likelihood.WithHooks(f.hooks),
		likelihood.WithLogger(f.logger),
	)
	f.scanner = likelihood.NewScanner(f.eval)
	return f, nil
}

// NLL evaluates the negative log-likelihood at the current parameter values.
func (f *Fitter) NLL() float64 {
	return f.eval.NLL()
}

// Policy returns the active evaluation error policy. Its Count and Log
// reflect the most recent evaluation.
func (f *Fitter) Policy() policy.Policy { return f.pol }

// Parameter looks up a model parameter by name.
func (f *Fitter) Parameter(name string) (*domain.Parameter, error) {
	for _, p := range f.model.Parameters() {
		if p.Name() == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("parameter %q: %w", name, domain.ErrUnknownParameter)
}

// Fit minimizes the negative log-likelihood over the model parameters. The
// fitted values are written back into the parameters; on error the original
// values are restored.
func (f *Fitter) Fit(ctx context.Context) (*domain.FitResult, error) {
	params := f.model.Parameters()
	init := make([]float64, len(params))
	lo := make([]float64, len(params))
	hi := make([]float64, len(params))
	for i, p := range params {
		init[i] = p.Value()
		if plo, phi, ok := p.Bounds(); ok {
			lo[i], hi[i] = plo, phi
		} else {
			lo[i], hi[i] = math.Inf(-1), math.Inf(1)
		}
	}

	obj := func(x []float64) float64 {
		for i, p := range params {
			p.SetValue(x[i])
		}
		return f.eval.NLL()
	}

	start := time.Now()
	res, err := f.minimizer.Minimize(ctx, obj, init, lo, hi)
	if err != nil {
		for i, p := range params {
			p.SetValue(init[i])
		}
		return nil, fmt.Errorf("fit failed: %w", err)
	}

	// Re-evaluate at the minimum in full precision so the result and the
	// policy diagnostics describe the fitted point.
	for i, p := range params {
		p.SetValue(res.Best[i])
	}
	nll := f.eval.NLL()

	result := &domain.FitResult{
		NLL:         nll,
		Params:      f.model.Snapshot(),
		Policy:      f.pol.Name(),
		ErrorCount:  f.pol.Count(),
		ErrorLog:    f.pol.Log(),
		Evaluations: res.Evaluations,
		CreatedAt:   time.Now().UTC(),
	}
	f.logger.Info("fit complete",
		"policy", f.pol.Name(),
		"nll", nll,
		"eval_errors", f.eval.LastErrors(),
		"evaluations", res.Evaluations,
		"duration", time.Since(start),
	)
	return result, nil
}

// ScanOption configures a likelihood scan.
type ScanOption = likelihood.ScanOption

// ShiftToZero subtracts the minimum from every scan point after the full
// sweep, so the curve's minimum sits at zero.
func ShiftToZero() ScanOption {
	return likelihood.Shifted()
}

// EvalErrorValue pins scan points whose evaluation reported errors at v,
// masking broken regions of the curve.
func EvalErrorValue(v float64) ScanOption {
	return likelihood.ErrorValue(v)
}

// Scan sweeps the named parameter over [lo, hi] on a uniform grid of points
// and records the negative log-likelihood at each grid point. The
// parameter's original value is restored afterwards.
func (f *Fitter) Scan(param string, lo, hi float64, points int, opts ...ScanOption) (domain.Curve, error) {
	p, err := f.Parameter(param)
	if err != nil {
		return nil, err
	}
	return f.scanner.Scan(p, likelihood.Range{Lo: lo, Hi: hi, Points: points}, opts...)
}
