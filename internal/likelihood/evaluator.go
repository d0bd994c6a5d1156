// Package likelihood aggregates per-event log-density contributions into a
// scalar negative log-likelihood, routing evaluation errors through a
// configurable policy, and samples likelihood curves over parameter ranges.
package likelihood

import (
	"log/slog"
	"math"
	"time"

	"github.com/hepworks/nllfit/pkg/domain"
	"github.com/hepworks/nllfit/pkg/policy"
	"github.com/hepworks/nllfit/pkg/ports"
)

// Evaluator computes the unbinned negative log-likelihood of a dataset under
// a model.
//
// Each NLL call resets the policy's diagnostic state, so the policy's Count
// and Log reflect only the most recent evaluation. A single Evaluator must
// not be used concurrently: the diagnostic state lives on the policy
// instance and is mutated in place during a pass.
type Evaluator struct {
	model  ports.Model
	data   domain.Dataset
	pol    policy.Policy
	hooks  domain.LifecycleHooks
	logger *slog.Logger

	// lastErrors counts offending events of the most recent pass regardless
	// of the policy's diagnostic cap, so curve masking and metrics keep
	// working under a silent policy.
	lastErrors int
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithHooks registers observability hooks.
func WithHooks(h domain.LifecycleHooks) Option {
	return func(e *Evaluator) {
		e.hooks = h
	}
}

// WithLogger sets a structured logger for per-evaluation summaries.
func WithLogger(l *slog.Logger) Option {
	return func(e *Evaluator) {
		e.logger = l
	}
}

// New creates an evaluator for model and data under the given policy.
func New(model ports.Model, data domain.Dataset, pol policy.Policy, opts ...Option) *Evaluator {
	e := &Evaluator{model: model, data: data, pol: pol}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Policy returns the active evaluation error policy.
func (e *Evaluator) Policy() policy.Policy { return e.pol }

// Model returns the evaluator's model.
func (e *Evaluator) Model() ports.Model { return e.model }

// Data returns the evaluator's dataset.
func (e *Evaluator) Data() domain.Dataset { return e.data }

// LastErrors returns the number of offending events in the most recent NLL
// call, independent of the policy's diagnostic cap.
func (e *Evaluator) LastErrors() int { return e.lastErrors }

// NLL computes the negative log-likelihood of the dataset under the current
// parameter values. Per-event evaluation errors never abort the pass; they
// are absorbed by the policy and reflected in its Count and Log.
func (e *Evaluator) NLL() float64 {
	e.pol.Reset()
	e.lastErrors = 0
	start := time.Now()
	if e.hooks.OnEvalStart != nil {
		e.hooks.OnEvalStart(e.data.Len())
	}

	norm, nerr := e.model.Normalization()
	normOK := nerr == nil && norm > 0 && !math.IsInf(norm, 0) && !math.IsNaN(norm)

	// One snapshot per pass; every diagnostic of this evaluation shares it.
	snap := e.model.Snapshot()

	sum := 0.0
	for i := 0; i < e.data.Len(); i++ {
		x := e.data.Value(i)
		raw, reason := e.contribution(x, norm, normOK)
		if reason == "" {
			sum += raw
			continue
		}
		e.lastErrors++
		rec := domain.EvalError{EventIndex: i, Value: x, Reason: reason, Params: snap}
		if e.hooks.OnEvalError != nil {
			e.hooks.OnEvalError(rec)
		}
		sum += e.pol.Handle(rec, raw)
	}

	if e.logger != nil && e.pol.Count() > 0 {
		e.logger.Warn("likelihood evaluation errors",
			"policy", e.pol.Name(),
			"count", e.pol.Count(),
			"params", snap,
		)
	}
	if e.hooks.OnEvalEnd != nil {
		e.hooks.OnEvalEnd(domain.EvalEvent{
			NLL:        sum,
			Events:     e.data.Len(),
			ErrorCount: e.lastErrors,
			Duration:   time.Since(start),
		})
	}
	return sum
}

// contribution computes the raw -log(density/norm) for one event. A non-empty
// reason marks the contribution as invalid; raw then carries the actual
// (possibly non-finite) value for passthrough handling.
func (e *Evaluator) contribution(x, norm float64, normOK bool) (raw float64, reason string) {
	v, err := e.model.Density(x)
	switch {
	case err != nil:
		return math.Inf(1), domain.ReasonOutOfSupport
	case v <= 0:
		return math.Inf(1), domain.ReasonZeroDensity
	case !normOK:
		return math.Inf(1), domain.ReasonBadNormalized
	}
	c := -math.Log(v / norm)
	if math.IsNaN(c) || math.IsInf(c, 0) {
		return c, domain.ReasonNonFinite
	}
	return c, ""
}
