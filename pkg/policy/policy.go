/*
Package policy implements evaluation error policies for likelihood
evaluations over a bounded-support density.

A policy decides, per offending event, what that event contributes to the
aggregate negative log-likelihood, and accumulates diagnostics for the most
recent evaluation. Two variants exist:

  - Wall: substitute a large finite penalty, repelling the minimizer from
    the problematic parameter region. This is the default and the safe
    choice.
  - Passthrough: pass the actual (possibly broken) contribution through,
    clamping only non-finite values to a sentinel. Dangerous: broken -log(L)
    values can be lower than good ones, creating spurious minima.
*/
package policy

import (
	"math"

	"github.com/hepworks/nllfit/pkg/domain"
)

// WallValue is the per-event penalty contribution substituted by the Wall
// policy. It is large enough to dominate any realistic likelihood sum while
// staying finite for the minimizer.
const WallValue = 1e30

// Policy handles per-event evaluation errors during one likelihood pass.
//
// Reset is called at the start of every evaluation; Count and Log therefore
// reflect only the most recent one. The diagnostic cap governs Log: with cap
// N > 0 the first N offending events of the pass are retained (deterministic
// first-N-encountered order); with N == 0 events are counted but not
// recorded; with N < 0 the policy is silent and both Count and Log stay
// empty.
type Policy interface {
	// Name identifies the policy variant ("wall" or "passthrough").
	Name() string
	// Reset clears the diagnostic state for a new evaluation.
	Reset()
	// Handle consumes one offending event and returns the contribution to
	// add to the aggregate. raw is the actual -log contribution, which may
	// be infinite or NaN.
	Handle(rec domain.EvalError, raw float64) float64
	// Count returns the number of offending events in the last evaluation.
	Count() int
	// Log returns the retained diagnostic records of the last evaluation.
	Log() []domain.EvalError
}

// recorder implements the shared cap/count/log semantics.
type recorder struct {
	cap   int
	count int
	log   []domain.EvalError
}

func (r *recorder) Reset() {
	r.count = 0
	r.log = r.log[:0]
}

func (r *recorder) observe(rec domain.EvalError) {
	if r.cap < 0 {
		return
	}
	r.count++
	if r.cap > 0 && len(r.log) < r.cap {
		r.log = append(r.log, rec)
	}
}

func (r *recorder) Count() int { return r.count }

func (r *recorder) Log() []domain.EvalError {
	out := make([]domain.EvalError, len(r.log))
	copy(out, r.log)
	return out
}

// WallPolicy substitutes WallValue for every offending event.
type WallPolicy struct {
	recorder
}

// Wall creates the default evaluation error policy with the given diagnostic
// cap.
func Wall(cap int) *WallPolicy {
	return &WallPolicy{recorder{cap: cap}}
}

// Name implements Policy.
func (p *WallPolicy) Name() string { return "wall" }

// Handle implements Policy: the raw value is discarded and the wall penalty
// is returned.
func (p *WallPolicy) Handle(rec domain.EvalError, raw float64) float64 {
	p.observe(rec)
	return WallValue
}

// PassthroughPolicy passes the actual contribution through, clamping only
// non-finite values to a sentinel. It does not force a large objective
// value, so the aggregate likelihood can come out numerically "better" than
// a correct fit in problematic regions.
type PassthroughPolicy struct {
	recorder
	sentinel float64
}

// Passthrough creates a passthrough policy with the given diagnostic cap and
// non-finite clamp value.
func Passthrough(cap int, sentinel float64) *PassthroughPolicy {
	return &PassthroughPolicy{recorder: recorder{cap: cap}, sentinel: sentinel}
}

// Name implements Policy.
func (p *PassthroughPolicy) Name() string { return "passthrough" }

// Sentinel returns the configured non-finite clamp value.
func (p *PassthroughPolicy) Sentinel() float64 { return p.sentinel }

// Handle implements Policy: finite raw values pass through unchanged;
// non-finite ones clamp to the sentinel.
func (p *PassthroughPolicy) Handle(rec domain.EvalError, raw float64) float64 {
	p.observe(rec)
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return p.sentinel
	}
	return raw
}
