package likelihood

import (
	"fmt"
	"math"

	"github.com/hepworks/nllfit/pkg/domain"
)

// Range describes a uniform scan grid over a parameter.
type Range struct {
	Lo, Hi float64
	Points int
}

// ScanOption configures a single scan.
type ScanOption func(*scanConfig)

type scanConfig struct {
	shift       bool
	errValue    float64
	errValueSet bool
}

// Shifted subtracts the minimum y from every point after the full sweep, so
// the curve's minimum sits at zero.
func Shifted() ScanOption {
	return func(c *scanConfig) {
		c.shift = true
	}
}

// ErrorValue pins grid points whose evaluation reported errors at v instead
// of the computed likelihood value, masking broken regions of the curve.
func ErrorValue(v float64) ScanOption {
	return func(c *scanConfig) {
		c.errValue = v
		c.errValueSet = true
	}
}

// Scanner evaluates an Evaluator over parameter grids to produce plottable
// likelihood curves.
type Scanner struct {
	eval *Evaluator
}

// NewScanner creates a scanner over the evaluator.
func NewScanner(e *Evaluator) *Scanner {
	return &Scanner{eval: e}
}

// Scan sweeps param over r, evaluating the negative log-likelihood at each
// grid point. The parameter's original value is restored afterwards. It
// fails with domain.ErrEmptyRange when the grid is empty and with
// domain.ErrUnknownParameter when param does not belong to the model.
func (s *Scanner) Scan(param *domain.Parameter, r Range, opts ...ScanOption) (domain.Curve, error) {
	var cfg scanConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if r.Points <= 0 {
		return nil, fmt.Errorf("scan %q over [%g, %g]: %w", param.Name(), r.Lo, r.Hi, domain.ErrEmptyRange)
	}
	if !s.owns(param) {
		return nil, fmt.Errorf("scan %q: %w", param.Name(), domain.ErrUnknownParameter)
	}

	orig := param.Value()
	defer param.SetValue(orig)

	curve := make(domain.Curve, 0, r.Points)
	for i := 0; i < r.Points; i++ {
		x := r.Lo
		if r.Points > 1 {
			x = r.Lo + (r.Hi-r.Lo)*float64(i)/float64(r.Points-1)
		}
		param.SetValue(x)
		y := s.eval.NLL()
		if cfg.errValueSet && s.eval.LastErrors() > 0 {
			y = cfg.errValue
		}
		if s.eval.hooks.OnScanPoint != nil {
			s.eval.hooks.OnScanPoint(domain.ScanEvent{Parameter: param.Name(), X: x, Y: y})
		}
		curve = append(curve, domain.ScanPoint{X: x, Y: y})
	}

	if cfg.shift {
		// Post-hoc: the minimum is only known after the full sweep.
		min := math.Inf(1)
		for _, p := range curve {
			if p.Y < min {
				min = p.Y
			}
		}
		for i := range curve {
			curve[i].Y -= min
		}
	}
	return curve, nil
}

func (s *Scanner) owns(param *domain.Parameter) bool {
	for _, p := range s.eval.model.Parameters() {
		if p == param {
			return true
		}
	}
	return false
}
