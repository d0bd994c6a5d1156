package domain

import "time"

// FitResult captures the outcome of one minimization.
type FitResult struct {
	// NLL is the negative log-likelihood at the fitted parameter values.
	NLL float64 `json:"nll"`
	// Params holds the fitted parameter values.
	Params ParamSnapshot `json:"params"`
	// Policy names the evaluation error policy the fit ran under.
	Policy string `json:"policy"`
	// ErrorCount is the number of offending events in the final evaluation.
	ErrorCount int `json:"error_count"`
	// ErrorLog holds the retained diagnostics of the final evaluation.
	ErrorLog []EvalError `json:"error_log,omitempty"`
	// Evaluations is the number of objective calls the minimizer made.
	Evaluations int `json:"evaluations"`
	// CreatedAt is when the fit completed.
	CreatedAt time.Time `json:"created_at"`
}

// ScanPoint is one (x, y) sample of a likelihood curve.
type ScanPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Curve is an ordered sequence of scan points.
type Curve []ScanPoint

// MinY returns the smallest y value on the curve, or 0 for an empty curve.
func (c Curve) MinY() float64 {
	if len(c) == 0 {
		return 0
	}
	m := c[0].Y
	for _, p := range c[1:] {
		if p.Y < m {
			m = p.Y
		}
	}
	return m
}
