package domain

// Parameter is a scalar fit parameter. Its value is mutated by the minimizer
// driver during a fit and by explicit SetValue calls; bounds and the
// standard-error estimate are optional.
type Parameter struct {
	name    string
	value   float64
	lo, hi  float64
	bounded bool
	stderr  float64
}

// NewParameter creates an unbounded parameter.
func NewParameter(name string, value float64) *Parameter {
	return &Parameter{name: name, value: value}
}

// NewBoundedParameter creates a parameter constrained to [lo, hi].
func NewBoundedParameter(name string, value, lo, hi float64) *Parameter {
	return &Parameter{name: name, value: value, lo: lo, hi: hi, bounded: true}
}

// Name returns the parameter name.
func (p *Parameter) Name() string { return p.name }

// Value returns the current value.
func (p *Parameter) Value() float64 { return p.value }

// SetValue updates the current value. Bounds are advisory for the minimizer;
// SetValue does not clamp.
func (p *Parameter) SetValue(v float64) { p.value = v }

// Bounds returns the allowed range and whether the parameter is bounded.
func (p *Parameter) Bounds() (lo, hi float64, ok bool) {
	return p.lo, p.hi, p.bounded
}

// Error returns the standard-error estimate (zero if never set).
func (p *Parameter) Error() float64 { return p.stderr }

// SetError records a standard-error estimate for the parameter.
func (p *Parameter) SetError(e float64) { p.stderr = e }

// ParamSnapshot is a by-name capture of parameter values at a point in time.
type ParamSnapshot map[string]float64

// Snapshot captures the current values of the given parameters.
func Snapshot(params []*Parameter) ParamSnapshot {
	s := make(ParamSnapshot, len(params))
	for _, p := range params {
		s[p.Name()] = p.Value()
	}
	return s
}
