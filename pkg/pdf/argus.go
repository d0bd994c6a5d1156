package pdf

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/hepworks/nllfit/internal/integrate"
	"github.com/hepworks/nllfit/pkg/domain"
)

// Argus is the ARGUS background shape over an observable m:
//
//	f(m; m0, k) = m * sqrt(u) * exp(k*u),  u = 1 - (m/m0)^2
//
// for m < m0, and zero beyond the cutoff. The density is unnormalized;
// Normalization returns its integral over the observable's range.
type Argus struct {
	obs      domain.Observable
	m0       *domain.Parameter
	k        *domain.Parameter
	normBins int
	rng      *rand.Rand
}

// Option configures an Argus model.
type Option func(*Argus)

// WithNormBins sets the bin count for the numeric normalization fallback.
func WithNormBins(n int) Option {
	return func(a *Argus) {
		a.normBins = n
	}
}

// WithSeed seeds the sampling generator, making Generate deterministic.
func WithSeed(seed uint64) Option {
	return func(a *Argus) {
		a.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// NewArgus creates an ARGUS model over obs with cutoff parameter m0 and
// shape parameter k.
func NewArgus(obs domain.Observable, m0, k *domain.Parameter, opts ...Option) *Argus {
	a := &Argus{
		obs:      obs,
		m0:       m0,
		k:        k,
		normBins: integrate.DefaultBins,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.rng == nil {
		a.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return a
}

// Observable returns the observable the density is defined over.
func (a *Argus) Observable() domain.Observable { return a.obs }

// Parameters returns the live model parameters, cutoff first.
func (a *Argus) Parameters() []*domain.Parameter {
	return []*domain.Parameter{a.m0, a.k}
}

// Snapshot captures the current parameter values.
func (a *Argus) Snapshot() domain.ParamSnapshot {
	return domain.Snapshot(a.Parameters())
}

// Density evaluates the unnormalized ARGUS shape at x.
// It fails with domain.ErrOutOfSupport for x at or beyond the cutoff.
func (a *Argus) Density(x float64) (float64, error) {
	m0 := a.m0.Value()
	if m0 <= 0 || x >= m0 {
		return 0, domain.ErrOutOfSupport
	}
	u := 1 - (x/m0)*(x/m0)
	v := x * math.Sqrt(u) * math.Exp(a.k.Value()*u)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, domain.ErrNonFinite
	}
	return v, nil
}

// Normalization integrates the unnormalized density over the observable's
// range under the current parameter values. For k < 0 it uses the closed
// form in terms of erf; otherwise it falls back to a midpoint bin sum.
// The integral is zero when the cutoff sits at or below the range.
func (a *Argus) Normalization() (float64, error) {
	m0 := a.m0.Value()
	lo := a.obs.Lo
	hi := math.Min(a.obs.Hi, m0)
	if m0 <= 0 || hi <= lo {
		return 0, nil
	}
	if k := a.k.Value(); k < 0 {
		return a.antiderivative(hi) - a.antiderivative(lo), nil
	}
	n := integrate.Midpoint(func(x float64) float64 {
		v, err := a.Density(x)
		if err != nil {
			return 0
		}
		return v
	}, lo, hi, a.normBins)
	return n, nil
}

// antiderivative is an antiderivative of the unnormalized shape, valid for
// k < 0 and lo <= m <= m0.
func (a *Argus) antiderivative(m float64) float64 {
	m0 := a.m0.Value()
	k := a.k.Value()
	u := 1 - (m/m0)*(m/m0)
	if u < 0 {
		u = 0
	}
	return -0.5 * m0 * m0 * (math.Exp(k*u)*math.Sqrt(u)/k +
		0.5/math.Pow(-k, 1.5)*math.Sqrt(math.Pi)*math.Erf(math.Sqrt(-k*u)))
}

// Generate draws n independent samples via rejection sampling restricted to
// the observable's range. Samples never fall outside the range regardless of
// where the cutoff sits. It fails with domain.ErrZeroSupport when the model
// has no probability mass inside the range.
func (a *Argus) Generate(n int) (domain.Dataset, error) {
	if n < 0 {
		return domain.Dataset{}, fmt.Errorf("negative sample count %d", n)
	}
	norm, err := a.Normalization()
	if err != nil {
		return domain.Dataset{}, err
	}
	if norm <= 0 {
		return domain.Dataset{}, domain.ErrZeroSupport
	}

	ceiling := a.envelope()
	if ceiling <= 0 {
		return domain.Dataset{}, domain.ErrZeroSupport
	}

	values := make([]float64, 0, n)
	// Rejection sampling over the full range; points beyond the cutoff have
	// zero density and are rejected like any other.
	const maxTries = 10000
	for len(values) < n {
		accepted := false
		for try := 0; try < maxTries; try++ {
			x := a.obs.Lo + a.rng.Float64()*a.obs.Width()
			v, derr := a.Density(x)
			if derr != nil {
				continue
			}
			if a.rng.Float64()*ceiling <= v {
				values = append(values, x)
				accepted = true
				break
			}
		}
		if !accepted {
			return domain.Dataset{}, fmt.Errorf("rejection sampling stalled after %d tries: %w",
				maxTries, domain.ErrZeroSupport)
		}
	}
	return domain.NewDataset(a.obs.Name, values), nil
}

// envelope returns an upper bound on the density over the sampling range,
// from a coarse grid with a safety margin.
func (a *Argus) envelope() float64 {
	const gridPoints = 512
	hi := math.Min(a.obs.Hi, a.m0.Value())
	max := 0.0
	for i := 0; i <= gridPoints; i++ {
		x := a.obs.Lo + (hi-a.obs.Lo)*float64(i)/gridPoints
		v, err := a.Density(x)
		if err == nil && v > max {
			max = v
		}
	}
	return max * 1.1
}
