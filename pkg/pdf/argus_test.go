package pdf

import (
	"testing"

	"github.com/hepworks/nllfit/internal/integrate"
	"github.com/hepworks/nllfit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testModel(m0Val, kVal float64, opts ...Option) *Argus {
	obs := domain.NewObservable("m", 5.20, 5.30)
	m0 := domain.NewBoundedParameter("m0", m0Val, 5.20, 5.30)
	k := domain.NewBoundedParameter("k", kVal, -50, -10)
	return NewArgus(obs, m0, k, opts...)
}

func TestDensitySupport(t *testing.T) {
	a := testModel(5.291, -30)

	v, err := a.Density(5.25)
	require.NoError(t, err)
	assert.Greater(t, v, 0.0)

	_, err = a.Density(5.291)
	assert.ErrorIs(t, err, domain.ErrOutOfSupport)

	_, err = a.Density(5.295)
	assert.ErrorIs(t, err, domain.ErrOutOfSupport)
}

func TestDensityShrinksWithCutoff(t *testing.T) {
	a := testModel(5.291, -30)
	before, err := a.Density(5.26)
	require.NoError(t, err)

	// Move the cutoff below the query point: the density must vanish there.
	a.m0.SetValue(5.25)
	_, err = a.Density(5.26)
	assert.ErrorIs(t, err, domain.ErrOutOfSupport)
	assert.Greater(t, before, 0.0)
}

func TestNormalizationAnalyticMatchesNumeric(t *testing.T) {
	a := testModel(5.291, -30)

	analytic, err := a.Normalization()
	require.NoError(t, err)
	require.Greater(t, analytic, 0.0)

	numeric := integrate.Midpoint(func(x float64) float64 {
		v, derr := a.Density(x)
		if derr != nil {
			return 0
		}
		return v
	}, 5.20, 5.291, 20000)

	assert.InEpsilon(t, analytic, numeric, 1e-3)
}

func TestNormalizationCutoffInsideRange(t *testing.T) {
	a := testModel(5.25, -30)
	full, err := a.Normalization()
	require.NoError(t, err)
	assert.Greater(t, full, 0.0)

	// No mass when the cutoff sits at or below the range.
	a.m0.SetValue(5.20)
	n, err := a.Normalization()
	require.NoError(t, err)
	assert.Equal(t, 0.0, n)
}

func TestGenerateCount(t *testing.T) {
	a := testModel(5.291, -30, WithSeed(11))
	data, err := a.Generate(500)
	require.NoError(t, err)
	require.Equal(t, 500, data.Len())
	for i := 0; i < data.Len(); i++ {
		x := data.Value(i)
		assert.GreaterOrEqual(t, x, 5.20)
		assert.LessOrEqual(t, x, 5.30)
	}
}

func TestGenerateCutoffBelowRangeTop(t *testing.T) {
	// Cutoff inside the range: all samples stay inside [lo, hi] and below m0.
	a := testModel(5.25, -30, WithSeed(7))
	data, err := a.Generate(300)
	require.NoError(t, err)
	require.Equal(t, 300, data.Len())
	for i := 0; i < data.Len(); i++ {
		x := data.Value(i)
		assert.GreaterOrEqual(t, x, 5.20)
		assert.Less(t, x, 5.25)
	}
}

func TestGenerateDeterministicWithSeed(t *testing.T) {
	first, err := testModel(5.291, -30, WithSeed(42)).Generate(50)
	require.NoError(t, err)
	second, err := testModel(5.291, -30, WithSeed(42)).Generate(50)
	require.NoError(t, err)
	assert.Equal(t, first.Values(), second.Values())
}

func TestGenerateZeroSupport(t *testing.T) {
	a := testModel(5.20, -30, WithSeed(1))
	_, err := a.Generate(10)
	assert.ErrorIs(t, err, domain.ErrZeroSupport)
}

func TestGenerateMassNearCutoff(t *testing.T) {
	// With k = -30 the shape concentrates near the cutoff; a sizable share
	// of events must land in the top slice of the support.
	a := testModel(5.291, -30, WithSeed(3))
	data, err := a.Generate(1000)
	require.NoError(t, err)

	above := 0
	for i := 0; i < data.Len(); i++ {
		if data.Value(i) > 5.25 {
			above++
		}
	}
	assert.Greater(t, above, 100, "expected substantial mass above 5.25")
}
