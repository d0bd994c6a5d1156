package nllfit_test

import (
	"context"
	"errors"
	"testing"

	"github.com/hepworks/nllfit"
	"github.com/hepworks/nllfit/pkg/domain"
	"github.com/hepworks/nllfit/pkg/pdf"
	"github.com/hepworks/nllfit/pkg/policy"
	"github.com/hepworks/nllfit/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newModel(t *testing.T) (*pdf.Argus, domain.Dataset) {
	t.Helper()
	obs := domain.NewObservable("m", 5.20, 5.30)
	m0 := domain.NewBoundedParameter("m0", 5.291, 5.20, 5.30)
	k := domain.NewBoundedParameter("k", -30, -50, -10)
	model := pdf.NewArgus(obs, m0, k, pdf.WithSeed(606))
	data, err := model.Generate(1000)
	require.NoError(t, err)
	return model, data
}

// gridMinimizer is a deterministic stub: it probes the midpoint of every
// bounded dimension and keeps whichever of init/midpoint scores better.
type gridMinimizer struct {
	calls int
}

func (g *gridMinimizer) Minimize(ctx context.Context, obj ports.Objective, init, lo, hi []float64) (ports.MinResult, error) {
	if err := ctx.Err(); err != nil {
		return ports.MinResult{}, err
	}
	mid := make([]float64, len(init))
	for i := range init {
		mid[i] = (lo[i] + hi[i]) / 2
	}
	g.calls++
	vInit := obj(init)
	vMid := obj(mid)
	if vMid < vInit {
		return ports.MinResult{Best: mid, Value: vMid, Evaluations: 2}, nil
	}
	return ports.MinResult{Best: init, Value: vInit, Evaluations: 2}, nil
}

func TestNewRequiresModelAndData(t *testing.T) {
	model, data := newModel(t)

	_, err := nllfit.New(nil, data)
	assert.Error(t, err)

	_, err = nllfit.New(model, domain.NewDataset("empty", nil))
	assert.Error(t, err)
}

func TestFitWritesBackParameters(t *testing.T) {
	model, data := newModel(t)
	min := &gridMinimizer{}
	fitter, err := nllfit.New(model, data,
		nllfit.WithPolicy(policy.Wall(10)),
		nllfit.WithMinimizer(min),
	)
	require.NoError(t, err)

	res, err := fitter.Fit(context.Background())
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 1, min.calls)
	assert.Equal(t, "wall", res.Policy)

	m0, err := fitter.Parameter("m0")
	require.NoError(t, err)
	assert.Equal(t, res.Params["m0"], m0.Value())
}

func TestFitCanceledContextRestoresParameters(t *testing.T) {
	model, data := newModel(t)
	fitter, err := nllfit.New(model, data, nllfit.WithMinimizer(&gridMinimizer{}))
	require.NoError(t, err)

	m0, err := fitter.Parameter("m0")
	require.NoError(t, err)
	before := m0.Value()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = fitter.Fit(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, before, m0.Value())
}

func TestScanThroughFitter(t *testing.T) {
	model, data := newModel(t)
	fitter, err := nllfit.New(model, data, nllfit.WithPolicy(policy.Passthrough(-1, 0)))
	require.NoError(t, err)

	curve, err := fitter.Scan("m0", 5.288, 5.293, 11,
		nllfit.ShiftToZero(), nllfit.EvalErrorValue(1e6))
	require.NoError(t, err)
	require.Len(t, curve, 11)
	assert.Equal(t, 0.0, curve.MinY())

	_, err = fitter.Scan("nope", 0, 1, 3)
	assert.ErrorIs(t, err, domain.ErrUnknownParameter)

	_, err = fitter.Scan("m0", 5.288, 5.293, 0)
	assert.ErrorIs(t, err, domain.ErrEmptyRange)
}

func TestPolicyDiagnosticsReachableFromFitter(t *testing.T) {
	model, data := newModel(t)
	fitter, err := nllfit.New(model, data, nllfit.WithPolicy(policy.Wall(5)))
	require.NoError(t, err)

	m0, err := fitter.Parameter("m0")
	require.NoError(t, err)
	m0.SetValue(5.25)
	fitter.NLL()

	assert.Greater(t, fitter.Policy().Count(), 0)
	assert.Len(t, fitter.Policy().Log(), 5)
}
