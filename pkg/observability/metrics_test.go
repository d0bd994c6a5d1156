package observability

import (
	"testing"
	"time"

	"github.com/hepworks/nllfit/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestHooksRecordMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	hooks := m.Hooks()

	hooks.OnEvalError(domain.EvalError{Reason: domain.ReasonOutOfSupport})
	hooks.OnEvalError(domain.EvalError{Reason: domain.ReasonOutOfSupport})
	hooks.OnEvalError(domain.EvalError{Reason: domain.ReasonZeroDensity})
	hooks.OnEvalEnd(domain.EvalEvent{NLL: -100, Events: 10, Duration: time.Millisecond})
	hooks.OnScanPoint(domain.ScanEvent{Parameter: "m0", X: 5.29, Y: 1})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.evaluations))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.evalErrors.WithLabelValues(domain.ReasonOutOfSupport)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.evalErrors.WithLabelValues(domain.ReasonZeroDensity)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.scanPoints))
}
