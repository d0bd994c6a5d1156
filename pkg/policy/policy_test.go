package policy

import (
	"math"
	"testing"

	"github.com/hepworks/nllfit/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func rec(i int) domain.EvalError {
	return domain.EvalError{
		EventIndex: i,
		Value:      5.25 + float64(i)*0.001,
		Reason:     domain.ReasonOutOfSupport,
		Params:     domain.ParamSnapshot{"m0": 5.25},
	}
}

func TestWallSubstitutesPenalty(t *testing.T) {
	p := Wall(10)
	got := p.Handle(rec(0), math.Inf(1))
	assert.Equal(t, WallValue, got)
	assert.Equal(t, 1, p.Count())
}

func TestPassthroughKeepsFiniteRaw(t *testing.T) {
	p := Passthrough(10, -42)
	assert.Equal(t, 3.5, p.Handle(rec(0), 3.5))
	assert.Equal(t, -42.0, p.Handle(rec(1), math.Inf(1)))
	assert.Equal(t, -42.0, p.Handle(rec(2), math.NaN()))
	assert.Equal(t, 3, p.Count())
}

func TestCapBoundsLog(t *testing.T) {
	p := Wall(3)
	for i := 0; i < 8; i++ {
		p.Handle(rec(i), math.Inf(1))
	}
	assert.Equal(t, 8, p.Count())
	log := p.Log()
	assert.Len(t, log, 3)
	// First-N-encountered, stable order.
	for i, e := range log {
		assert.Equal(t, i, e.EventIndex)
	}
}

func TestCapZeroCountsOnly(t *testing.T) {
	p := Passthrough(0, 0)
	for i := 0; i < 5; i++ {
		p.Handle(rec(i), math.Inf(1))
	}
	assert.Equal(t, 5, p.Count())
	assert.Empty(t, p.Log())
}

func TestNegativeCapIsSilent(t *testing.T) {
	p := Wall(-1)
	for i := 0; i < 5; i++ {
		p.Handle(rec(i), math.Inf(1))
	}
	assert.Equal(t, 0, p.Count())
	assert.Empty(t, p.Log())
}

func TestResetClearsLastEvaluation(t *testing.T) {
	p := Wall(5)
	p.Handle(rec(0), math.Inf(1))
	p.Handle(rec(1), math.Inf(1))
	assert.Equal(t, 2, p.Count())

	p.Reset()
	assert.Equal(t, 0, p.Count())
	assert.Empty(t, p.Log())

	p.Handle(rec(2), math.Inf(1))
	assert.Equal(t, 1, p.Count())
	log := p.Log()
	assert.Len(t, log, 1)
	assert.Equal(t, 2, log[0].EventIndex)
}

func TestLogReturnsCopy(t *testing.T) {
	p := Wall(2)
	p.Handle(rec(0), math.Inf(1))
	log := p.Log()
	log[0].EventIndex = 99
	assert.Equal(t, 0, p.Log()[0].EventIndex)
}
