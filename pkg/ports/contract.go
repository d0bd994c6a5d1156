package ports

import (
	"context"
	"testing"
	"time"

	"github.com/hepworks/nllfit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunResultStoreContract runs a suite of tests to verify that a ResultStore
// implementation adheres to the defined interface contract.
func RunResultStoreContract(t *testing.T, store ResultStore) {
	ctx := context.Background()
	id := "contract-test-result-" + time.Now().Format("20060102150405")

	res := &domain.FitResult{
		NLL:        -1234.5,
		Params:     domain.ParamSnapshot{"m0": 5.291, "k": -30},
		Policy:     "wall",
		ErrorCount: 3,
		ErrorLog: []domain.EvalError{
			{EventIndex: 7, Value: 5.295, Reason: domain.ReasonOutOfSupport,
				Params: domain.ParamSnapshot{"m0": 5.25, "k": -30}},
		},
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}

	t.Run("Save and Load", func(t *testing.T) {
		err := store.Save(ctx, id, res)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, res.NLL, loaded.NLL)
		assert.Equal(t, res.Policy, loaded.Policy)
		assert.Equal(t, res.ErrorCount, loaded.ErrorCount)
		assert.InDelta(t, res.Params["m0"], loaded.Params["m0"], 1e-12)
		require.Len(t, loaded.ErrorLog, 1)
		assert.Equal(t, 7, loaded.ErrorLog[0].EventIndex)
		assert.Equal(t, domain.ReasonOutOfSupport, loaded.ErrorLog[0].Reason)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+id)
		assert.ErrorIs(t, err, domain.ErrResultNotFound)
	})

	t.Run("List", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, id, res))
		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, id, res))
		require.NoError(t, store.Delete(ctx, id))

		_, err := store.Load(ctx, id)
		assert.ErrorIs(t, err, domain.ErrResultNotFound)

		// Idempotent
		assert.NoError(t, store.Delete(ctx, id))
	})
}
