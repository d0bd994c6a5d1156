package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultScenarioIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeScenario(t, `
events: 250
seed: 7
fits:
  - name: strict
    policy: wall
    options:
      print_errors: 3
`)
	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 250, s.Events)
	assert.Equal(t, uint64(7), s.Seed)
	require.Len(t, s.Fits, 1)
	assert.Equal(t, "strict", s.Fits[0].Name)

	// Untouched sections keep the defaults.
	assert.Equal(t, 5.20, s.Observable.Lo)
	assert.Equal(t, 5.30, s.Observable.Hi)
}

func TestLoadRejectsUnknownPolicy(t *testing.T) {
	path := writeScenario(t, `
fits:
  - name: broken
    policy: lenient
`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "unknown policy")
}

func TestDecodeOptions(t *testing.T) {
	opts, err := DecodeOptions(map[string]any{"print_errors": 10, "sentinel": -5.5})
	require.NoError(t, err)
	assert.Equal(t, 10, opts.PrintErrors)
	assert.Equal(t, -5.5, opts.Sentinel)
}

func TestDecodeOptionsRejectsUnknownKeys(t *testing.T) {
	_, err := DecodeOptions(map[string]any{"print_erors": 10})
	assert.Error(t, err)
}

func TestBuildPolicy(t *testing.T) {
	p, err := BuildPolicy("wall", map[string]any{"print_errors": 5})
	require.NoError(t, err)
	assert.Equal(t, "wall", p.Name())

	p, err = BuildPolicy("passthrough", nil)
	require.NoError(t, err)
	assert.Equal(t, "passthrough", p.Name())

	_, err = BuildPolicy("nope", nil)
	assert.Error(t, err)
}

func TestModelFromScenario(t *testing.T) {
	model, err := Default().Model()
	require.NoError(t, err)

	assert.Equal(t, "m", model.Observable().Name)
	params := model.Parameters()
	require.Len(t, params, 2)
	assert.Equal(t, "m0", params[0].Name())
	assert.Equal(t, 5.291, params[0].Value())

	lo, hi, bounded := params[1].Bounds()
	assert.True(t, bounded)
	assert.Equal(t, -50.0, lo)
	assert.Equal(t, -10.0, hi)
}
