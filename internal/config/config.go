// Package config loads fit scenario files.
//
// A scenario describes the observable, the model parameters, how many events
// to sample, the fits to run, and an optional likelihood scan. The top level
// is strict YAML; per-fit option maps are decoded with mapstructure so fits
// can carry policy-specific settings without a rigid schema.
package config

import (
	"fmt"
	"os"

	"github.com/hepworks/nllfit/pkg/domain"
	"github.com/hepworks/nllfit/pkg/pdf"
	"github.com/hepworks/nllfit/pkg/policy"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Scenario is a complete fit configuration.
type Scenario struct {
	Observable ObservableConfig  `yaml:"observable"`
	Parameters []ParameterConfig `yaml:"parameters"`
	Events     int               `yaml:"events"`
	Seed       uint64            `yaml:"seed"`
	NormBins   int               `yaml:"norm_bins"`
	Fits       []FitConfig       `yaml:"fits"`
	Scan       *ScanConfig       `yaml:"scan"`
}

// ObservableConfig describes the observable and its physical range.
type ObservableConfig struct {
	Name string  `yaml:"name"`
	Lo   float64 `yaml:"lo"`
	Hi   float64 `yaml:"hi"`
}

// ParameterConfig describes one model parameter.
type ParameterConfig struct {
	Name  string   `yaml:"name"`
	Value float64  `yaml:"value"`
	Lo    *float64 `yaml:"lo"`
	Hi    *float64 `yaml:"hi"`
}

// FitConfig describes one fit pass.
type FitConfig struct {
	Name    string         `yaml:"name"`
	Policy  string         `yaml:"policy"`
	Options map[string]any `yaml:"options"`
}

// ScanConfig describes a likelihood scan.
type ScanConfig struct {
	Parameter  string         `yaml:"parameter"`
	Lo         float64        `yaml:"lo"`
	Hi         float64        `yaml:"hi"`
	Points     int            `yaml:"points"`
	Shift      bool           `yaml:"shift"`
	Policy     string         `yaml:"policy"`
	Options    map[string]any `yaml:"options"`
	ErrorValue *float64       `yaml:"error_value"`
}

// PolicyOptions are the per-fit options shared by both policy variants.
type PolicyOptions struct {
	// PrintErrors is the diagnostic cap: >0 retains that many records,
	// 0 counts only, <0 is silent.
	PrintErrors int `mapstructure:"print_errors"`
	// Sentinel is the non-finite clamp for the passthrough policy.
	Sentinel float64 `mapstructure:"sentinel"`
}

// Default returns the reference scenario: the ARGUS shape on [5.20, 5.30]
// with a floated cutoff, 1000 events, a wall fit, a passthrough fit, and a
// shifted scan across the problematic region.
func Default() *Scenario {
	lo520, hi530 := 5.20, 5.30
	klo, khi := -50.0, -10.0
	return &Scenario{
		Observable: ObservableConfig{Name: "m", Lo: 5.20, Hi: 5.30},
		Parameters: []ParameterConfig{
			{Name: "m0", Value: 5.291, Lo: &lo520, Hi: &hi530},
			{Name: "k", Value: -30, Lo: &klo, Hi: &khi},
		},
		Events: 1000,
		Seed:   606,
		Fits: []FitConfig{
			{Name: "wall", Policy: "wall", Options: map[string]any{"print_errors": 10}},
			{Name: "passthrough", Policy: "passthrough", Options: map[string]any{"print_errors": 0}},
		},
		Scan: &ScanConfig{
			Parameter: "m0", Lo: 5.288, Hi: 5.293, Points: 51,
			Shift: true, Policy: "passthrough",
			Options: map[string]any{"print_errors": -1},
		},
	}
}

// Load reads a scenario file, applying it over Default.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return s, nil
}

// Validate checks structural consistency.
func (s *Scenario) Validate() error {
	if s.Observable.Hi <= s.Observable.Lo {
		return fmt.Errorf("observable range [%g, %g] is empty", s.Observable.Lo, s.Observable.Hi)
	}
	if s.Events <= 0 {
		return fmt.Errorf("events must be positive, got %d", s.Events)
	}
	names := map[string]bool{}
	for _, p := range s.Parameters {
		if p.Name == "" {
			return fmt.Errorf("parameter with empty name")
		}
		if names[p.Name] {
			return fmt.Errorf("duplicate parameter %q", p.Name)
		}
		names[p.Name] = true
	}
	if !names["m0"] || !names["k"] {
		return fmt.Errorf("the argus model requires parameters m0 and k")
	}
	for _, f := range s.Fits {
		if f.Policy != "wall" && f.Policy != "passthrough" {
			return fmt.Errorf("fit %q: unknown policy %q", f.Name, f.Policy)
		}
	}
	if s.Scan != nil {
		if !names[s.Scan.Parameter] {
			return fmt.Errorf("scan parameter %q is not defined", s.Scan.Parameter)
		}
		if s.Scan.Points <= 0 {
			return fmt.Errorf("scan needs at least one grid point")
		}
	}
	return nil
}

// DecodeOptions decodes a per-fit option map.
func DecodeOptions(m map[string]any) (PolicyOptions, error) {
	var opts PolicyOptions
	if m == nil {
		return opts, nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &opts,
		ErrorUnused: true,
	})
	if err != nil {
		return opts, err
	}
	if err := dec.Decode(m); err != nil {
		return opts, fmt.Errorf("decode fit options: %w", err)
	}
	return opts, nil
}

// BuildPolicy constructs the policy for a fit or scan configuration.
func BuildPolicy(name string, m map[string]any) (policy.Policy, error) {
	opts, err := DecodeOptions(m)
	if err != nil {
		return nil, err
	}
	switch name {
	case "wall", "":
		return policy.Wall(opts.PrintErrors), nil
	case "passthrough":
		return policy.Passthrough(opts.PrintErrors, opts.Sentinel), nil
	default:
		return nil, fmt.Errorf("unknown policy %q", name)
	}
}

// Model builds the ARGUS model the scenario describes.
func (s *Scenario) Model() (*pdf.Argus, error) {
	obs := domain.NewObservable(s.Observable.Name, s.Observable.Lo, s.Observable.Hi)
	params := make(map[string]*domain.Parameter, len(s.Parameters))
	for _, pc := range s.Parameters {
		if pc.Lo != nil && pc.Hi != nil {
			params[pc.Name] = domain.NewBoundedParameter(pc.Name, pc.Value, *pc.Lo, *pc.Hi)
		} else {
			params[pc.Name] = domain.NewParameter(pc.Name, pc.Value)
		}
	}
	m0, k := params["m0"], params["k"]
	if m0 == nil || k == nil {
		return nil, fmt.Errorf("the argus model requires parameters m0 and k")
	}
	opts := []pdf.Option{pdf.WithSeed(s.Seed)}
	if s.NormBins > 0 {
		opts = append(opts, pdf.WithNormBins(s.NormBins))
	}
	return pdf.NewArgus(obs, m0, k, opts...), nil
}
