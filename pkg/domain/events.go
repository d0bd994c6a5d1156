package domain

import "time"

// EvalEvent summarizes one full likelihood evaluation (one pass over all
// events at a fixed parameter vector).
type EvalEvent struct {
	NLL        float64
	Events     int
	ErrorCount int
	Duration   time.Duration
}

// ScanEvent describes one completed grid point of a likelihood scan.
type ScanEvent struct {
	Parameter string
	X         float64
	Y         float64
}

// LifecycleHooks allows hosts to observe the engine without coupling it to a
// specific logging or metrics backend. All hooks are optional; nil hooks are
// skipped. Hooks fire regardless of the policy's diagnostic cap — a silent
// policy suppresses its own count and log, not host observability.
type LifecycleHooks struct {
	// OnEvalStart fires before a likelihood evaluation, with the event count.
	OnEvalStart func(events int)
	// OnEvalError fires for every offending event, before the policy
	// substitutes its contribution.
	OnEvalError func(e EvalError)
	// OnEvalEnd fires after the evaluation has been summed.
	OnEvalEnd func(e EvalEvent)
	// OnScanPoint fires after each grid point of a scan.
	OnScanPoint func(e ScanEvent)
}
