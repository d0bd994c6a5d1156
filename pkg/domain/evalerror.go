package domain

// Evaluation error reasons as recorded in EvalError diagnostics.
const (
	ReasonOutOfSupport  = "out of support"
	ReasonZeroDensity   = "non-positive density"
	ReasonNonFinite     = "non-finite log-density"
	ReasonBadNormalized = "invalid normalization"
)

// EvalError is a per-event diagnostic record raised when a density evaluation
// at a point is invalid (zero, negative, or undefined). Records are transient:
// they are consumed by the active evaluation error policy and reflect only the
// most recent likelihood evaluation.
type EvalError struct {
	// EventIndex is the position of the offending event in the dataset.
	EventIndex int `json:"event_index"`
	// Value is the observable value of the offending event.
	Value float64 `json:"value"`
	// Reason is one of the Reason* constants.
	Reason string `json:"reason"`
	// Params is the parameter snapshot at the time of the evaluation.
	Params ParamSnapshot `json:"params"`
}
