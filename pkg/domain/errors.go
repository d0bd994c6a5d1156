package domain

import "errors"

// ErrOutOfSupport is returned when the density is queried at a point where
// the model defines zero probability (beyond the kinematic cutoff).
var ErrOutOfSupport = errors.New("point outside model support")

// ErrNonFinite is returned when a density or log-density evaluates to an
// undefined or infinite value.
var ErrNonFinite = errors.New("non-finite likelihood contribution")

// ErrEmptyRange is returned when a likelihood scan is requested over a range
// containing zero grid points.
var ErrEmptyRange = errors.New("scan range contains no grid points")

// ErrUnknownParameter is returned when an operation references a parameter
// that does not belong to the model.
var ErrUnknownParameter = errors.New("parameter does not belong to model")

// ErrZeroSupport is returned when the model has no probability mass inside
// the observable's range and therefore cannot be sampled.
var ErrZeroSupport = errors.New("model has no support inside observable range")

// ErrResultNotFound is returned when a fit result ID cannot be found in the
// store.
var ErrResultNotFound = errors.New("fit result not found")
