/*
Package domain contains the core domain models for the nllfit engine.

It defines the fundamental entities of an unbinned likelihood fit: the
Observable with its fixed physical range, the fit Parameters, the immutable
Dataset, and the EvalError diagnostic records produced when a density
evaluation fails. This package is kept pure and free of external dependencies
like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Observable: a scalar variable with a fixed closed range [Lo, Hi].
  - Parameter: a scalar fit parameter with a value, optional bounds, and an
    optional standard-error estimate.
  - Dataset: an ordered, immutable sequence of observed values.
  - EvalError: a per-event diagnostic record for an invalid density evaluation.
  - FitResult / Curve: the outputs of a fit and of a likelihood scan.
*/
package domain
