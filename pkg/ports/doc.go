/*
Package ports defines the driven ports (interfaces) for the nllfit engine.

These interfaces decouple the likelihood core from external implementations,
allowing the engine to work with different density models, numerical
optimizers, and result storage backends.

# Key Interfaces

  - Model: a probability density with a parameter-dependent support boundary.
  - Minimizer: an opaque numerical optimizer consuming a scalar objective.
  - ResultStore: persistence for fit results (e.g. in-memory or Redis).
*/
package ports
