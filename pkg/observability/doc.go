/*
Package observability provides Prometheus instrumentation for the nllfit
engine.

Metrics are attached through domain.LifecycleHooks rather than baked into the
likelihood core, so hosts that do not scrape metrics pay nothing.
*/
package observability
