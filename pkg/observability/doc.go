/*
Package observability provides Prometheus instrumentation for the phrase engine.

Metrics are wired through domain.LifecycleHooks so the runtime stays unaware of
the metrics backend. A dedicated registry is used so several generators (or
tests) never collide on the global default registry.
*/
package observability
