// Package server hosts a reactive component tree over HTTP.
//
// An App builds a root component and a set of named signal bindings. The
// server mounts it on a single event-loop goroutine: every signal write,
// every read of the rendered HTML and every update pass happens there, so
// the reactive runtime never sees concurrent access.
//
// Routes:
//
//	GET  /                        full page with a live update script
//	GET  /fragment                rendered body only
//	GET  /signals                 JSON object of signal values
//	POST /signals/{name}          set a signal from the "value" form field
//	POST /signals/{name}/toggle   flip a boolean signal
//	GET  /ws                      websocket receiving the body after each change
//	GET  /healthz                 liveness probe
//	GET  /metrics                 Prometheus metrics (configurable path)
//
// Each update pass and each signal write is recorded as an OpenTelemetry
// span through the global tracer provider unless WithTracer is given.
package server
