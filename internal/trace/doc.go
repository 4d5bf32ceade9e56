// Package trace records the phases of a cppdoc run.
//
// Tracing is enabled from the command line:
//
//	cppdoc diag --trace=- --trace-level=phase include/
//
// Tracer implementations:
//
//   - Nop: disabled tracing, no overhead
//   - StreamTracer: writes every event immediately (text or NDJSON)
//   - RingTracer: keeps the last events in memory and dumps them on panic
//   - MultiTracer: fans events out to several tracers
//
// Events carry a Scope; the Level decides which scopes are recorded:
// phase records the driver and per-file events, detail adds the passes run
// on each file (lex, scan, extract, correlate), debug adds per-entity work.
//
// The tracer travels through the pipeline in a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "extract", parent)
//	defer span.End("")
package trace
