// Package trace records what rsnfmt does while it runs.
//
// The trace package follows a formatting run through the driver, the individual files and the
// passes applied to each file (lex, format, verify). It is the tool's only logging channel.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	rsnfmt --trace=- --trace-level=detail ./configs
//
// # Architecture
//
//   - Nop: zero-overhead tracer when disabled
//   - StreamTracer: immediate write to output (file/stderr)
//   - RingTracer: circular buffer, dumped when a run fails
//   - MultiTracer: combines multiple tracers
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: nothing is streamed; the ring is dumped on failure
//   - LevelPhase: the driver run
//   - LevelDetail: one span per file
//   - LevelDebug: per-file passes
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopeFile, path, parentID)
//	defer span.End("")
package trace
