// Package trace records what the interpreter pipeline is doing: which file
// is being checked, which phase is running, which Lox function is being
// called. It exists to answer "where did it hang" and "where did the time
// go" without a debugger.
//
// Enable tracing via command-line flags:
//
//	lox run --trace=- --trace-level=phase script.lox
//	lox check --trace=trace.ndjson --trace-level=detail src/
//
// Tracers:
//
//   - Nop (trace.New with LevelOff): no allocations on the hot path
//   - StreamTracer: writes every event as it happens
//   - RingTracer: keeps the last N events, dumped on crash or on demand
//   - ModeBoth: stream and ring together
//
// Levels gate scopes: phase shows ScopeDriver and ScopePass, detail adds
// ScopeFile, debug adds ScopeNode (every Lox call). LevelError records
// nothing up front and relies on the ring dump.
//
// Tracers travel in the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopePass, "parse")
//	defer span.End("")
//
// Start parents the new span on the one already in ctx and inherits its lane.
package trace
