// Package trace records what a resolution run spends its time on.
//
// Events are spans (begin/end pairs) and points, each tagged with a scope:
//
//   - ScopeRun: the whole command
//   - ScopePass: loading, resolution, reporting
//   - ScopeInterface: one interface
//   - ScopeMember: one operation, attribute or type name
//
// The level decides which scopes are kept: phase keeps run and pass, detail
// adds interfaces, debug keeps everything.
//
// The tracer travels in the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopePass, "resolve")
//	defer span.End("")
//
// Implementations: a nop tracer when disabled, a stream tracer writing text
// or NDJSON as events arrive, a ring tracer keeping the last N events for a
// dump on failure, and a multi tracer fanning out to several.
package trace
