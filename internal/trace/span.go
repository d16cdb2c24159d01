package trace

import (
	"context"
	"sync/atomic"
	"time"
)

var (
	seq   atomic.Uint64
	spans atomic.Uint64
)

// Span is an open begin/end pair. The zero-cost span returned when the
// scope is filtered out ignores every call.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	scope   Scope
	name    string
	started time.Time
	fields  map[string]string
}

var disabled = &Span{}

// Begin opens a span under parent (0 for a root span).
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if t == nil || !t.Enabled() || !recordable(t.Level(), scope) {
		return disabled
	}
	now := time.Now()
	s := &Span{tracer: t, id: spans.Add(1), parent: parent, scope: scope, name: name, started: now}
	t.Emit(&Event{
		Time:     now,
		Seq:      seq.Add(1),
		Kind:     KindBegin,
		Scope:    scope,
		SpanID:   s.id,
		ParentID: parent,
		Name:     name,
	})
	return s
}

// recordable mirrors the ring's capture rule: at LevelError spans are
// still opened so a failure dump has interface context.
func recordable(level Level, scope Scope) bool {
	if level == LevelError {
		return LevelDetail.Allows(scope)
	}
	return level.Allows(scope)
}

// Start opens a span parented on the span carried by ctx and returns a
// context carrying the new one.
func Start(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	s := Begin(FromContext(ctx), scope, name, CurrentSpan(ctx))
	if s == disabled {
		return ctx, s
	}
	return context.WithValue(ctx, spanKey{}, s.id), s
}

// Set attaches a field reported on the end event.
func (s *Span) Set(key, value string) *Span {
	if s == disabled || s == nil {
		return s
	}
	if s.fields == nil {
		s.fields = make(map[string]string, 4)
	}
	s.fields[key] = value
	return s
}

// End closes the span and returns its duration.
func (s *Span) End(detail string) time.Duration {
	if s == disabled || s == nil {
		return 0
	}
	elapsed := time.Since(s.started)
	s.tracer.Emit(&Event{
		Time:     time.Now(),
		Seq:      seq.Add(1),
		Kind:     KindEnd,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		Name:     s.name,
		Detail:   detail,
		Elapsed:  elapsed,
		Fields:   s.fields,
	})
	return elapsed
}

// ID returns the span id, 0 for a disabled span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Point records an instant event under the span carried by ctx.
func Point(ctx context.Context, scope Scope, name, detail string) {
	t := FromContext(ctx)
	if !t.Enabled() || !recordable(t.Level(), scope) {
		return
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Seq:      seq.Add(1),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: CurrentSpan(ctx),
		Name:     name,
		Detail:   detail,
	})
}
