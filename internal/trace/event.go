package trace

import "time"

// Kind is the event type.
type Kind uint8

const (
	KindBegin Kind = iota + 1
	KindEnd
	KindPoint
)

func (k Kind) String() string {
	switch k {
	case KindBegin:
		return "begin"
	case KindEnd:
		return "end"
	case KindPoint:
		return "point"
	default:
		return "unknown"
	}
}

// Scope is the granularity of an event; lower is coarser.
type Scope uint8

const (
	ScopeRun Scope = iota + 1
	ScopePass
	ScopeInterface
	ScopeMember
)

func (s Scope) String() string {
	switch s {
	case ScopeRun:
		return "run"
	case ScopePass:
		return "pass"
	case ScopeInterface:
		return "interface"
	case ScopeMember:
		return "member"
	default:
		return "unknown"
	}
}

// Event is one trace record.
type Event struct {
	Time     time.Time
	Seq      uint64
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64
	Name     string // "resolve", "iface:Node", "type:sequence<Node>"
	Detail   string
	// Elapsed is set on end events.
	Elapsed time.Duration
	Fields  map[string]string
}
