package types

import "fmt"

// Cases holds one handler per descriptor variant. Match panics when the
// handler for the matched variant is missing, so adding a variant surfaces
// every consumer that does not handle it.
type Cases[R any] struct {
	Primitive  func(*Primitive) R
	Interface  func(*Interface) R
	Sequence   func(*Sequence) R
	StringList func(*StringList) R
	Callback   func(*Callback) R
	TearOff    func(*TearOff) R
}

// Match dispatches d to the handler for its variant.
func Match[R any](d Descriptor, c Cases[R]) R {
	switch v := d.(type) {
	case *Primitive:
		if c.Primitive != nil {
			return c.Primitive(v)
		}
	case *Interface:
		if c.Interface != nil {
			return c.Interface(v)
		}
	case *Sequence:
		if c.Sequence != nil {
			return c.Sequence(v)
		}
	case *StringList:
		if c.StringList != nil {
			return c.StringList(v)
		}
	case *Callback:
		if c.Callback != nil {
			return c.Callback(v)
		}
	case *TearOff:
		if c.TearOff != nil {
			return c.TearOff(v)
		}
	}
	panic(fmt.Sprintf("types: unhandled descriptor %T", d))
}
