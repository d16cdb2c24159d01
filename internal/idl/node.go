package idl

import "sort"

// ExtAttrs holds extended attributes of a declaration. A key present with an
// empty value is a bare marker (e.g. [Callback]); a non-empty value carries
// an argument (e.g. [Optional=DefaultIsUndefined]).
type ExtAttrs map[string]string

// Has reports whether the attribute is present at all.
func (a ExtAttrs) Has(key string) bool {
	if a == nil {
		return false
	}
	_, ok := a[key]
	return ok
}

// Get returns the attribute value and whether it is present.
func (a ExtAttrs) Get(key string) (string, bool) {
	if a == nil {
		return "", false
	}
	v, ok := a[key]
	return v, ok
}

// IsBare reports whether the attribute is present without a value.
func (a ExtAttrs) IsBare(key string) bool {
	v, ok := a.Get(key)
	return ok && v == ""
}

// Keys returns attribute names in lexical order.
func (a ExtAttrs) Keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns an independent copy.
func (a ExtAttrs) Clone() ExtAttrs {
	if a == nil {
		return nil
	}
	out := make(ExtAttrs, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Argument is a single operation or constructor argument.
type Argument struct {
	ID       string   `toml:"id"`
	Type     string   `toml:"type"`
	ExtAttrs ExtAttrs `toml:"ext_attrs"`
}

// Operation is one declared overload.
type Operation struct {
	ID        string     `toml:"id"`
	Type      string     `toml:"type"`
	Static    bool       `toml:"static"`
	ExtAttrs  ExtAttrs   `toml:"ext_attrs"`
	Arguments []Argument `toml:"argument"`
}

// Clone returns a deep copy of the operation.
func (op *Operation) Clone() *Operation {
	if op == nil {
		return nil
	}
	out := &Operation{
		ID:       op.ID,
		Type:     op.Type,
		Static:   op.Static,
		ExtAttrs: op.ExtAttrs.Clone(),
	}
	if op.Arguments != nil {
		out.Arguments = make([]Argument, len(op.Arguments))
		for i, arg := range op.Arguments {
			out.Arguments[i] = Argument{ID: arg.ID, Type: arg.Type, ExtAttrs: arg.ExtAttrs.Clone()}
		}
	}
	return out
}

// Truncate returns a deep copy keeping only the first n arguments.
func (op *Operation) Truncate(n int) *Operation {
	out := op.Clone()
	if n < len(out.Arguments) {
		out.Arguments = out.Arguments[:n]
	}
	return out
}

// Attribute is a declared attribute (property).
type Attribute struct {
	ID       string   `toml:"id"`
	Type     string   `toml:"type"`
	ReadOnly bool     `toml:"readonly"`
	ExtAttrs ExtAttrs `toml:"ext_attrs"`
}

// Constructor is one overload of a [Constructor] or [NamedConstructor]
// extended attribute.
type Constructor struct {
	ID        string     `toml:"id"`
	Arguments []Argument `toml:"argument"`
}

// Interface is a declared interface together with its members.
type Interface struct {
	ID         string       `toml:"id"`
	Parents    []string     `toml:"parents"`
	ExtAttrs   ExtAttrs     `toml:"ext_attrs"`
	Operations []*Operation `toml:"operation"`
	Attributes []*Attribute `toml:"attribute"`

	// Constructors lists overloads of [Constructor]; an empty list with the
	// marker present means a single argument-less constructor.
	Constructors []Constructor `toml:"constructor"`
	// NamedConstructor backs [NamedConstructor=Name(...)].
	NamedConstructor *Constructor `toml:"named_constructor"`
}

// IsCallback reports whether the interface carries the callback marker.
func (i *Interface) IsCallback() bool {
	return i != nil && i.ExtAttrs.Has("Callback")
}

// OperationsNamed returns overloads with the given id in declaration order.
func (i *Interface) OperationsNamed(id string) []*Operation {
	var out []*Operation
	for _, op := range i.Operations {
		if op.ID == id {
			out = append(out, op)
		}
	}
	return out
}

// OperationNames returns distinct operation ids in first-declaration order.
func (i *Interface) OperationNames() []string {
	seen := make(map[string]bool, len(i.Operations))
	names := make([]string, 0, len(i.Operations))
	for _, op := range i.Operations {
		if seen[op.ID] {
			continue
		}
		seen[op.ID] = true
		names = append(names, op.ID)
	}
	return names
}
