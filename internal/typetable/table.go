// Package typetable holds the static metadata declared for raw IDL type
// names: category, target and native overrides, container item types and
// custom conversion flags.
package typetable

import (
	"fmt"
	"sort"
)

// Category selects the descriptor variant built for a table entry.
type Category uint8

const (
	CategoryInvalid Category = iota
	CategoryPrimitive
	CategoryInterface
	CategorySequence
	CategoryCallback
	CategoryTearOff
)

func (c Category) String() string {
	switch c {
	case CategoryPrimitive:
		return "Primitive"
	case CategoryInterface:
		return "Interface"
	case CategorySequence:
		return "Sequence"
	case CategoryCallback:
		return "Callback"
	case CategoryTearOff:
		return "TearOff"
	default:
		return fmt.Sprintf("Category(%d)", c)
	}
}

// ParseCategory converts a category name back to its value.
func ParseCategory(s string) (Category, error) {
	switch s {
	case "Primitive":
		return CategoryPrimitive, nil
	case "Interface":
		return CategoryInterface, nil
	case "Sequence":
		return CategorySequence, nil
	case "Callback":
		return CategoryCallback, nil
	case "TearOff":
		return CategoryTearOff, nil
	default:
		return CategoryInvalid, fmt.Errorf("unknown type category %q", s)
	}
}

const (
	DefaultGetterName = "getAttribute"
	DefaultSetterName = "setAttribute"
)

// Entry is the declared metadata for one raw type name. Empty strings mean
// "not overridden".
type Entry struct {
	Category Category

	TargetType string
	NativeType string
	ItemType   string

	MergedInterface string
	MergedInto      string

	CustomToTarget bool
	CustomToNative bool

	// ConversionIncludes lists extra types whose conversion headers must be
	// available wherever this type is converted.
	ConversionIncludes []string

	GetterName string
	SetterName string

	SuppressInterface bool
	TypedArray        bool
}

// Getter returns the accessor strategy, defaulting to getAttribute.
func (e Entry) Getter() string {
	if e.GetterName == "" {
		return DefaultGetterName
	}
	return e.GetterName
}

// Setter returns the mutator strategy, defaulting to setAttribute.
func (e Entry) Setter() string {
	if e.SetterName == "" {
		return DefaultSetterName
	}
	return e.SetterName
}

func (e Entry) clone() Entry {
	if e.ConversionIncludes != nil {
		e.ConversionIncludes = append([]string(nil), e.ConversionIncludes...)
	}
	return e
}

// Table is an immutable mapping from raw type name to Entry.
type Table struct {
	entries map[string]Entry
	pure    map[string]bool
}

// New builds a table from entries. Pure interfaces are interfaces that have
// no generated implementation class of their own.
func New(entries map[string]Entry, pure []string) *Table {
	t := &Table{
		entries: make(map[string]Entry, len(entries)),
		pure:    make(map[string]bool, len(pure)),
	}
	for name, e := range entries {
		t.entries[name] = e.clone()
	}
	for _, name := range pure {
		t.pure[name] = true
	}
	return t
}

// Lookup returns a copy of the entry for name.
func (t *Table) Lookup(name string) (Entry, bool) {
	e, ok := t.entries[name]
	if !ok {
		return Entry{}, false
	}
	return e.clone(), true
}

// Has reports whether name is registered.
func (t *Table) Has(name string) bool {
	_, ok := t.entries[name]
	return ok
}

// IsPureInterface reports whether name is a pure interface.
func (t *Table) IsPureInterface(name string) bool {
	return t.pure[name]
}

// Names returns all registered names in lexical order.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.entries))
	for name := range t.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of entries.
func (t *Table) Len() int { return len(t.entries) }

// With returns a new table that adds or replaces the given entries.
func (t *Table) With(overrides map[string]Entry) *Table {
	merged := make(map[string]Entry, len(t.entries)+len(overrides))
	for name, e := range t.entries {
		merged[name] = e
	}
	for name, e := range overrides {
		merged[name] = e
	}
	pure := make([]string, 0, len(t.pure))
	for name := range t.pure {
		pure = append(pure, name)
	}
	return New(merged, pure)
}
