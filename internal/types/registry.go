package types

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"fortio.org/safecast"

	"idlbind/internal/diag"
	"idlbind/internal/idl"
	"idlbind/internal/typetable"
)

var (
	sequenceSyntax = regexp.MustCompile(`^sequence<(.+)>$`)
	arraySyntax    = regexp.MustCompile(`^(.+)\[\]$`)
	plainName      = regexp.MustCompile(`^\w+( \w+)*$`)
)

// stringArrayName resolves to the distinguished StringList descriptor.
const stringArrayName = "DOMString[]"

// Registry resolves raw type names into memoized descriptors. One registry
// serves one generation run; its cache is never invalidated because the
// type table and database are immutable once generation starts.
//
// The cache is guarded by a mutex so distinct names can be resolved from
// several goroutines. When two goroutines race on the same name the first
// stored descriptor wins and both observe it.
type Registry struct {
	db      idl.Database
	renamer idl.Renamer
	table   *typetable.Table

	mu    sync.Mutex
	cache map[string]Descriptor
	order []string
}

// NewRegistry creates a registry over the given collaborators.
func NewRegistry(db idl.Database, renamer idl.Renamer, table *typetable.Table) *Registry {
	if table == nil {
		table = typetable.Default()
	}
	return &Registry{
		db:      db,
		renamer: renamer,
		table:   table,
		cache:   make(map[string]Descriptor, 128),
	}
}

// Table returns the type table in use.
func (r *Registry) Table() *typetable.Table { return r.table }

// Resolve returns the descriptor for name, building it on first use.
// Errors are *diag.Error configuration errors.
func (r *Registry) Resolve(name string) (Descriptor, error) {
	r.mu.Lock()
	if d, ok := r.cache[name]; ok {
		r.mu.Unlock()
		return d, nil
	}
	r.mu.Unlock()

	d, err := r.build(name)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.cache[name]; ok {
		return existing, nil
	}
	next, err := safecast.Conv[uint32](len(r.order) + 1)
	if err != nil {
		panic(fmt.Errorf("descriptor count overflow: %w", err))
	}
	d.(interface{ setID(DescriptorID) }).setID(DescriptorID(next))
	r.cache[name] = d
	r.order = append(r.order, name)
	return d, nil
}

// MustResolve panics with the resolution error when name cannot be
// resolved. The error wraps a *diag.Error; use diag.Recover at the boundary
// of a resolution pass.
func (r *Registry) MustResolve(name string) Descriptor {
	d, err := r.Resolve(name)
	if err != nil {
		panic(err)
	}
	return d
}

// TargetType is shorthand for MustResolve(name).TargetType().
func (r *Registry) TargetType(name string) string {
	return r.MustResolve(name).TargetType()
}

// ResolveMerged follows merge declarations: a reference to an interface
// merged into another resolves as the merge target.
func (r *Registry) ResolveMerged(name string) (Descriptor, error) {
	d, err := r.Resolve(name)
	if err != nil {
		return nil, err
	}
	for hops := 0; d.MergedInto() != ""; hops++ {
		if hops > r.table.Len() {
			return nil, diag.Errorf(diag.CfgBadTableEntry, name, "merge chain does not terminate")
		}
		if d, err = r.Resolve(d.MergedInto()); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Len returns the number of cached descriptors.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.order)
}

// Names returns cached names in resolution order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.order...)
}

// Lookup returns a cached descriptor without resolving.
func (r *Registry) Lookup(name string) (Descriptor, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.cache[name]
	return d, ok
}

func (r *Registry) build(name string) (Descriptor, error) {
	if item, ok, err := containerItem(name); err != nil {
		return nil, err
	} else if ok {
		return r.buildSequence(name, item)
	}

	entry, ok := r.table.Lookup(name)
	if !ok {
		return r.buildUndeclared(name)
	}

	b := base{idlType: name, entry: entry}
	switch entry.Category {
	case typetable.CategoryPrimitive:
		return &Primitive{base: b}, nil
	case typetable.CategoryInterface:
		return &Interface{base: b, name: r.exposedName(name), reg: r}, nil
	case typetable.CategoryTearOff:
		return &TearOff{Interface: Interface{base: b, name: r.exposedName(name), reg: r}}, nil
	case typetable.CategoryCallback:
		if b.entry.TargetType == "" {
			b.entry.TargetType = r.renamer.DartifyTypeName(name)
		}
		return &Callback{base: b}, nil
	case typetable.CategorySequence:
		if entry.ItemType == "" {
			return nil, diag.Errorf(diag.CfgBadTableEntry, name, "sequence entry has no item type")
		}
		return r.buildSequence(name, entry.ItemType)
	default:
		return nil, diag.Errorf(diag.CfgBadTableEntry, name, "unsupported category %s", entry.Category)
	}
}

func (r *Registry) buildUndeclared(name string) (Descriptor, error) {
	if r.db == nil {
		return nil, diag.Errorf(diag.CfgUnknownType, name, "type is not declared")
	}
	if r.db.HasEnum(name) {
		entry := typetable.Entry{Category: typetable.CategoryPrimitive, TargetType: "String", NativeType: "String"}
		return &Primitive{base: base{idlType: name, entry: entry}}, nil
	}
	iface, ok := r.db.GetInterface(name)
	if !ok {
		return nil, diag.Errorf(diag.CfgUnknownType, name, "type is neither a known primitive, enum nor interface")
	}
	if iface.IsCallback() {
		entry := typetable.Entry{Category: typetable.CategoryCallback, TargetType: r.renamer.DartifyTypeName(name)}
		return &Callback{base: base{idlType: name, entry: entry}}, nil
	}
	entry := typetable.Entry{Category: typetable.CategoryInterface}
	return &Interface{base: base{idlType: name, entry: entry}, name: r.renamer.RenameInterface(iface), reg: r}, nil
}

func (r *Registry) buildSequence(name, item string) (Descriptor, error) {
	itemDesc, err := r.Resolve(item)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	seq := Sequence{
		base: base{idlType: name, entry: typetable.Entry{Category: typetable.CategorySequence, ItemType: item}},
		item: itemDesc,
	}
	if name == stringArrayName {
		return &StringList{Sequence: seq}, nil
	}
	return &seq, nil
}

// exposedName asks the renamer for the public name of a declared type.
func (r *Registry) exposedName(name string) string {
	if r.db != nil {
		if iface, ok := r.db.GetInterface(name); ok {
			return r.renamer.RenameInterface(iface)
		}
	}
	return r.renamer.DartifyTypeName(name)
}

// containerItem extracts X from "sequence<X>" or "X[]". Names that use
// container punctuation without matching either form are malformed.
func containerItem(name string) (string, bool, error) {
	var item string
	if m := sequenceSyntax.FindStringSubmatch(name); m != nil {
		item = m[1]
	} else if m := arraySyntax.FindStringSubmatch(name); m != nil {
		item = m[1]
	} else if strings.ContainsAny(name, "<>[]") {
		return "", false, diag.Errorf(diag.CfgMalformedContainer, name, "malformed container type")
	} else {
		return "", false, nil
	}
	if item != strings.TrimSpace(item) || !(plainName.MatchString(item) || isContainerLike(item)) {
		return "", false, diag.Errorf(diag.CfgMalformedContainer, name, "malformed container element %q", item)
	}
	return item, true, nil
}

func isContainerLike(s string) bool {
	return strings.HasPrefix(s, "sequence<") || strings.HasSuffix(s, "[]")
}
