package annot

import (
	"sort"
	"strings"

	"idlbind/internal/idl"
)

// Annotations is an immutable table from key to an ordered annotation list.
type Annotations struct {
	entries map[string][]string
}

// NewAnnotations copies entries into a table.
func NewAnnotations(entries map[string][]string) *Annotations {
	a := &Annotations{entries: make(map[string][]string, len(entries))}
	for k, v := range entries {
		a.entries[k] = append([]string(nil), v...)
	}
	return a
}

// Get returns a copy of the list stored under key, or nil.
func (a *Annotations) Get(key string) []string {
	if a == nil {
		return nil
	}
	v, ok := a.entries[key]
	if !ok || len(v) == 0 {
		return nil
	}
	return append([]string(nil), v...)
}

// Keys returns the table keys in lexical order.
func (a *Annotations) Keys() []string {
	keys := make([]string, 0, len(a.entries))
	for k := range a.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (a *Annotations) Len() int { return len(a.entries) }

// Exemptions reports "Interface.member" keys that are renamed away from
// their vendor-prefixed names. *idl.DefaultRenamer satisfies it.
type Exemptions interface {
	IsRenamedMember(key string) bool
}

// VendorPrefix marks experimental members.
const VendorPrefix = "webkit"

// WebKitExperimental returns the annotation set appended to vendor-prefixed
// members.
func WebKitExperimental() []string {
	return append([]string(nil), webkitExperimentalAnnotations...)
}

// Annotator assembles the annotation lists attached to generated
// declarations.
type Annotator struct {
	Docs idl.DocStore
	// Shared holds annotations emitted for every backend.
	Shared *Annotations
	// Compiled holds backend-specific annotations, see Native.
	Compiled *Annotations
	Exempt   Exemptions
	// Experimental is appended to vendor-prefixed members.
	Experimental []string
}

// NewAnnotator builds an annotator over the default tables.
func NewAnnotator(docs idl.DocStore, exempt Exemptions) *Annotator {
	if docs == nil {
		docs = idl.NopDocStore{}
	}
	return &Annotator{
		Docs:         docs,
		Shared:       DefaultAnnotations(),
		Compiled:     DefaultNativeAnnotations(),
		Exempt:       exempt,
		Experimental: WebKitExperimental(),
	}
}

func memberKey(iface, member string) string {
	if member == "" {
		return iface
	}
	return iface + "." + member
}

// Common returns, in order: the @DomName identity annotation, @DocsEditable
// for members, the table entry for the key, and the experimental set for
// vendor-prefixed members that are not renamed. An empty member asks for
// the interface itself. Entries are not deduplicated.
func (a *Annotator) Common(library, iface, member string) []string {
	key := memberKey(iface, member)
	out := []string{"@DomName('" + key + "')"}
	if member != "" {
		out = append(out, "@DocsEditable")
	}
	out = append(out, a.Shared.Get(key)...)
	if member != "" && strings.HasPrefix(member, VendorPrefix) && !a.exempt(key) {
		out = append(out, a.Experimental...)
	}
	return out
}

// WithComments prefixes Common with the documentation comment, if any.
func (a *Annotator) WithComments(library, iface, member string) []string {
	var out []string
	if a.Docs != nil {
		out = append(out, a.Docs.Comments(library, iface, member)...)
	}
	return append(out, a.Common(library, iface, member)...)
}

// Native is WithComments followed by the backend-specific annotations for a
// member of type idlType.
func (a *Annotator) Native(idlType, library, iface, member string) []string {
	return append(a.WithComments(library, iface, member), a.NativeSpecific(idlType, iface, member)...)
}

// NativeSpecific combines the backend-specific member entry with the type
// entries: with member annotations, "+Type" (or else "Type") is prepended;
// without them, "-Type" (or else "Type") is used alone.
func (a *Annotator) NativeSpecific(idlType, iface, member string) []string {
	own := a.Compiled.Get(memberKey(iface, member))
	if len(own) > 0 {
		if typed := a.Compiled.Get("+" + idlType); typed != nil {
			return append(typed, own...)
		}
		if typed := a.Compiled.Get(idlType); typed != nil {
			return append(typed, own...)
		}
		return own
	}
	if typed := a.Compiled.Get("-" + idlType); typed != nil {
		return typed
	}
	return a.Compiled.Get(idlType)
}

// AnyConversionAnnotations reports whether a member carries table
// annotations that affect how its value is converted.
func (a *Annotator) AnyConversionAnnotations(idlType, iface, member string) bool {
	return a.Shared.Get(iface+"."+member) != nil || a.NativeSpecific(idlType, iface, member) != nil
}

func (a *Annotator) exempt(key string) bool {
	return a.Exempt != nil && a.Exempt.IsRenamedMember(key)
}

// Format joins annotations one per line, each line followed by indentation.
func Format(annotations []string, indentation string) string {
	if len(annotations) == 0 {
		return ""
	}
	newline := "\n" + indentation
	return strings.Join(annotations, newline) + newline
}
