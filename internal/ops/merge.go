// Package ops merges overloaded operation declarations into one calling
// convention per member.
package ops

import (
	"sort"
	"strings"

	"idlbind/internal/diag"
	"idlbind/internal/idl"
	"idlbind/internal/types"
)

// TypeResolver maps raw type ids to descriptors. *types.Registry satisfies it.
type TypeResolver interface {
	Resolve(name string) (types.Descriptor, error)
}

// FutureType replaces the return type of a future-form signature.
const FutureType = "Future"

// CallbackHandler is the operation id of callback interface handlers.
const CallbackHandler = "handleEvent"

// NamedFormals lists "Interface.method" keys whose optional parameters are
// passed by name.
var NamedFormals = map[string]bool{
	"DataView.getFloat32":           true,
	"DataView.getFloat64":           true,
	"DataView.getInt16":             true,
	"DataView.getInt32":             true,
	"DataView.getInt8":              true,
	"DataView.getUint16":            true,
	"DataView.getUint32":            true,
	"DataView.getUint8":             true,
	"DataView.setFloat32":           true,
	"DataView.setFloat64":           true,
	"DataView.setInt16":             true,
	"DataView.setInt32":             true,
	"DataView.setInt8":              true,
	"DataView.setUint16":            true,
	"DataView.setUint32":            true,
	"DataView.setUint8":             true,
	"DirectoryEntry.getDirectory":   true,
	"DirectoryEntry.getFile":        true,
	"Entry.copyTo":                  true,
	"Entry.moveTo":                  true,
	"HTMLInputElement.setRangeText": true,
	"XMLHttpRequest.open":           true,
}

// Merge folds an overload set into one calling convention. Each overload is
// first expanded with truncated copies, one before every argument marked
// with a bare [Optional]; positions are then aligned across the expanded set.
//
// A nil resolver compares raw type ids.
func Merge(iface *idl.Interface, overloads []*idl.Operation, resolver TypeResolver) (*Info, error) {
	if len(overloads) == 0 {
		return nil, diag.Errorf(diag.CfgEmptyOverloadSet, iface.ID, "no overloads to merge")
	}
	first := overloads[0]
	subject := iface.ID + "." + first.ID
	for _, op := range overloads[1:] {
		if op.Static != first.Static {
			return nil, diag.Errorf(diag.CfgStaticMismatch, subject, "overloads disagree on static")
		}
	}

	expanded := splitOptional(overloads)
	lists := make([][]idl.Argument, len(expanded))
	for i, op := range expanded {
		lists[i] = op.Arguments
	}
	params, err := alignArguments(lists, resolver, false)
	if err != nil {
		return nil, err
	}

	name := first.ID
	if dartName, ok := first.ExtAttrs.Get("DartName"); ok && dartName != "" {
		name = dartName
	}
	return &Info{
		DeclaredName:      first.ID,
		Name:              name,
		JSName:            first.ID,
		TypeName:          first.Type,
		Params:            params,
		Static:            first.Static,
		RequiresNamedArgs: NamedFormals[subject],
		Operations:        overloads,
		Overloads:         expanded,
	}, nil
}

// MergeNamed merges every overload of iface declared under id.
func MergeNamed(iface *idl.Interface, id string, resolver TypeResolver) (*Info, error) {
	return Merge(iface, iface.OperationsNamed(id), resolver)
}

// CallbackInfo merges the handler operations of a callback interface. It
// reports false when the interface declares none.
func CallbackInfo(iface *idl.Interface, resolver TypeResolver) (*Info, bool, error) {
	handlers := iface.OperationsNamed(CallbackHandler)
	if len(handlers) == 0 {
		return nil, false, nil
	}
	info, err := Merge(iface, handlers, resolver)
	if err != nil {
		return nil, false, err
	}
	return info, true, nil
}

// AnalyzeConstructor merges the [Constructor] overloads of iface, or its
// [NamedConstructor] when no plain constructor is declared. It reports false
// when the interface has neither.
func AnalyzeConstructor(iface *idl.Interface, resolver TypeResolver) (*Info, bool, error) {
	var (
		name  string
		lists [][]idl.Argument
	)
	switch {
	case iface.ExtAttrs.Has("Constructor") || len(iface.Constructors) > 0:
		for _, ctor := range iface.Constructors {
			lists = append(lists, ctor.Arguments)
		}
		if len(lists) == 0 {
			lists = [][]idl.Argument{nil}
		}
	case iface.NamedConstructor != nil:
		name = iface.NamedConstructor.ID
		lists = [][]idl.Argument{iface.NamedConstructor.Arguments}
	default:
		return nil, false, nil
	}

	params, err := alignArguments(lists, resolver, true)
	if err != nil {
		return nil, false, err
	}
	return &Info{
		DeclaredName: name,
		Name:         name,
		JSName:       name,
		TypeName:     iface.ID,
		Params:       params,
	}, true, nil
}

// ToFutureForm returns an independent copy of info whose callback-typed
// parameters are moved to CallbackArgs and whose return type is FutureType.
// Callback parameters are recognised by the "Callback" substring of their
// type id, not by resolving it: callback interfaces follow that naming, and
// the rewrite needs no registry.
func ToFutureForm(info *Info) *Info {
	out := info.Clone()
	out.Params = out.Params[:0:0]
	out.CallbackArgs = nil
	for _, p := range info.Params {
		if strings.Contains(p.TypeID, "Callback") {
			out.CallbackArgs = append(out.CallbackArgs, p)
		} else {
			out.Params = append(out.Params, p)
		}
	}
	out.TypeName = FutureType
	return out
}

// FindMatchingAttribute returns the attribute of iface with the given id.
// More than one match is a configuration error.
func FindMatchingAttribute(iface *idl.Interface, id string) (*idl.Attribute, bool, error) {
	var found *idl.Attribute
	for _, attr := range iface.Attributes {
		if attr.ID != id {
			continue
		}
		if found != nil {
			return nil, false, diag.Errorf(diag.CfgDuplicateAttribute, iface.ID+"."+id, "attribute declared more than once")
		}
		found = attr
	}
	return found, found != nil, nil
}

// splitOptional expands each overload with a truncated copy before every
// bare [Optional] argument. Copies precede the overload they came from.
func splitOptional(overloads []*idl.Operation) []*idl.Operation {
	out := make([]*idl.Operation, 0, len(overloads))
	for _, op := range overloads {
		for i, arg := range op.Arguments {
			if arg.ExtAttrs.IsBare("Optional") {
				out = append(out, op.Truncate(i))
			}
		}
		out = append(out, op)
	}
	return out
}

// alignArguments unifies argument lists by position. Optionality is sticky:
// once a position is optional every later position is too.
func alignArguments(lists [][]idl.Argument, resolver TypeResolver, constructor bool) ([]Param, error) {
	width := 0
	for _, args := range lists {
		width = max(width, len(args))
	}

	params := make([]Param, 0, width)
	optional := false
	for pos := 0; pos < width; pos++ {
		present := make([]idl.Argument, 0, len(lists))
		for _, args := range lists {
			if pos >= len(args) {
				optional = true
				continue
			}
			if explicitlyOptional(args[pos], constructor) {
				optional = true
			}
			present = append(present, args[pos])
		}
		typeID, err := unifiedType(present, resolver)
		if err != nil {
			return nil, err
		}
		params = append(params, Param{Name: unifiedName(present), TypeID: typeID, Optional: optional})
	}
	return params, nil
}

// explicitlyOptional covers arguments declared optional outside of the
// truncation scheme: callbacks with [Optional], and anything marked
// [Optional] in a constructor.
func explicitlyOptional(arg idl.Argument, constructor bool) bool {
	if arg.ExtAttrs.Has("Callback") || constructor {
		return arg.ExtAttrs.Has("Optional")
	}
	return false
}

func unifiedName(args []idl.Argument) string {
	return strings.Join(sortedUnique(args, func(a idl.Argument) string { return a.ID }), "_OR_")
}

// unifiedType keeps the lexically first type id when every argument maps to
// the same target type, and drops the type otherwise.
func unifiedType(args []idl.Argument, resolver TypeResolver) (string, error) {
	ids := sortedUnique(args, func(a idl.Argument) string { return a.Type })
	if len(ids) == 0 {
		return "", nil
	}
	targets := make(map[string]bool, len(ids))
	for _, id := range ids {
		target, err := targetType(resolver, id)
		if err != nil {
			return "", err
		}
		targets[target] = true
	}
	if len(targets) != 1 {
		return "", nil
	}
	return ids[0], nil
}

// targetType resolves id to its exposed type. Ids unknown to the registry
// compare by their raw name.
func targetType(resolver TypeResolver, id string) (target string, err error) {
	if resolver == nil {
		return id, nil
	}
	defer diag.Recover(&err)
	d, err := resolver.Resolve(id)
	if err != nil {
		if diag.HasCode(err, diag.CfgUnknownType) {
			return id, nil
		}
		return "", err
	}
	if t := d.TargetType(); t != "" {
		return t, nil
	}
	return id, nil
}

func sortedUnique(args []idl.Argument, key func(idl.Argument) string) []string {
	seen := make(map[string]bool, len(args))
	out := make([]string, 0, len(args))
	for _, a := range args {
		k := key(a)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
