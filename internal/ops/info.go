package ops

import (
	"fmt"
	"strings"

	"idlbind/internal/diag"
	"idlbind/internal/idl"
	"idlbind/internal/types"
)

// Param is one aligned parameter of a merged signature.
type Param struct {
	Name string
	// TypeID is the raw IDL type id, empty when overloads disagree.
	TypeID   string
	Optional bool
}

// Info is the merged calling convention for a set of overloads.
type Info struct {
	// DeclaredName is the IDL id shared by the overloads.
	DeclaredName string
	// Name honours [DartName] on the first overload.
	Name   string
	JSName string
	// TypeName is the raw return type id of the first overload.
	TypeName string
	Params   []Param

	Static            bool
	RequiresNamedArgs bool

	// Operations are the declared overloads; Overloads the expanded set the
	// merge ran over, truncated copies first.
	Operations []*idl.Operation
	Overloads  []*idl.Operation

	// CallbackArgs are the parameters captured by ToFutureForm.
	CallbackArgs []Param

	// ConstructorName is set for named constructors of the form T.name.
	ConstructorName string
}

// Clone returns a deep copy. Operations are shared; they are never mutated.
func (info *Info) Clone() *Info {
	if info == nil {
		return nil
	}
	out := *info
	out.Params = append([]Param(nil), info.Params...)
	out.CallbackArgs = append([]Param(nil), info.CallbackArgs...)
	out.Operations = append([]*idl.Operation(nil), info.Operations...)
	out.Overloads = append([]*idl.Operation(nil), info.Overloads...)
	return &out
}

// IsStatic reports the staticness shared by all expanded overloads.
func (info *Info) IsStatic() (bool, error) {
	if len(info.Overloads) == 0 {
		return info.Static, nil
	}
	static := info.Overloads[0].Static
	for _, op := range info.Overloads[1:] {
		if op.Static != static {
			return false, diag.Errorf(diag.CfgStaticMismatch, info.DeclaredName, "overloads disagree on static")
		}
	}
	return static, nil
}

// ParametersDeclaration renders the parameter list: required parameters
// first, then the optional ones in [] (or {} when the method takes named
// formals and forceOptional is false). rename maps a raw type id to the
// exposed type name.
func (info *Info) ParametersDeclaration(rename func(string) string, forceOptional bool) (string, error) {
	format := func(p Param) string {
		t := types.DynamicType
		if p.TypeID != "" {
			t = rename(p.TypeID)
		}
		return TypeOrNothing(t, p.TypeID) + p.Name
	}

	var required, optional []string
	for _, p := range info.Params {
		if p.Optional {
			optional = append(optional, format(p))
			continue
		}
		if len(optional) > 0 {
			return "", diag.Errorf(diag.CfgOptionalBeforeRequired, info.DeclaredName,
				"optional parameters cannot precede required %q", p.Name)
		}
		required = append(required, format(p))
	}

	parts := required
	if len(optional) > 0 {
		left, right := "[", "]"
		if info.RequiresNamedArgs && !forceOptional {
			left, right = "{", "}"
		}
		parts = append(parts, left+strings.Join(optional, ", ")+right)
	}
	return strings.Join(parts, ", "), nil
}

// ParametersAsArgumentList renders the first n parameter names as call
// arguments; named optionals pass as "name : name". A negative n means all.
func (info *Info) ParametersAsArgumentList(n int) string {
	if n < 0 || n > len(info.Params) {
		n = len(info.Params)
	}
	names := make([]string, 0, n)
	for _, p := range info.Params[:n] {
		if info.RequiresNamedArgs && p.Optional {
			names = append(names, p.Name+" : "+p.Name)
		} else {
			names = append(names, p.Name)
		}
	}
	return strings.Join(names, ", ")
}

// ConstructorFullName is the exposed constructor name, "T" or "T.name".
func (info *Info) ConstructorFullName(rename func(string) string) string {
	if info.ConstructorName != "" {
		return rename(info.TypeName) + "." + info.ConstructorName
	}
	// ArrayBuffer maps to dynamic in signatures but keeps its own name here.
	if info.TypeName == "ArrayBuffer" {
		return "ArrayBuffer"
	}
	return rename(info.TypeName)
}

func (info *Info) String() string {
	return fmt.Sprintf("%s(%d params)", info.Name, len(info.Params))
}

// TypeOrNothing returns a declaration prefix for contexts where the type may
// be omitted. The result is empty or ends with a space.
func TypeOrNothing(target, comment string) string {
	if target != types.DynamicType {
		return target + " "
	}
	if comment != "" {
		return "/*" + comment + "*/ "
	}
	return ""
}

// TypeOrVar returns a declaration type for contexts where an omitted type
// must be spelled var.
func TypeOrVar(target, comment string) string {
	if target != types.DynamicType {
		return target
	}
	if comment != "" {
		return "var /*" + comment + "*/"
	}
	return "var"
}
