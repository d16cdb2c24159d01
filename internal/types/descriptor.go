package types

import (
	"fmt"
	"strings"

	"idlbind/internal/idl"
)

// DescriptorID identifies a descriptor inside one Registry, in resolution
// order.
type DescriptorID uint32

// NoDescriptorID marks the absence of a descriptor.
const NoDescriptorID DescriptorID = 0

// Kind is the closed set of descriptor variants.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindPrimitive
	KindInterface
	KindSequence
	KindStringList
	KindCallback
	KindTearOff
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindPrimitive:
		return "primitive"
	case KindInterface:
		return "interface"
	case KindSequence:
		return "sequence"
	case KindStringList:
		return "string-list"
	case KindCallback:
		return "callback"
	case KindTearOff:
		return "tear-off"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// DynamicType is the generic placeholder used when no generated abstraction
// exists.
const DynamicType = "dynamic"

// ConversionContext describes where a value is being converted.
type ConversionContext struct {
	// Interface is the raw name of the interface owning the member.
	Interface string
	// Attributes are the member's extended attributes.
	Attributes idl.ExtAttrs
}

// NativeInfo describes how an incoming target value is converted to its
// native representation.
type NativeInfo struct {
	// ArgTemplate is applied to the converted value name; "%s" is replaced.
	ArgTemplate string
	NativeType  string
	Class       string
	Function    string
}

// ArgExpr renders ArgTemplate for value.
func (n NativeInfo) ArgExpr(value string) string {
	return strings.ReplaceAll(n.ArgTemplate, "%s", value)
}

// Call renders "Class::Function".
func (n NativeInfo) Call() string {
	return n.Class + "::" + n.Function
}

// Descriptor is the resolved form of a raw type name. It is implemented only
// by *Primitive, *Interface, *Sequence, *StringList, *Callback and *TearOff.
type Descriptor interface {
	ID() DescriptorID
	Kind() Kind
	IDLType() string

	// TargetType is the type name exposed to callers.
	TargetType() string
	// NarrowTargetType is the most specific usable type.
	NarrowTargetType() string
	// NativeType is the underlying storage/interop type.
	NativeType() string

	InterfaceName() string
	ImplementationName() string
	HasGeneratedInterface() bool
	ListItemType() string
	IsTypedArray() bool
	MergedInterface() string
	MergedInto() string

	BindingsClass() string
	// VectorTemplateParam is the element parameter used when this type is
	// the item of a native vector.
	VectorTemplateParam() (string, error)
	// ToNative describes the conversion of an argument or setter value.
	// argAttrs are the extended attributes of the argument and iface the
	// raw name of the interface the member belongs to.
	ToNative(argAttrs idl.ExtAttrs, iface string) (NativeInfo, error)
	ParameterType() string
	PassNativeByRef() bool
	CustomToNative() bool
	CustomToTarget() bool
	Receiver() string

	// Includes lists native headers needed wherever the type is used.
	Includes() []string
	// Dependencies lists conversion headers of the types whose generated
	// definitions must be available wherever this type is converted.
	Dependencies() []string
	// ConversionExpression converts a native value to the target type.
	ConversionExpression(value string, ctx ConversionContext) string

	sealed()
}

var wtfIncludes = map[string]bool{
	"ArrayBuffer":       true,
	"ArrayBufferView":   true,
	"Float32Array":      true,
	"Float64Array":      true,
	"Int8Array":         true,
	"Int16Array":        true,
	"Int32Array":        true,
	"Uint8Array":        true,
	"Uint8ClampedArray": true,
	"Uint16Array":       true,
	"Uint32Array":       true,
}

var svgSupplementalIncludes = []string{
	`"SVGAnimatedPropertyTearOff.h"`,
	`"SVGAnimatedListPropertyTearOff.h"`,
	`"SVGStaticListPropertyTearOff.h"`,
	`"SVGAnimatedListPropertyTearOff.h"`,
	`"SVGTransformListPropertyTearOff.h"`,
	`"SVGPathSegListPropertyTearOff.h"`,
}

func webcoreIncludes(idlType, native string) []string {
	if wtfIncludes[idlType] {
		return []string{"<wtf/" + native + ".h>"}
	}
	if !strings.HasPrefix(idlType, "SVG") {
		return []string{`"` + native + `.h"`}
	}
	if idlType == "SVGNumber" || idlType == "SVGPoint" {
		return []string{`"SVGPropertyTearOff.h"`}
	}
	include := idlType
	if strings.HasPrefix(idlType, "SVGPathSeg") {
		include = strings.ReplaceAll(strings.ReplaceAll(idlType, "Abs", ""), "Rel", "")
	}
	out := make([]string, 0, 1+len(svgSupplementalIncludes))
	out = append(out, `"`+include+`.h"`)
	return append(out, svgSupplementalIncludes...)
}

func conversionHeaders(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, `"Dart`+name+`.h"`)
	}
	return out
}

// referenceToNative is the shared argument conversion for reference types.
func referenceToNative(class, native string, customToNative, tearOff bool, argAttrs idl.ExtAttrs, iface string) NativeInfo {
	if argAttrs.Has("Callback") {
		return NativeInfo{ArgTemplate: "%s", NativeType: "RefPtr<" + native + ">", Class: class, Function: "create"}
	}
	if customToNative {
		return NativeInfo{ArgTemplate: "%s.get()", NativeType: "RefPtr<" + native + ">", Class: class, Function: "toNative"}
	}
	tmpl := "%s"
	if tearOff && !strings.HasSuffix(iface, "List") {
		tmpl = "%s->propertyReference()"
	}
	return NativeInfo{ArgTemplate: tmpl, NativeType: native + "*", Class: class, Function: "toNative"}
}

func listOf(elem string) string {
	return "List<" + elem + ">"
}
