package types

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"idlbind/internal/diag"
	"idlbind/internal/idl"
	"idlbind/internal/typetable"
)

// base carries the state every variant shares.
type base struct {
	id      DescriptorID
	idlType string
	entry   typetable.Entry
}

func (b *base) ID() DescriptorID        { return b.id }
func (b *base) IDLType() string         { return b.idlType }
func (b *base) ListItemType() string    { return b.entry.ItemType }
func (b *base) IsTypedArray() bool      { return b.entry.TypedArray }
func (b *base) MergedInterface() string { return b.entry.MergedInterface }
func (b *base) MergedInto() string      { return b.entry.MergedInto }
func (b *base) CustomToNative() bool    { return b.entry.CustomToNative }
func (b *base) CustomToTarget() bool    { return b.entry.CustomToTarget }
func (b *base) BindingsClass() string   { return "Dart" + b.idlType }
func (b *base) Receiver() string        { return "receiver->" }
func (b *base) PassNativeByRef() bool   { return false }
func (b *base) sealed()                 {}

func (b *base) setID(id DescriptorID) { b.id = id }

// Entry returns a copy of the table entry the descriptor was built from.
func (b *base) Entry() typetable.Entry { return b.entry }

func (b *base) declaredTarget() string {
	if b.entry.TargetType != "" {
		return b.entry.TargetType
	}
	return b.idlType
}

func (b *base) declaredNative() string {
	if b.entry.NativeType != "" {
		return b.entry.NativeType
	}
	return b.idlType
}

// Primitive ---------------------------------------------------------------

// Primitive is a value type whose target and native types are fixed by the
// type table (numbers, strings, dates, enums).
type Primitive struct {
	base
}

func (p *Primitive) Kind() Kind                  { return KindPrimitive }
func (p *Primitive) TargetType() string          { return p.declaredTarget() }
func (p *Primitive) NarrowTargetType() string    { return p.TargetType() }
func (p *Primitive) NativeType() string          { return p.declaredNative() }
func (p *Primitive) InterfaceName() string       { return "" }
func (p *Primitive) ImplementationName() string  { return "" }
func (p *Primitive) HasGeneratedInterface() bool { return false }
func (p *Primitive) Includes() []string          { return webcoreIncludes(p.idlType, p.NativeType()) }
func (p *Primitive) Dependencies() []string      { return nil }

// GetterName is the native accessor strategy used for reflected attributes.
func (p *Primitive) GetterName() string { return p.entry.Getter() }

// SetterName is the native mutator strategy used for reflected attributes.
func (p *Primitive) SetterName() string { return p.entry.Setter() }

// VectorTemplateParam keeps float as float: sequence<float> maps to
// Vector<float> even though scalar floats are doubles.
func (p *Primitive) VectorTemplateParam() (string, error) {
	if p.idlType == "float" {
		return "float", nil
	}
	return p.NativeType(), nil
}

func (p *Primitive) ToNative(idl.ExtAttrs, string) (NativeInfo, error) {
	native := p.NativeType()
	switch native {
	case "SerializedScriptValue":
		native = "RefPtr<SerializedScriptValue>"
	case "String":
		native = "DartStringAdapter"
	}
	target := capitalize(p.NativeType())
	if p.idlType == "Date" {
		target = "Date"
	}
	return NativeInfo{ArgTemplate: "%s", NativeType: native, Class: "DartUtilities", Function: "dartTo" + target}, nil
}

func (p *Primitive) ParameterType() string {
	if p.NativeType() == "String" {
		return "const String&"
	}
	return p.NativeType()
}

func (p *Primitive) ConversionExpression(value string, ctx ConversionContext) string {
	var fn string
	if p.idlType == "Date" {
		fn = "date"
	} else {
		fn = capitalize(p.NativeType())
		fn = strings.ToLower(fn[:1]) + fn[1:]
	}
	fn = "DartUtilities::" + fn + "ToDart"
	if ctx.Attributes.Has("TreatReturnedNullStringAs") {
		fn += "WithNullCheck"
	}
	return fn + "(" + value + ")"
}

// capitalize upper-cases the first letter of each space separated word and
// drops the spaces: "unsigned long long" becomes "UnsignedLongLong".
func capitalize(native string) string {
	titled := cases.Title(language.Und, cases.NoLower).String(native)
	return strings.ReplaceAll(titled, " ", "")
}

// Interface ---------------------------------------------------------------

// Interface is a reference type backed by a generated class.
type Interface struct {
	base
	name string
	reg  *Registry
}

func (i *Interface) Kind() Kind                  { return KindInterface }
func (i *Interface) InterfaceName() string       { return i.name }
func (i *Interface) HasGeneratedInterface() bool { return !i.entry.SuppressInterface }
func (i *Interface) NativeType() string          { return i.declaredNative() }
func (i *Interface) ParameterType() string       { return i.NativeType() + "*" }
func (i *Interface) Includes() []string          { return webcoreIncludes(i.idlType, i.NativeType()) }

// TargetType prefers the table override, then List<Item> for container
// wrappers without a public abstraction, then the renamed interface name.
func (i *Interface) TargetType() string {
	if i.entry.TargetType != "" {
		return i.entry.TargetType
	}
	if i.entry.ItemType != "" && !i.HasGeneratedInterface() {
		return listOf(i.reg.TargetType(i.entry.ItemType))
	}
	return i.name
}

func (i *Interface) NarrowTargetType() string {
	if i.entry.ItemType != "" {
		return i.ImplementationName()
	}
	if i.entry.TargetType != "" {
		return i.TargetType()
	}
	if i.reg.table.IsPureInterface(i.idlType) {
		return i.idlType
	}
	return i.InterfaceName()
}

func (i *Interface) ImplementationName() string {
	name := i.name
	if i.entry.MergedInto != "" {
		name = "_" + name + "_Merged"
	}
	if !i.HasGeneratedInterface() {
		name = "_" + name
	}
	return name
}

func (i *Interface) VectorTemplateParam() (string, error) {
	return i.NativeType(), nil
}

func (i *Interface) ToNative(argAttrs idl.ExtAttrs, iface string) (NativeInfo, error) {
	return referenceToNative(i.BindingsClass(), i.NativeType(), i.CustomToNative(), false, argAttrs, iface), nil
}

func (i *Interface) Dependencies() []string {
	return conversionHeaders(append([]string{i.idlType}, i.entry.ConversionIncludes...))
}

func (i *Interface) ConversionExpression(value string, _ ConversionContext) string {
	return "Dart" + i.idlType + "::toDart(" + value + ")"
}

// Sequence ----------------------------------------------------------------

// Sequence is sequence<T> or T[].
type Sequence struct {
	base
	item Descriptor
}

func (s *Sequence) Kind() Kind                  { return KindSequence }
func (s *Sequence) Item() Descriptor            { return s.item }
func (s *Sequence) TargetType() string          { return listOf(s.item.TargetType()) }
func (s *Sequence) NarrowTargetType() string    { return s.TargetType() }
func (s *Sequence) InterfaceName() string       { return s.TargetType() }
func (s *Sequence) ImplementationName() string  { return s.TargetType() }
func (s *Sequence) HasGeneratedInterface() bool { return false }
func (s *Sequence) ListItemType() string        { return s.item.IDLType() }
func (s *Sequence) PassNativeByRef() bool       { return true }
func (s *Sequence) ParameterType() string       { return "const " + s.NativeType() + "&" }
func (s *Sequence) Includes() []string          { return s.item.Includes() }
func (s *Sequence) Dependencies() []string      { return s.item.Dependencies() }

// NativeType is a vector over the item's native representation. Nested
// sequences have none; the raw name is returned and ToNative reports the
// error.
func (s *Sequence) NativeType() string {
	info, err := s.ToNative(nil, "")
	if err != nil {
		return s.idlType
	}
	return info.NativeType
}

func (s *Sequence) VectorTemplateParam() (string, error) {
	return "", diag.Errorf(diag.CfgNestedSequence, s.idlType, "sequences of sequences are not supported yet")
}

func (s *Sequence) ToNative(idl.ExtAttrs, string) (NativeInfo, error) {
	param, err := s.item.VectorTemplateParam()
	if err != nil {
		return NativeInfo{}, err
	}
	if s.item.Kind() == KindPrimitive {
		vec := "Vector<" + param + ">"
		return NativeInfo{ArgTemplate: "%s", NativeType: vec, Class: "DartUtilities", Function: "toNativeVector<" + param + ">"}, nil
	}
	elem := "RefPtr<" + param + ">"
	return NativeInfo{
		ArgTemplate: "%s",
		NativeType:  "Vector< " + elem + " >",
		Class:       "DartUtilities",
		Function:    "toNativeVector< " + elem + " >",
	}, nil
}

func (s *Sequence) ConversionExpression(value string, _ ConversionContext) string {
	if s.item.Kind() == KindPrimitive {
		return "DartDOMWrapper::vectorToDart(" + value + ")"
	}
	return "DartDOMWrapper::vectorToDart<" + s.item.BindingsClass() + ">(" + value + ")"
}

// StringList --------------------------------------------------------------

// StringList is the distinguished DOMString[] descriptor; it travels as a
// DOMStringList rather than a vector.
type StringList struct {
	Sequence
}

const stringListNative = "DOMStringList"

func (s *StringList) Kind() Kind            { return KindStringList }
func (s *StringList) NativeType() string    { return stringListNative }
func (s *StringList) PassNativeByRef() bool { return false }
func (s *StringList) ParameterType() string { return "RefPtr<" + stringListNative + ">" }

func (s *StringList) ToNative(idl.ExtAttrs, string) (NativeInfo, error) {
	return NativeInfo{
		ArgTemplate: "%s",
		NativeType:  "RefPtr<" + stringListNative + ">",
		Class:       "Dart" + stringListNative,
		Function:    "toNative",
	}, nil
}

// Callback ----------------------------------------------------------------

// Callback is an interface carrying the callback marker. Its native side is
// whatever concrete callback class the generated code supplies.
type Callback struct {
	base
}

func (c *Callback) Kind() Kind                  { return KindCallback }
func (c *Callback) TargetType() string          { return c.declaredTarget() }
func (c *Callback) NarrowTargetType() string    { return c.TargetType() }
func (c *Callback) NativeType() string          { return c.declaredNative() }
func (c *Callback) InterfaceName() string       { return c.TargetType() }
func (c *Callback) ImplementationName() string  { return c.TargetType() }
func (c *Callback) HasGeneratedInterface() bool { return false }
func (c *Callback) ParameterType() string       { return c.NativeType() + "*" }
func (c *Callback) Includes() []string          { return webcoreIncludes(c.idlType, c.NativeType()) }

func (c *Callback) Dependencies() []string {
	return conversionHeaders(append([]string{c.idlType}, c.entry.ConversionIncludes...))
}

func (c *Callback) VectorTemplateParam() (string, error) {
	return c.NativeType(), nil
}

func (c *Callback) ToNative(argAttrs idl.ExtAttrs, iface string) (NativeInfo, error) {
	return referenceToNative(c.BindingsClass(), c.NativeType(), c.CustomToNative(), false, argAttrs, iface), nil
}

func (c *Callback) ConversionExpression(value string, _ ConversionContext) string {
	return "Dart" + c.idlType + "::toDart(" + value + ")"
}

// TearOff -----------------------------------------------------------------

var primitiveTearOffs = map[string]bool{
	"SVGAngle":     true,
	"SVGLength":    true,
	"SVGMatrix":    true,
	"SVGNumber":    true,
	"SVGPoint":     true,
	"SVGRect":      true,
	"SVGTransform": true,
}

// TearOff wraps a live, mutable view onto a property (SVG geometry, lists
// of lengths or transforms).
type TearOff struct {
	Interface
}

func (t *TearOff) Kind() Kind { return KindTearOff }

func (t *TearOff) isList() bool { return strings.HasSuffix(t.idlType, "List") }

func (t *TearOff) NativeType() string {
	if t.entry.NativeType != "" {
		return t.entry.NativeType
	}
	if t.isList() {
		return "SVGListPropertyTearOff<" + t.idlType + ">"
	}
	return "SVGPropertyTearOff<" + t.idlType + ">"
}

func (t *TearOff) Receiver() string {
	if t.isList() {
		return "receiver->"
	}
	return "receiver->propertyReference()."
}

func (t *TearOff) ParameterType() string { return t.NativeType() + "*" }
func (t *TearOff) Includes() []string    { return webcoreIncludes(t.idlType, t.NativeType()) }

func (t *TearOff) VectorTemplateParam() (string, error) {
	return t.NativeType(), nil
}

func (t *TearOff) ToNative(argAttrs idl.ExtAttrs, iface string) (NativeInfo, error) {
	return referenceToNative(t.BindingsClass(), t.NativeType(), t.CustomToNative(), true, argAttrs, iface), nil
}

// ConversionExpression picks the wrapper construction for the owning
// interface: animated wrappers are cast, SVGStringList is created against
// the receiver, list owners cast the held pointer, primitive tear-offs are
// created, everything else is cast.
func (t *TearOff) ConversionExpression(value string, ctx ConversionContext) string {
	native := t.NativeType()
	var cast string
	switch {
	case strings.HasPrefix(ctx.Interface, "SVGAnimated"):
		cast = "static_cast<" + native + "*>(" + value + ")"
	case t.idlType == "SVGStringList":
		cast = native + "::create(receiver, " + value + ")"
	case strings.HasSuffix(ctx.Interface, "List"):
		cast = "static_cast<" + native + "*>(" + value + ".get())"
	case primitiveTearOffs[t.idlType]:
		cast = native + "::create(" + value + ")"
	default:
		cast = "static_cast<" + native + "*>(" + value + ")"
	}
	return "Dart" + t.idlType + "::toDart(" + cast + ")"
}

// ArgumentExpression unwraps a tear-off argument unless the owner is a list.
func (t *TearOff) ArgumentExpression(name, iface string) string {
	if strings.HasSuffix(iface, "List") {
		return name
	}
	return name + "->propertyReference()"
}
