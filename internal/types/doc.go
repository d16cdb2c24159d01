// Package types resolves raw IDL type names into descriptors.
//
// A Registry turns a raw name ("long", "sequence<Node>", "DOMString[]",
// "SVGLengthList", an enum or an interface name) into a Descriptor and
// memoizes it: resolving the same name twice through one registry yields the
// identical descriptor. The type table (package typetable) supplies declared
// overrides; the database and renamer (package idl) supply interfaces, enums
// and exposed names.
//
// Descriptors form a closed set of variants:
//
//	Primitive   numbers, strings, dates, enums
//	Interface   generated classes and container wrappers
//	Sequence    sequence<T> and T[]
//	StringList  DOMString[]
//	Callback    interfaces marked [Callback]
//	TearOff     SVG live-view wrappers
//
// Every variant answers the same questions (target type, native type,
// conversion expression, dependencies) but computes them differently. Use
// Match to dispatch over the variants.
package types
