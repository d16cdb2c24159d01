// Package annot holds the conversion and annotation tables consulted when
// member metadata is assembled, and the lookups over them.
package annot

import "fmt"

// Direction distinguishes values read from native code (getters and return
// values) from values passed to it (setters and arguments).
type Direction string

const (
	Get Direction = "get"
	Set Direction = "set"
)

// ParseDirection accepts "get" or "set".
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case Get, Set:
		return Direction(s), nil
	default:
		return "", fmt.Errorf("unknown conversion direction %q", s)
	}
}

// Conversion names the helper applied to a value crossing the native
// boundary.
type Conversion struct {
	Function   string `json:"function"`
	InputType  string `json:"input_type"`
	OutputType string `json:"output_type"`
}

// KeyStrategy builds one lookup key for a conversion query.
type KeyStrategy struct {
	Name string
	Key  func(idlType string, dir Direction, iface, member string) string
}

// ConversionKeyChain is the lookup order, most specific first.
var ConversionKeyChain = []KeyStrategy{
	{Name: "member", Key: func(t string, d Direction, i, m string) string {
		return fmt.Sprintf("%s %s %s.%s", t, d, i, m)
	}},
	{Name: "any-type member", Key: func(_ string, d Direction, i, m string) string {
		return fmt.Sprintf("* %s %s.%s", d, i, m)
	}},
	{Name: "interface", Key: func(t string, d Direction, i, _ string) string {
		return fmt.Sprintf("%s %s %s.*", t, d, i)
	}},
	{Name: "type", Key: func(t string, d Direction, _, _ string) string {
		return fmt.Sprintf("%s %s", t, d)
	}},
}

// Conversions is an immutable conversion table. A key mapped to nil is an
// explicit "no conversion": the chain stops there with no result, so a nil
// member entry suppresses any less specific interface or type entry. This
// deliberately differs from a plain first-non-empty fallback, where a nil
// entry would fall through to the next key.
type Conversions struct {
	entries map[string]*Conversion
}

// NewConversions copies entries into a table.
func NewConversions(entries map[string]*Conversion) *Conversions {
	c := &Conversions{entries: make(map[string]*Conversion, len(entries))}
	for k, v := range entries {
		if v != nil {
			cp := *v
			v = &cp
		}
		c.entries[k] = v
	}
	return c
}

// Len returns the number of keys, explicit "no conversion" keys included.
func (c *Conversions) Len() int { return len(c.entries) }

// Find returns the conversion for a value of idlType crossing the boundary
// in dir at iface.member. It reports false when no conversion applies.
func (c *Conversions) Find(idlType string, dir Direction, iface, member string) (*Conversion, bool) {
	_, conv, ok := c.FindKey(idlType, dir, iface, member)
	return conv, ok
}

// FindKey is Find that also returns the key that decided the lookup, or ""
// when the chain was exhausted.
func (c *Conversions) FindKey(idlType string, dir Direction, iface, member string) (string, *Conversion, bool) {
	for _, strategy := range ConversionKeyChain {
		key := strategy.Key(idlType, dir, iface, member)
		conv, ok := c.entries[key]
		if !ok {
			continue
		}
		if conv == nil {
			return key, nil, false
		}
		cp := *conv
		return key, &cp, true
	}
	return "", nil, false
}

func serializeSSV() *Conversion {
	return &Conversion{Function: "convertDartToNative_SerializedScriptValue", InputType: "dynamic", OutputType: "dynamic"}
}

// DefaultConversions returns the production conversion table.
func DefaultConversions() *Conversions {
	return NewConversions(map[string]*Conversion{
		"Date get": {Function: "_convertNativeToDart_DateTime", InputType: "dynamic", OutputType: "DateTime"},
		"Date set": {Function: "_convertDartToNative_DateTime", InputType: "DateTime", OutputType: "dynamic"},

		// Non-local windows are wrapped. EventTarget is the base type, so it
		// is checked too.
		"DOMWindow get":   {Function: "_convertNativeToDart_Window", InputType: "dynamic", OutputType: "WindowBase"},
		"EventTarget get": {Function: "_convertNativeToDart_EventTarget", InputType: "dynamic", OutputType: "EventTarget"},
		"EventTarget set": {Function: "_convertDartToNative_EventTarget", InputType: "EventTarget", OutputType: "dynamic"},

		"ImageData get": {Function: "_convertNativeToDart_ImageData", InputType: "dynamic", OutputType: "ImageData"},
		"ImageData set": {Function: "_convertDartToNative_ImageData", InputType: "ImageData", OutputType: "dynamic"},

		"Dictionary get": {Function: "convertNativeToDart_Dictionary", InputType: "dynamic", OutputType: "Map"},
		"Dictionary set": {Function: "convertDartToNative_Dictionary", InputType: "Map", OutputType: "dynamic"},

		"sequence<DOMString> set": {Function: "convertDartToNative_StringArray", InputType: "List<String>", OutputType: "List"},

		"any set IDBObjectStore.add":                      serializeSSV(),
		"any set IDBObjectStore.put":                      serializeSSV(),
		"any set IDBCursor.update":                        serializeSSV(),
		"any set MessagePort.postMessage":                 serializeSSV(),
		"SerializedScriptValue set DOMWindow.postMessage": serializeSSV(),

		"* get MessageEvent.data":   {Function: "convertNativeToDart_SerializedScriptValue", InputType: "dynamic", OutputType: "dynamic"},
		"* get History.state":       {Function: "_convertNativeToDart_SerializedScriptValue", InputType: "dynamic", OutputType: "dynamic"},
		"* get PopStateEvent.state": {Function: "convertNativeToDart_SerializedScriptValue", InputType: "dynamic", OutputType: "dynamic"},

		// IDBAny is sometimes a plain union of IDB types and sometimes a data
		// value.
		"* get IDBCursorWithValue.value":    {Function: "_convertNativeToDart_IDBAny", InputType: "dynamic", OutputType: "dynamic"},
		"IDBAny get IDBRequest.result":      {Function: "_convertNativeToDart_IDBAny", InputType: "dynamic", OutputType: "dynamic"},
		"IDBAny get IDBCursor.source":       nil,
		"IDBAny get IDBObjectStore.keyPath": nil,
	})
}
