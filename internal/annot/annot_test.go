package annot

import (
	"reflect"
	"testing"

	"idlbind/internal/idl"
)

func TestConversionKeyChainOrder(t *testing.T) {
	var keys []string
	for _, s := range ConversionKeyChain {
		keys = append(keys, s.Key("Date", Get, "DOMWindow", "foo"))
	}
	want := []string{"Date get DOMWindow.foo", "* get DOMWindow.foo", "Date get DOMWindow.*", "Date get"}
	if !reflect.DeepEqual(keys, want) {
		t.Fatalf("chain = %q, want %q", keys, want)
	}
}

func TestFindFallsBackToTypeKey(t *testing.T) {
	conv, ok := DefaultConversions().Find("Date", Get, "DOMWindow", "foo")
	if !ok || conv.Function != "_convertNativeToDart_DateTime" || conv.OutputType != "DateTime" {
		t.Fatalf("expected bare Date get entry, got %+v %v", conv, ok)
	}
}

func TestFindPrecedence(t *testing.T) {
	table := NewConversions(map[string]*Conversion{
		"T get I.m": {Function: "exact"},
		"* get I.m": {Function: "anyType"},
		"T get I.*": {Function: "iface"},
		"T get":     {Function: "type"},
		"U get I.*": {Function: "ifaceOnly"},
	})
	cases := []struct {
		typ, iface, member, want string
	}{
		{"T", "I", "m", "exact"},
		{"V", "I", "m", "anyType"},
		{"T", "I", "other", "iface"},
		{"T", "J", "m", "type"},
		{"U", "I", "other", "ifaceOnly"},
	}
	for _, tc := range cases {
		conv, ok := table.Find(tc.typ, Get, tc.iface, tc.member)
		if !ok || conv.Function != tc.want {
			t.Fatalf("%s %s.%s: got %+v, want %s", tc.typ, tc.iface, tc.member, conv, tc.want)
		}
	}
	if _, ok := table.Find("V", Set, "I", "m"); ok {
		t.Fatalf("direction must be part of the key")
	}
}

func TestNilEntrySuppressesLessSpecificKeys(t *testing.T) {
	table := NewConversions(map[string]*Conversion{
		"Blob get Reader.result": nil,
		"Blob get":               {Function: "_wrapBlob", InputType: "dynamic", OutputType: "Blob"},
	})
	key, conv, ok := table.FindKey("Blob", Get, "Reader", "result")
	if ok || conv != nil || key != "Blob get Reader.result" {
		t.Fatalf("nil member entry must not fall through: %q %+v %v", key, conv, ok)
	}
	if conv, ok := table.Find("Blob", Get, "Reader", "other"); !ok || conv.Function != "_wrapBlob" {
		t.Fatalf("other members keep the type entry: %+v %v", conv, ok)
	}
}

func TestExplicitNoConversion(t *testing.T) {
	table := DefaultConversions()
	key, conv, ok := table.FindKey("IDBAny", Get, "IDBCursor", "source")
	if ok || conv != nil || key != "IDBAny get IDBCursor.source" {
		t.Fatalf("explicit nil entry must end the lookup: %q %+v %v", key, conv, ok)
	}
	if _, ok := table.Find("IDBAny", Get, "IDBRequest", "result"); !ok {
		t.Fatalf("IDBRequest.result conversion missing")
	}
	if conv, ok := table.Find("any", Get, "MessageEvent", "data"); !ok || conv.Function != "convertNativeToDart_SerializedScriptValue" {
		t.Fatalf("wildcard type entry not found: %+v", conv)
	}
	if key, _, ok := table.FindKey("long", Get, "Node", "nodeType"); ok || key != "" {
		t.Fatalf("unexpected conversion for long")
	}
}

func TestFindReturnsCopies(t *testing.T) {
	table := DefaultConversions()
	conv, _ := table.Find("Date", Set, "X", "y")
	conv.Function = "mutated"
	again, _ := table.Find("Date", Set, "X", "y")
	if again.Function != "_convertDartToNative_DateTime" {
		t.Fatalf("table mutated through a returned conversion")
	}
}

func TestParseDirection(t *testing.T) {
	if d, err := ParseDirection("set"); err != nil || d != Set {
		t.Fatalf("ParseDirection(set) = %v, %v", d, err)
	}
	if _, err := ParseDirection("put"); err == nil {
		t.Fatalf("expected error")
	}
}

func newTestAnnotator(shared, compiled map[string][]string) *Annotator {
	a := NewAnnotator(nil, idl.NewDefaultRenamer())
	if shared != nil {
		a.Shared = NewAnnotations(shared)
	}
	if compiled != nil {
		a.Compiled = NewAnnotations(compiled)
	}
	return a
}

func TestCommonPrefersMemberKey(t *testing.T) {
	a := newTestAnnotator(map[string][]string{
		"Widget":      {"@Interface"},
		"Widget.size": {"@Member"},
	}, nil)
	got := a.Common("html", "Widget", "size")
	want := []string{"@DomName('Widget.size')", "@DocsEditable", "@Member"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("member annotations = %q", got)
	}
	got = a.Common("html", "Widget", "")
	want = []string{"@DomName('Widget')", "@Interface"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("interface annotations = %q", got)
	}
}

func TestVendorPrefixedMembersAreExperimental(t *testing.T) {
	a := newTestAnnotator(map[string][]string{
		"Widget.webkitSpin": {"@SupportedBrowser(SupportedBrowser.CHROME)"},
	}, nil)
	got := a.Common("html", "Widget", "webkitSpin")
	want := append([]string{
		"@DomName('Widget.webkitSpin')",
		"@DocsEditable",
		"@SupportedBrowser(SupportedBrowser.CHROME)",
	}, WebKitExperimental()...)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("annotations = %q", got)
	}
	// Both triggers fire and the shared browser annotation is listed twice.
	count := 0
	for _, s := range got {
		if s == "@SupportedBrowser(SupportedBrowser.CHROME)" {
			count++
		}
	}
	if count != 2 {
		t.Fatalf("duplicates must be preserved, got %d", count)
	}
}

func TestRenamedVendorMembersAreExempt(t *testing.T) {
	a := NewAnnotator(nil, idl.NewDefaultRenamer())
	got := a.Common("html", "Element", "webkitCreateShadowRoot")
	want := []string{
		"@DomName('Element.webkitCreateShadowRoot')",
		"@DocsEditable",
		"@SupportedBrowser(SupportedBrowser.CHROME, '25')",
		"@Experimental",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("annotations = %q", got)
	}
	if n := len(a.Common("html", "Element", "webkitRequestFullscreen")); n != 2+len(WebKitExperimental()) {
		t.Fatalf("non-exempt vendor member got %d annotations", n)
	}
}

func TestWithCommentsPrependsDocs(t *testing.T) {
	docs, err := idl.ParseDocStore([]byte(`{"dart.dom.html": {"Node": {"members": {"appendChild": ["/// Adds", "/// a child."]}}}}`))
	if err != nil {
		t.Fatal(err)
	}
	a := NewAnnotator(docs, nil)
	got := a.WithComments("html", "Node", "appendChild")
	want := []string{"/// Adds\n/// a child.", "@DomName('Node.appendChild')", "@DocsEditable"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("annotations = %q", got)
	}
	if got := a.WithComments("svg", "Node", "appendChild"); len(got) != 2 {
		t.Fatalf("missing docs must be silent, got %q", got)
	}
}

func TestNativeSpecificCombination(t *testing.T) {
	a := newTestAnnotator(map[string][]string{}, map[string][]string{
		"Store.get":  {"@Member"},
		"Store.put":  {"@Put"},
		"+Request":   {"@PlusRequest"},
		"Request":    {"@Request"},
		"-Blob":      {"@MinusBlob"},
		"Blob":       {"@Blob"},
		"Dictionary": {"@Dictionary"},
	})
	cases := []struct {
		typ, member string
		want        []string
	}{
		{"Request", "get", []string{"@PlusRequest", "@Member"}},
		{"Dictionary", "get", []string{"@Dictionary", "@Member"}},
		{"long", "put", []string{"@Put"}},
		{"Blob", "size", []string{"@MinusBlob"}},
		{"Request", "size", []string{"@Request"}},
		{"long", "size", nil},
	}
	for _, tc := range cases {
		if got := a.NativeSpecific(tc.typ, "Store", tc.member); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("%s Store.%s = %q, want %q", tc.typ, tc.member, got, tc.want)
		}
	}
	if !a.AnyConversionAnnotations("long", "Store", "get") || a.AnyConversionAnnotations("long", "Store", "size") {
		t.Fatalf("AnyConversionAnnotations misreports")
	}
}

func TestNativeAppendsAfterCommon(t *testing.T) {
	a := NewAnnotator(nil, idl.NewDefaultRenamer())
	got := a.Native("IDBRequest", "indexed_db", "IDBFactory", "open")
	want := []string{
		"@DomName('IDBFactory.open')",
		"@DocsEditable",
		"@Returns('Request')",
		"@Creates('Request')",
		"@Creates('Database')",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("annotations = %q", got)
	}
}

func TestDefaultTablesAreIndependent(t *testing.T) {
	a := DefaultAnnotations()
	got := a.Get("WebSocket")
	got[0] = "mutated"
	if DefaultAnnotations().Get("WebSocket")[0] == "mutated" || a.Get("Worker")[0] == "mutated" {
		t.Fatalf("shared browser sets leaked through Get")
	}
}

func TestFormat(t *testing.T) {
	if Format(nil, "  ") != "" {
		t.Fatalf("empty list must format to nothing")
	}
	if got := Format([]string{"@A", "@B"}, "  "); got != "@A\n  @B\n  " {
		t.Fatalf("format = %q", got)
	}
}
