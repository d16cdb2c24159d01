package ops

import (
	"reflect"
	"testing"

	"idlbind/internal/diag"
	"idlbind/internal/idl"
	"idlbind/internal/types"
	"idlbind/internal/typetable"
)

func arg(id, typ string, attrs ...string) idl.Argument {
	a := idl.Argument{ID: id, Type: typ}
	if len(attrs) > 0 {
		a.ExtAttrs = idl.ExtAttrs{}
		for _, k := range attrs {
			a.ExtAttrs[k] = ""
		}
	}
	return a
}

func op(id, ret string, args ...idl.Argument) *idl.Operation {
	return &idl.Operation{ID: id, Type: ret, Arguments: args}
}

func testRegistry() *types.Registry {
	db := idl.NewMemDatabase()
	db.AddInterface(&idl.Interface{ID: "Node"})
	db.AddEnum("ReadyState")
	return types.NewRegistry(db, idl.NewDefaultRenamer(), typetable.Default())
}

func TestMergeSingleOverload(t *testing.T) {
	iface := &idl.Interface{ID: "Node"}
	info, err := Merge(iface, []*idl.Operation{op("appendChild", "Node", arg("child", "Node"))}, testRegistry())
	if err != nil {
		t.Fatal(err)
	}
	want := []Param{{Name: "child", TypeID: "Node"}}
	if !reflect.DeepEqual(info.Params, want) {
		t.Fatalf("params = %+v", info.Params)
	}
	if info.Name != "appendChild" || info.JSName != "appendChild" || info.TypeName != "Node" || info.RequiresNamedArgs {
		t.Fatalf("unexpected info %+v", info)
	}
}

func TestMergeSplitsBareOptional(t *testing.T) {
	iface := &idl.Interface{ID: "CanvasRenderingContext2D"}
	fill := op("fillText", "void",
		arg("text", "DOMString"), arg("x", "float"), arg("y", "float"), arg("maxWidth", "float", "Optional"))
	info, err := Merge(iface, []*idl.Operation{fill}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(info.Overloads) != 2 || len(info.Overloads[0].Arguments) != 3 || info.Overloads[1] != fill {
		t.Fatalf("expected truncated copy before the original, got %d overloads", len(info.Overloads))
	}
	if len(info.Operations) != 1 {
		t.Fatalf("declared overloads must stay as given")
	}
	want := []Param{
		{Name: "text", TypeID: "DOMString"},
		{Name: "x", TypeID: "float"},
		{Name: "y", TypeID: "float"},
		{Name: "maxWidth", TypeID: "float", Optional: true},
	}
	if !reflect.DeepEqual(info.Params, want) {
		t.Fatalf("params = %+v", info.Params)
	}
	if len(fill.Arguments) != 4 {
		t.Fatalf("source overload was truncated in place")
	}
}

func TestMergeValuedOptionalIsNotSplit(t *testing.T) {
	iface := &idl.Interface{ID: "Node"}
	o := op("f", "void", arg("a", "long"))
	o.Arguments[0].ExtAttrs = idl.ExtAttrs{"Optional": "DefaultIsUndefined"}
	info, err := Merge(iface, []*idl.Operation{o}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(info.Overloads) != 1 || info.Params[0].Optional {
		t.Fatalf("valued Optional must not split: %+v", info.Params)
	}
}

func TestMergeUnifiesNamesAndTypes(t *testing.T) {
	iface := &idl.Interface{ID: "Document"}
	reg := testRegistry()
	cases := []struct {
		name      string
		overloads []*idl.Operation
		want      []Param
	}{
		{
			name:      "disagreeing types are dropped",
			overloads: []*idl.Operation{op("f", "void", arg("x", "long")), op("f", "void", arg("y", "DOMString"))},
			want:      []Param{{Name: "x_OR_y", TypeID: ""}},
		},
		{
			name:      "same target keeps the first id",
			overloads: []*idl.Operation{op("f", "void", arg("a", "short")), op("f", "void", arg("a", "long"))},
			want:      []Param{{Name: "a", TypeID: "long"}},
		},
		{
			name:      "enums unify with strings",
			overloads: []*idl.Operation{op("f", "void", arg("s", "ReadyState")), op("f", "void", arg("s", "DOMString"))},
			want:      []Param{{Name: "s", TypeID: "DOMString"}},
		},
		{
			name:      "unknown ids compare raw",
			overloads: []*idl.Operation{op("f", "void", arg("w", "Widget")), op("f", "void", arg("w", "Widget"))},
			want:      []Param{{Name: "w", TypeID: "Widget"}},
		},
		{
			name: "shorter overloads make later positions optional",
			overloads: []*idl.Operation{
				op("f", "void", arg("a", "long")),
				op("f", "void", arg("a", "long"), arg("b", "Node")),
			},
			want: []Param{{Name: "a", TypeID: "long"}, {Name: "b", TypeID: "Node", Optional: true}},
		},
	}
	for _, tc := range cases {
		info, err := Merge(iface, tc.overloads, reg)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if !reflect.DeepEqual(info.Params, tc.want) {
			t.Fatalf("%s: params = %+v, want %+v", tc.name, info.Params, tc.want)
		}
	}
}

func TestMergeOptionalityIsSticky(t *testing.T) {
	iface := &idl.Interface{ID: "Entry"}
	o := op("remove", "void",
		arg("successCallback", "VoidCallback"),
		arg("flags", "long"))
	o.Arguments[0].ExtAttrs = idl.ExtAttrs{"Callback": "", "Optional": "DefaultIsUndefined"}
	info, err := Merge(iface, []*idl.Operation{o}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !info.Params[0].Optional || !info.Params[1].Optional {
		t.Fatalf("optionality must carry to later positions: %+v", info.Params)
	}
	if len(info.Overloads) != 1 {
		t.Fatalf("valued Optional must not split")
	}
	if _, err := info.ParametersDeclaration(func(s string) string { return s }, false); err != nil {
		t.Fatalf("sticky optionality never yields optional-before-required: %v", err)
	}
}

func TestMergeErrors(t *testing.T) {
	iface := &idl.Interface{ID: "URL"}
	if _, err := Merge(iface, nil, nil); !diag.HasCode(err, diag.CfgEmptyOverloadSet) {
		t.Fatalf("expected CfgEmptyOverloadSet, got %v", err)
	}
	a := op("createObjectURL", "DOMString", arg("blob", "Blob"))
	b := op("createObjectURL", "DOMString", arg("source", "MediaSource"))
	a.Static = true
	_, err := Merge(iface, []*idl.Operation{a, b}, nil)
	if !diag.HasCode(err, diag.CfgStaticMismatch) {
		t.Fatalf("expected CfgStaticMismatch, got %v", err)
	}
	if de, _ := diag.AsError(err); de.Diag.Subject != "URL.createObjectURL" {
		t.Fatalf("subject = %q", de.Diag.Subject)
	}
}

func TestMergeNamesAndNamedFormals(t *testing.T) {
	iface := &idl.Interface{ID: "XMLHttpRequest"}
	open := op("open", "void",
		arg("method", "DOMString"), arg("url", "DOMString"),
		arg("async", "boolean", "Optional"), arg("user", "DOMString", "Optional"))
	open.ExtAttrs = idl.ExtAttrs{"DartName": "openRequest"}
	info, err := Merge(iface, []*idl.Operation{open}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if info.Name != "openRequest" || info.DeclaredName != "open" || !info.RequiresNamedArgs {
		t.Fatalf("unexpected info %+v", info)
	}
	rename := func(id string) string {
		return map[string]string{"DOMString": "String", "boolean": "bool"}[id]
	}
	decl, err := info.ParametersDeclaration(rename, false)
	if err != nil {
		t.Fatal(err)
	}
	if decl != "String method, String url, {bool async, String user}" {
		t.Fatalf("named declaration = %q", decl)
	}
	decl, _ = info.ParametersDeclaration(rename, true)
	if decl != "String method, String url, [bool async, String user]" {
		t.Fatalf("forced positional declaration = %q", decl)
	}
	if got := info.ParametersAsArgumentList(-1); got != "method, url, async : async, user : user" {
		t.Fatalf("argument list = %q", got)
	}
	if got := info.ParametersAsArgumentList(3); got != "method, url, async : async" {
		t.Fatalf("argument prefix = %q", got)
	}
}

func TestParametersDeclarationFormatting(t *testing.T) {
	info := &Info{DeclaredName: "f", Params: []Param{
		{Name: "a", TypeID: "long"},
		{Name: "b", TypeID: "any"},
		{Name: "c_OR_d"},
		{Name: "e", TypeID: "long", Optional: true},
	}}
	rename := func(id string) string {
		if id == "any" {
			return types.DynamicType
		}
		return "int"
	}
	got, err := info.ParametersDeclaration(rename, false)
	if err != nil {
		t.Fatal(err)
	}
	if got != "int a, /*any*/ b, c_OR_d, [int e]" {
		t.Fatalf("declaration = %q", got)
	}

	bad := &Info{DeclaredName: "g", Params: []Param{{Name: "x", Optional: true}, {Name: "y"}}}
	if _, err := bad.ParametersDeclaration(rename, false); !diag.HasCode(err, diag.CfgOptionalBeforeRequired) {
		t.Fatalf("expected CfgOptionalBeforeRequired, got %v", err)
	}
}

func TestToFutureFormDoesNotMutate(t *testing.T) {
	iface := &idl.Interface{ID: "DirectoryEntry"}
	getFile := op("getFile", "void",
		arg("path", "DOMString"),
		arg("successCallback", "EntryCallback", "Callback", "Optional"),
		arg("errorCallback", "ErrorCallback", "Callback", "Optional"))
	info, err := Merge(iface, []*idl.Operation{getFile}, nil)
	if err != nil {
		t.Fatal(err)
	}
	before := info.Clone()

	future := ToFutureForm(info)
	if future.TypeName != FutureType {
		t.Fatalf("return type = %q", future.TypeName)
	}
	if len(future.Params) != 1 || future.Params[0].Name != "path" {
		t.Fatalf("params = %+v", future.Params)
	}
	if len(future.CallbackArgs) != 2 || future.CallbackArgs[0].Name != "successCallback" {
		t.Fatalf("callback args = %+v", future.CallbackArgs)
	}
	if !reflect.DeepEqual(info, before) {
		t.Fatalf("input descriptor mutated: %+v", info)
	}
	future.Params[0].Name = "changed"
	if info.Params[0].Name != "path" {
		t.Fatalf("future form shares parameter storage with the input")
	}
}

func TestToFutureFormMatchesCallbacksByName(t *testing.T) {
	iface := &idl.Interface{ID: "EventTarget"}
	listen := op("listen", "void",
		arg("type", "DOMString"),
		arg("listener", "EventListener", "Callback"),
		arg("done", "VoidCallback"))
	info, err := Merge(iface, []*idl.Operation{listen}, nil)
	if err != nil {
		t.Fatal(err)
	}
	future := ToFutureForm(info)
	if len(future.Params) != 2 || future.Params[1].Name != "listener" {
		t.Fatalf("params = %+v", future.Params)
	}
	if len(future.CallbackArgs) != 1 || future.CallbackArgs[0].Name != "done" {
		t.Fatalf("callback args = %+v", future.CallbackArgs)
	}
}

func TestAnalyzeConstructor(t *testing.T) {
	rename := func(id string) string { return idl.NewDefaultRenamer().DartifyTypeName(id) }

	ws := &idl.Interface{
		ID:       "WebSocket",
		ExtAttrs: idl.ExtAttrs{"Constructor": ""},
		Constructors: []idl.Constructor{
			{Arguments: []idl.Argument{arg("url", "DOMString")}},
			{Arguments: []idl.Argument{arg("url", "DOMString"), arg("protocols", "DOMString", "Optional")}},
		},
	}
	info, ok, err := AnalyzeConstructor(ws, nil)
	if err != nil || !ok {
		t.Fatalf("constructor not analyzed: %v", err)
	}
	want := []Param{{Name: "url", TypeID: "DOMString"}, {Name: "protocols", TypeID: "DOMString", Optional: true}}
	if !reflect.DeepEqual(info.Params, want) || info.TypeName != "WebSocket" {
		t.Fatalf("unexpected constructor %+v", info)
	}
	if got := info.ConstructorFullName(rename); got != "WebSocket" {
		t.Fatalf("full name = %q", got)
	}

	bare := &idl.Interface{ID: "FormData", ExtAttrs: idl.ExtAttrs{"Constructor": ""}}
	info, ok, _ = AnalyzeConstructor(bare, nil)
	if !ok || len(info.Params) != 0 {
		t.Fatalf("marker without overloads is a no-argument constructor: %+v", info)
	}

	img := &idl.Interface{
		ID: "HTMLImageElement",
		NamedConstructor: &idl.Constructor{ID: "Image", Arguments: []idl.Argument{
			arg("width", "unsigned long", "Optional"), arg("height", "unsigned long", "Optional"),
		}},
	}
	info, ok, _ = AnalyzeConstructor(img, nil)
	if !ok || info.Name != "Image" || !info.Params[0].Optional || !info.Params[1].Optional {
		t.Fatalf("named constructor = %+v", info)
	}

	if _, ok, _ := AnalyzeConstructor(&idl.Interface{ID: "Node"}, nil); ok {
		t.Fatalf("interface without constructors reported one")
	}

	arrays := &Info{TypeName: "ArrayBuffer"}
	if got := arrays.ConstructorFullName(func(string) string { return types.DynamicType }); got != "ArrayBuffer" {
		t.Fatalf("ArrayBuffer full name = %q", got)
	}
	named := &Info{TypeName: "Int8Array", ConstructorName: "fromList"}
	if got := named.ConstructorFullName(rename); got != "Int8Array.fromList" {
		t.Fatalf("named full name = %q", got)
	}
}

func TestCallbackInfo(t *testing.T) {
	cb := &idl.Interface{
		ID:       "StringCallback",
		ExtAttrs: idl.ExtAttrs{"Callback": ""},
		Operations: []*idl.Operation{
			op("handleEvent", "boolean", arg("data", "DOMString")),
			op("other", "void"),
		},
	}
	info, ok, err := CallbackInfo(cb, nil)
	if err != nil || !ok {
		t.Fatalf("callback info: %v", err)
	}
	if len(info.Operations) != 1 || info.Params[0].Name != "data" {
		t.Fatalf("unexpected callback info %+v", info)
	}
	if _, ok, _ := CallbackInfo(&idl.Interface{ID: "Node"}, nil); ok {
		t.Fatalf("no handler expected")
	}
}

func TestFindMatchingAttribute(t *testing.T) {
	iface := &idl.Interface{ID: "Node", Attributes: []*idl.Attribute{
		{ID: "nodeName", Type: "DOMString"},
		{ID: "parentNode", Type: "Node"},
	}}
	attr, ok, err := FindMatchingAttribute(iface, "parentNode")
	if err != nil || !ok || attr.Type != "Node" {
		t.Fatalf("lookup failed: %v %v %v", attr, ok, err)
	}
	if _, ok, err := FindMatchingAttribute(iface, "missing"); ok || err != nil {
		t.Fatalf("missing attribute: %v %v", ok, err)
	}
	iface.Attributes = append(iface.Attributes, &idl.Attribute{ID: "nodeName", Type: "DOMString"})
	if _, _, err := FindMatchingAttribute(iface, "nodeName"); !diag.HasCode(err, diag.CfgDuplicateAttribute) {
		t.Fatalf("expected CfgDuplicateAttribute, got %v", err)
	}
}

func TestIsStatic(t *testing.T) {
	a := op("f", "void")
	a.Static = true
	info, err := Merge(&idl.Interface{ID: "Console"}, []*idl.Operation{a}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if static, err := info.IsStatic(); err != nil || !static {
		t.Fatalf("IsStatic = %v, %v", static, err)
	}
	info.Overloads = append(info.Overloads, op("f", "void"))
	if _, err := info.IsStatic(); !diag.HasCode(err, diag.CfgStaticMismatch) {
		t.Fatalf("expected CfgStaticMismatch, got %v", err)
	}
}

func TestTypeFormatting(t *testing.T) {
	cases := []struct {
		target, comment, nothing, orVar string
	}{
		{"int", "long", "int ", "int"},
		{types.DynamicType, "any", "/*any*/ ", "var /*any*/"},
		{types.DynamicType, "", "", "var"},
	}
	for _, tc := range cases {
		if got := TypeOrNothing(tc.target, tc.comment); got != tc.nothing {
			t.Fatalf("TypeOrNothing(%q, %q) = %q", tc.target, tc.comment, got)
		}
		if got := TypeOrVar(tc.target, tc.comment); got != tc.orVar {
			t.Fatalf("TypeOrVar(%q, %q) = %q", tc.target, tc.comment, got)
		}
	}
}
