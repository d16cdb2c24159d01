package idl

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const sampleDatabase = `
enums = ["ReadyState"]

[[interface]]
id = "Node"
parents = ["EventTarget"]

[[interface.operation]]
id = "appendChild"
type = "Node"

[[interface.operation.argument]]
id = "child"
type = "Node"

[[interface.operation]]
id = "cloneNode"
type = "Node"

[[interface.operation.argument]]
id = "deep"
type = "boolean"
ext_attrs = { Optional = "" }

[[interface.attribute]]
id = "nodeName"
type = "DOMString"
readonly = true

[[interface]]
id = "StringCallback"
ext_attrs = { Callback = "" }

[[interface.operation]]
id = "handleEvent"
type = "boolean"

[[interface.operation.argument]]
id = "data"
type = "DOMString"

[[interface]]
id = "Worker"

[[interface.constructor]]
id = "Worker"

[[interface.constructor.argument]]
id = "scriptUrl"
type = "DOMString"
`

func TestDecodeDatabase(t *testing.T) {
	db, err := DecodeDatabase(sampleDatabase)
	if err != nil {
		t.Fatal(err)
	}
	if !db.HasEnum("ReadyState") || db.HasEnum("Node") {
		t.Fatalf("unexpected enum set %v", db.Enums())
	}
	node, ok := db.GetInterface("Node")
	if !ok {
		t.Fatalf("Node missing")
	}
	if got := node.OperationNames(); !reflect.DeepEqual(got, []string{"appendChild", "cloneNode"}) {
		t.Fatalf("operation names = %v", got)
	}
	clone := node.OperationsNamed("cloneNode")[0]
	if !clone.Arguments[0].ExtAttrs.IsBare("Optional") {
		t.Fatalf("bare Optional lost: %+v", clone.Arguments[0])
	}
	if len(node.Attributes) != 1 || !node.Attributes[0].ReadOnly {
		t.Fatalf("attributes = %+v", node.Attributes)
	}
	cb, _ := db.GetInterface("StringCallback")
	if !cb.IsCallback() || node.IsCallback() {
		t.Fatalf("callback marker misread")
	}
	worker, _ := db.GetInterface("Worker")
	if len(worker.Constructors) != 1 || worker.Constructors[0].Arguments[0].ID != "scriptUrl" {
		t.Fatalf("constructors = %+v", worker.Constructors)
	}
	var ids []string
	for _, iface := range db.Interfaces() {
		ids = append(ids, iface.ID)
	}
	if !reflect.DeepEqual(ids, []string{"Node", "StringCallback", "Worker"}) {
		t.Fatalf("interfaces = %v", ids)
	}
}

func TestDecodeDatabaseDefaultsVoid(t *testing.T) {
	db, err := DecodeDatabase("[[interface]]\nid = \"A\"\n[[interface.operation]]\nid = \"run\"\n")
	if err != nil {
		t.Fatal(err)
	}
	a, _ := db.GetInterface("A")
	if a.Operations[0].Type != "void" {
		t.Fatalf("return type = %q", a.Operations[0].Type)
	}
}

func TestDecodeDatabaseRejectsDuplicates(t *testing.T) {
	if _, err := DecodeDatabase("[[interface]]\nid = \"A\"\n[[interface]]\nid = \"A\"\n"); err == nil {
		t.Fatalf("expected duplicate interface error")
	}
	if _, err := DecodeDatabase("[[interface]]\nparents = []\n"); err == nil {
		t.Fatalf("expected missing id error")
	}
}

func TestLoadDatabaseFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.toml")
	if err := os.WriteFile(path, []byte(sampleDatabase), 0o600); err != nil {
		t.Fatal(err)
	}
	db, err := LoadDatabase(path)
	if err != nil {
		t.Fatal(err)
	}
	if !db.HasInterface("Worker") {
		t.Fatalf("Worker missing")
	}
}

func TestTruncateDoesNotAlias(t *testing.T) {
	op := &Operation{ID: "f", Type: "void", Arguments: []Argument{
		{ID: "a", Type: "long", ExtAttrs: ExtAttrs{"Optional": ""}},
		{ID: "b", Type: "long"},
	}}
	short := op.Truncate(1)
	short.Arguments[0].ExtAttrs["Optional"] = "DefaultIsUndefined"
	if len(short.Arguments) != 1 || len(op.Arguments) != 2 {
		t.Fatalf("truncate changed lengths")
	}
	if !op.Arguments[0].ExtAttrs.IsBare("Optional") {
		t.Fatalf("truncate shares ext attrs with the source")
	}
}

func TestDefaultRenamer(t *testing.T) {
	r := NewDefaultRenamer()
	cases := map[string]string{
		"DOMWindow":       "Window",
		"SVGElement":      "SvgElement",
		"WebKitCSSMatrix": "CssMatrix",
		"WebKitFoo":       "Foo",
		"Node":            "Node",
		"SVG":             "SVG",
		"XMLHttpRequest":  "HttpRequest",
	}
	for in, want := range cases {
		if got := r.DartifyTypeName(in); got != want {
			t.Fatalf("%s: got %q, want %q", in, got, want)
		}
	}
	named := &Interface{ID: "HTMLDocument", ExtAttrs: ExtAttrs{"DartName": "HtmlDocument"}}
	if got := r.RenameInterface(named); got != "HtmlDocument" {
		t.Fatalf("DartName ignored: %q", got)
	}
	if !r.IsRenamedMember("Element.webkitCreateShadowRoot") || r.IsRenamedMember("Element.webkitRequestFullScreen") {
		t.Fatalf("renamed member table misread")
	}
}

func TestDocStoreComments(t *testing.T) {
	docs, err := ParseDocStore([]byte(`{
		"dart.dom.html": {
			"Node": {
				"comment": ["/**", " * A node.", " */"],
				"members": {"appendChild": ["/// Adds a child."]}
			}
		}
	}`))
	if err != nil {
		t.Fatal(err)
	}
	if got := docs.Comments("html", "Node", ""); !reflect.DeepEqual(got, []string{"/**\n * A node.\n */"}) {
		t.Fatalf("interface comment = %q", got)
	}
	if got := docs.Comments("html", "Node", "appendChild"); !reflect.DeepEqual(got, []string{"/// Adds a child."}) {
		t.Fatalf("member comment = %q", got)
	}
	if docs.Comments("svg", "Node", "") != nil || docs.Comments("html", "Node", "missing") != nil {
		t.Fatalf("missing entries must yield nil")
	}
	if (NopDocStore{}).Comments("html", "Node", "") != nil {
		t.Fatalf("nop store returned comments")
	}
}
