package driver

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"idlbind/internal/diag"
	"idlbind/internal/idl"
	"idlbind/internal/trace"
	"idlbind/internal/typetable"
)

const fixtureDatabase = `
[[interface]]
id = "Node"

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

[[interface.attribute]]
id = "lastModified"
type = "Date"

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
id = "Loader"

[[interface.operation]]
id = "load"

[[interface.operation.argument]]
id = "url"
type = "DOMString"

[[interface.operation.argument]]
id = "callback"
type = "StringCallback"

[[interface]]
id = "Worker"

[[interface.constructor]]
id = "Worker"

[[interface.constructor.argument]]
id = "scriptUrl"
type = "DOMString"

[[interface]]
id = "CSSRuleList"

[[interface.operation]]
id = "item"
type = "CSSRule"
`

func loadFixture(t *testing.T, data string) *idl.MemDatabase {
	t.Helper()
	db, err := idl.DecodeDatabase(data)
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}
	return db
}

func mustInterface(t *testing.T, report *Report, id string) *InterfaceReport {
	t.Helper()
	ir, ok := report.Interface(id)
	if !ok {
		t.Fatalf("interface %s missing from report", id)
	}
	return ir
}

func mustOperation(t *testing.T, ir *InterfaceReport, id string) *Signature {
	t.Helper()
	sig, ok := ir.Operation(id)
	if !ok {
		t.Fatalf("%s.%s missing from report", ir.ID, id)
	}
	return sig
}

func TestRunResolvesInterfaces(t *testing.T) {
	bag := diag.NewBag(50)
	report, err := Run(context.Background(), loadFixture(t, fixtureDatabase), Options{
		Library:  "html",
		Jobs:     3,
		Reporter: &diag.BagReporter{Bag: bag},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Library != "html" || report.Cached {
		t.Fatalf("unexpected header %+v", report)
	}

	ids := make([]string, 0, len(report.Interfaces))
	for _, ir := range report.Interfaces {
		ids = append(ids, ir.ID)
	}
	if got := strings.Join(ids, ","); got != "CSSRuleList,Loader,Node,StringCallback,Worker" {
		t.Fatalf("interfaces out of order: %s", got)
	}

	node := mustInterface(t, report, "Node")
	if node.Target != "Node" || len(node.Annotations) == 0 || node.Annotations[0] != "@DomName('Node')" {
		t.Fatalf("unexpected Node header %+v", node)
	}

	appendChild := mustOperation(t, node, "appendChild")
	if appendChild.Params != "Node child" || appendChild.Returns != "Node" || appendChild.Arguments != "child" {
		t.Fatalf("unexpected appendChild %+v", appendChild)
	}
	if len(appendChild.Annotations) < 2 || appendChild.Annotations[0] != "@DomName('Node.appendChild')" || appendChild.Annotations[1] != "@DocsEditable" {
		t.Fatalf("unexpected appendChild annotations %v", appendChild.Annotations)
	}
	if len(appendChild.NativeArgs) != 1 || appendChild.NativeArgs[0] != "DartNode::toNative" {
		t.Fatalf("unexpected native args %v", appendChild.NativeArgs)
	}
	if appendChild.Future != nil {
		t.Fatalf("appendChild takes no callbacks, got future %+v", appendChild.Future)
	}

	if clone := mustOperation(t, node, "cloneNode"); clone.Params != "[bool deep]" || clone.Overloads != 1 {
		t.Fatalf("unexpected cloneNode %+v", clone)
	}

	if len(node.Attributes) != 2 {
		t.Fatalf("expected 2 attributes, got %+v", node.Attributes)
	}
	name, modified := node.Attributes[0], node.Attributes[1]
	if name.Type != "String" || !name.ReadOnly || name.Setter != "" {
		t.Fatalf("unexpected nodeName %+v", name)
	}
	if modified.Type != "DateTime" || modified.Getter != "_convertNativeToDart_DateTime" || modified.Setter != "_convertDartToNative_DateTime" {
		t.Fatalf("unexpected lastModified %+v", modified)
	}

	load := mustOperation(t, mustInterface(t, report, "Loader"), "load")
	if load.Returns != "void" || load.Params != "String url, StringCallback callback" {
		t.Fatalf("unexpected load %+v", load)
	}
	if strings.Join(load.NativeArgs, ",") != "DartUtilities::dartToString,DartStringCallback::toNative" {
		t.Fatalf("unexpected load native args %v", load.NativeArgs)
	}
	if load.Future == nil || load.Future.Returns != "Future" || load.Future.Params != "String url" {
		t.Fatalf("unexpected future form %+v", load.Future)
	}

	callback := mustInterface(t, report, "StringCallback")
	if !callback.Callback || callback.Handler == nil || callback.Handler.Params != "String data" {
		t.Fatalf("unexpected callback %+v", callback)
	}

	worker := mustInterface(t, report, "Worker")
	if worker.Constructor == nil || worker.Constructor.Returns != "Worker" || worker.Constructor.Params != "String scriptUrl" {
		t.Fatalf("unexpected constructor %+v", worker.Constructor)
	}
	if worker.Constructor.Annotations != nil {
		t.Fatalf("constructors carry no member annotations")
	}

	rules := mustInterface(t, report, "CSSRuleList")
	if !rules.Suppressed || len(rules.Operations) != 0 || rules.Implementation != "_CSSRuleList" {
		t.Fatalf("unexpected suppressed interface %+v", rules)
	}

	var skipped bool
	for _, d := range bag.Items() {
		skipped = skipped || (d.Code == diag.RunSkippedIface && d.Subject == "CSSRuleList")
		if d.Severity == diag.SevWarning {
			t.Fatalf("unexpected warning %v", d)
		}
	}
	if !skipped {
		t.Fatalf("expected skip notice, got %v", bag.Items())
	}

	kinds := map[string]TypeReport{}
	for _, tr := range report.Types {
		kinds[tr.Name] = tr
	}
	if b := kinds["boolean"]; b.Kind != "primitive" || b.Getter != "hasAttribute" || b.Target != "bool" {
		t.Fatalf("unexpected boolean report %+v", b)
	}
	if n := kinds["Node"]; n.Kind != "interface" || n.Implementation != "Node" {
		t.Fatalf("unexpected Node report %+v", n)
	}
	for i := 1; i < len(report.Types); i++ {
		if report.Types[i-1].Name >= report.Types[i].Name {
			t.Fatalf("types not sorted at %d", i)
		}
	}
	if len(report.Timings.Phases) != 2 {
		t.Fatalf("expected interfaces and types phases, got %+v", report.Timings)
	}
}

func TestRunStopsOnConfigurationError(t *testing.T) {
	const broken = `
[[interface]]
id = "Math"

[[interface.operation]]
id = "abs"
type = "double"
static = true

[[interface.operation]]
id = "abs"
type = "double"
`
	_, err := Run(context.Background(), loadFixture(t, broken), Options{Jobs: 1})
	if !diag.HasCode(err, diag.CfgStaticMismatch) {
		t.Fatalf("expected static mismatch, got %v", err)
	}
}

func TestRunRecoversNestedSequence(t *testing.T) {
	const nested = `
[[interface]]
id = "Grid"

[[interface.operation]]
id = "fill"

[[interface.operation.argument]]
id = "rows"
type = "sequence<sequence<long>>"
`
	_, err := Run(context.Background(), loadFixture(t, nested), Options{})
	if !diag.HasCode(err, diag.CfgNestedSequence) {
		t.Fatalf("expected nested sequence error, got %v", err)
	}
}

func TestRunAbortsOnUnknownType(t *testing.T) {
	const unknown = `
[[interface]]
id = "Node"

[[interface.operation]]
id = "lookup"
type = "void"

[[interface.operation.argument]]
id = "thing"
type = "Mystery"
`
	report, err := Run(context.Background(), loadFixture(t, unknown), Options{Jobs: 1})
	if !diag.HasCode(err, diag.CfgUnknownType) {
		t.Fatalf("expected unknown type error, got %v", err)
	}
	if report != nil {
		t.Fatalf("aborted run returned a report")
	}
}

func TestRunAbortsOnUnknownAttributeType(t *testing.T) {
	const unknown = `
[[interface]]
id = "Node"

[[interface.attribute]]
id = "owner"
type = "Mystery"
`
	_, err := Run(context.Background(), loadFixture(t, unknown), Options{Jobs: 1})
	if !diag.HasCode(err, diag.CfgUnknownType) {
		t.Fatalf("expected unknown type error, got %v", err)
	}
}

func TestRunRecoversWrappedContainerError(t *testing.T) {
	const weird = `
[[interface]]
id = "WeirdList"
`
	table := typetable.Default().With(map[string]typetable.Entry{
		"WeirdList": {Category: typetable.CategoryInterface, ItemType: "sequence<Nope>", SuppressInterface: true},
	})
	_, err := Run(context.Background(), loadFixture(t, weird), Options{Jobs: 2, Table: table})
	if !diag.HasCode(err, diag.CfgUnknownType) {
		t.Fatalf("expected unknown item type error, got %v", err)
	}
	if !strings.Contains(err.Error(), "sequence<Nope>") {
		t.Fatalf("error lost its container context: %v", err)
	}
}

func TestRunEmitsProgressAndTrace(t *testing.T) {
	var buf bytes.Buffer
	ctx := trace.WithTracer(context.Background(), trace.NewStreamTracer(&buf, trace.LevelDebug, trace.FormatText))
	events := make(chan Event, 256)

	db := loadFixture(t, fixtureDatabase)
	if _, err := Run(ctx, db, Options{Progress: ChannelSink{Ch: events}}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	close(events)

	done := map[string]bool{}
	queued := 0
	for ev := range events {
		switch ev.Status {
		case StatusDone:
			done[ev.Interface] = true
		case StatusQueued:
			queued++
		}
	}
	if len(done) != len(db.Interfaces()) || queued != len(db.Interfaces()) {
		t.Fatalf("expected every interface queued and done, got %d queued %v", queued, done)
	}

	out := buf.String()
	for _, want := range []string{"> resolve", "> iface:Node", "* op:appendChild", "* attr:lastModified", "< resolve"} {
		if !strings.Contains(out, want) {
			t.Fatalf("trace missing %q:\n%s", want, out)
		}
	}
}

func TestRunServesCachedReport(t *testing.T) {
	cache, err := OpenDiskCache("idlbind", t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}
	key := Combine(DigestBytes([]byte(fixtureDatabase)))
	db := loadFixture(t, fixtureDatabase)

	first, err := Run(context.Background(), db, Options{Library: "html", Cache: cache, Key: key})
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	bag := diag.NewBag(10)
	second, err := Run(context.Background(), db, Options{Library: "html", Cache: cache, Key: key, Reporter: &diag.BagReporter{Bag: bag}})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if first.Cached || !second.Cached {
		t.Fatalf("expected only the second run cached: %v %v", first.Cached, second.Cached)
	}
	if len(second.Interfaces) != len(first.Interfaces) || len(second.Types) != len(first.Types) {
		t.Fatalf("cached report differs in shape")
	}
	sig := mustOperation(t, mustInterface(t, second, "Loader"), "load")
	if sig.Future == nil || sig.Future.Params != "String url" {
		t.Fatalf("nested signature lost in cache: %+v", sig)
	}
	if items := bag.Items(); len(items) != 1 || items[0].Code != diag.RunCacheHit {
		t.Fatalf("expected cache hit notice, got %v", items)
	}
}
