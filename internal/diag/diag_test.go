package diag

import (
	"errors"
	"fmt"
	"testing"
)

func TestFormatShort(t *testing.T) {
	diags := []Diagnostic{
		NewError(CfgStaticMismatch, "Foo.bar", "first line\nsecond").WithNote("Foo", "declared here"),
		New(SevWarning, RunSkippedIface, "Baz", "skipped"),
	}
	expected := "error CFG4004 Foo.bar: first line second\n" +
		"  note CFG4004 Foo: declared here\n" +
		"warning RUN1003 Baz: skipped"
	if got := FormatShort(diags, true); got != expected {
		t.Fatalf("unexpected output:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestBagCapAndSort(t *testing.T) {
	b := NewBag(2)
	if !b.Add(NewError(CfgUnknownType, "b", "x")) || !b.Add(New(SevInfo, RunInfo, "a", "y")) {
		t.Fatalf("expected both diagnostics to fit")
	}
	if b.Add(NewError(CfgUnknownType, "c", "z")) {
		t.Fatalf("expected cap to reject third diagnostic")
	}
	b.Sort()
	if b.Items()[0].Subject != "a" {
		t.Fatalf("expected subject a first, got %q", b.Items()[0].Subject)
	}
	if !b.HasErrors() {
		t.Fatalf("expected HasErrors")
	}
}

func TestErrorUnwrapsThroughWrapping(t *testing.T) {
	base := Errorf(CfgNestedSequence, "sequence<sequence<long>>", "nested")
	wrapped := fmt.Errorf("resolve: %w", base)
	if !HasCode(wrapped, CfgNestedSequence) {
		t.Fatalf("expected code to survive wrapping")
	}
	if HasCode(errors.New("plain"), CfgNestedSequence) {
		t.Fatalf("plain errors carry no code")
	}
	if !CfgNestedSequence.IsConfiguration() || RunInfo.IsConfiguration() {
		t.Fatalf("configuration range misclassified")
	}
}

func TestRecoverConvertsDiagPanics(t *testing.T) {
	run := func() (err error) {
		defer Recover(&err)
		panic(Errorf(CfgUnknownType, "Nope", "unknown"))
	}
	err := run()
	if !HasCode(err, CfgUnknownType) {
		t.Fatalf("expected recovered CfgUnknownType, got %v", err)
	}
}

func TestRecoverUnwrapsWrappedDiagPanics(t *testing.T) {
	run := func() (err error) {
		defer Recover(&err)
		panic(fmt.Errorf("sequence<Nope>: %w", Errorf(CfgUnknownType, "Nope", "unknown")))
	}
	err := run()
	if !HasCode(err, CfgUnknownType) {
		t.Fatalf("expected recovered CfgUnknownType, got %v", err)
	}
	if err.Error() == Errorf(CfgUnknownType, "Nope", "unknown").Error() {
		t.Fatalf("wrapping context was dropped: %v", err)
	}
}

func TestRecoverRepanicsForeignErrors(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected a plain error panic to be re-raised")
		}
	}()
	var err error
	func() {
		defer Recover(&err)
		panic(errors.New("plain"))
	}()
	t.Fatalf("unreachable, err=%v", err)
}
