package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"idlbind/internal/typetable"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

const sample = `
[generator]
database = "idl/dom.toml"
docs = "docs.json"
jobs = 4

[cache]
dir = "/tmp/idlbind-cache"

[types.Node]
category = "Interface"
native = "WebCoreNode"

[types."unsigned long"]
category = "Primitive"
target = "int"
`

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, FileName), sample)
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	m, ok, err := Discover(nested)
	if err != nil || !ok {
		t.Fatalf("Discover: %v %v", ok, err)
	}
	wantRoot, _ := filepath.Abs(root)
	if m.Root != wantRoot {
		t.Fatalf("root = %q, want %q", m.Root, wantRoot)
	}
	cfg := m.Config
	if cfg.Generator.Library != "html" || cfg.Generator.Jobs != 4 || !cfg.Cache.Enabled {
		t.Fatalf("defaults not preserved: %+v", cfg)
	}
	if got := m.Resolve(cfg.Generator.Database); got != filepath.Join(wantRoot, "idl", "dom.toml") {
		t.Fatalf("Resolve = %q", got)
	}
	if got := m.Resolve("/abs/docs.json"); got != "/abs/docs.json" {
		t.Fatalf("absolute paths should be kept, got %q", got)
	}
	if m.Resolve("") != "" {
		t.Fatalf("empty path should stay empty")
	}
}

func TestDiscoverWithoutFile(t *testing.T) {
	dir := t.TempDir()
	if _, ok, _ := Find(filepath.Dir(dir)); ok {
		t.Skip("an idlbind.toml exists above the temp dir")
	}
	if m, ok, err := Discover(dir); ok || err != nil || m != nil {
		t.Fatalf("expected no manifest, got %v %v %v", m, ok, err)
	}
}

func TestLoadValidation(t *testing.T) {
	cases := []struct {
		name, body, want string
	}{
		{"missing section", "[cache]\nenabled = false\n", "missing [generator]"},
		{"missing database", "[generator]\nlibrary = \"svg\"\n", "missing [generator].database"},
		{"empty library", "[generator]\ndatabase = \"d.toml\"\nlibrary = \"\"\n", "library must not be empty"},
		{"negative jobs", "[generator]\ndatabase = \"d.toml\"\njobs = -1\n", "jobs must not be negative"},
		{"unknown key", "[generator]\ndatabase = \"d.toml\"\nthreads = 2\n", "unknown keys: generator.threads"},
		{"bad category", "[generator]\ndatabase = \"d.toml\"\n[types.Foo]\ncategory = \"Struct\"\n", "unknown type category"},
		{"no category", "[generator]\ndatabase = \"d.toml\"\n[types.Foo]\ntarget = \"Foo\"\n", "missing [types.Foo].category"},
		{"bad toml", "[generator\n", "failed to parse TOML"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			writeFile(t, path, tc.body)
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("Load error = %v, want %q", err, tc.want)
			}
		})
	}
}

func TestTableOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	writeFile(t, path, sample)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	base := typetable.Default()
	table, err := cfg.Table(base)
	if err != nil {
		t.Fatalf("Table: %v", err)
	}
	node, ok := table.Lookup("Node")
	if !ok || node.Category != typetable.CategoryInterface || node.NativeType != "WebCoreNode" {
		t.Fatalf("unexpected Node entry %+v", node)
	}
	if _, ok := base.Lookup("Node"); ok {
		t.Fatalf("base table must not change")
	}
	if ul, _ := table.Lookup("unsigned long"); ul.TargetType != "int" || ul.NativeType != "" {
		t.Fatalf("override should replace the whole entry: %+v", ul)
	}

	if same, _ := Default().Table(base); same != base {
		t.Fatalf("no overrides should return base")
	}
}
