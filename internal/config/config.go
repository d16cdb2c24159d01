// Package config locates and parses idlbind.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"idlbind/internal/typetable"
)

// FileName is the configuration file searched for.
const FileName = "idlbind.toml"

// Manifest is a parsed configuration file.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors idlbind.toml.
type Config struct {
	Generator GeneratorConfig      `toml:"generator"`
	Cache     CacheConfig          `toml:"cache"`
	Types     map[string]TypeEntry `toml:"types"`
}

type GeneratorConfig struct {
	Library  string `toml:"library"`
	Database string `toml:"database"`
	Docs     string `toml:"docs"`
	Jobs     int    `toml:"jobs"`
}

type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// TypeEntry overrides or adds a type table entry.
type TypeEntry struct {
	Category           string   `toml:"category"`
	Target             string   `toml:"target"`
	Native             string   `toml:"native"`
	Item               string   `toml:"item"`
	MergedInterface    string   `toml:"merged_interface"`
	MergedInto         string   `toml:"merged_into"`
	CustomToTarget     bool     `toml:"custom_to_target"`
	CustomToNative     bool     `toml:"custom_to_native"`
	ConversionIncludes []string `toml:"conversion_includes"`
	Getter             string   `toml:"getter"`
	Setter             string   `toml:"setter"`
	Suppress           bool     `toml:"suppress"`
	TypedArray         bool     `toml:"typed_array"`
}

// Default is used when no file is found.
func Default() Config {
	return Config{
		Generator: GeneratorConfig{Library: "html"},
		Cache:     CacheConfig{Enabled: true},
	}
}

// Find walks up from startDir looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// Discover finds and loads the manifest governing startDir. It reports false
// when there is none.
func Discover(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, true, nil
}

// Load parses and validates path. Keys left out keep their Default values.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if !meta.IsDefined("generator") {
		return Config{}, fmt.Errorf("%s: missing [generator]", path)
	}
	if !meta.IsDefined("generator", "database") || strings.TrimSpace(cfg.Generator.Database) == "" {
		return Config{}, fmt.Errorf("%s: missing [generator].database", path)
	}
	if meta.IsDefined("generator", "library") && strings.TrimSpace(cfg.Generator.Library) == "" {
		return Config{}, fmt.Errorf("%s: [generator].library must not be empty", path)
	}
	if cfg.Generator.Jobs < 0 {
		return Config{}, fmt.Errorf("%s: [generator].jobs must not be negative", path)
	}
	for name, entry := range cfg.Types {
		if !meta.IsDefined("types", name, "category") {
			return Config{}, fmt.Errorf("%s: missing [types.%s].category", path, name)
		}
		if _, err := typetable.ParseCategory(entry.Category); err != nil {
			return Config{}, fmt.Errorf("%s: [types.%s]: %w", path, name, err)
		}
	}
	return cfg, nil
}

// Resolve makes a path from the file relative to the manifest root.
func (m *Manifest) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(m.Root, filepath.FromSlash(p))
}

// Table layers the [types] overrides over base.
func (c Config) Table(base *typetable.Table) (*typetable.Table, error) {
	if base == nil {
		base = typetable.Default()
	}
	if len(c.Types) == 0 {
		return base, nil
	}
	overrides := make(map[string]typetable.Entry, len(c.Types))
	for name, e := range c.Types {
		category, err := typetable.ParseCategory(e.Category)
		if err != nil {
			return nil, fmt.Errorf("[types.%s]: %w", name, err)
		}
		overrides[name] = typetable.Entry{
			Category:           category,
			TargetType:         e.Target,
			NativeType:         e.Native,
			ItemType:           e.Item,
			MergedInterface:    e.MergedInterface,
			MergedInto:         e.MergedInto,
			CustomToTarget:     e.CustomToTarget,
			CustomToNative:     e.CustomToNative,
			ConversionIncludes: e.ConversionIncludes,
			GetterName:         e.Getter,
			SetterName:         e.Setter,
			SuppressInterface:  e.Suppress,
			TypedArray:         e.TypedArray,
		}
	}
	return base.With(overrides), nil
}
