package idl

import (
	"fmt"
	"sort"

	"github.com/BurntSushi/toml"
)

// Database is the read-only view of the parsed interface database.
type Database interface {
	HasInterface(name string) bool
	GetInterface(name string) (*Interface, bool)
	HasEnum(name string) bool
	// Interfaces returns every interface in lexical id order.
	Interfaces() []*Interface
}

// MemDatabase is a map-backed Database.
type MemDatabase struct {
	interfaces map[string]*Interface
	enums      map[string]bool
}

// NewMemDatabase creates an empty database.
func NewMemDatabase() *MemDatabase {
	return &MemDatabase{
		interfaces: make(map[string]*Interface),
		enums:      make(map[string]bool),
	}
}

// AddInterface registers an interface, replacing any previous one with the
// same id.
func (db *MemDatabase) AddInterface(iface *Interface) {
	db.interfaces[iface.ID] = iface
}

// AddEnum registers an enumeration name.
func (db *MemDatabase) AddEnum(name string) {
	db.enums[name] = true
}

func (db *MemDatabase) HasInterface(name string) bool {
	_, ok := db.interfaces[name]
	return ok
}

func (db *MemDatabase) GetInterface(name string) (*Interface, bool) {
	iface, ok := db.interfaces[name]
	return iface, ok
}

func (db *MemDatabase) HasEnum(name string) bool {
	return db.enums[name]
}

func (db *MemDatabase) Interfaces() []*Interface {
	out := make([]*Interface, 0, len(db.interfaces))
	for _, iface := range db.interfaces {
		out = append(out, iface)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Enums returns enumeration names in lexical order.
func (db *MemDatabase) Enums() []string {
	out := make([]string, 0, len(db.enums))
	for name := range db.enums {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

type databaseFile struct {
	Enums      []string     `toml:"enums"`
	Interfaces []*Interface `toml:"interface"`
}

// LoadDatabase reads a TOML database description.
func LoadDatabase(path string) (*MemDatabase, error) {
	var file databaseFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return buildDatabase(path, file)
}

// DecodeDatabase parses a TOML database description held in memory.
func DecodeDatabase(data string) (*MemDatabase, error) {
	var file databaseFile
	if _, err := toml.Decode(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	return buildDatabase("<memory>", file)
}

func buildDatabase(origin string, file databaseFile) (*MemDatabase, error) {
	db := NewMemDatabase()
	for _, name := range file.Enums {
		db.AddEnum(name)
	}
	for i, iface := range file.Interfaces {
		if iface == nil || iface.ID == "" {
			return nil, fmt.Errorf("%s: interface #%d has no id", origin, i)
		}
		if db.HasInterface(iface.ID) {
			return nil, fmt.Errorf("%s: interface %q declared twice", origin, iface.ID)
		}
		for _, op := range iface.Operations {
			if op.Type == "" {
				op.Type = "void"
			}
		}
		db.AddInterface(iface)
	}
	return db, nil
}
