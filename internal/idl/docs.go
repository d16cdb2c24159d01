package idl

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// DocStore returns documentation comments for an interface or member.
// An empty member asks for the interface comment.
type DocStore interface {
	Comments(library, iface, member string) []string
}

type docEntry struct {
	Comment []string            `json:"comment"`
	Members map[string][]string `json:"members"`
}

// JSONDocStore is keyed by "dart.dom.<library>" then interface name.
type JSONDocStore struct {
	libraries map[string]map[string]docEntry
}

// NopDocStore has no documentation.
type NopDocStore struct{}

func (NopDocStore) Comments(string, string, string) []string { return nil }

// LoadDocStore reads a docs.json file.
func LoadDocStore(path string) (*JSONDocStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read docs: %w", err)
	}
	return ParseDocStore(data)
}

// ParseDocStore decodes docs.json content.
func ParseDocStore(data []byte) (*JSONDocStore, error) {
	var libs map[string]map[string]docEntry
	if err := json.Unmarshal(data, &libs); err != nil {
		return nil, fmt.Errorf("failed to parse docs: %w", err)
	}
	return &JSONDocStore{libraries: libs}, nil
}

// Comments joins the stored lines into a single comment block, so callers
// receive zero or one element.
func (s *JSONDocStore) Comments(library, iface, member string) []string {
	if s == nil {
		return nil
	}
	lib, ok := s.libraries["dart.dom."+library]
	if !ok {
		return nil
	}
	entry, ok := lib[iface]
	if !ok {
		return nil
	}
	var lines []string
	if member != "" {
		lines = entry.Members[member]
	} else {
		lines = entry.Comment
	}
	if len(lines) == 0 {
		return nil
	}
	return []string{strings.Join(lines, "\n")}
}
