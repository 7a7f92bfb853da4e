// Package stats holds the ordered name/value pairs shown in the stats panel.
package stats

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Entry is a single stat line.
type Entry struct {
	Name  string
	Value int
}

// Stats is an ordered mapping from stat name to value. Order is the order
// in which stats were declared and is the display order.
type Stats struct {
	entries []Entry
}

// New builds stats from entries in the given order. A repeated name
// overwrites the earlier value but keeps the earlier position.
func New(entries ...Entry) Stats {
	var s Stats
	for _, e := range entries {
		s.Set(e.Name, e.Value)
	}
	return s
}

// Base returns the starting stats of a new character.
func Base() Stats {
	return New(
		Entry{Name: "HP", Value: 20},
		Entry{Name: "MP", Value: 8},
		Entry{Name: "Lvl", Value: 1},
		Entry{Name: "XP", Value: 0},
	)
}

// Entries returns a copy of the stats in display order.
func (s Stats) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of stats.
func (s Stats) Len() int {
	return len(s.entries)
}

// Get returns the value of the named stat.
func (s Stats) Get(name string) (int, bool) {
	for _, e := range s.entries {
		if e.Name == name {
			return e.Value, true
		}
	}
	return 0, false
}

// Set updates the named stat or appends it if it is new.
func (s *Stats) Set(name string, value int) {
	for i := range s.entries {
		if s.entries[i].Name == name {
			s.entries[i].Value = value
			return
		}
	}
	s.entries = append(s.entries, Entry{Name: name, Value: value})
}

// Equal reports whether both stats hold the same entries in the same order.
func (s Stats) Equal(o Stats) bool {
	if len(s.entries) != len(o.entries) {
		return false
	}
	for i := range s.entries {
		if s.entries[i] != o.entries[i] {
			return false
		}
	}
	return true
}

// UnmarshalYAML decodes a YAML mapping while keeping key order, which a Go
// map would lose.
func (s *Stats) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("stats: expected a mapping at line %d, got %s", node.Line, kindName(node.Kind))
	}
	var out Stats
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		var v int
		if err := val.Decode(&v); err != nil {
			return fmt.Errorf("stats: value for %q: %w", key.Value, err)
		}
		out.Set(key.Value, v)
	}
	*s = out
	return nil
}

// MarshalYAML encodes the stats as an ordered mapping.
func (s Stats) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range s.entries {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: e.Name},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: fmt.Sprint(e.Value)},
		)
	}
	return node, nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
