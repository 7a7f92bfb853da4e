// Package inventory provides the fixed-size slot inventory shown in the
// left sidebar and the cursor that selects one of its slots.
// Slots are addressed by a zero-based index; the number shown to the
// player is the index plus one.
package inventory

import (
	"fmt"

	"chosenoffset.com/runebound/internal/core/geom"
)

// DefaultSlots is the number of slots in the sidebar.
const DefaultSlots = 8

// Item describes something that can occupy a slot.
type Item struct {
	Name        string            `yaml:"name"`
	DisplayName string            `yaml:"display_name,omitempty"`
	Description string            `yaml:"description,omitempty"`
	Properties  map[string]string `yaml:"properties,omitempty"`
}

// Slot is one inventory position. A nil Item means the slot is empty.
type Slot struct {
	Item *Item
}

// Empty reports whether nothing occupies the slot.
func (s Slot) Empty() bool {
	return s.Item == nil
}

// Inventory is a fixed, ordered sequence of slots.
type Inventory struct {
	slots []Slot
}

// New creates an inventory with n empty slots.
func New(n int) *Inventory {
	if n < 1 {
		panic(fmt.Sprintf("inventory: slot count must be positive, got %d", n))
	}
	return &Inventory{slots: make([]Slot, n)}
}

// Len returns the number of slots.
func (inv *Inventory) Len() int {
	return len(inv.slots)
}

// Slots returns a copy of the slots in display order.
func (inv *Inventory) Slots() []Slot {
	out := make([]Slot, len(inv.slots))
	copy(out, inv.slots)
	return out
}

// Debug returns a string representation of the inventory
func (inv *Inventory) Debug() string {
	used := 0
	for _, s := range inv.slots {
		if !s.Empty() {
			used++
		}
	}
	return fmt.Sprintf("Inventory{%d slots, %d used}", len(inv.slots), used)
}

// Selection is the cursor over an inventory of a fixed size. Its index is
// always in [0, size).
type Selection struct {
	index int
	size  int
}

// NewSelection returns a selection over size slots starting at slot 0.
func NewSelection(size int) Selection {
	if size < 1 {
		panic(fmt.Sprintf("inventory: selection size must be positive, got %d", size))
	}
	return Selection{size: size}
}

// Index returns the selected slot.
func (s Selection) Index() int {
	return s.index
}

// Size returns the number of selectable slots.
func (s Selection) Size() int {
	return s.size
}

// Select moves the cursor to index mod size. It reports whether the
// selected slot changed.
func (s *Selection) Select(index int) bool {
	next := geom.Mod(index, s.size)
	if next == s.index {
		return false
	}
	s.index = next
	return true
}

// Shift moves the cursor by delta slots, wrapping at both ends. It reports
// whether the selected slot changed.
func (s *Selection) Shift(delta int) bool {
	return s.Select(s.index + delta)
}
