// Package input turns discrete key-down/key-up events into the held
// movement flags and the selected inventory slot.
//
// Handlers here only mutate state. Movement is computed by the simulation
// package from a Directions snapshot once per tick.
package input

import (
	"strconv"
	"strings"

	"chosenoffset.com/runebound/internal/inventory"
)

// Direction is one of the four movement directions.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions is a snapshot of which movement keys are held. Opposite
// directions may both be held.
type Directions struct {
	Up, Down, Left, Right bool
}

// Any reports whether at least one direction is held.
func (d Directions) Any() bool {
	return d.Up || d.Down || d.Left || d.Right
}

// State is the input state owned by the game loop.
type State struct {
	dirs Directions
	slot inventory.Selection
}

// NewState returns a state with nothing held and slot 0 selected out of
// slots.
func NewState(slots int) *State {
	return &State{slot: inventory.NewSelection(slots)}
}

// Directions returns the currently held directions.
func (s *State) Directions() Directions {
	return s.dirs
}

// SetDirection records dir as held or released. Setting a flag to the value
// it already has is a no-op; the result reports whether the flag changed.
func (s *State) SetDirection(dir Direction, pressed bool) bool {
	f := s.flag(dir)
	if f == nil || *f == pressed {
		return false
	}
	*f = pressed
	return true
}

// ReleaseAll clears every movement flag, e.g. when the window loses focus.
func (s *State) ReleaseAll() {
	s.dirs = Directions{}
}

// Slot returns the selected inventory slot.
func (s *State) Slot() int {
	return s.slot.Index()
}

// Slots returns the number of selectable slots.
func (s *State) Slots() int {
	return s.slot.Size()
}

// SelectSlot selects index mod N and reports whether the slot changed.
func (s *State) SelectSlot(index int) bool {
	return s.slot.Select(index)
}

// ShiftSlot moves the selection by delta, wrapping, and reports whether the
// slot changed.
func (s *State) ShiftSlot(delta int) bool {
	return s.slot.Shift(delta)
}

func (s *State) flag(dir Direction) *bool {
	switch dir {
	case DirUp:
		return &s.dirs.Up
	case DirDown:
		return &s.dirs.Down
	case DirLeft:
		return &s.dirs.Left
	case DirRight:
		return &s.dirs.Right
	default:
		return nil
	}
}

// Key is a key symbol name, e.g. "w", "up" or "5".
type Key string

// Movement and navigation key names.
const (
	KeyW    Key = "w"
	KeyA    Key = "a"
	KeyS    Key = "s"
	KeyD    Key = "d"
	KeyUp   Key = "up"
	KeyDown Key = "down"
)

// Normalize lower-cases and trims a key name so that "W" and "w" bind the
// same action.
func Normalize(name string) Key {
	return Key(strings.ToLower(strings.TrimSpace(name)))
}

// Event is a single key transition delivered by an input source.
type Event struct {
	Key  Key
	Down bool
}

// ActionKind classifies what a key does.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionMove
	ActionPrevSlot
	ActionNextSlot
	ActionSelectSlot
)

// Action is the resolved meaning of a key.
type Action struct {
	Kind ActionKind
	Dir  Direction // ActionMove
	Slot int       // ActionSelectSlot, zero-based
}

// Resolve maps a key to its action for an inventory of slots slots.
// Digit keys 1..slots select slot d-1; every other unknown key resolves to
// ActionNone.
func Resolve(k Key, slots int) Action {
	switch k {
	case KeyW:
		return Action{Kind: ActionMove, Dir: DirUp}
	case KeyS:
		return Action{Kind: ActionMove, Dir: DirDown}
	case KeyA:
		return Action{Kind: ActionMove, Dir: DirLeft}
	case KeyD:
		return Action{Kind: ActionMove, Dir: DirRight}
	case KeyUp:
		return Action{Kind: ActionPrevSlot}
	case KeyDown:
		return Action{Kind: ActionNextSlot}
	}
	if len(k) == 1 && k[0] >= '1' && k[0] <= '9' {
		d, _ := strconv.Atoi(string(k))
		if d <= slots {
			return Action{Kind: ActionSelectSlot, Slot: d - 1}
		}
	}
	return Action{}
}

// Apply feeds ev into s. It reports whether the selected slot changed, in
// which case the inventory panel needs a redraw. Key-up only affects
// movement flags; slot keys act on key-down.
func (s *State) Apply(ev Event) (slotChanged bool) {
	a := Resolve(ev.Key, s.Slots())
	switch a.Kind {
	case ActionMove:
		s.SetDirection(a.Dir, ev.Down)
	case ActionPrevSlot:
		if ev.Down {
			return s.ShiftSlot(-1)
		}
	case ActionNextSlot:
		if ev.Down {
			return s.ShiftSlot(+1)
		}
	case ActionSelectSlot:
		if ev.Down {
			return s.SelectSlot(a.Slot)
		}
	}
	return false
}
