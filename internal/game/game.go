// Package game owns the scene state and advances it one tick at a time.
package game

import (
	"chosenoffset.com/runebound/internal/core/geom"
	"chosenoffset.com/runebound/internal/input"
	"chosenoffset.com/runebound/internal/inventory"
	"chosenoffset.com/runebound/internal/render"
	"chosenoffset.com/runebound/internal/simulation"
	"chosenoffset.com/runebound/internal/stats"
)

// Loop holds all mutable scene state. It is not safe for concurrent use:
// a backend must call Start, HandleEvent and Tick from one goroutine.
type Loop struct {
	rules     simulation.Rules
	pos       geom.Point
	input     *input.State
	inventory *inventory.Inventory
	stats     stats.Stats
	renderer  render.SceneRenderer

	statsFeed    <-chan stats.Stats
	onSlotChange func(slot int)

	ticks uint64
}

var (
	_ render.Game     = (*Loop)(nil)
	_ render.Releaser = (*Loop)(nil)
)

// Option configures a Loop.
type Option func(*Loop)

// WithPosition overrides the spawn point. An off-bounds position is not
// rejected; the next moving tick clamps it.
func WithPosition(p geom.Point) Option {
	return func(l *Loop) { l.pos = p }
}

// WithStatsFeed makes the loop pick up replacement stats at the start of
// each tick.
func WithStatsFeed(ch <-chan stats.Stats) Option {
	return func(l *Loop) { l.statsFeed = ch }
}

// WithSlotListener registers fn to be called after every change of the
// selected slot.
func WithSlotListener(fn func(slot int)) Option {
	return func(l *Loop) { l.onSlotChange = fn }
}

// New creates a loop with the player at the centre of the scene and slot 0
// selected.
func New(rules simulation.Rules, inv *inventory.Inventory, st stats.Stats, r render.SceneRenderer, opts ...Option) *Loop {
	l := &Loop{
		rules:     rules,
		pos:       rules.Spawn(),
		input:     input.NewState(inv.Len()),
		inventory: inv,
		stats:     st,
		renderer:  r,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Start draws every region once.
func (l *Loop) Start() {
	l.renderer.DrawPlayer(l.pos)
	l.drawInventory()
	l.renderer.DrawStats(l.stats)
}

// HandleEvent applies a key transition. Only flags and the selected slot
// change here; movement waits for the next tick.
func (l *Loop) HandleEvent(ev input.Event) {
	ev.Key = input.Normalize(string(ev.Key))
	if l.input.Apply(ev) {
		l.drawInventory()
		if l.onSlotChange != nil {
			l.onSlotChange(l.input.Slot())
		}
	}
}

// Tick runs one simulation step and redraws the player if it moved.
func (l *Loop) Tick() {
	l.ticks++
	l.pollStats()

	next, changed := l.rules.Step(l.input.Directions(), l.pos)
	if !changed {
		return
	}
	l.pos = next
	l.renderer.DrawPlayer(l.pos)
}

// ReleaseAll drops every held movement key, e.g. when focus is lost and
// key-up events would be missed.
func (l *Loop) ReleaseAll() {
	l.input.ReleaseAll()
}

// SetStats replaces the displayed stats, redrawing only if they differ.
func (l *Loop) SetStats(s stats.Stats) {
	if l.stats.Equal(s) {
		return
	}
	l.stats = s
	l.renderer.DrawStats(l.stats)
}

// Position returns the player's top-left corner.
func (l *Loop) Position() geom.Point {
	return l.pos
}

// Slot returns the selected inventory slot.
func (l *Loop) Slot() int {
	return l.input.Slot()
}

// Directions returns the held movement keys.
func (l *Loop) Directions() input.Directions {
	return l.input.Directions()
}

// Stats returns the displayed stats.
func (l *Loop) Stats() stats.Stats {
	return l.stats
}

// Ticks returns how many ticks have run.
func (l *Loop) Ticks() uint64 {
	return l.ticks
}

func (l *Loop) drawInventory() {
	l.renderer.DrawInventory(l.inventory.Slots(), l.input.Slot())
}

func (l *Loop) pollStats() {
	if l.statsFeed == nil {
		return
	}
	select {
	case s, ok := <-l.statsFeed:
		if !ok {
			l.statsFeed = nil
			return
		}
		l.SetStats(s)
	default:
	}
}
