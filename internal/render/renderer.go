package render

import (
	"context"

	"chosenoffset.com/runebound/internal/core/geom"
	"chosenoffset.com/runebound/internal/input"
	"chosenoffset.com/runebound/internal/inventory"
	"chosenoffset.com/runebound/internal/stats"
)

// SceneRenderer draws the three dynamic regions of the scene. Every call
// clears its region and redraws it from the arguments alone, so calling it
// twice with the same state is harmless. Calls come from the goroutine that
// owns the game state and must not block.
type SceneRenderer interface {
	// DrawPlayer redraws the canvas with the player square at pos.
	DrawPlayer(pos geom.Point)

	// DrawInventory redraws the inventory sidebar.
	DrawInventory(slots []inventory.Slot, selected int)

	// DrawStats redraws the stats sidebar.
	DrawStats(s stats.Stats)
}

// Game is what a backend drives. A backend calls Start once, then delivers
// key events and ticks in order from a single goroutine; none of these calls
// may overlap.
type Game interface {
	// Start draws the initial frame.
	Start()

	// HandleEvent applies one key transition.
	HandleEvent(ev input.Event)

	// Tick advances the scene by one step.
	Tick()
}

// Releaser is implemented by games that can drop every held key at once.
// Backends use it when key-up events may have been lost.
type Releaser interface {
	ReleaseAll()
}

// Engine owns the window or terminal and the event pump.
type Engine interface {
	SceneRenderer

	// RunGame runs game until ctx is cancelled or the user quits.
	// This is a blocking call.
	RunGame(ctx context.Context, game Game) error
}
