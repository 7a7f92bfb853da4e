// Package simulation advances the player one tick at a time.
// It is a pure function of input and position and knows nothing about
// rendering or timers.
package simulation

import (
	"fmt"

	"chosenoffset.com/runebound/internal/core/geom"
)

// Rules holds the movement constants for a run.
type Rules struct {
	Speed      int       // Pixels moved per tick on each held axis
	Bounds     geom.Size // Scene width and height
	PlayerSize int       // Side of the player square
}

// DefaultRules returns the stock 800x500 scene with a 32px player moving
// 7px per tick.
func DefaultRules() Rules {
	return Rules{
		Speed:      7,
		Bounds:     geom.Size{W: 800, H: 500},
		PlayerSize: 32,
	}
}

// Validate checks that the player fits inside the scene.
func (r Rules) Validate() error {
	if r.Speed < 0 {
		return fmt.Errorf("speed must not be negative, got %d", r.Speed)
	}
	if r.PlayerSize <= 0 {
		return fmt.Errorf("player size must be positive, got %d", r.PlayerSize)
	}
	if r.PlayerSize > r.Bounds.W || r.PlayerSize > r.Bounds.H {
		return fmt.Errorf("player size %d does not fit in %dx%d scene", r.PlayerSize, r.Bounds.W, r.Bounds.H)
	}
	return nil
}

// Spawn returns the centred starting position.
func (r Rules) Spawn() geom.Point {
	return geom.Point{
		X: r.Bounds.W/2 - r.PlayerSize/2,
		Y: r.Bounds.H/2 - r.PlayerSize/2,
	}
}

// Step applies one tick of movement using r's constants.
func (r Rules) Step(dirs Directions, pos geom.Point) (geom.Point, bool) {
	return Step(dirs, pos, r.Speed, r.Bounds, r.PlayerSize)
}
