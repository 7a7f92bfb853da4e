package simulation

import (
	"chosenoffset.com/runebound/internal/core/geom"
	"chosenoffset.com/runebound/internal/input"
)

// Directions is the held-key snapshot read each tick.
type Directions = input.Directions

// Delta returns the raw per-tick displacement. Opposite directions cancel.
func Delta(dirs Directions, speed int) (dx, dy int) {
	if dirs.Right {
		dx += speed
	}
	if dirs.Left {
		dx -= speed
	}
	if dirs.Down {
		dy += speed
	}
	if dirs.Up {
		dy -= speed
	}
	return dx, dy
}

// Step moves pos by the held directions and clamps the result to the scene.
// The second result is false when nothing moved, in which case pos is
// returned untouched and the player must not be redrawn.
func Step(dirs Directions, pos geom.Point, speed int, bounds geom.Size, playerSize int) (geom.Point, bool) {
	dx, dy := Delta(dirs, speed)
	if dx == 0 && dy == 0 {
		return pos, false
	}
	return Clamp(pos.Add(dx, dy), bounds, playerSize), true
}

// Clamp constrains each axis of p independently so the player square stays
// inside bounds. Clamping an in-bounds point returns it unchanged.
func Clamp(p geom.Point, bounds geom.Size, playerSize int) geom.Point {
	return geom.Point{
		X: geom.ClampInt(p.X, 0, bounds.W-playerSize),
		Y: geom.ClampInt(p.Y, 0, bounds.H-playerSize),
	}
}

// InBounds reports whether p satisfies the player bounds invariant.
func InBounds(p geom.Point, bounds geom.Size, playerSize int) bool {
	return p.X >= 0 && p.X <= bounds.W-playerSize && p.Y >= 0 && p.Y <= bounds.H-playerSize
}
