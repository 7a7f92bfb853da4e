// Package ebiten implements the render.Engine interface with an ebiten
// window.
package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"

	"chosenoffset.com/runebound/internal/input"
)

// movementKeys are released when the window loses focus.
var movementKeys = []input.Key{input.KeyW, input.KeyA, input.KeyS, input.KeyD}

var keyNames = map[ebiten.Key]input.Key{
	ebiten.KeyW:         input.KeyW,
	ebiten.KeyA:         input.KeyA,
	ebiten.KeyS:         input.KeyS,
	ebiten.KeyD:         input.KeyD,
	ebiten.KeyArrowUp:   input.KeyUp,
	ebiten.KeyArrowDown: input.KeyDown,
	ebiten.KeyDigit1:    "1",
	ebiten.KeyDigit2:    "2",
	ebiten.KeyDigit3:    "3",
	ebiten.KeyDigit4:    "4",
	ebiten.KeyDigit5:    "5",
	ebiten.KeyDigit6:    "6",
	ebiten.KeyDigit7:    "7",
	ebiten.KeyDigit8:    "8",
	ebiten.KeyDigit9:    "9",
	ebiten.KeyNumpad1:   "1",
	ebiten.KeyNumpad2:   "2",
	ebiten.KeyNumpad3:   "3",
	ebiten.KeyNumpad4:   "4",
	ebiten.KeyNumpad5:   "5",
	ebiten.KeyNumpad6:   "6",
	ebiten.KeyNumpad7:   "7",
	ebiten.KeyNumpad8:   "8",
	ebiten.KeyNumpad9:   "9",
}

// KeyName converts an ebiten key into the game's key name. Keys the game
// has no use for report false.
func KeyName(k ebiten.Key) (input.Key, bool) {
	name, ok := keyNames[k]
	return name, ok
}
