package game

import (
	"context"

	"chosenoffset.com/runebound/internal/render"
)

// fakeEngine starts the game once and reports cancellation.
type fakeEngine struct {
	recorder
	ran bool
}

func (e *fakeEngine) RunGame(ctx context.Context, g render.Game) error {
	e.ran = true
	g.Start()
	return context.Canceled
}
