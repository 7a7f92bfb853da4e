package term

import (
	"time"

	"chosenoffset.com/runebound/internal/input"
	"chosenoffset.com/runebound/internal/render"
)

// HoldTracker wraps a game for input sources that only report key presses.
// A movement key stays held while presses keep arriving. After the first
// press the next one may take up to delay (the keyboard's initial repeat
// delay); once repeats are flowing, the key is released on the first tick
// after timeout passes without one.
type HoldTracker struct {
	game    render.Game
	delay   time.Duration
	timeout time.Duration
	now     func() time.Time
	held    map[input.Key]heldKey
}

type heldKey struct {
	last      time.Time
	repeating bool
}

var _ render.Game = (*HoldTracker)(nil)

// NewHoldTracker wraps g. A nil now uses time.Now.
func NewHoldTracker(g render.Game, delay, timeout time.Duration, now func() time.Time) *HoldTracker {
	if now == nil {
		now = time.Now
	}
	return &HoldTracker{
		game:    g,
		delay:   delay,
		timeout: timeout,
		now:     now,
		held:    make(map[input.Key]heldKey),
	}
}

// Start implements render.Game.
func (h *HoldTracker) Start() {
	h.game.Start()
}

// HandleEvent implements render.Game.
func (h *HoldTracker) HandleEvent(ev input.Event) {
	if ev.Down && isMovement(ev.Key) {
		_, repeating := h.held[ev.Key]
		h.held[ev.Key] = heldKey{last: h.now(), repeating: repeating}
	}
	h.game.HandleEvent(ev)
}

// Tick releases expired keys, then ticks the game.
func (h *HoldTracker) Tick() {
	now := h.now()
	for k, hk := range h.held {
		limit := h.delay
		if hk.repeating {
			limit = h.timeout
		}
		if now.Sub(hk.last) >= limit {
			delete(h.held, k)
			h.game.HandleEvent(input.Event{Key: k, Down: false})
		}
	}
	h.game.Tick()
}

func isMovement(k input.Key) bool {
	return input.Resolve(k, 0).Kind == input.ActionMove
}
