package game

import (
	"context"
	"time"

	"chosenoffset.com/runebound/internal/input"
	"chosenoffset.com/runebound/internal/render"
)

// DefaultTick is the target tick interval (about 60 Hz).
const DefaultTick = 16 * time.Millisecond

// Scheduler delivers tick deadlines.
type Scheduler interface {
	C() <-chan time.Time
	Stop()
}

type tickerScheduler struct {
	t *time.Ticker
}

// NewTicker returns a Scheduler that fires every d.
func NewTicker(d time.Duration) Scheduler {
	return &tickerScheduler{t: time.NewTicker(d)}
}

func (s *tickerScheduler) C() <-chan time.Time { return s.t.C }
func (s *tickerScheduler) Stop()               { s.t.Stop() }

// Run drives g from the calling goroutine: it draws the first frame, then
// applies events and ticks in arrival order until ctx is cancelled. A tick
// always finishes before the next event or tick is looked at, and once
// cancellation is seen no further tick starts. A closed events channel only
// stops event delivery; ticks continue.
//
// Run stops sched before returning and returns ctx.Err().
func Run(ctx context.Context, g render.Game, events <-chan input.Event, sched Scheduler) error {
	defer sched.Stop()

	g.Start()
	for {
		// Prefer cancellation over pending work.
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			g.HandleEvent(ev)
		case <-sched.C():
			g.Tick()
		}
	}
}
