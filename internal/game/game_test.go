package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"chosenoffset.com/runebound/internal/config"
	"chosenoffset.com/runebound/internal/core/geom"
	"chosenoffset.com/runebound/internal/input"
	"chosenoffset.com/runebound/internal/inventory"
	"chosenoffset.com/runebound/internal/simulation"
	"chosenoffset.com/runebound/internal/stats"
)

// recorder counts draw calls and keeps the last arguments.
type recorder struct {
	player    []geom.Point
	inventory []int
	stats     []stats.Stats
	slotCount int
}

func (r *recorder) DrawPlayer(pos geom.Point) {
	r.player = append(r.player, pos)
}

func (r *recorder) DrawInventory(slots []inventory.Slot, selected int) {
	r.slotCount = len(slots)
	r.inventory = append(r.inventory, selected)
}

func (r *recorder) DrawStats(s stats.Stats) {
	r.stats = append(r.stats, s)
}

func newTestLoop(opts ...Option) (*Loop, *recorder) {
	rec := &recorder{}
	l := New(simulation.DefaultRules(), inventory.New(8), stats.Base(), rec, opts...)
	return l, rec
}

func press(l *Loop, k input.Key)   { l.HandleEvent(input.Event{Key: k, Down: true}) }
func release(l *Loop, k input.Key) { l.HandleEvent(input.Event{Key: k, Down: false}) }

func TestStartDrawsEverything(t *testing.T) {
	l, rec := newTestLoop()
	l.Start()

	if len(rec.player) != 1 || rec.player[0] != (geom.Point{X: 384, Y: 234}) {
		t.Errorf("Expected one player draw at (384, 234), got %v", rec.player)
	}
	if len(rec.inventory) != 1 || rec.inventory[0] != 0 || rec.slotCount != 8 {
		t.Errorf("Expected one inventory draw of 8 slots with slot 0, got %v (%d slots)", rec.inventory, rec.slotCount)
	}
	if len(rec.stats) != 1 || !rec.stats[0].Equal(stats.Base()) {
		t.Errorf("Expected one stats draw with base stats, got %d draws", len(rec.stats))
	}
}

func TestTickMovesRight(t *testing.T) {
	l, rec := newTestLoop()
	press(l, input.KeyD)
	l.Tick()

	if l.Position() != (geom.Point{X: 391, Y: 234}) {
		t.Errorf("Expected (391, 234), got %+v", l.Position())
	}
	if len(rec.player) != 1 {
		t.Errorf("Expected one player redraw, got %d", len(rec.player))
	}
}

func TestTickHoldingRightStopsAtWall(t *testing.T) {
	l, rec := newTestLoop(WithPosition(geom.Point{X: 768, Y: 234}))
	press(l, input.KeyD)
	for i := 0; i < 5; i++ {
		l.Tick()
	}
	if l.Position().X != 768 {
		t.Errorf("Expected x to stay 768, got %d", l.Position().X)
	}
	// Clamped steps still count as movement and redraw.
	if len(rec.player) != 5 {
		t.Errorf("Expected 5 player redraws, got %d", len(rec.player))
	}
}

func TestTickWithoutKeysDoesNotRedraw(t *testing.T) {
	l, rec := newTestLoop()
	for i := 0; i < 3; i++ {
		l.Tick()
	}
	if len(rec.player) != 0 {
		t.Errorf("Expected no player redraw, got %d", len(rec.player))
	}
	if l.Ticks() != 3 {
		t.Errorf("Expected 3 ticks, got %d", l.Ticks())
	}
}

func TestOppositeKeysCancel(t *testing.T) {
	l, rec := newTestLoop()
	press(l, input.KeyW)
	press(l, input.KeyS)
	l.Tick()
	if l.Position() != (geom.Point{X: 384, Y: 234}) {
		t.Errorf("Expected no movement, got %+v", l.Position())
	}
	if len(rec.player) != 0 {
		t.Errorf("Expected no player redraw, got %d", len(rec.player))
	}

	release(l, input.KeyW)
	l.Tick()
	if l.Position() != (geom.Point{X: 384, Y: 241}) {
		t.Errorf("Expected to move down after releasing w, got %+v", l.Position())
	}
}

func TestMovementWaitsForTick(t *testing.T) {
	l, rec := newTestLoop()
	press(l, input.KeyA)
	if l.Position() != (geom.Point{X: 384, Y: 234}) || len(rec.player) != 0 {
		t.Error("Expected key handling alone not to move or redraw the player")
	}
}

func TestInventoryNavigation(t *testing.T) {
	var heard []int
	l, rec := newTestLoop(WithSlotListener(func(slot int) { heard = append(heard, slot) }))

	press(l, input.KeyUp)
	if l.Slot() != 7 {
		t.Errorf("Expected wrap to slot 7, got %d", l.Slot())
	}
	press(l, "5")
	if l.Slot() != 4 {
		t.Errorf("Expected digit 5 to select slot 4, got %d", l.Slot())
	}
	press(l, "5")
	press(l, "q")
	release(l, input.KeyDown)
	press(l, input.KeyDown)
	if l.Slot() != 5 {
		t.Errorf("Expected slot 5, got %d", l.Slot())
	}

	want := []int{7, 4, 5}
	if len(rec.inventory) != len(want) {
		t.Fatalf("Expected %d inventory redraws, got %v", len(want), rec.inventory)
	}
	for i := range want {
		if rec.inventory[i] != want[i] || heard[i] != want[i] {
			t.Errorf("Redraw %d: expected slot %d, got redraw %d listener %d", i, want[i], rec.inventory[i], heard[i])
		}
	}
}

func TestKeyNamesAreCaseInsensitive(t *testing.T) {
	l, _ := newTestLoop()
	press(l, "D")
	l.Tick()
	if l.Position().X != 391 {
		t.Errorf("Expected D to move right, got %+v", l.Position())
	}
	press(l, "Up")
	if l.Slot() != 7 {
		t.Errorf("Expected Up to select previous slot, got %d", l.Slot())
	}
}

func TestSingleSlotInventoryNeverRedraws(t *testing.T) {
	rec := &recorder{}
	l := New(simulation.DefaultRules(), inventory.New(1), stats.Base(), rec)
	press(l, input.KeyUp)
	press(l, input.KeyDown)
	press(l, "1")
	if len(rec.inventory) != 0 {
		t.Errorf("Expected no inventory redraw, got %d", len(rec.inventory))
	}
}

func TestStatsFeed(t *testing.T) {
	feed := make(chan stats.Stats, 1)
	l, rec := newTestLoop(WithStatsFeed(feed))

	feed <- stats.Base()
	l.Tick()
	if len(rec.stats) != 0 {
		t.Errorf("Expected identical stats not to redraw, got %d draws", len(rec.stats))
	}

	updated := stats.Base()
	updated.Set("HP", 5)
	feed <- updated
	l.Tick()
	if len(rec.stats) != 1 {
		t.Fatalf("Expected one stats redraw, got %d", len(rec.stats))
	}
	if v, _ := l.Stats().Get("HP"); v != 5 {
		t.Errorf("Expected HP=5, got %d", v)
	}

	close(feed)
	l.Tick()
	l.Tick()
}

func TestReleaseAll(t *testing.T) {
	l, _ := newTestLoop()
	press(l, input.KeyD)
	press(l, input.KeyS)
	l.ReleaseAll()
	if l.Directions().Any() {
		t.Error("Expected no keys held after ReleaseAll")
	}
}

// manualScheduler fires only when the test sends on ch.
type manualScheduler struct {
	ch      chan time.Time
	stopped bool
}

func (m *manualScheduler) C() <-chan time.Time { return m.ch }
func (m *manualScheduler) Stop()               { m.stopped = true }

func TestRunProcessesEventsAndTicksInOrder(t *testing.T) {
	l, rec := newTestLoop()
	events := make(chan input.Event)
	sched := &manualScheduler{ch: make(chan time.Time)}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- Run(ctx, l, events, sched) }()

	// Unbuffered sends return only once Run has received them, so each step
	// is applied before the next is offered.
	events <- input.Event{Key: input.KeyD, Down: true}
	sched.ch <- time.Now()
	sched.ch <- time.Now()
	events <- input.Event{Key: input.KeyD, Down: false}
	sched.ch <- time.Now()
	events <- input.Event{Key: "3", Down: true}
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}

	if l.Position() != (geom.Point{X: 398, Y: 234}) {
		t.Errorf("Expected (398, 234), got %+v", l.Position())
	}
	if l.Ticks() != 3 {
		t.Errorf("Expected 3 ticks, got %d", l.Ticks())
	}
	// Start plus two moving ticks.
	if len(rec.player) != 3 {
		t.Errorf("Expected 3 player draws, got %d", len(rec.player))
	}
	if l.Slot() != 2 {
		t.Errorf("Expected slot 2, got %d", l.Slot())
	}
	if !sched.stopped {
		t.Error("Expected scheduler to be stopped")
	}
}

func TestRunStopsImmediatelyWhenCancelled(t *testing.T) {
	l, rec := newTestLoop()
	sched := &manualScheduler{ch: make(chan time.Time, 1)}
	sched.ch <- time.Now()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := Run(ctx, l, nil, sched); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if l.Ticks() != 0 {
		t.Errorf("Expected no tick after cancellation, got %d", l.Ticks())
	}
	if len(rec.player) != 1 {
		t.Errorf("Expected only the initial draw, got %d", len(rec.player))
	}
}

func TestRunSurvivesClosedEvents(t *testing.T) {
	l, _ := newTestLoop()
	events := make(chan input.Event)
	close(events)
	sched := &manualScheduler{ch: make(chan time.Time)}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Run(ctx, l, events, sched) }()

	sched.ch <- time.Now()
	sched.ch <- time.Now()
	cancel()
	<-done
	if l.Ticks() != 2 {
		t.Errorf("Expected 2 ticks, got %d", l.Ticks())
	}
}

func TestNewManagerUsesConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Inventory.Slots = 4
	cfg.Player.Speed = 3
	eng := &fakeEngine{}
	m := NewManager(cfg, eng)

	press(m.Loop, input.KeyUp)
	if m.Loop.Slot() != 3 {
		t.Errorf("Expected wrap to slot 3 with 4 slots, got %d", m.Loop.Slot())
	}
	press(m.Loop, input.KeyS)
	m.Loop.Tick()
	if m.Loop.Position() != (geom.Point{X: 384, Y: 237}) {
		t.Errorf("Expected (384, 237), got %+v", m.Loop.Position())
	}

	if err := m.Run(context.Background()); err != nil {
		t.Errorf("Expected cancellation to be a clean exit, got %v", err)
	}
	if !eng.ran {
		t.Error("Expected engine to run")
	}
}
