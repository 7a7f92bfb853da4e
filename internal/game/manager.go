package game

import (
	"context"
	"errors"
	"log"

	"chosenoffset.com/runebound/internal/config"
	"chosenoffset.com/runebound/internal/inventory"
	"chosenoffset.com/runebound/internal/render"
)

// Manager ties a configured Loop to the engine that drives it.
type Manager struct {
	Config *config.Config
	Engine render.Engine
	Loop   *Loop
}

// NewManager builds the scene described by cfg, drawing through engine.
func NewManager(cfg *config.Config, engine render.Engine, opts ...Option) *Manager {
	inv := inventory.New(cfg.Inventory.Slots)
	loop := New(cfg.Rules(), inv, cfg.Stats, engine, opts...)

	log.Printf("Scene %dx%d, player %dpx at speed %d, %s",
		cfg.Scene.Width, cfg.Scene.Height, cfg.Player.Size, cfg.Player.Speed, inv.Debug())

	return &Manager{
		Config: cfg,
		Engine: engine,
		Loop:   loop,
	}
}

// Run blocks until the engine exits. Cancellation is a normal exit.
func (m *Manager) Run(ctx context.Context) error {
	log.Println("Starting game...")
	err := m.Engine.RunGame(ctx, m.Loop)
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	log.Printf("Game stopped after %d ticks", m.Loop.Ticks())
	return err
}
