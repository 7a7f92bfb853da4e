package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"chosenoffset.com/runebound/internal/audio"
	"chosenoffset.com/runebound/internal/config"
	"chosenoffset.com/runebound/internal/game"
	"chosenoffset.com/runebound/internal/render"
	ebitenrender "chosenoffset.com/runebound/internal/render/ebiten"
	"chosenoffset.com/runebound/internal/render/term"
	"chosenoffset.com/runebound/internal/ui/theme"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

// run starts the game and returns once it exits. Startup failures and game
// errors are returned after every deferred cleanup has run.
func run(args []string) error {
	fs := flag.NewFlagSet("runebound", flag.ContinueOnError)
	configPath := fs.String("config", "runebound.yaml", "path to the scene config (defaults are used if missing)")
	backend := fs.String("backend", "ebiten", "renderer: ebiten or term")
	watch := fs.Bool("watch", false, "reload stats when the config file changes")
	logPath := fs.String("log", "", "log file (the term backend discards logs unless set)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := setupLog(*logPath, *backend); err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	palette, err := theme.Default().WithPlayer(cfg.Player.Color, cfg.Player.Outline)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	var engine render.Engine
	switch *backend {
	case "ebiten":
		engine = ebitenrender.New(cfg, palette)
	case "term":
		tb, err := term.New(cfg, palette, nil)
		if err != nil {
			return fmt.Errorf("failed to start terminal backend: %w", err)
		}
		engine = tb
	default:
		return fmt.Errorf("unknown backend %q (want ebiten or term)", *backend)
	}
	log.Printf("Using %s backend", *backend)

	var opts []game.Option

	cue, err := audio.New(cfg.Audio)
	if err != nil {
		log.Printf("Warning: audio disabled: %v", err)
	}
	defer cue.Close()
	if cue.Enabled() {
		opts = append(opts, game.WithSlotListener(cue.SlotChanged))
	}

	if *watch {
		w, err := config.NewWatcher(*configPath)
		if err != nil {
			log.Printf("Warning: failed to watch %s: %v", *configPath, err)
		} else {
			defer w.Close()
			opts = append(opts, game.WithStatsFeed(config.StatsFeed(w)))
			log.Printf("Watching %s for stats changes", *configPath)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	manager := game.NewManager(cfg, engine, opts...)
	if err := manager.Run(ctx); err != nil {
		return fmt.Errorf("game exited with error: %w", err)
	}
	return nil
}

// setupLog keeps log output off the terminal the term backend draws on.
func setupLog(path, backend string) error {
	if path == "" {
		if backend == "term" {
			log.SetOutput(io.Discard)
		}
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	log.SetOutput(f)
	return nil
}
