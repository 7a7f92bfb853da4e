package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestStatsFeedPublishesReloadedStats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runebound.yaml")
	if err := os.WriteFile(path, []byte("stats:\n  HP: 20\n"), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("Failed to start watcher: %v", err)
	}
	defer w.Close()
	feed := StatsFeed(w)

	if err := os.WriteFile(path, []byte("stats:\n  HP: 11\n  MP: 2\n"), 0o644); err != nil {
		t.Fatalf("Failed to rewrite config: %v", err)
	}

	select {
	case s := <-feed:
		if v, _ := s.Get("HP"); v != 11 {
			t.Errorf("Expected HP=11, got %d", v)
		}
		if s.Len() != 2 {
			t.Errorf("Expected 2 stats, got %d", s.Len())
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for reloaded stats")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "runebound.yaml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("Failed to start watcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0o644); err != nil {
		t.Fatalf("Failed to write other file: %v", err)
	}
	select {
	case name := <-w.Events:
		t.Errorf("Expected no event, got %s", name)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runebound.yaml")
	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("Failed to start watcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Unexpected close error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Unexpected second close error: %v", err)
	}
	if _, ok := <-w.Events; ok {
		t.Error("Expected Events to be closed")
	}
}
