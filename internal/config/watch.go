package config

import (
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"chosenoffset.com/runebound/internal/stats"
)

const debounce = 100 * time.Millisecond

// Watcher reports writes to a single config file. It watches the parent
// directory so that editors which save by rename are still seen.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWatcher starts watching path.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}

	watcher := &Watcher{
		watcher: w,
		path:    abs,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher and closes Events and Errors.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Events)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)

	// Saves often arrive as several writes; report once the file has been
	// quiet for the debounce window.
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			timer.Reset(debounce)
		case <-timer.C:
			select {
			case w.Events <- w.path:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

// StatsFeed reloads the config on every watcher event and publishes the
// stats section. Only the latest stats are kept if the reader falls behind.
// Files that fail to load are logged and skipped. The returned channel is
// closed when the watcher is closed.
func StatsFeed(w *Watcher) <-chan stats.Stats {
	out := make(chan stats.Stats, 1)
	go func() {
		defer close(out)
		for {
			select {
			case _, ok := <-w.Events:
				if !ok {
					return
				}
				cfg, err := Load(w.path)
				if err != nil {
					log.Printf("Config reload failed, keeping current stats: %v", err)
					continue
				}
				log.Printf("Reloaded stats from %s", w.path)
				publishLatest(out, cfg.Stats)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Printf("Warning: config watcher error: %v", err)
			}
		}
	}()
	return out
}

func publishLatest(ch chan stats.Stats, s stats.Stats) {
	for {
		select {
		case ch <- s:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
