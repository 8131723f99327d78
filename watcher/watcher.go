package watcher

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"favigen/config"
)

// Watcher monitors the source image and regenerates the favicon set when
// it changes.
type Watcher struct {
	cfg       *config.Config
	generator Generator
	watcher   *fsnotify.Watcher
	events    chan Event
}

// Generator regenerates the favicon asset set on demand.
type Generator interface {
	Generate() error
}

// Event represents a file system event
type Event struct {
	Type     EventType
	FilePath string
}

// EventType represents the type of file event
type EventType int

const (
	EventCreated EventType = iota
	EventModified
	EventDeleted
)

// NewWatcher creates a new file watcher
func NewWatcher(cfg *config.Config, generator Generator) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		cfg:       cfg,
		generator: generator,
		watcher:   fsWatcher,
		events:    make(chan Event, 100),
	}, nil
}

// Start begins monitoring the directory holding the source image. The
// directory is watched rather than the file itself so editors that replace
// the file on save keep the watch alive.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.cfg.Source.Path)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}
	log.Printf("Watching source image: %s", w.cfg.Source.Path)

	go w.processEvents()

	return nil
}

// Stop shuts down the watcher
func (w *Watcher) Stop() {
	w.watcher.Close()
}

// Events returns the channel of observed source-image events
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// processEvents handles fsnotify events and converts them to our event type
func (w *Watcher) processEvents() {
	debounceWait := time.Duration(w.cfg.Watch.DebounceMS) * time.Millisecond

	// Debounce timer to avoid processing rapid successive events
	debounce := make(map[string]*time.Timer)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			// Only process the source image itself
			if filepath.Base(event.Name) != filepath.Base(w.cfg.Source.Path) {
				continue
			}

			if timer, exists := debounce[event.Name]; exists {
				timer.Stop()
			}

			debounce[event.Name] = time.AfterFunc(debounceWait, func() {
				w.handleEvent(event)
				delete(debounce, event.Name)
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Watcher error: %v", err)
		}
	}
}

// handleEvent processes a single file event
func (w *Watcher) handleEvent(event fsnotify.Event) {
	var eventType EventType

	switch {
	case event.Op&fsnotify.Create == fsnotify.Create:
		eventType = EventCreated
		log.Printf("Source image created: %s", event.Name)
	case event.Op&fsnotify.Write == fsnotify.Write:
		eventType = EventModified
		log.Printf("Source image modified: %s", event.Name)
	case event.Op&fsnotify.Remove == fsnotify.Remove:
		eventType = EventDeleted
		log.Printf("Source image deleted: %s", event.Name)
	default:
		return // Ignore other events
	}

	// Send event to channel
	w.events <- Event{
		Type:     eventType,
		FilePath: event.Name,
	}

	if eventType == EventCreated || eventType == EventModified {
		if err := w.generator.Generate(); err != nil {
			log.Printf("Failed to regenerate favicons: %v", err)
		}
	}
}
