// Package watch notifies the lint handler when lintrc files change on disk,
// for editors that do not forward file events themselves.
package watch

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/yaklabco/lintbridge/internal/configloader"
	"github.com/yaklabco/lintbridge/internal/logging"
	"github.com/yaklabco/lintbridge/pkg/document"
)

// defaultDebounce batches the event bursts editors produce on save
// (write, chmod, rename dances) into one notification.
const defaultDebounce = 200 * time.Millisecond

// Handler receives the URIs of changed lintrc files after debouncing.
type Handler func(uris []string)

// Watcher observes directories for lintrc changes. Events for other files
// are dropped; matching events are debounced and handed to the Handler as
// file URIs.
type Watcher struct {
	watcher  *fsnotify.Watcher
	handler  Handler
	logger   *log.Logger
	debounce time.Duration

	done     chan struct{}
	stopOnce sync.Once
}

// New creates a Watcher delivering changes to handler.
func New(handler Handler, logger *log.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = logging.Default()
	}

	return &Watcher{
		watcher:  fsw,
		handler:  handler,
		logger:   logger,
		debounce: defaultDebounce,
		done:     make(chan struct{}),
	}, nil
}

// Add registers a directory to watch. Watching is not recursive; callers
// add each directory a discovered lintrc lives in.
func (w *Watcher) Add(dir string) error {
	return w.watcher.Add(dir)
}

// Start runs the event loop until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) {
	go w.loop(ctx)
}

// Stop shuts the watcher down. Safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		_ = w.watcher.Close()
	})
}

func (w *Watcher) loop(ctx context.Context) {
	pending := make(map[string]struct{})
	var timer *time.Timer
	var timerC <-chan time.Time

	flush := func() {
		if len(pending) > 0 && w.handler != nil {
			uris := make([]string, 0, len(pending))
			for path := range pending {
				uris = append(uris, document.URIFromPath(path))
			}
			w.logger.Debug("lintrc changed", "files", len(uris))
			w.handler(uris)
			clear(pending)
		}
		if timer != nil {
			timer.Stop()
			timer = nil
			timerC = nil
		}
	}

	for {
		select {
		case <-ctx.Done():
			flush()
			return
		case <-w.done:
			flush()
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !configloader.IsConfigFile(event.Name) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}

			pending[event.Name] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}
		case <-timerC:
			flush()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watch error", logging.FieldError, err)
		}
	}
}
