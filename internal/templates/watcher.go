package templates

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/go-logr/logr"
	"sigs.k8s.io/controller-runtime/pkg/manager"

	"github.com/nginxinc/ingress-nginx-errors/internal/framework/events"
)

// Watcher watches the templates directory and sends an events.ChangeEvent to the event channel for every change of
// an entry in the directory. Changes of the permissions only are ignored.
//
// The directory itself is watched, not the files, so files created after the start of the Watcher are covered and
// Kubernetes ConfigMap updates, which swap the ..data symlink atomically, are reported as CREATE and REMOVE events.
type Watcher struct {
	eventCh chan<- interface{}
	logger  logr.Logger
	dir     string
}

// NewWatcher creates a new Watcher.
func NewWatcher(dir string, eventCh chan<- interface{}, logger logr.Logger) *Watcher {
	return &Watcher{
		dir:     dir,
		eventCh: eventCh,
		logger:  logger,
	}
}

// Start starts watching the directory. It blocks until the context is canceled.
// Implements controller-runtime manager.Runnable.
func (w *Watcher) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			w.logger.Error(err, "Failed to close watcher")
		}
	}()

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch templates directory %q: %w", w.dir, err)
	}

	w.logger.Info("Watching templates directory", "path", w.dir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Op == fsnotify.Chmod {
				continue
			}

			w.logger.V(1).Info("Templates directory changed", "path", event.Name, "op", event.Op.String())

			select {
			case w.eventCh <- events.ChangeEvent{Path: event.Name, Op: event.Op.String()}:
			case <-ctx.Done():
				return nil
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error(err, "Error watching templates directory")
		}
	}
}

var _ manager.Runnable = &Watcher{}
