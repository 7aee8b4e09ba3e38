package workers

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/watcher"
)

// EventSource is the part of [watcher.FileWatcher] the watch worker needs.
type EventSource interface {
	Start(root string) error
	Stop() error
	Events() <-chan watcher.FileEvent
}

// Trigger requests a debounced sync cycle.
type Trigger interface {
	Trigger()
}

type watchWorker struct {
	root    string
	source  EventSource
	trigger Trigger
	logger  *logger.Logger
}

// NewWatchWorker turns every file event under root into a sync trigger.
func NewWatchWorker(root string, source EventSource, trigger Trigger, log *logger.Logger) Worker {
	return &watchWorker{root: root, source: source, trigger: trigger, logger: log}
}

func (w *watchWorker) Run(ctx context.Context) error {
	if err := w.source.Start(w.root); err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer func() {
		if err := w.source.Stop(); err != nil {
			w.logger.Err(err).Msg("stop watcher")
		}
	}()

	events := w.source.Events()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			w.logger.Debug().Str("path", ev.Path).Str("op", ev.Op.String()).Msg("file changed")
			w.trigger.Trigger()
		}
	}
}
