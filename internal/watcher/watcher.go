// Package watcher reports changes to the tracked files of a vault.
//
// [FileWatcher] wraps fsnotify with a recursive watch over the vault root.
// Directories created while running are watched as well. Events are reported
// with vault-relative forward-slash paths; hidden entries and files the sync
// engine does not track are dropped.
package watcher

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/vault"
)

var (
	// ErrAlreadyRunning is returned by Start on a running watcher.
	ErrAlreadyRunning = errors.New("watcher already running")
	// ErrStopped is returned by Start after Stop.
	ErrStopped = errors.New("watcher stopped")
)

// EventOp is the kind of change.
type EventOp int

const (
	OpCreate EventOp = iota
	OpModify
	OpDelete
)

func (op EventOp) String() string {
	switch op {
	case OpCreate:
		return "create"
	case OpModify:
		return "modify"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// FileEvent is a change under the vault root. Path is vault-relative.
type FileEvent struct {
	Path string
	Op   EventOp
}

// FileWatcher watches a vault directory tree.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	events  chan FileEvent
	done    chan struct{}
	wg      sync.WaitGroup

	mu      sync.Mutex
	running bool
	stopped bool
	root    string

	logger *logger.Logger
}

// NewFileWatcher creates a FileWatcher. It emits nothing until Start.
func NewFileWatcher(log *logger.Logger) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &FileWatcher{
		watcher: w,
		events:  make(chan FileEvent, 100),
		done:    make(chan struct{}),
		logger:  log,
	}, nil
}

// Start watches root and every non-hidden directory below it.
func (fw *FileWatcher) Start(root string) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.stopped {
		return ErrStopped
	}
	if fw.running {
		return ErrAlreadyRunning
	}

	fw.root = filepath.Clean(root)
	if err := fw.addTree(fw.root); err != nil {
		return fmt.Errorf("failed to watch vault %s: %w", root, err)
	}

	fw.running = true
	fw.wg.Add(1)
	go fw.processEvents()

	return nil
}

// Stop closes the watcher and waits for the event loop to exit. The Events
// channel is closed afterwards. Stopping a watcher that never started
// releases its resources too.
func (fw *FileWatcher) Stop() error {
	fw.mu.Lock()
	if fw.stopped {
		fw.mu.Unlock()
		return nil
	}
	fw.stopped = true
	wasRunning := fw.running
	fw.running = false
	fw.mu.Unlock()

	close(fw.done)

	err := fw.watcher.Close()

	if wasRunning {
		fw.wg.Wait()
	}
	close(fw.events)

	if err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}
	return nil
}

// Events returns the channel of vault changes.
func (fw *FileWatcher) Events() <-chan FileEvent {
	return fw.events
}

func (fw *FileWatcher) processEvents() {
	defer fw.wg.Done()

	for {
		select {
		case <-fw.done:
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			fileEvent, ok := fw.convertEvent(event)
			if !ok {
				continue
			}
			select {
			case fw.events <- fileEvent:
			case <-fw.done:
				return
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Warn().Err(err).Str("func", "FileWatcher.processEvents").Msg("fsnotify error")
		}
	}
}

// convertEvent maps an fsnotify event to a FileEvent. New directories are
// added to the watch and reported so files created inside them before the
// watch was set up are not missed.
func (fw *FileWatcher) convertEvent(event fsnotify.Event) (FileEvent, bool) {
	rel, ok := fw.relative(event.Name)
	if !ok || vault.IsHidden(rel) {
		return FileEvent{}, false
	}

	switch {
	case event.Has(fsnotify.Create):
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err = fw.addTree(event.Name); err != nil {
				fw.logger.Warn().Err(err).Str("dir", rel).Msg("failed to watch new directory")
			}
			return FileEvent{Path: rel, Op: OpCreate}, true
		}
		if !vault.IsTracked(rel) {
			return FileEvent{}, false
		}
		return FileEvent{Path: rel, Op: OpCreate}, true

	case event.Has(fsnotify.Write):
		if !vault.IsTracked(rel) {
			return FileEvent{}, false
		}
		return FileEvent{Path: rel, Op: OpModify}, true

	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		// a removed directory can no longer be told apart from a file, so
		// anything without a foreign extension counts
		if ext := path.Ext(rel); ext != "" && !vault.IsTracked(rel) {
			return FileEvent{}, false
		}
		return FileEvent{Path: rel, Op: OpDelete}, true

	default:
		return FileEvent{}, false
	}
}

func (fw *FileWatcher) relative(name string) (string, bool) {
	rel, err := filepath.Rel(fw.root, name)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

func (fw *FileWatcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == dir {
				return err
			}
			fw.logger.Warn().Err(err).Str("dir", p).Msg("skipping unreadable directory")
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if p != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return fw.watcher.Add(p)
	})
}
