package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-vault-sync/internal/logger"
)

func newStartedWatcher(t *testing.T) (*FileWatcher, string) {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "notes"), 0o755))

	fw, err := NewFileWatcher(logger.Nop())
	require.NoError(t, err)
	require.NoError(t, fw.Start(root))
	t.Cleanup(func() { _ = fw.Stop() })
	return fw, root
}

func waitFor(t *testing.T, fw *FileWatcher, want FileEvent) {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case ev, ok := <-fw.Events():
			require.True(t, ok, "events channel closed")
			if ev == want {
				return
			}
		case <-deadline:
			t.Fatalf("event %+v not received", want)
		}
	}
}

func TestFileWatcher_ReportsTrackedFiles(t *testing.T) {
	fw, root := newStartedWatcher(t)

	p := filepath.Join(root, "notes", "a.md")
	require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	waitFor(t, fw, FileEvent{Path: "notes/a.md", Op: OpCreate})

	require.NoError(t, os.Remove(p))
	waitFor(t, fw, FileEvent{Path: "notes/a.md", Op: OpDelete})
}

func TestFileWatcher_WatchesNewDirectories(t *testing.T) {
	fw, root := newStartedWatcher(t)

	dir := filepath.Join(root, "projects")
	require.NoError(t, os.Mkdir(dir, 0o755))
	waitFor(t, fw, FileEvent{Path: "projects", Op: OpCreate})

	require.NoError(t, os.WriteFile(filepath.Join(dir, "plan.md"), []byte("x"), 0o644))
	waitFor(t, fw, FileEvent{Path: "projects/plan.md", Op: OpCreate})
}

func TestFileWatcher_StartTwice(t *testing.T) {
	fw, root := newStartedWatcher(t)
	assert.ErrorIs(t, fw.Start(root), ErrAlreadyRunning)
}

func TestFileWatcher_StopIsIdempotent(t *testing.T) {
	fw, _ := newStartedWatcher(t)
	require.NoError(t, fw.Stop())
	assert.NoError(t, fw.Stop())

	_, ok := <-fw.Events()
	assert.False(t, ok)
}

func TestFileWatcher_StopWithoutStart(t *testing.T) {
	fw, err := NewFileWatcher(logger.Nop())
	require.NoError(t, err)

	require.NoError(t, fw.Stop())
	assert.NoError(t, fw.Stop())

	_, ok := <-fw.Events()
	assert.False(t, ok)
	assert.ErrorIs(t, fw.Start(t.TempDir()), ErrStopped)
}

func TestFileWatcher_ConvertEvent(t *testing.T) {
	fw := &FileWatcher{root: "/vault", logger: logger.Nop()}

	tests := []struct {
		name  string
		event fsnotify.Event
		want  FileEvent
		ok    bool
	}{
		{"write md", fsnotify.Event{Name: "/vault/a.md", Op: fsnotify.Write}, FileEvent{Path: "a.md", Op: OpModify}, true},
		{"write txt", fsnotify.Event{Name: "/vault/a.txt", Op: fsnotify.Write}, FileEvent{}, false},
		{"hidden index", fsnotify.Event{Name: "/vault/.moryflow/file-index.json", Op: fsnotify.Write}, FileEvent{}, false},
		{"hidden md", fsnotify.Event{Name: "/vault/.trash/a.md", Op: fsnotify.Write}, FileEvent{}, false},
		{"rename md", fsnotify.Event{Name: "/vault/notes/a.md", Op: fsnotify.Rename}, FileEvent{Path: "notes/a.md", Op: OpDelete}, true},
		{"removed dir", fsnotify.Event{Name: "/vault/notes", Op: fsnotify.Remove}, FileEvent{Path: "notes", Op: OpDelete}, true},
		{"removed png", fsnotify.Event{Name: "/vault/img.png", Op: fsnotify.Remove}, FileEvent{}, false},
		{"chmod", fsnotify.Event{Name: "/vault/a.md", Op: fsnotify.Chmod}, FileEvent{}, false},
		{"outside root", fsnotify.Event{Name: "/other/a.md", Op: fsnotify.Write}, FileEvent{}, false},
		{"root itself", fsnotify.Event{Name: "/vault", Op: fsnotify.Remove}, FileEvent{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := fw.convertEvent(tt.event)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
