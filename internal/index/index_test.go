package index

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/models"
)

type mapKV struct {
	mu   sync.Mutex
	data map[string][]byte
	err  error
}

func newMapKV() *mapKV {
	return &mapKV{data: map[string][]byte{}}
}

func (m *mapKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, false, m.err
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *mapKV) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.data[key] = value
	return nil
}

func (m *mapKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func sampleFiles() []models.FileEntry {
	size := int64(12)
	return []models.FileEntry{
		{Path: "a.md", Hash: "aa", VectorClock: models.VectorClock{"mac": 2}, Mtime: 1700000000000, Size: &size},
		{Path: "notes/b.md", Hash: "bb", VectorClock: models.VectorClock{"mac": 1, "iphone": 3}, Mtime: 1700000000001},
	}
}

func TestStore_FileBackend_RoundTrip(t *testing.T) {
	vaultPath := t.TempDir()
	s := New(NewFileBackend(nil), logger.Nop())
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, vaultPath, sampleFiles()))

	_, err := os.Stat(filepath.Join(vaultPath, ".moryflow", "file-index.json"))
	require.NoError(t, err)

	loaded := s.Load(ctx, vaultPath)
	assert.Equal(t, models.FileIndexVersion, loaded.Version)
	assert.Equal(t, sampleFiles(), loaded.Files)
}

func TestStore_KVBackend_RoundTrip(t *testing.T) {
	kv := newMapKV()
	s := New(NewKVBackend(kv), logger.Nop())
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "/Users/u/Notes", sampleFiles()))

	_, ok := kv.data["moryflow:file-index:/Users/u/Notes"]
	assert.True(t, ok)
	assert.Equal(t, sampleFiles(), s.Load(ctx, "/Users/u/Notes").Files)
}

func TestStore_Load_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"version 1", `{"version":1,"files":[{"path":"a.md","hash":"x","vectorClock":{"mac":1},"mtime":1}]}`},
		{"version 3", `{"version":3,"files":[]}`},
		{"no version", `{"files":[]}`},
		{"version as string", `{"version":"2","files":[]}`},
		{"files missing", `{"version":2}`},
		{"files null", `{"version":2,"files":null}`},
		{"files object", `{"version":2,"files":{"a.md":{}}}`},
		{"bad entry", `{"version":2,"files":[{"path":42}]}`},
		{"not json", `{version: 2`},
		{"empty", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := newMapKV()
			kv.data[Key("/v")] = []byte(tt.data)

			got := New(NewKVBackend(kv), logger.Nop()).Load(context.Background(), "/v")

			assert.Equal(t, models.NewFileIndexStore(), got)
		})
	}
}

func TestStore_Load_MissingAndBackendError(t *testing.T) {
	kv := newMapKV()
	s := New(NewKVBackend(kv), logger.Nop())

	assert.Equal(t, models.NewFileIndexStore(), s.Load(context.Background(), "/none"))

	kv.err = errors.New("disk io")
	assert.Equal(t, models.NewFileIndexStore(), s.Load(context.Background(), "/none"))

	assert.Equal(t, models.NewFileIndexStore(), New(NewFileBackend(nil), logger.Nop()).Load(context.Background(), t.TempDir()))
}

func TestStore_Load_NormalizesEntries(t *testing.T) {
	kv := newMapKV()
	kv.data[Key("/v")] = []byte(`{"version":2,"files":[{"path":"","hash":"x"},{"path":"a.md","hash":"y"}]}`)

	got := New(NewKVBackend(kv), logger.Nop()).Load(context.Background(), "/v")

	require.Len(t, got.Files, 1)
	assert.Equal(t, "a.md", got.Files[0].Path)
	assert.NotNil(t, got.Files[0].VectorClock)
}

func TestStore_Save_StampsVersion(t *testing.T) {
	kv := newMapKV()
	s := New(NewKVBackend(kv), logger.Nop())

	require.NoError(t, s.Save(context.Background(), "/v", nil))

	assert.JSONEq(t, `{"version":2,"files":[]}`, string(kv.data[Key("/v")]))
}

func TestStore_Save_BackendError(t *testing.T) {
	kv := newMapKV()
	kv.err = errors.New("read-only")

	err := New(NewKVBackend(kv), logger.Nop()).Save(context.Background(), "/v", sampleFiles())

	assert.ErrorIs(t, err, kv.err)
}

func TestStore_Reset(t *testing.T) {
	vaultPath := t.TempDir()
	s := New(NewFileBackend(nil), logger.Nop())
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, vaultPath, sampleFiles()))
	require.NoError(t, s.Reset(ctx, vaultPath))
	require.NoError(t, s.Reset(ctx, vaultPath))

	assert.Empty(t, s.Load(ctx, vaultPath).Files)
}
