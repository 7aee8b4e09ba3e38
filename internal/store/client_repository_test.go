package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-vault-sync/internal/config"
	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/models"
)

func newTestClientStorages(t *testing.T) *ClientStorages {
	t.Helper()
	cfg := config.ClientStorage{DB: config.ClientDB{DSN: filepath.Join(t.TempDir(), "nested", "client.db")}}
	s, err := NewClientStorages(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestBindingRepository(t *testing.T) {
	repo := newTestClientStorages(t).BindingRepository
	ctx := context.Background()

	_, err := repo.GetBinding(ctx, "/notes")
	assert.ErrorIs(t, err, ErrBindingNotFound)

	b := models.VaultBinding{
		LocalPath:   "/notes",
		VaultID:     "vault-1",
		VaultName:   "notes",
		BoundUserID: "user-1",
		DeviceID:    "mac",
		BoundAt:     time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	require.NoError(t, repo.SaveBinding(ctx, b))

	got, err := repo.GetBinding(ctx, "/notes")
	require.NoError(t, err)
	assert.Equal(t, b.VaultID, got.VaultID)
	assert.Equal(t, b.BoundUserID, got.BoundUserID)
	assert.True(t, b.BoundAt.Equal(got.BoundAt))

	b.VaultID = "vault-2"
	b.BoundUserID = "user-2"
	require.NoError(t, repo.SaveBinding(ctx, b))
	got, err = repo.GetBinding(ctx, "/notes")
	require.NoError(t, err)
	assert.Equal(t, "vault-2", got.VaultID)
	assert.Equal(t, "user-2", got.BoundUserID)

	require.NoError(t, repo.DeleteBinding(ctx, "/notes"))
	_, err = repo.GetBinding(ctx, "/notes")
	assert.ErrorIs(t, err, ErrBindingNotFound)
}

func TestKeyValueRepository(t *testing.T) {
	kv := newTestClientStorages(t).KeyValue
	ctx := context.Background()

	_, found, err := kv.Get(ctx, "moryflow:file-index:/notes")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, kv.Put(ctx, "moryflow:file-index:/notes", []byte(`{"version":2}`)))
	require.NoError(t, kv.Put(ctx, "moryflow:file-index:/notes", []byte(`{"version":2,"files":[]}`)))

	value, found, err := kv.Get(ctx, "moryflow:file-index:/notes")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"version":2,"files":[]}`, string(value))

	require.NoError(t, kv.Delete(ctx, "moryflow:file-index:/notes"))
	_, found, err = kv.Get(ctx, "moryflow:file-index:/notes")
	require.NoError(t, err)
	assert.False(t, found)
}
