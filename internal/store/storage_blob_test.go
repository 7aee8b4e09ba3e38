package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-vault-sync/internal/logger"
)

const testHash = "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"

func TestFileBlobStorage(t *testing.T) {
	s, err := NewFileBlobStorage(t.TempDir(), logger.Nop())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = s.Load(ctx, "vault-1", testHash)
	assert.ErrorIs(t, err, ErrBlobNotFound)
	_, err = s.Size(ctx, "vault-1", testHash)
	assert.ErrorIs(t, err, ErrBlobNotFound)

	require.NoError(t, s.Save(ctx, "vault-1", testHash, []byte("hello")))
	require.NoError(t, s.Save(ctx, "vault-1", testHash, []byte("hello")), "saving twice is idempotent")

	data, err := s.Load(ctx, "vault-1", testHash)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	size, err := s.Size(ctx, "vault-1", testHash)
	require.NoError(t, err)
	assert.Equal(t, int64(5), size)

	_, err = s.Load(ctx, "vault-2", testHash)
	assert.ErrorIs(t, err, ErrBlobNotFound)
}

func TestFileBlobStorage_RejectsUnsafeKeys(t *testing.T) {
	s, err := NewFileBlobStorage(t.TempDir(), logger.Nop())
	require.NoError(t, err)
	ctx := context.Background()

	assert.ErrorIs(t, s.Save(ctx, "../etc", testHash, nil), ErrInvalidBlobKey)
	assert.ErrorIs(t, s.Save(ctx, "vault-1", "../../passwd", nil), ErrInvalidBlobKey)
	assert.ErrorIs(t, s.Save(ctx, "vault-1", "ABCDEF0123", nil), ErrInvalidBlobKey)
	_, err = s.Load(ctx, "", testHash)
	assert.ErrorIs(t, err, ErrInvalidBlobKey)
}
