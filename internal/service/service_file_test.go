package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/mock"
	"github.com/MKhiriev/go-vault-sync/internal/store"
	"github.com/MKhiriev/go-vault-sync/internal/vault"
	"github.com/MKhiriev/go-vault-sync/models"
)

type fileServiceMocks struct {
	vaults *mock.MockVaultService
	files  *mock.MockFileRepository
	blobs  *mock.MockBlobStorage
	usage  *mock.MockVaultRepository
}

func newTestFileService(t *testing.T, quota int64) (FileService, fileServiceMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := fileServiceMocks{
		vaults: mock.NewMockVaultService(ctrl),
		files:  mock.NewMockFileRepository(ctrl),
		blobs:  mock.NewMockBlobStorage(ctrl),
		usage:  mock.NewMockVaultRepository(ctrl),
	}
	return NewFileService(m.vaults, m.files, m.blobs, m.usage, quota, logger.Nop()), m
}

func uploadRequest(content string) models.FileUploadRequest {
	return models.FileUploadRequest{
		VaultID:     "v1",
		Path:        "notes/a.md",
		Hash:        vault.ContentHash([]byte(content)),
		VectorClock: models.VectorClock{"A": 1},
		Content:     []byte(content),
	}
}

func TestFileService_Upload(t *testing.T) {
	svc, m := newTestFileService(t, 0)
	ctx := context.Background()
	req := uploadRequest("hello")

	m.vaults.EXPECT().GetVault(ctx, "user-1", "v1").Return(models.Vault{ID: "v1", OwnerID: "user-1"}, nil)
	m.blobs.EXPECT().Size(ctx, "v1", req.Hash).Return(int64(0), store.ErrBlobNotFound)
	m.blobs.EXPECT().Save(ctx, "v1", req.Hash, req.Content).Return(nil)
	m.usage.EXPECT().AddUsedBytes(ctx, "v1", int64(5)).Return(nil)

	resp, err := svc.Upload(ctx, "user-1", req)
	require.NoError(t, err)
	assert.Equal(t, models.FileUploadResponse{Path: "notes/a.md", Hash: req.Hash, Size: 5}, resp)
}

func TestFileService_Upload_AlreadyStored(t *testing.T) {
	svc, m := newTestFileService(t, 1)
	ctx := context.Background()
	req := uploadRequest("hello")

	m.vaults.EXPECT().GetVault(ctx, "user-1", "v1").Return(models.Vault{ID: "v1", OwnerID: "user-1", UsedBytes: 100}, nil)
	m.blobs.EXPECT().Size(ctx, "v1", req.Hash).Return(int64(5), nil)

	resp, err := svc.Upload(ctx, "user-1", req)
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.Size)
}

func TestFileService_Upload_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("hash mismatch", func(t *testing.T) {
		svc, m := newTestFileService(t, 0)
		req := uploadRequest("hello")
		req.Content = []byte("tampered")

		m.vaults.EXPECT().GetVault(ctx, "user-1", "v1").Return(models.Vault{ID: "v1", OwnerID: "user-1"}, nil)

		_, err := svc.Upload(ctx, "user-1", req)
		assert.ErrorIs(t, err, ErrHashMismatch)
	})

	t.Run("quota exceeded", func(t *testing.T) {
		svc, m := newTestFileService(t, 10)
		req := uploadRequest("hello")

		m.vaults.EXPECT().GetVault(ctx, "user-1", "v1").Return(models.Vault{ID: "v1", OwnerID: "user-1", UsedBytes: 6}, nil)
		m.blobs.EXPECT().Size(ctx, "v1", req.Hash).Return(int64(0), store.ErrBlobNotFound)

		_, err := svc.Upload(ctx, "user-1", req)
		assert.ErrorIs(t, err, ErrQuotaExceeded)
	})

	t.Run("quota exactly reached", func(t *testing.T) {
		svc, m := newTestFileService(t, 10)
		req := uploadRequest("hello")

		m.vaults.EXPECT().GetVault(ctx, "user-1", "v1").Return(models.Vault{ID: "v1", OwnerID: "user-1", UsedBytes: 5}, nil)
		m.blobs.EXPECT().Size(ctx, "v1", req.Hash).Return(int64(0), store.ErrBlobNotFound)
		m.blobs.EXPECT().Save(ctx, "v1", req.Hash, req.Content).Return(nil)
		m.usage.EXPECT().AddUsedBytes(ctx, "v1", int64(5)).Return(nil)

		_, err := svc.Upload(ctx, "user-1", req)
		assert.NoError(t, err)
	})

	t.Run("foreign vault", func(t *testing.T) {
		svc, m := newTestFileService(t, 0)

		m.vaults.EXPECT().GetVault(ctx, "user-2", "v1").Return(models.Vault{}, ErrVaultAccessDenied)

		_, err := svc.Upload(ctx, "user-2", uploadRequest("hello"))
		assert.ErrorIs(t, err, ErrVaultAccessDenied)
	})

	t.Run("save fails", func(t *testing.T) {
		svc, m := newTestFileService(t, 0)
		req := uploadRequest("hello")

		m.vaults.EXPECT().GetVault(ctx, "user-1", "v1").Return(models.Vault{ID: "v1", OwnerID: "user-1"}, nil)
		m.blobs.EXPECT().Size(ctx, "v1", req.Hash).Return(int64(0), store.ErrBlobNotFound)
		m.blobs.EXPECT().Save(ctx, "v1", req.Hash, req.Content).Return(assert.AnError)

		_, err := svc.Upload(ctx, "user-1", req)
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestFileService_Download(t *testing.T) {
	ctx := context.Background()
	entry := models.FileEntry{Path: "a.md", Hash: "h1", VectorClock: models.VectorClock{"B": 1}}

	t.Run("ok", func(t *testing.T) {
		svc, m := newTestFileService(t, 0)

		m.vaults.EXPECT().GetVault(ctx, "user-1", "v1").Return(models.Vault{ID: "v1", OwnerID: "user-1"}, nil)
		m.files.EXPECT().GetFile(ctx, "v1", "a.md").Return(entry, nil)
		m.blobs.EXPECT().Load(ctx, "v1", "h1").Return([]byte("body"), nil)

		resp, err := svc.Download(ctx, "user-1", "v1", "a.md")
		require.NoError(t, err)
		assert.Equal(t, entry, resp.Entry)
		assert.Equal(t, []byte("body"), resp.Content)
	})

	t.Run("tombstone", func(t *testing.T) {
		svc, m := newTestFileService(t, 0)
		deleted := entry
		deleted.Deleted = true

		m.vaults.EXPECT().GetVault(ctx, "user-1", "v1").Return(models.Vault{ID: "v1", OwnerID: "user-1"}, nil)
		m.files.EXPECT().GetFile(ctx, "v1", "a.md").Return(deleted, nil)

		_, err := svc.Download(ctx, "user-1", "v1", "a.md")
		assert.ErrorIs(t, err, ErrFileDeleted)
	})

	t.Run("unknown path", func(t *testing.T) {
		svc, m := newTestFileService(t, 0)

		m.vaults.EXPECT().GetVault(ctx, "user-1", "v1").Return(models.Vault{ID: "v1", OwnerID: "user-1"}, nil)
		m.files.EXPECT().GetFile(ctx, "v1", "a.md").Return(models.FileEntry{}, store.ErrFileNotFound)

		_, err := svc.Download(ctx, "user-1", "v1", "a.md")
		assert.ErrorIs(t, err, store.ErrFileNotFound)
	})

	t.Run("blob missing", func(t *testing.T) {
		svc, m := newTestFileService(t, 0)

		m.vaults.EXPECT().GetVault(ctx, "user-1", "v1").Return(models.Vault{ID: "v1", OwnerID: "user-1"}, nil)
		m.files.EXPECT().GetFile(ctx, "v1", "a.md").Return(entry, nil)
		m.blobs.EXPECT().Load(ctx, "v1", "h1").Return(nil, store.ErrBlobNotFound)

		_, err := svc.Download(ctx, "user-1", "v1", "a.md")
		assert.ErrorIs(t, err, store.ErrBlobNotFound)
	})
}
