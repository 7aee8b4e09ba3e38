package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/store"
	"github.com/MKhiriev/go-vault-sync/internal/vault"
	"github.com/MKhiriev/go-vault-sync/models"
)

type fileService struct {
	vaults     VaultService
	files      store.FileRepository
	blobs      store.BlobStorage
	usage      store.VaultRepository
	quotaBytes int64

	logger *logger.Logger
}

// NewFileService stages uploads in the blob store and serves downloads.
// quotaBytes limits the stored bytes per vault; 0 disables the limit.
func NewFileService(vaults VaultService, files store.FileRepository, blobs store.BlobStorage, usage store.VaultRepository, quotaBytes int64, logger *logger.Logger) FileService {
	return &fileService{
		vaults:     vaults,
		files:      files,
		blobs:      blobs,
		usage:      usage,
		quotaBytes: quotaBytes,
		logger:     logger,
	}
}

// Upload stores the content under its hash. Content already present is not
// counted against the quota again. The index is only changed by Commit.
func (f *fileService) Upload(ctx context.Context, userID string, req models.FileUploadRequest) (models.FileUploadResponse, error) {
	log := logger.FromContext(ctx)

	v, err := f.vaults.GetVault(ctx, userID, req.VaultID)
	if err != nil {
		return models.FileUploadResponse{}, err
	}

	if vault.ContentHash(req.Content) != req.Hash {
		return models.FileUploadResponse{}, ErrHashMismatch
	}
	size := int64(len(req.Content))
	resp := models.FileUploadResponse{Path: req.Path, Hash: req.Hash, Size: size}

	_, err = f.blobs.Size(ctx, req.VaultID, req.Hash)
	switch {
	case err == nil:
		log.Debug().Str("vault_id", req.VaultID).Str("path", req.Path).Msg("content already stored")
		return resp, nil
	case !errors.Is(err, store.ErrBlobNotFound):
		return models.FileUploadResponse{}, fmt.Errorf("stat blob: %w", err)
	}

	if f.quotaBytes > 0 && v.UsedBytes+size > f.quotaBytes {
		log.Warn().
			Str("vault_id", req.VaultID).
			Int64("used", v.UsedBytes).
			Int64("size", size).
			Int64("quota", f.quotaBytes).
			Msg("upload rejected by quota")
		return models.FileUploadResponse{}, ErrQuotaExceeded
	}

	if err = f.blobs.Save(ctx, req.VaultID, req.Hash, req.Content); err != nil {
		log.Err(err).Str("vault_id", req.VaultID).Str("path", req.Path).Msg("saving blob failed")
		return models.FileUploadResponse{}, fmt.Errorf("save blob: %w", err)
	}
	if err = f.usage.AddUsedBytes(ctx, req.VaultID, size); err != nil {
		return models.FileUploadResponse{}, fmt.Errorf("update vault usage: %w", err)
	}

	log.Info().Str("vault_id", req.VaultID).Str("path", req.Path).Int64("size", size).Msg("content stored")
	return resp, nil
}

func (f *fileService) Download(ctx context.Context, userID, vaultID, path string) (models.FileDownloadResponse, error) {
	if _, err := f.vaults.GetVault(ctx, userID, vaultID); err != nil {
		return models.FileDownloadResponse{}, err
	}

	entry, err := f.files.GetFile(ctx, vaultID, path)
	if err != nil {
		return models.FileDownloadResponse{}, err
	}
	if entry.Deleted {
		return models.FileDownloadResponse{}, ErrFileDeleted
	}

	content, err := f.blobs.Load(ctx, vaultID, entry.Hash)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("vault_id", vaultID).Str("path", path).Msg("loading blob failed")
		return models.FileDownloadResponse{}, fmt.Errorf("load blob: %w", err)
	}

	return models.FileDownloadResponse{Entry: entry, Content: content}, nil
}
