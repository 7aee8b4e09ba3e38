package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-vault-sync/internal/validators"
	"github.com/MKhiriev/go-vault-sync/models"
)

// SyncServiceWrapper decorates a SyncService, e.g. with request validation.
type SyncServiceWrapper interface {
	Wrap(SyncService) SyncService
}

// FileServiceWrapper decorates a FileService.
type FileServiceWrapper interface {
	Wrap(FileService) FileService
}

// SyncValidationService rejects malformed diff and commit requests before
// they reach the wrapped SyncService.
type SyncValidationService struct {
	inner     SyncService
	validator validators.Validator
}

func NewSyncValidationService(validator validators.Validator) SyncServiceWrapper {
	return &SyncValidationService{validator: validator}
}

func (v *SyncValidationService) BuildDiff(ctx context.Context, remote []models.FileEntry, local []models.FileSummary) ([]models.SyncActionDTO, error) {
	return v.inner.BuildDiff(ctx, remote, local)
}

func (v *SyncValidationService) Diff(ctx context.Context, userID string, req models.SyncDiffRequest) (models.SyncDiffResponse, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.SyncDiffResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.Diff(ctx, userID, req)
}

func (v *SyncValidationService) Commit(ctx context.Context, userID string, req models.SyncCommitRequest) (models.SyncCommitResponse, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.SyncCommitResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.Commit(ctx, userID, req)
}

func (v *SyncValidationService) Wrap(inner SyncService) SyncService {
	v.inner = inner
	return v
}

// FileValidationService validates uploads and download parameters.
type FileValidationService struct {
	inner     FileService
	validator validators.Validator
}

func NewFileValidationService(validator validators.Validator) FileServiceWrapper {
	return &FileValidationService{validator: validator}
}

func (v *FileValidationService) Upload(ctx context.Context, userID string, req models.FileUploadRequest) (models.FileUploadResponse, error) {
	// content/hash agreement is checked by the inner service so that a
	// mismatch surfaces as ErrHashMismatch
	err := v.validator.Validate(ctx, req, validators.FieldVaultID, validators.FieldPath, validators.FieldHash, validators.FieldClock)
	if err != nil {
		return models.FileUploadResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.Upload(ctx, userID, req)
}

func (v *FileValidationService) Download(ctx context.Context, userID, vaultID, path string) (models.FileDownloadResponse, error) {
	if vaultID == "" || !validators.ValidPath(path) {
		return models.FileDownloadResponse{}, ErrInvalidDataProvided
	}
	return v.inner.Download(ctx, userID, vaultID, path)
}

func (v *FileValidationService) Wrap(inner FileService) FileService {
	v.inner = inner
	return v
}
