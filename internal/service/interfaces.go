package service

import (
	"context"

	"github.com/MKhiriev/go-vault-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService issues and verifies bearer tokens. The subject of a token is
// the account ID that owns vaults.
type AuthService interface {
	CreateToken(ctx context.Context, userID string) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// VaultService manages the vaults of an account.
type VaultService interface {
	// CreateVault returns the user's vault named name, creating it if needed.
	CreateVault(ctx context.Context, userID, name string) (models.Vault, error)

	// GetVault returns the vault if userID owns it.
	GetVault(ctx context.Context, userID, vaultID string) (models.Vault, error)
}

// SyncService computes diffs against the authoritative server index and
// records committed transfers.
type SyncService interface {
	// BuildDiff compares the remote index with the client summaries and
	// returns one action per path, sorted by path. It has no side effects.
	BuildDiff(ctx context.Context, remote []models.FileEntry, local []models.FileSummary) ([]models.SyncActionDTO, error)

	Diff(ctx context.Context, userID string, req models.SyncDiffRequest) (models.SyncDiffResponse, error)
	Commit(ctx context.Context, userID string, req models.SyncCommitRequest) (models.SyncCommitResponse, error)
}

// FileService moves file content in and out of the blob store.
type FileService interface {
	Upload(ctx context.Context, userID string, req models.FileUploadRequest) (models.FileUploadResponse, error)
	Download(ctx context.Context, userID, vaultID, path string) (models.FileDownloadResponse, error)
}
