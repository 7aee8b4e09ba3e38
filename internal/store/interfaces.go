package store

import (
	"context"

	"github.com/MKhiriev/go-vault-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// VaultRepository manages remote vaults and their ownership.
type VaultRepository interface {
	// FindOrCreateVault returns the owner's vault named name, creating it
	// when it does not exist.
	FindOrCreateVault(ctx context.Context, ownerID, name string) (models.Vault, error)
	GetVault(ctx context.Context, vaultID string) (models.Vault, error)
	AddUsedBytes(ctx context.Context, vaultID string, delta int64) error
}

// FileRepository holds the authoritative file index of every vault.
type FileRepository interface {
	// ListFiles returns the entries of a vault, tombstones included. When
	// paths is non-empty only those paths are returned.
	ListFiles(ctx context.Context, vaultID string, paths ...string) ([]models.FileEntry, error)
	GetFile(ctx context.Context, vaultID, path string) (models.FileEntry, error)
	// UpsertFiles inserts or replaces entries in a single transaction.
	UpsertFiles(ctx context.Context, vaultID string, entries []models.FileEntry) error
}

// BlobStorage stores file content addressed by vault and content hash.
type BlobStorage interface {
	Save(ctx context.Context, vaultID, hash string, content []byte) error
	Load(ctx context.Context, vaultID, hash string) ([]byte, error)
	// Size returns the stored content length, or ErrBlobNotFound.
	Size(ctx context.Context, vaultID, hash string) (int64, error)
}
