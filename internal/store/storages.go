package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-vault-sync/internal/config"
	"github.com/MKhiriev/go-vault-sync/internal/logger"
)

// Storages groups the server repositories.
type Storages struct {
	VaultRepository VaultRepository
	FileRepository  FileRepository
	BlobStorage     BlobStorage

	db *DB
}

// NewStorages connects to PostgreSQL, applies migrations and prepares the
// content directory.
func NewStorages(ctx context.Context, cfg config.Storage, ids IDGenerator, log *logger.Logger) (*Storages, error) {
	log.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	blobs, err := NewFileBlobStorage(cfg.Files.BinaryDataDir, log)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Storages{
		VaultRepository: NewVaultRepository(db, ids, log),
		FileRepository:  NewFileRepository(db, log),
		BlobStorage:     blobs,
		db:              db,
	}, nil
}

// Close releases the database connection.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
