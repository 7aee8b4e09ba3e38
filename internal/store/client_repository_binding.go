package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/models"
)

type bindingRepository struct {
	*DB
	logger *logger.Logger
}

// NewBindingRepository returns the SQLite [BindingRepository].
func NewBindingRepository(db *DB, log *logger.Logger) BindingRepository {
	return &bindingRepository{DB: db, logger: log}
}

func (r *bindingRepository) GetBinding(ctx context.Context, localPath string) (models.VaultBinding, error) {
	var b models.VaultBinding
	err := r.DB.QueryRowContext(ctx, getBinding, localPath).
		Scan(&b.LocalPath, &b.VaultID, &b.VaultName, &b.BoundUserID, &b.DeviceID, &b.BoundAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.VaultBinding{}, ErrBindingNotFound
	case err != nil:
		logger.FromContext(ctx).Err(err).
			Str("func", "bindingRepository.GetBinding").
			Str("local_path", localPath).
			Msg("failed to read binding")
		return models.VaultBinding{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return b, nil
}

func (r *bindingRepository) SaveBinding(ctx context.Context, b models.VaultBinding) error {
	_, err := r.DB.ExecContext(ctx, saveBinding, b.LocalPath, b.VaultID, b.VaultName, b.BoundUserID, b.DeviceID, b.BoundAt)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "bindingRepository.SaveBinding").
			Str("local_path", b.LocalPath).
			Str("vault_id", b.VaultID).
			Msg("failed to save binding")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (r *bindingRepository) DeleteBinding(ctx context.Context, localPath string) error {
	if _, err := r.DB.ExecContext(ctx, deleteBinding, localPath); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "bindingRepository.DeleteBinding").
			Str("local_path", localPath).
			Msg("failed to delete binding")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}
