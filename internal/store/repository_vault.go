package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/models"
)

// IDGenerator produces new vault identifiers.
type IDGenerator interface {
	Generate() string
}

type vaultRepository struct {
	db     *DB
	ids    IDGenerator
	logger *logger.Logger
}

// NewVaultRepository returns the PostgreSQL [VaultRepository].
func NewVaultRepository(db *DB, ids IDGenerator, log *logger.Logger) VaultRepository {
	log.Debug().Msg("creating vault repository")
	return &vaultRepository{db: db, ids: ids, logger: log}
}

// FindOrCreateVault looks the vault up by owner and name and inserts it when
// absent. A concurrent insert of the same vault is absorbed by the unique
// constraint and the second lookup returns the winner's row.
func (r *vaultRepository) FindOrCreateVault(ctx context.Context, ownerID, name string) (models.Vault, error) {
	log := logger.FromContext(ctx)

	vault, err := r.scanVault(r.db.QueryRowContext(ctx, findVaultByOwnerAndName, ownerID, name))
	if err == nil {
		return vault, nil
	}
	if !errors.Is(err, ErrVaultNotFound) {
		log.Err(err).Str("func", "vaultRepository.FindOrCreateVault").Str("owner_id", ownerID).Msg("vault lookup failed")
		return models.Vault{}, err
	}

	if _, err = r.db.ExecContext(ctx, createVault, r.ids.Generate(), ownerID, name); err != nil {
		log.Err(err).Str("func", "vaultRepository.FindOrCreateVault").Str("owner_id", ownerID).Msg("vault insert failed")
		return models.Vault{}, r.db.wrap(ErrExecutingStatement, err)
	}

	vault, err = r.scanVault(r.db.QueryRowContext(ctx, findVaultByOwnerAndName, ownerID, name))
	if err != nil {
		log.Err(err).Str("func", "vaultRepository.FindOrCreateVault").Str("owner_id", ownerID).Msg("vault lookup after insert failed")
		return models.Vault{}, err
	}

	log.Info().Str("vault_id", vault.ID).Str("owner_id", ownerID).Msg("vault created")
	return vault, nil
}

func (r *vaultRepository) GetVault(ctx context.Context, vaultID string) (models.Vault, error) {
	vault, err := r.scanVault(r.db.QueryRowContext(ctx, getVaultByID, vaultID))
	if err != nil && !errors.Is(err, ErrVaultNotFound) {
		logger.FromContext(ctx).Err(err).Str("func", "vaultRepository.GetVault").Str("vault_id", vaultID).Msg("vault lookup failed")
	}
	return vault, err
}

func (r *vaultRepository) AddUsedBytes(ctx context.Context, vaultID string, delta int64) error {
	res, err := r.db.ExecContext(ctx, addVaultUsedBytes, vaultID, delta)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "vaultRepository.AddUsedBytes").Str("vault_id", vaultID).Msg("usage update failed")
		return r.db.wrap(ErrExecutingStatement, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrVaultNotFound
	}
	return nil
}

func (r *vaultRepository) scanVault(row *sql.Row) (models.Vault, error) {
	var v models.Vault
	err := row.Scan(&v.ID, &v.OwnerID, &v.Name, &v.UsedBytes, &v.CreatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Vault{}, ErrVaultNotFound
	case err != nil:
		return models.Vault{}, r.db.wrap(ErrScanningRow, err)
	}
	return v, nil
}
