package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-vault-sync/internal/logger"
)

type keyValueRepository struct {
	*DB
	logger *logger.Logger
}

// NewKeyValueRepository returns the SQLite [KeyValueRepository]. It backs the
// key-value file index and small client settings such as the device ID.
func NewKeyValueRepository(db *DB, log *logger.Logger) KeyValueRepository {
	return &keyValueRepository{DB: db, logger: log}
}

func (r *keyValueRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := r.DB.QueryRowContext(ctx, getKV, key).Scan(&value)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, false, nil
	case err != nil:
		logger.FromContext(ctx).Err(err).Str("func", "keyValueRepository.Get").Str("key", key).Msg("failed to read key")
		return nil, false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return value, true, nil
}

func (r *keyValueRepository) Put(ctx context.Context, key string, value []byte) error {
	if _, err := r.DB.ExecContext(ctx, putKV, key, value); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "keyValueRepository.Put").Str("key", key).Msg("failed to write key")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (r *keyValueRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.DB.ExecContext(ctx, deleteKV, key); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "keyValueRepository.Delete").Str("key", key).Msg("failed to delete key")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}
