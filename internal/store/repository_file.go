package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/models"
)

type fileRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewFileRepository returns the PostgreSQL [FileRepository].
func NewFileRepository(db *DB, log *logger.Logger) FileRepository {
	log.Debug().Msg("creating file repository")
	return &fileRepository{db: db, logger: log}
}

func (r *fileRepository) ListFiles(ctx context.Context, vaultID string, paths ...string) ([]models.FileEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListFilesQuery(vaultID, paths)
	if err != nil {
		log.Err(err).Str("func", "fileRepository.ListFiles").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "fileRepository.ListFiles").Str("vault_id", vaultID).Msg("failed to query vault files")
		return nil, r.db.wrap(ErrExecutingQuery, err)
	}
	defer rows.Close()

	files := make([]models.FileEntry, 0, 64)
	for rows.Next() {
		entry, scanErr := scanFileEntry(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "fileRepository.ListFiles").Str("vault_id", vaultID).Msg("failed to scan vault file")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		files = append(files, entry)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "fileRepository.ListFiles").Str("vault_id", vaultID).Msg("error during rows iteration")
		return nil, r.db.wrap(ErrScanningRows, err)
	}

	return files, nil
}

func (r *fileRepository) GetFile(ctx context.Context, vaultID, path string) (models.FileEntry, error) {
	files, err := r.ListFiles(ctx, vaultID, path)
	if err != nil {
		return models.FileEntry{}, err
	}
	if len(files) == 0 {
		return models.FileEntry{}, ErrFileNotFound
	}
	return files[0], nil
}

func (r *fileRepository) UpsertFiles(ctx context.Context, vaultID string, entries []models.FileEntry) error {
	log := logger.FromContext(ctx)
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "fileRepository.UpsertFiles").Msg("failed to begin transaction")
		return r.db.wrap(ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	for _, e := range entries {
		clock, err := json.Marshal(e.VectorClock)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		query, args, err := buildUpsertFileQuery(vaultID, e.Path, e.Hash, clock, e.Mtime, e.Size, e.Deleted)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			log.Err(err).
				Str("func", "fileRepository.UpsertFiles").
				Str("vault_id", vaultID).
				Str("path", e.Path).
				Msg("failed to upsert vault file")
			return r.db.wrap(ErrExecutingStatement, err)
		}
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "fileRepository.UpsertFiles").Msg("failed to commit transaction")
		return r.db.wrap(ErrCommitingTransaction, err)
	}

	return nil
}

func scanFileEntry(rows *sql.Rows) (models.FileEntry, error) {
	var (
		e     models.FileEntry
		clock []byte
		size  sql.NullInt64
	)
	if err := rows.Scan(&e.Path, &e.Hash, &clock, &e.Mtime, &size, &e.Deleted); err != nil {
		return models.FileEntry{}, err
	}

	e.VectorClock = models.NewVectorClock()
	if len(clock) > 0 {
		if err := json.Unmarshal(clock, &e.VectorClock); err != nil {
			return models.FileEntry{}, errors.Join(errors.New("invalid vector clock"), err)
		}
	}
	if size.Valid {
		s := size.Int64
		e.Size = &s
	}
	return e, nil
}
