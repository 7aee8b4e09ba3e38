package store

import (
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-vault-sync/internal/logger"
)

// ErrorClassificator decides whether a failed database call may be retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// DB is a database handle shared by the repositories of one process.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	migrate            func(*sql.DB) error
	logger             *logger.Logger
}

// Migrate applies the schema of the database flavour the handle was opened
// for.
func (db *DB) Migrate() error {
	if db.migrate == nil {
		return nil
	}
	return db.migrate(db.DB)
}

// wrap decorates err with cause and, when the classifier deems it
// retryable, with [ErrTransient].
func (db *DB) wrap(cause, err error) error {
	if db.errorClassificator != nil && db.errorClassificator.Classify(err) == Retryable {
		return fmt.Errorf("%w: %w: %w", ErrTransient, cause, err)
	}
	return fmt.Errorf("%w: %w", cause, err)
}
