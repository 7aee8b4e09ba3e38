package store

import "errors"

// Sentinel errors returned by repositories. Callers match them with
// [errors.Is].
var (
	// ErrVaultNotFound is returned when no vault matches the lookup.
	ErrVaultNotFound = errors.New("vault was not found")

	// ErrFileNotFound is returned when a vault holds no entry for a path.
	ErrFileNotFound = errors.New("file was not found")

	// ErrBlobNotFound is returned when no content is stored for a hash.
	ErrBlobNotFound = errors.New("file content was not found")

	// ErrBindingNotFound is returned when a local path has no binding.
	ErrBindingNotFound = errors.New("vault binding was not found")

	// ErrTransient marks a database failure that may succeed when retried
	// (connection loss, serialization failure, deadlock).
	ErrTransient = errors.New("transient database error")
)

// Low-level database operation errors.
var (
	ErrBuildingSQLQuery     = errors.New("error building sql query")
	ErrExecutingQuery       = errors.New("error executing sql query")
	ErrBeginningTransaction = errors.New("failed to begin transaction")
	ErrCommitingTransaction = errors.New("failed to commit transaction")
	ErrExecutingStatement   = errors.New("failed to execute statement")
	ErrScanningRow          = errors.New("failed to scan row")
	ErrScanningRows         = errors.New("failed to scan rows")
)
