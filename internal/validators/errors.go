package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidVaultID   = errors.New("invalid vault ID")
	ErrInvalidVaultName = errors.New("invalid vault name")
	ErrInvalidPath      = errors.New("invalid file path")
	ErrDuplicatePath    = errors.New("duplicate file path")
	ErrInvalidHash      = errors.New("invalid hash")
	ErrInvalidClock     = errors.New("invalid vector clock")
	ErrInvalidSize      = errors.New("invalid size")
	ErrEmptyCompleted   = errors.New("completed list cannot be empty")
	ErrHashMismatch     = errors.New("content does not match hash")
)
