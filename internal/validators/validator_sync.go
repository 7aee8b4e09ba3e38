package validators

import (
	"context"
	"fmt"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-vault-sync/internal/vault"
	"github.com/MKhiriev/go-vault-sync/models"
)

const (
	FieldVaultID   = "vault_id"
	FieldVaultName = "vault_name"
	FieldFiles     = "files"
	FieldCompleted = "completed"
	FieldPath      = "path"
	FieldHash      = "hash"
	FieldClock     = "vector_clock"
	FieldContent   = "content"
)

const (
	maxPathLength      = 1024
	maxVaultNameLength = 255
	sha256HexLength    = 64
)

// SyncValidator checks the sync wire DTOs before they reach the service
// layer. Paths must be clean relative forward-slash paths, hashes lowercase
// hex SHA-256, clock counters non-negative.
type SyncValidator struct{}

func NewSyncValidator() Validator {
	return &SyncValidator{}
}

func (v *SyncValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.SyncDiffRequest:
		return v.validateDiffRequest(ctx, value, fields...)
	case *models.SyncDiffRequest:
		return v.validateDiffRequest(ctx, *value, fields...)

	case models.SyncCommitRequest:
		return v.validateCommitRequest(ctx, value, fields...)
	case *models.SyncCommitRequest:
		return v.validateCommitRequest(ctx, *value, fields...)

	case models.FileUploadRequest:
		return v.validateUploadRequest(ctx, value, fields...)
	case *models.FileUploadRequest:
		return v.validateUploadRequest(ctx, *value, fields...)

	case models.CreateVaultRequest:
		return v.validateCreateVaultRequest(value, fields...)
	case *models.CreateVaultRequest:
		return v.validateCreateVaultRequest(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *SyncValidator) validateDiffRequest(_ context.Context, request models.SyncDiffRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldVaultID, FieldFiles}
	}

	for _, f := range fields {
		switch f {
		case FieldVaultID:
			if !validVaultID(request.VaultID) {
				return ErrInvalidVaultID
			}
		case FieldFiles:
			seen := make(map[string]struct{}, len(request.Files))
			for i, file := range request.Files {
				if err := validateSummary(file); err != nil {
					return fmt.Errorf("validation error at index %d: %w", i, err)
				}
				if _, dup := seen[file.Path]; dup {
					return fmt.Errorf("validation error at index %d: %w", i, ErrDuplicatePath)
				}
				seen[file.Path] = struct{}{}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *SyncValidator) validateCommitRequest(_ context.Context, request models.SyncCommitRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldVaultID, FieldCompleted}
	}

	for _, f := range fields {
		switch f {
		case FieldVaultID:
			if !validVaultID(request.VaultID) {
				return ErrInvalidVaultID
			}
		case FieldCompleted:
			if len(request.Completed) == 0 {
				return ErrEmptyCompleted
			}
			seen := make(map[string]struct{}, len(request.Completed))
			for i, c := range request.Completed {
				if err := validateCompleted(c); err != nil {
					return fmt.Errorf("validation error at index %d: %w", i, err)
				}
				if _, dup := seen[c.Path]; dup {
					return fmt.Errorf("validation error at index %d: %w", i, ErrDuplicatePath)
				}
				seen[c.Path] = struct{}{}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *SyncValidator) validateUploadRequest(_ context.Context, request models.FileUploadRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldVaultID, FieldPath, FieldHash, FieldClock, FieldContent}
	}

	for _, f := range fields {
		switch f {
		case FieldVaultID:
			if !validVaultID(request.VaultID) {
				return ErrInvalidVaultID
			}
		case FieldPath:
			if !ValidPath(request.Path) {
				return ErrInvalidPath
			}
		case FieldHash:
			if !ValidHash(request.Hash) {
				return ErrInvalidHash
			}
		case FieldClock:
			if !validClock(request.VectorClock) {
				return ErrInvalidClock
			}
		case FieldContent:
			if vault.ContentHash(request.Content) != request.Hash {
				return ErrHashMismatch
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *SyncValidator) validateCreateVaultRequest(request models.CreateVaultRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldVaultName}
	}

	for _, f := range fields {
		switch f {
		case FieldVaultName:
			name := strings.TrimSpace(request.Name)
			if name == "" || utf8.RuneCountInString(name) > maxVaultNameLength {
				return ErrInvalidVaultName
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func validateSummary(file models.FileSummary) error {
	if !ValidPath(file.Path) {
		return ErrInvalidPath
	}
	// tombstones are sent without a content hash
	if !file.Deleted && !ValidHash(file.Hash) {
		return ErrInvalidHash
	}
	if !validClock(file.VectorClock) {
		return ErrInvalidClock
	}
	return nil
}

func validateCompleted(c models.CompletedFileDTO) error {
	if !ValidPath(c.Path) {
		return ErrInvalidPath
	}
	if !c.Deleted && !ValidHash(c.Hash) {
		return ErrInvalidHash
	}
	if !validClock(c.VectorClock) || c.VectorClock.IsEmpty() {
		return ErrInvalidClock
	}
	if c.Size != nil && *c.Size < 0 {
		return ErrInvalidSize
	}
	return nil
}

// ValidPath reports whether p is a clean relative forward-slash path that
// stays inside the vault.
func ValidPath(p string) bool {
	if p == "" || len(p) > maxPathLength || !utf8.ValidString(p) {
		return false
	}
	if strings.HasPrefix(p, "/") || strings.Contains(p, `\`) || strings.ContainsRune(p, 0) {
		return false
	}
	if path.Clean(p) != p {
		return false
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." || seg == "." {
			return false
		}
	}
	return true
}

// ValidHash reports whether h is a lowercase hex SHA-256 digest.
func ValidHash(h string) bool {
	if len(h) != sha256HexLength {
		return false
	}
	for _, c := range h {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			return false
		}
	}
	return true
}

func validClock(clock models.VectorClock) bool {
	for device, counter := range clock {
		if device == "" || counter < 0 {
			return false
		}
	}
	return true
}

func validVaultID(id string) bool {
	return id != "" && len(id) <= 64 && !strings.ContainsAny(id, `/\. `)
}
