package models

import (
	"errors"
	"fmt"
)

// SyncErrorCode classifies sync failures for retry and reporting decisions.
type SyncErrorCode string

const (
	CodeNetworkError   SyncErrorCode = "NETWORK_ERROR"
	CodeUploadFailed   SyncErrorCode = "UPLOAD_FAILED"
	CodeDownloadFailed SyncErrorCode = "DOWNLOAD_FAILED"
	CodeCommitFailed   SyncErrorCode = "COMMIT_FAILED"
	CodeQuotaExceeded  SyncErrorCode = "QUOTA_EXCEEDED"
	CodeInvalidState   SyncErrorCode = "INVALID_STATE"
	CodeVaultNotFound  SyncErrorCode = "VAULT_NOT_FOUND"
	CodeUnauthorized   SyncErrorCode = "UNAUTHORIZED"
	CodeSyncInProgress SyncErrorCode = "SYNC_IN_PROGRESS"
)

// Sentinel errors, one per code. A *SyncError matches the sentinel of its
// code with errors.Is.
var (
	ErrNetwork        = errors.New("network error")
	ErrUploadFailed   = errors.New("upload failed")
	ErrDownloadFailed = errors.New("download failed")
	ErrCommitFailed   = errors.New("commit failed")
	ErrQuotaExceeded  = errors.New("quota exceeded")
	ErrInvalidState   = errors.New("invalid sync state")
	ErrVaultNotFound  = errors.New("vault not found")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrSyncInProgress = errors.New("sync already in progress")
)

var sentinelByCode = map[SyncErrorCode]error{
	CodeNetworkError:   ErrNetwork,
	CodeUploadFailed:   ErrUploadFailed,
	CodeDownloadFailed: ErrDownloadFailed,
	CodeCommitFailed:   ErrCommitFailed,
	CodeQuotaExceeded:  ErrQuotaExceeded,
	CodeInvalidState:   ErrInvalidState,
	CodeVaultNotFound:  ErrVaultNotFound,
	CodeUnauthorized:   ErrUnauthorized,
	CodeSyncInProgress: ErrSyncInProgress,
}

// SyncError is a classified failure, optionally bound to a path.
type SyncError struct {
	Code SyncErrorCode
	Path string
	Err  error
}

// NewSyncError wraps err with code. Path may be empty.
func NewSyncError(code SyncErrorCode, path string, err error) *SyncError {
	return &SyncError{Code: code, Path: path, Err: err}
}

func (e *SyncError) Error() string {
	switch {
	case e.Path != "" && e.Err != nil:
		return fmt.Sprintf("%s %s: %v", e.Code, e.Path, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	case e.Path != "":
		return fmt.Sprintf("%s %s", e.Code, e.Path)
	default:
		return string(e.Code)
	}
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel error of the code.
func (e *SyncError) Is(target error) bool {
	sentinel, ok := sentinelByCode[e.Code]
	return ok && sentinel == target
}

// CodeOf returns the sync code carried by err. Errors without a code that wrap
// one of the sentinels yield that sentinel's code; anything else is "".
func CodeOf(err error) SyncErrorCode {
	if err == nil {
		return ""
	}
	var syncErr *SyncError
	if errors.As(err, &syncErr) {
		return syncErr.Code
	}
	for code, sentinel := range sentinelByCode {
		if errors.Is(err, sentinel) {
			return code
		}
	}
	return ""
}

// IsRetryable reports whether the failure is recovered by retrying the path
// on the next cycle.
func IsRetryable(err error) bool {
	switch CodeOf(err) {
	case CodeNetworkError, CodeUploadFailed, CodeDownloadFailed:
		return true
	default:
		return false
	}
}

// RequiresUserAction reports whether the failure cannot be recovered without
// the user buying storage or signing in again.
func RequiresUserAction(err error) bool {
	switch CodeOf(err) {
	case CodeQuotaExceeded, CodeUnauthorized:
		return true
	default:
		return false
	}
}

// RequiresReset reports whether the local index must be discarded and the
// vault re-diffed from scratch.
func RequiresReset(err error) bool {
	switch CodeOf(err) {
	case CodeInvalidState, CodeVaultNotFound:
		return true
	default:
		return false
	}
}
