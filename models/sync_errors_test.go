package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSyncError_Classification(t *testing.T) {
	tests := []struct {
		code       SyncErrorCode
		retryable  bool
		userAction bool
		reset      bool
	}{
		{CodeNetworkError, true, false, false},
		{CodeUploadFailed, true, false, false},
		{CodeDownloadFailed, true, false, false},
		{CodeCommitFailed, false, false, false},
		{CodeQuotaExceeded, false, true, false},
		{CodeUnauthorized, false, true, false},
		{CodeInvalidState, false, false, true},
		{CodeVaultNotFound, false, false, true},
		{CodeSyncInProgress, false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			err := fmt.Errorf("cycle: %w", NewSyncError(tt.code, "notes/a.md", errors.New("boom")))

			assert.Equal(t, tt.code, CodeOf(err))
			assert.Equal(t, tt.retryable, IsRetryable(err))
			assert.Equal(t, tt.userAction, RequiresUserAction(err))
			assert.Equal(t, tt.reset, RequiresReset(err))
			assert.ErrorIs(t, err, sentinelByCode[tt.code])
		})
	}
}

func TestCodeOf_Sentinel(t *testing.T) {
	err := fmt.Errorf("diff: %w", ErrQuotaExceeded)
	assert.Equal(t, CodeQuotaExceeded, CodeOf(err))
	assert.Equal(t, SyncErrorCode(""), CodeOf(errors.New("other")))
	assert.Equal(t, SyncErrorCode(""), CodeOf(nil))
}

func TestSyncError_Error(t *testing.T) {
	assert.Equal(t, "UPLOAD_FAILED a.md: eof", NewSyncError(CodeUploadFailed, "a.md", errors.New("eof")).Error())
	assert.Equal(t, "UNAUTHORIZED", NewSyncError(CodeUnauthorized, "", nil).Error())
}

func TestSyncStatusSnapshot_BadgeFor(t *testing.T) {
	tests := []struct {
		name string
		snap SyncStatusSnapshot
		want string
	}{
		{"idle", SyncStatusSnapshot{State: StateIdle}, ""},
		{"busy", SyncStatusSnapshot{State: StateExecuting}, BadgeSyncing},
		{"offline", SyncStatusSnapshot{State: StateOffline}, BadgeOffline},
		{"quota", SyncStatusSnapshot{State: StateError, Error: &SyncErrorInfo{Code: CodeQuotaExceeded}}, BadgeQuota},
		{"auth", SyncStatusSnapshot{State: StateError, Error: &SyncErrorInfo{Code: CodeUnauthorized}}, BadgeSignIn},
		{"other error", SyncStatusSnapshot{State: StateError, Error: &SyncErrorInfo{Code: CodeCommitFailed}}, BadgePaused},
		{"conflicts", SyncStatusSnapshot{State: StateIdle, Conflicts: []string{"a.md"}}, BadgeConflicts},
		{"failed", SyncStatusSnapshot{State: StateIdle, Failed: []FailedAction{{Path: "a.md"}}}, BadgeRetryPending},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.snap.BadgeFor())
		})
	}
}
