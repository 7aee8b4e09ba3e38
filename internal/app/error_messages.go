// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app holds the user-facing wording shared by the client front ends.
//
// Each sync error code maps to one short sentence that tells the user what
// happened and, where it matters, what to do next. Keeping the wording here
// keeps the status view and the log hints consistent.
package app

import "github.com/MKhiriev/go-vault-sync/models"

const (
	// MsgNetworkError is shown while the server cannot be reached. Sync is
	// retried on the next trigger.
	MsgNetworkError = "Server unreachable, will retry"

	MsgUploadFailed   = "Some files could not be uploaded, will retry"
	MsgDownloadFailed = "Some files could not be downloaded, will retry"
	MsgCommitFailed   = "Server did not confirm the last changes, will retry"

	// MsgQuotaExceeded asks the user to free space. Sync stays paused until
	// the quota allows uploads again.
	MsgQuotaExceeded = "Storage quota exceeded, free up space to resume sync"

	// MsgInvalidState is shown after the local index was discarded. The next
	// cycle rebuilds it from the vault contents.
	MsgInvalidState = "Local sync state was reset, rebuilding"

	MsgVaultNotFound = "Remote vault is gone, local sync state was reset"

	// MsgUnauthorized asks the user to sign in again.
	MsgUnauthorized = "Sign in required"

	MsgSyncInProgress = "Sync already running"

	// MsgUnknown is the fallback for errors without a code.
	MsgUnknown = "Sync failed"
)

var codeMessages = map[models.SyncErrorCode]string{
	models.CodeNetworkError:   MsgNetworkError,
	models.CodeUploadFailed:   MsgUploadFailed,
	models.CodeDownloadFailed: MsgDownloadFailed,
	models.CodeCommitFailed:   MsgCommitFailed,
	models.CodeQuotaExceeded:  MsgQuotaExceeded,
	models.CodeInvalidState:   MsgInvalidState,
	models.CodeVaultNotFound:  MsgVaultNotFound,
	models.CodeUnauthorized:   MsgUnauthorized,
	models.CodeSyncInProgress: MsgSyncInProgress,
}

// MessageFor returns the user-facing sentence for code.
func MessageFor(code models.SyncErrorCode) string {
	if msg, ok := codeMessages[code]; ok {
		return msg
	}
	return MsgUnknown
}
