// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SyncActionKind tells the client what to do with one path.
type SyncActionKind string

const (
	// ActionUpload sends local content and metadata to the server.
	ActionUpload SyncActionKind = "upload"

	// ActionDownload fetches remote content and writes it locally.
	ActionDownload SyncActionKind = "download"

	// ActionConflict marks concurrent edits. It is never resolved
	// automatically.
	ActionConflict SyncActionKind = "conflict"

	// ActionNoop means both sides already agree.
	ActionNoop SyncActionKind = "noop"

	// ActionDelete removes the local file because the remote copy was
	// deleted after the local version.
	ActionDelete SyncActionKind = "delete"

	// ActionDeleteRemote confirms a local deletion on the server.
	ActionDeleteRemote SyncActionKind = "delete-remote"
)

// FileSummary is the part of a FileEntry the client sends in a diff request.
type FileSummary struct {
	Path        string      `json:"path"`
	Hash        string      `json:"hash"`
	VectorClock VectorClock `json:"vectorClock"`
	Deleted     bool        `json:"deleted,omitempty"`
}

// SyncActionDTO is one per-path instruction of a diff response.
// RemoteEntry is set whenever the server holds an entry for the path.
type SyncActionDTO struct {
	Path        string         `json:"path"`
	Kind        SyncActionKind `json:"kind"`
	RemoteEntry *FileEntry     `json:"remoteEntry,omitempty"`
}

// SyncDiffRequest carries the client's view of the vault.
type SyncDiffRequest struct {
	VaultID  string        `json:"vaultId"`
	DeviceID string        `json:"deviceId,omitempty"`
	Files    []FileSummary `json:"files"`
}

// SyncDiffResponse lists the actions the client must perform.
type SyncDiffResponse struct {
	Actions []SyncActionDTO `json:"actions"`
}

// CompletedFileDTO reports one successfully transferred file together with the
// hash and clock the client now holds for it.
type CompletedFileDTO struct {
	Path        string      `json:"path"`
	Hash        string      `json:"hash"`
	VectorClock VectorClock `json:"vectorClock"`
	Size        *int64      `json:"size,omitempty"`
	Deleted     bool        `json:"deleted,omitempty"`
}

// SyncCommitRequest finalizes the transfers of one sync cycle.
type SyncCommitRequest struct {
	VaultID   string             `json:"vaultId"`
	DeviceID  string             `json:"deviceId,omitempty"`
	Completed []CompletedFileDTO `json:"completed"`
}

// SyncCommitResponse lists the paths the server has recorded.
type SyncCommitResponse struct {
	Acknowledged []string `json:"acknowledged"`
}

// FileUploadRequest transfers the content of one file. Content is encoded as
// base64 on the wire by encoding/json.
type FileUploadRequest struct {
	VaultID     string      `json:"vaultId"`
	Path        string      `json:"path"`
	Hash        string      `json:"hash"`
	VectorClock VectorClock `json:"vectorClock"`
	Content     []byte      `json:"content"`
}

// FileUploadResponse confirms that the content for Hash is staged.
type FileUploadResponse struct {
	Path string `json:"path"`
	Hash string `json:"hash"`
	Size int64  `json:"size"`
}

// FileDownloadResponse carries the remote entry and its content.
type FileDownloadResponse struct {
	Entry   FileEntry `json:"entry"`
	Content []byte    `json:"content"`
}

// SyncState is the state of the client sync engine.
type SyncState string

const (
	StateIdle            SyncState = "idle"
	StateScanning        SyncState = "scanning"
	StateDiffing         SyncState = "diffing"
	StateExecuting       SyncState = "executing"
	StateCommitting      SyncState = "committing"
	StateError           SyncState = "error"
	StateConflictPending SyncState = "conflict-pending"
	StateOffline         SyncState = "offline"
)

// Busy reports whether a cycle is in flight.
func (s SyncState) Busy() bool {
	switch s {
	case StateScanning, StateDiffing, StateExecuting, StateCommitting:
		return true
	default:
		return false
	}
}

// ConflictResolution is the explicit choice for a path in conflict.
type ConflictResolution string

const (
	// KeepLocal overwrites the remote copy with the local one.
	KeepLocal ConflictResolution = "keep-local"

	// KeepRemote overwrites the local copy with the remote one.
	KeepRemote ConflictResolution = "keep-remote"

	// KeepBoth stores the remote copy next to the local file and
	// uploads the local one, leaving the merge to the user.
	KeepBoth ConflictResolution = "keep-both"
)

// FailedAction is a per-path failure that is retried on the next cycle.
type FailedAction struct {
	Path string         `json:"path"`
	Kind SyncActionKind `json:"kind"`
	Code SyncErrorCode  `json:"code"`
}

// SyncErrorInfo is the error part of a status snapshot.
type SyncErrorInfo struct {
	Code    SyncErrorCode `json:"code"`
	Message string        `json:"message"`
}

// SyncStatusSnapshot is broadcast to observers after every state change.
type SyncStatusSnapshot struct {
	VaultPath   string         `json:"vaultPath"`
	VaultID     string         `json:"vaultId,omitempty"`
	State       SyncState      `json:"state"`
	Badge       string         `json:"badge,omitempty"`
	LastSyncAt  *time.Time     `json:"lastSyncAt,omitempty"`
	Pending     int            `json:"pending"`
	Uploaded    int            `json:"uploaded"`
	Downloaded  int            `json:"downloaded"`
	Deleted     int            `json:"deleted"`
	Conflicts   []string       `json:"conflicts,omitempty"`
	Failed      []FailedAction `json:"failed,omitempty"`
	Error       *SyncErrorInfo `json:"error,omitempty"`
	RecentFiles []string       `json:"recentFiles,omitempty"`
}

// Status badges shown by the UI.
const (
	BadgeSyncing      = "syncing"
	BadgePaused       = "sync paused"
	BadgeOffline      = "offline"
	BadgeQuota        = "quota exceeded"
	BadgeSignIn       = "sign in required"
	BadgeConflicts    = "conflicts"
	BadgeRetryPending = "retry pending"
)

// BadgeFor derives the UI badge from the snapshot.
func (s SyncStatusSnapshot) BadgeFor() string {
	if s.Error != nil {
		switch s.Error.Code {
		case CodeQuotaExceeded:
			return BadgeQuota
		case CodeUnauthorized:
			return BadgeSignIn
		default:
			return BadgePaused
		}
	}
	switch {
	case s.State == StateOffline:
		return BadgeOffline
	case s.State.Busy():
		return BadgeSyncing
	case len(s.Conflicts) > 0 || s.State == StateConflictPending:
		return BadgeConflicts
	case len(s.Failed) > 0:
		return BadgeRetryPending
	default:
		return ""
	}
}
