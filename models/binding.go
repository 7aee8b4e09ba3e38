// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// VaultBinding associates a local vault directory with a remote vault and the
// account that owned it when the binding was made. One local path is bound
// to at most one remote vault at a time.
type VaultBinding struct {
	LocalPath   string    `json:"localPath"`
	VaultID     string    `json:"vaultId"`
	VaultName   string    `json:"vaultName"`
	BoundUserID string    `json:"boundUserId"`
	DeviceID    string    `json:"deviceId"`
	BoundAt     time.Time `json:"boundAt"`
}

// BindingConflictChoice is the user's answer to a binding conflict.
type BindingConflictChoice string

const (
	// SyncToCurrent rebinds the local path to the current user's vault.
	SyncToCurrent BindingConflictChoice = "sync_to_current"

	// StayOffline keeps the binding and suspends sync for the vault.
	StayOffline BindingConflictChoice = "stay_offline"
)

// Valid reports whether c is one of the known choices.
func (c BindingConflictChoice) Valid() bool {
	return c == SyncToCurrent || c == StayOffline
}

// BindingConflictRequest is raised when the authenticated user differs from
// the user recorded in the vault binding.
type BindingConflictRequest struct {
	RequestID     string `json:"requestId"`
	VaultPath     string `json:"vaultPath"`
	VaultName     string `json:"vaultName"`
	BoundUserID   string `json:"boundUserId"`
	CurrentUserID string `json:"currentUserId"`
}

// BindingConflictResponse answers a [BindingConflictRequest] with the same
// RequestID.
type BindingConflictResponse struct {
	RequestID string                `json:"requestId"`
	Choice    BindingConflictChoice `json:"choice"`
}

// Vault is a remote vault owned by a user.
type Vault struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"ownerId"`
	UsedBytes int64     `json:"usedBytes"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateVaultRequest asks the server for the caller's vault with Name,
// creating it when it does not exist yet.
type CreateVaultRequest struct {
	Name string `json:"name"`
}
