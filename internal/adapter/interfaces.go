// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter talks to the vault sync server on behalf of the desktop
// client.
//
// [ServerAdapter] hides the transport from the sync engine and the binding
// service. The HTTP implementation ([NewHTTPServerAdapter]) maps every failure
// to a *models.SyncError so callers can branch on the sync error code with
// [models.CodeOf], [models.IsRetryable] and friends.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-vault-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter is the client-side view of the sync API.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to every authenticated
	// request.
	SetToken(token string)

	// Token returns the stored bearer token or "".
	Token() string

	// CurrentUserID returns the "sub" claim of the stored token without
	// verifying it. Returns UNAUTHORIZED when no usable token is set.
	CurrentUserID() (string, error)

	// CreateVault finds or creates the current user's vault named name.
	CreateVault(ctx context.Context, name string) (models.Vault, error)

	// GetVault fetches a vault by ID. Unknown vaults yield VAULT_NOT_FOUND,
	// vaults of other users UNAUTHORIZED.
	GetVault(ctx context.Context, vaultID string) (models.Vault, error)

	// Diff sends the local file summaries and returns the per-path actions.
	Diff(ctx context.Context, req models.SyncDiffRequest) (models.SyncDiffResponse, error)

	// Upload stages the content of one file on the server.
	Upload(ctx context.Context, req models.FileUploadRequest) (models.FileUploadResponse, error)

	// Download fetches the remote entry and content of one file.
	Download(ctx context.Context, vaultID, path string) (models.FileDownloadResponse, error)

	// Commit records the transfers of a cycle and returns the acknowledged
	// paths.
	Commit(ctx context.Context, req models.SyncCommitRequest) (models.SyncCommitResponse, error)

	// Version returns the server build info.
	Version(ctx context.Context) (models.VersionResponse, error)
}
