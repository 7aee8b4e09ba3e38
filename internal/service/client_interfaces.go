package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-vault-sync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// ClientSyncEngine runs sync cycles for one vault.
type ClientSyncEngine interface {
	// SyncOnce runs one full cycle: scan, diff, execute, commit, broadcast.
	// A call while another cycle is running returns SYNC_IN_PROGRESS
	// immediately.
	SyncOnce(ctx context.Context) (models.SyncStatusSnapshot, error)

	// ResolveConflict applies an explicit user choice to a path reported in
	// the last snapshot's Conflicts.
	ResolveConflict(ctx context.Context, path string, resolution models.ConflictResolution) error

	// Bind points the engine at a remote vault and leaves the offline state.
	Bind(binding models.VaultBinding)

	// GoOffline stops syncing until Bind is called again.
	GoOffline()

	// Status returns the last published snapshot.
	Status() models.SyncStatusSnapshot
}

// ClientBindingService keeps the local-path to remote-vault binding in line
// with the signed-in account.
type ClientBindingService interface {
	// Ensure returns the binding to sync with. It returns ErrEngineOffline
	// when the user chose to stay offline after a binding conflict.
	Ensure(ctx context.Context, localPath, vaultName string) (models.VaultBinding, error)
}

// ConflictResolver asks the user how to handle a vault bound to another
// account. Implementations block until the user answers or ctx ends.
type ConflictResolver interface {
	ResolveBindingConflict(ctx context.Context, req models.BindingConflictRequest) (models.BindingConflictChoice, error)
}

// ClientSyncJob triggers sync cycles on a timer and on file changes.
type ClientSyncJob interface {
	// Start runs a cycle every interval and debounce after the last Trigger
	// of a burst. Any previously running job is stopped first.
	Start(ctx context.Context, interval, debounce time.Duration)

	// Trigger requests a debounced cycle.
	Trigger()

	// Stop blocks until the background goroutine has exited.
	Stop()
}
