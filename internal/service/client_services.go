package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-vault-sync/internal/adapter"
	"github.com/MKhiriev/go-vault-sync/internal/config"
	"github.com/MKhiriev/go-vault-sync/internal/index"
	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/store"
	"github.com/MKhiriev/go-vault-sync/internal/utils"
	"github.com/MKhiriev/go-vault-sync/internal/vault"
)

// DeviceIDKey is the key-value key holding the generated device ID.
const DeviceIDKey = "moryflow:device-id"

type ClientServices struct {
	VaultPath string
	DeviceID  string

	Status  *StatusBroadcaster
	Engine  ClientSyncEngine
	Binding ClientBindingService
	SyncJob ClientSyncJob
}

// NewClientServices builds the sync services of the desktop client for the
// vault configured in cfg.
func NewClientServices(
	ctx context.Context,
	cfg *config.ClientConfig,
	storages *store.ClientStorages,
	serverAdapter adapter.ServerAdapter,
	resolver ConflictResolver,
	log *logger.Logger,
) (*ClientServices, error) {
	deviceID, err := ResolveDeviceID(ctx, cfg.App.DeviceID, storages.KeyValue)
	if err != nil {
		return nil, err
	}

	storage := vault.NewOSStorage(cfg.Vault.Path)

	var backend index.Backend
	switch cfg.Vault.IndexBackend {
	case config.IndexBackendKV:
		backend = index.NewKVBackend(storages.KeyValue)
	default:
		backend = index.NewFileBackend(nil)
	}
	idx := index.New(backend, log)

	status := NewStatusBroadcaster(log)
	engine := NewSyncEngine(SyncEngineParams{
		DeviceID: deviceID,
		Storage:  storage,
		Index:    idx,
		Locker:   index.NewLocker(),
		Adapter:  serverAdapter,
		Status:   status,
		Parallel: cfg.Workers.MaxParallelTransfers,
		Logger:   log,
	})

	return &ClientServices{
		VaultPath: storage.Root(),
		DeviceID:  deviceID,
		Status:    status,
		Engine:    engine,
		Binding:   NewClientBindingService(storages.BindingRepository, serverAdapter, resolver, idx, deviceID, cfg.Workers.ConflictTimeout, log),
		SyncJob:   NewClientSyncJob(engine, log),
	}, nil
}

// ResolveDeviceID returns configured when set. Otherwise it returns the ID
// stored in kv, generating and storing one on first use.
func ResolveDeviceID(ctx context.Context, configured string, kv store.KeyValueRepository) (string, error) {
	if configured != "" {
		return configured, nil
	}

	stored, found, err := kv.Get(ctx, DeviceIDKey)
	if err != nil {
		return "", fmt.Errorf("read device id: %w", err)
	}
	if found && len(stored) > 0 {
		return string(stored), nil
	}

	id := utils.NewUUIDGenerator().Generate()
	if err = kv.Put(ctx, DeviceIDKey, []byte(id)); err != nil {
		return "", fmt.Errorf("store device id: %w", err)
	}
	return id, nil
}
