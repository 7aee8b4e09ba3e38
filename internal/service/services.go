package service

import (
	"github.com/MKhiriev/go-vault-sync/internal/config"
	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/store"
	"github.com/MKhiriev/go-vault-sync/internal/validators"
)

// Services groups the server-side services used by the HTTP handlers.
type Services struct {
	AuthService  AuthService
	VaultService VaultService
	SyncService  SyncService
	FileService  FileService
}

func NewServices(storages *store.Storages, cfg config.ServerConfig, logger *logger.Logger) *Services {
	validator := validators.NewSyncValidator()
	vaults := NewVaultService(storages.VaultRepository, logger)

	syncSvc := NewSyncService(vaults, storages.FileRepository, storages.BlobStorage, logger)
	fileSvc := NewFileService(vaults, storages.FileRepository, storages.BlobStorage, storages.VaultRepository, cfg.App.VaultQuotaBytes, logger)

	return &Services{
		AuthService:  NewAuthService(cfg.App, logger),
		VaultService: vaults,
		SyncService:  NewSyncValidationService(validator).Wrap(syncSvc),
		FileService:  NewFileValidationService(validator).Wrap(fileSvc),
	}
}
