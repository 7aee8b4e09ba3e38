package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/store"
	"github.com/MKhiriev/go-vault-sync/models"
)

type vaultService struct {
	vaultRepository store.VaultRepository

	logger *logger.Logger
}

func NewVaultService(vaultRepository store.VaultRepository, logger *logger.Logger) VaultService {
	return &vaultService{vaultRepository: vaultRepository, logger: logger}
}

func (v *vaultService) CreateVault(ctx context.Context, userID, name string) (models.Vault, error) {
	name = strings.TrimSpace(name)
	if userID == "" || name == "" {
		return models.Vault{}, ErrInvalidDataProvided
	}

	vault, err := v.vaultRepository.FindOrCreateVault(ctx, userID, name)
	if err != nil {
		return models.Vault{}, fmt.Errorf("find or create vault: %w", err)
	}
	return vault, nil
}

// GetVault loads the vault and checks that userID owns it.
func (v *vaultService) GetVault(ctx context.Context, userID, vaultID string) (models.Vault, error) {
	vault, err := v.vaultRepository.GetVault(ctx, vaultID)
	if err != nil {
		return models.Vault{}, err
	}
	if vault.OwnerID != userID {
		logger.FromContext(ctx).Warn().
			Str("vault_id", vaultID).
			Str("user_id", userID).
			Msg("access to foreign vault denied")
		return models.Vault{}, ErrVaultAccessDenied
	}
	return vault, nil
}
