package index

import (
	"context"

	"github.com/MKhiriev/go-vault-sync/internal/vault"
	"github.com/MKhiriev/go-vault-sync/models"
)

// StorageFactory opens the storage rooted at a vault path.
type StorageFactory func(vaultPath string) vault.Storage

type fileBackend struct {
	open StorageFactory
}

// NewFileBackend stores the index as JSON at models.FileIndexStorePath inside
// the vault. A nil factory uses the local file system.
func NewFileBackend(open StorageFactory) Backend {
	if open == nil {
		open = vault.NewOSStorage
	}
	return &fileBackend{open: open}
}

func (b *fileBackend) Read(_ context.Context, vaultPath string) ([]byte, error) {
	data, err := b.open(vaultPath).ReadFile(models.FileIndexStorePath)
	if vault.IsNotExist(err) {
		return nil, ErrNotFound
	}
	return data, err
}

func (b *fileBackend) Write(_ context.Context, vaultPath string, data []byte) error {
	return b.open(vaultPath).WriteFile(models.FileIndexStorePath, data)
}

func (b *fileBackend) Delete(_ context.Context, vaultPath string) error {
	err := b.open(vaultPath).Remove(models.FileIndexStorePath)
	if vault.IsNotExist(err) {
		return ErrNotFound
	}
	return err
}
