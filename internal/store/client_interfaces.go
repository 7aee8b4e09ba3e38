package store

import (
	"context"

	"github.com/MKhiriev/go-vault-sync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// BindingRepository persists vault bindings of the local device.
type BindingRepository interface {
	GetBinding(ctx context.Context, localPath string) (models.VaultBinding, error)
	SaveBinding(ctx context.Context, binding models.VaultBinding) error
	DeleteBinding(ctx context.Context, localPath string) error
}

// KeyValueRepository is a string-keyed blob store in the local database.
type KeyValueRepository interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
