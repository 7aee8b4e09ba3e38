package index

import (
	"context"

	"github.com/MKhiriev/go-vault-sync/models"
)

// KeyValue is a string-keyed blob store. Get reports found=false for
// missing keys.
type KeyValue interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type kvBackend struct {
	kv KeyValue
}

// NewKVBackend stores the index under models.FileIndexKVPrefix + vaultPath.
func NewKVBackend(kv KeyValue) Backend {
	return &kvBackend{kv: kv}
}

// Key returns the key-value storage key of the index of vaultPath.
func Key(vaultPath string) string {
	return models.FileIndexKVPrefix + vaultPath
}

func (b *kvBackend) Read(ctx context.Context, vaultPath string) ([]byte, error) {
	data, found, err := b.kv.Get(ctx, Key(vaultPath))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	return data, nil
}

func (b *kvBackend) Write(ctx context.Context, vaultPath string, data []byte) error {
	return b.kv.Put(ctx, Key(vaultPath), data)
}

func (b *kvBackend) Delete(ctx context.Context, vaultPath string) error {
	return b.kv.Delete(ctx, Key(vaultPath))
}
