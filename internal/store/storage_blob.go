package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-vault-sync/internal/logger"
)

// ErrInvalidBlobKey is returned for vault IDs or hashes that are not safe to
// use as path elements.
var ErrInvalidBlobKey = errors.New("invalid blob key")

type fileBlobStorage struct {
	dir    string
	logger *logger.Logger
}

// NewFileBlobStorage stores content under dir/<vaultID>/<hash[:2]>/<hash>.
func NewFileBlobStorage(dir string, log *logger.Logger) (BlobStorage, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create blob dir: %w", err)
	}
	return &fileBlobStorage{dir: dir, logger: log}, nil
}

func (s *fileBlobStorage) path(vaultID, hash string) (string, error) {
	if !isSafeKey(vaultID) || !isHex(hash) || len(hash) < 8 {
		return "", ErrInvalidBlobKey
	}
	return filepath.Join(s.dir, vaultID, hash[:2], hash), nil
}

func (s *fileBlobStorage) Save(ctx context.Context, vaultID, hash string, content []byte) error {
	p, err := s.path(vaultID, hash)
	if err != nil {
		return err
	}
	if _, err = os.Stat(p); err == nil {
		return nil
	}

	if err = os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
		return fmt.Errorf("create blob dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(p), hash+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp blob: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("write blob: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close blob: %w", err)
	}
	if err = os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("commit blob: %w", err)
	}

	logger.FromContext(ctx).Debug().Str("vault_id", vaultID).Str("hash", hash).Int("size", len(content)).Msg("blob stored")
	return nil
}

func (s *fileBlobStorage) Load(_ context.Context, vaultID, hash string) ([]byte, error) {
	p, err := s.path(vaultID, hash)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if os.IsNotExist(err) {
		return nil, ErrBlobNotFound
	}
	return data, err
}

func (s *fileBlobStorage) Size(_ context.Context, vaultID, hash string) (int64, error) {
	p, err := s.path(vaultID, hash)
	if err != nil {
		return 0, err
	}
	info, err := os.Stat(p)
	if os.IsNotExist(err) {
		return 0, ErrBlobNotFound
	}
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func isSafeKey(s string) bool {
	return s != "" && s != "." && s != ".." && !strings.ContainsAny(s, `/\`)
}

func isHex(s string) bool {
	for _, c := range s {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			return false
		}
	}
	return s != ""
}
