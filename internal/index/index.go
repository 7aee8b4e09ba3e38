// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package index persists the per-vault FileIndexStore.
//
// The load and save policy is implemented once in [Store]; where the bytes
// live is decided by a [Backend]. The desktop client keeps a JSON file inside
// the vault ([NewFileBackend]); key-value platforms keep it under
// "moryflow:file-index:<vaultPath>" ([NewKVBackend]).
package index

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/models"
)

// ErrNotFound is returned by a Backend when nothing is stored for a vault.
var ErrNotFound = errors.New("file index not found")

// Backend reads and writes the serialized index of a vault.
type Backend interface {
	Read(ctx context.Context, vaultPath string) ([]byte, error)
	Write(ctx context.Context, vaultPath string, data []byte) error
	Delete(ctx context.Context, vaultPath string) error
}

// Store loads and saves FileIndexStores through a Backend.
type Store struct {
	backend Backend
	logger  *logger.Logger
}

// New returns a Store over backend.
func New(backend Backend, log *logger.Logger) *Store {
	return &Store{backend: backend, logger: log}
}

// Load returns the index of vaultPath. Missing data, unreadable data, a
// version other than models.FileIndexVersion and a "files" member that is
// absent or not an array all yield an empty store. Load never fails and never
// migrates older layouts.
func (s *Store) Load(ctx context.Context, vaultPath string) models.FileIndexStore {
	log := s.logger.WithVault(vaultPath)

	data, err := s.backend.Read(ctx, vaultPath)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Debug().Msg("no file index yet, starting empty")
		} else {
			log.Warn().Err(err).Msg("failed to read file index, starting empty")
		}
		return models.NewFileIndexStore()
	}

	store, err := decode(data)
	if err != nil {
		log.Warn().Err(err).Msg("discarding file index")
		return models.NewFileIndexStore()
	}

	return store
}

// Save persists files for vaultPath, always stamped with
// models.FileIndexVersion.
func (s *Store) Save(ctx context.Context, vaultPath string, files []models.FileEntry) error {
	if files == nil {
		files = []models.FileEntry{}
	}
	data, err := json.MarshalIndent(models.FileIndexStore{
		Version: models.FileIndexVersion,
		Files:   files,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode file index: %w", err)
	}

	if err = s.backend.Write(ctx, vaultPath, data); err != nil {
		return fmt.Errorf("write file index: %w", err)
	}
	return nil
}

// Reset drops the persisted index so the next Load starts empty.
func (s *Store) Reset(ctx context.Context, vaultPath string) error {
	if err := s.backend.Delete(ctx, vaultPath); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("reset file index: %w", err)
	}
	s.logger.WithVault(vaultPath).Warn().Msg("file index reset")
	return nil
}

var (
	errVersionMismatch = errors.New("unsupported file index version")
	errFilesNotArray   = errors.New("file index has no files array")
)

func decode(data []byte) (models.FileIndexStore, error) {
	var raw struct {
		Version *int            `json:"version"`
		Files   json.RawMessage `json:"files"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return models.FileIndexStore{}, fmt.Errorf("parse file index: %w", err)
	}

	if raw.Version == nil || *raw.Version != models.FileIndexVersion {
		return models.FileIndexStore{}, errVersionMismatch
	}

	trimmed := bytes.TrimSpace(raw.Files)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return models.FileIndexStore{}, errFilesNotArray
	}

	var files []models.FileEntry
	if err := json.Unmarshal(trimmed, &files); err != nil {
		return models.FileIndexStore{}, fmt.Errorf("parse file entries: %w", err)
	}

	out := models.NewFileIndexStore()
	for _, f := range files {
		if f.Path == "" {
			continue
		}
		if f.VectorClock == nil {
			f.VectorClock = models.NewVectorClock()
		}
		out.Files = append(out.Files, f)
	}
	return out, nil
}
