// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"strings"
)

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.SyncInterval <= 0 || cfg.Workers.DebounceDelay <= 0 ||
		cfg.Workers.ConflictTimeout <= 0 || cfg.Workers.MaxParallelTransfers < 1 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.Vault.Path == "" {
		return ErrInvalidVaultConfigs
	}
	if cfg.Vault.IndexBackend != IndexBackendFile && cfg.Vault.IndexBackend != IndexBackendKV {
		return ErrInvalidVaultConfigs
	}

	return nil
}

func (cfg *ServerConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || cfg.Storage.Files.BinaryDataDir == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.App.TokenSignKey == "" || cfg.App.VaultQuotaBytes < 0 {
		return ErrInvalidAppConfigs
	}

	return nil
}
