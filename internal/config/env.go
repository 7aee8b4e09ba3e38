// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from the environment, e.g. VAULT_PATH,
// WORKERS_SYNC_INTERVAL or STORAGE_DB_DATABASE_URI. Names come from the env
// and envPrefix tags of [StructuredConfig].
func parseEnv(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("read config from environment: %w", err)
	}
	return nil
}
