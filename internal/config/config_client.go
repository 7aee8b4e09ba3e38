package config

import (
	"fmt"
	"path/filepath"
	"time"
)

// Client defaults applied when a value is not configured.
const (
	DefaultSyncInterval         = 5 * time.Minute
	DefaultDebounceDelay        = 2 * time.Second
	DefaultConflictTimeout      = 2 * time.Minute
	DefaultMaxParallelTransfers = 4
	DefaultRequestTimeout       = 30 * time.Second
)

// ClientApp holds client identity and integrity settings.
type ClientApp struct {
	HashKey   string
	DeviceID  string
	AuthToken string
	Version   string
}

// ClientAdapter holds the sync server endpoint.
type ClientAdapter struct {
	HTTPAddress    string
	RequestTimeout time.Duration
}

// ClientDB holds the local SQLite database path.
type ClientDB struct {
	DSN string
}

// ClientStorage groups client storage settings.
type ClientStorage struct {
	DB ClientDB
}

// ClientWorkers holds sync scheduling settings.
type ClientWorkers struct {
	SyncInterval         time.Duration
	DebounceDelay        time.Duration
	ConflictTimeout      time.Duration
	MaxParallelTransfers int
}

// ClientVault describes the synced local vault.
type ClientVault struct {
	Path         string
	Name         string
	IndexBackend string
}

// ClientConfig is the configuration view used by the desktop sync client.
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Workers ClientWorkers
	Vault   ClientVault
	Log     Log
}

// GetClientConfig builds the client view from the merged configuration,
// applies defaults and validates it.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	clientCfg := &ClientConfig{
		App: ClientApp{
			HashKey:   cfg.App.HashKey,
			DeviceID:  cfg.App.DeviceID,
			AuthToken: cfg.App.AuthToken,
			Version:   cfg.App.Version,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{DSN: cfg.Storage.DB.DSN},
		},
		Workers: ClientWorkers{
			SyncInterval:         cfg.Workers.SyncInterval,
			DebounceDelay:        cfg.Workers.DebounceDelay,
			ConflictTimeout:      cfg.Workers.ConflictTimeout,
			MaxParallelTransfers: cfg.Workers.MaxParallelTransfers,
		},
		Vault: ClientVault{
			Path:         cfg.Vault.Path,
			Name:         cfg.Vault.Name,
			IndexBackend: cfg.Vault.IndexBackend,
		},
		Log: cfg.Log,
	}
	clientCfg.applyDefaults()

	return clientCfg
}

func (cfg *ClientConfig) applyDefaults() {
	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Workers.SyncInterval == 0 {
		cfg.Workers.SyncInterval = DefaultSyncInterval
	}
	if cfg.Workers.DebounceDelay == 0 {
		cfg.Workers.DebounceDelay = DefaultDebounceDelay
	}
	if cfg.Workers.ConflictTimeout == 0 {
		cfg.Workers.ConflictTimeout = DefaultConflictTimeout
	}
	if cfg.Workers.MaxParallelTransfers == 0 {
		cfg.Workers.MaxParallelTransfers = DefaultMaxParallelTransfers
	}
	if cfg.Vault.IndexBackend == "" {
		cfg.Vault.IndexBackend = IndexBackendFile
	}
	if cfg.Vault.Name == "" && cfg.Vault.Path != "" {
		cfg.Vault.Name = filepath.Base(filepath.Clean(cfg.Vault.Path))
	}
}
