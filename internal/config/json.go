package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type jsonConfig struct {
	App struct {
		TokenSignKey    string   `json:"token_sign_key"`
		TokenIssuer     string   `json:"token_issuer"`
		TokenDuration   Duration `json:"token_duration"`
		HashKey         string   `json:"hash_key"`
		Version         string   `json:"version"`
		DeviceID        string   `json:"device_id"`
		AuthToken       string   `json:"auth_token"`
		VaultQuotaBytes int64    `json:"vault_quota_bytes"`
	} `json:"app"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db"`
		Files struct {
			BinaryDataDir string `json:"binary_data_dir"`
		} `json:"files"`
	} `json:"storage"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter"`

	Workers struct {
		SyncInterval         Duration `json:"sync_interval"`
		DebounceDelay        Duration `json:"debounce_delay"`
		ConflictTimeout      Duration `json:"conflict_timeout"`
		MaxParallelTransfers int      `json:"max_parallel_transfers"`
	} `json:"workers"`

	Vault struct {
		Path         string `json:"path"`
		Name         string `json:"name"`
		IndexBackend string `json:"index_backend"`
	} `json:"vault"`

	Log struct {
		File       string `json:"file"`
		MaxSizeMB  int    `json:"max_size_mb"`
		MaxBackups int    `json:"max_backups"`
	} `json:"log"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var j jsonConfig
	if err := json.NewDecoder(jsonFile).Decode(&j); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:    j.App.TokenSignKey,
			TokenIssuer:     j.App.TokenIssuer,
			TokenDuration:   time.Duration(j.App.TokenDuration),
			HashKey:         j.App.HashKey,
			Version:         j.App.Version,
			DeviceID:        j.App.DeviceID,
			AuthToken:       j.App.AuthToken,
			VaultQuotaBytes: j.App.VaultQuotaBytes,
		},
		Storage: Storage{
			DB:    DB{DSN: j.Storage.DB.DSN},
			Files: Files{BinaryDataDir: j.Storage.Files.BinaryDataDir},
		},
		Server: Server{
			HTTPAddress:    j.Server.HTTPAddress,
			RequestTimeout: time.Duration(j.Server.RequestTimeout),
		},
		Adapter: Adapter{
			HTTPAddress:    j.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(j.Adapter.RequestTimeout),
		},
		Workers: Workers{
			SyncInterval:         time.Duration(j.Workers.SyncInterval),
			DebounceDelay:        time.Duration(j.Workers.DebounceDelay),
			ConflictTimeout:      time.Duration(j.Workers.ConflictTimeout),
			MaxParallelTransfers: j.Workers.MaxParallelTransfers,
		},
		Vault: Vault{
			Path:         j.Vault.Path,
			Name:         j.Vault.Name,
			IndexBackend: j.Vault.IndexBackend,
		},
		Log: Log{
			File:       j.Log.File,
			MaxSizeMB:  j.Log.MaxSizeMB,
			MaxBackups: j.Log.MaxBackups,
		},
	}, nil
}

// Duration decodes either a duration string ("30s") or a nanosecond number.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case nil:
		return nil
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
