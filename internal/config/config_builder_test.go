package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestBuild_FirstNonZeroWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{App: App{Version: "env"}},
		&StructuredConfig{App: App{Version: "flag", TokenIssuer: "flag-issuer"}},
		&StructuredConfig{Vault: Vault{Path: "/json/vault"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "env", cfg.App.Version)
	assert.Equal(t, "flag-issuer", cfg.App.TokenIssuer)
	assert.Equal(t, "/json/vault", cfg.Vault.Path)
}

func TestWithEnv_ReadsEnvVars(t *testing.T) {
	t.Setenv("APP_DEVICE_ID", "mac")
	t.Setenv("VAULT_PATH", "/home/u/notes")
	t.Setenv("WORKERS_DEBOUNCE_DELAY", "1500ms")
	t.Setenv("WORKERS_MAX_PARALLEL_TRANSFERS", "8")
	t.Setenv("STORAGE_DB_DATABASE_URI", "postgres://u:p@localhost/db")

	b := newConfigBuilder()
	b.withEnv()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	cfg := b.configs[0]
	assert.Equal(t, "mac", cfg.App.DeviceID)
	assert.Equal(t, "/home/u/notes", cfg.Vault.Path)
	assert.Equal(t, 1500*time.Millisecond, cfg.Workers.DebounceDelay)
	assert.Equal(t, 8, cfg.Workers.MaxParallelTransfers)
	assert.Equal(t, "postgres://u:p@localhost/db", cfg.Storage.DB.DSN)
}

func TestWithEnv_InvalidDuration(t *testing.T) {
	t.Setenv("WORKERS_SYNC_INTERVAL", "often")

	b := newConfigBuilder()
	b.withEnv()

	assert.Error(t, b.err)
}

func TestParseFlags(t *testing.T) {
	cfg, err := parseFlags([]string{
		"-a", "localhost:8080",
		"-d", "postgres://db",
		"-f", "/var/blobs",
		"-request-timeout", "10s",
		"-server-url", "https://sync.example.com",
		"-vault", "/notes",
		"-debounce", "3s",
		"-parallel", "2",
		"-index-backend", "kv",
	})
	require.NoError(t, err)

	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, "postgres://db", cfg.Storage.DB.DSN)
	assert.Equal(t, "/var/blobs", cfg.Storage.Files.BinaryDataDir)
	assert.Equal(t, 10*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 10*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, "https://sync.example.com", cfg.Adapter.HTTPAddress)
	assert.Equal(t, "/notes", cfg.Vault.Path)
	assert.Equal(t, 3*time.Second, cfg.Workers.DebounceDelay)
	assert.Equal(t, 2, cfg.Workers.MaxParallelTransfers)
	assert.Equal(t, IndexBackendKV, cfg.Vault.IndexBackend)
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"-nope"}},
		{"bad address", []string{"-a", "8080"}},
		{"bad ip", []string{"-a", "host.example:8080"}},
		{"bad port", []string{"-a", "localhost:0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseFlags(tt.args)
			assert.Error(t, err)
		})
	}
}

func TestWithJSON(t *testing.T) {
	path := writeTempFile(t, `{
		"app": {"device_id": "json-device", "vault_quota_bytes": 1048576},
		"adapter": {"http_address": "localhost:9000", "request_timeout": "5s"},
		"workers": {"sync_interval": "1m", "conflict_timeout": 60000000000},
		"vault": {"path": "/json/vault", "index_backend": "kv"},
		"log": {"file": "/tmp/sync.log", "max_backups": 2}
	}`)

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{}, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 3)
	cfg := b.configs[2]
	assert.Equal(t, "json-device", cfg.App.DeviceID)
	assert.Equal(t, int64(1048576), cfg.App.VaultQuotaBytes)
	assert.Equal(t, "localhost:9000", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 5*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, time.Minute, cfg.Workers.SyncInterval)
	assert.Equal(t, time.Minute, cfg.Workers.ConflictTimeout)
	assert.Equal(t, IndexBackendKV, cfg.Vault.IndexBackend)
	assert.Equal(t, 2, cfg.Log.MaxBackups)
}

func TestWithJSON_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		b := newConfigBuilder()
		b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/nonexistent/config.json"})
		b.withJSON()
		assert.Error(t, b.err)
	})
	t.Run("malformed", func(t *testing.T) {
		b := newConfigBuilder()
		b.configs = append(b.configs, &StructuredConfig{JSONFilePath: writeTempFile(t, "{not json")})
		b.withJSON()
		assert.Error(t, b.err)
	})
	t.Run("bad duration", func(t *testing.T) {
		b := newConfigBuilder()
		b.configs = append(b.configs, &StructuredConfig{JSONFilePath: writeTempFile(t, `{"workers":{"sync_interval":true}}`)})
		b.withJSON()
		assert.Error(t, b.err)
	})
}

func TestClientConfig_DefaultsAndValidation(t *testing.T) {
	base := func() *StructuredConfig {
		return &StructuredConfig{
			Storage: Storage{DB: DB{DSN: "/tmp/client.db"}},
			Adapter: Adapter{HTTPAddress: "localhost:8080"},
			Vault:   Vault{Path: "/home/u/My Notes/"},
		}
	}

	cfg := newClientConfig(base())
	require.NoError(t, cfg.validate())
	assert.Equal(t, DefaultSyncInterval, cfg.Workers.SyncInterval)
	assert.Equal(t, DefaultDebounceDelay, cfg.Workers.DebounceDelay)
	assert.Equal(t, DefaultConflictTimeout, cfg.Workers.ConflictTimeout)
	assert.Equal(t, DefaultMaxParallelTransfers, cfg.Workers.MaxParallelTransfers)
	assert.Equal(t, IndexBackendFile, cfg.Vault.IndexBackend)
	assert.Equal(t, "My Notes", cfg.Vault.Name)

	tests := []struct {
		name   string
		mutate func(*StructuredConfig)
		want   error
	}{
		{"no dsn", func(c *StructuredConfig) { c.Storage.DB.DSN = "" }, ErrInvalidStorageConfigs},
		{"memory dsn", func(c *StructuredConfig) { c.Storage.DB.DSN = "file::memory:" }, ErrInvalidStorageConfigs},
		{"no server", func(c *StructuredConfig) { c.Adapter.HTTPAddress = "" }, ErrInvalidAdapterConfigs},
		{"negative debounce", func(c *StructuredConfig) { c.Workers.DebounceDelay = -time.Second }, ErrInvalidWorkerConfigs},
		{"negative parallel", func(c *StructuredConfig) { c.Workers.MaxParallelTransfers = -1 }, ErrInvalidWorkerConfigs},
		{"no vault", func(c *StructuredConfig) { c.Vault.Path = "" }, ErrInvalidVaultConfigs},
		{"bad backend", func(c *StructuredConfig) { c.Vault.IndexBackend = "s3" }, ErrInvalidVaultConfigs},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := base()
			tt.mutate(sc)
			assert.ErrorIs(t, newClientConfig(sc).validate(), tt.want)
		})
	}
}

func TestServerConfig_Validation(t *testing.T) {
	valid := &StructuredConfig{
		App:     App{TokenSignKey: "secret"},
		Storage: Storage{DB: DB{DSN: "postgres://db"}, Files: Files{BinaryDataDir: "/var/blobs"}},
		Server:  Server{HTTPAddress: ":8080"},
	}
	cfg := newServerConfig(valid)
	require.NoError(t, cfg.validate())
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "go-vault-sync", cfg.App.TokenIssuer)

	noKey := *valid
	noKey.App.TokenSignKey = ""
	assert.ErrorIs(t, newServerConfig(&noKey).validate(), ErrInvalidAppConfigs)

	noDir := *valid
	noDir.Storage.Files.BinaryDataDir = ""
	assert.ErrorIs(t, newServerConfig(&noDir).validate(), ErrInvalidStorageConfigs)

	noAddr := *valid
	noAddr.Server.HTTPAddress = ""
	assert.ErrorIs(t, newServerConfig(&noAddr).validate(), ErrInvalidServerConfigs)
}
