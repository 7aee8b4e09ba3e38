// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration shared by the sync server and
// the desktop sync client. It is assembled by merging environment variables,
// command-line flags and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to nested env lookups (caarlos0/env).
//   - env       — environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token, integrity and identity settings.
	App App `envPrefix:"APP_"`

	// Storage holds the database and content store settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the HTTP listener settings of the sync server.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the client's view of the sync server.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds sync scheduling settings of the client.
	Workers Workers `envPrefix:"WORKERS_"`

	// Vault describes the local vault the client keeps in sync.
	Vault Vault `envPrefix:"VAULT_"`

	// Log holds the client log file settings.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Env: CONFIG, flags: -c / -config.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level settings.
type App struct {
	// TokenSignKey signs and verifies JWT bearer tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the expected "iss" claim.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is the lifetime of tokens minted by the dev tooling.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// HashKey is the HMAC key of the HashSHA256 request header. Empty
	// disables request signing.
	// Env: APP_HASH_KEY
	HashKey string `env:"HASH_KEY"`

	// Version is reported by the /api/version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// DeviceID identifies this client in vector clocks. When empty the
	// client generates one and persists it in its local database.
	// Env: APP_DEVICE_ID
	DeviceID string `env:"DEVICE_ID"`

	// AuthToken is the bearer token handed over by the membership bridge.
	// Env: APP_AUTH_TOKEN
	AuthToken string `env:"AUTH_TOKEN"`

	// VaultQuotaBytes caps the stored content per vault. 0 is unlimited.
	// Env: APP_VAULT_QUOTA_BYTES
	VaultQuotaBytes int64 `env:"VAULT_QUOTA_BYTES"`
}

// Storage groups persistence settings.
type Storage struct {
	// DB holds the database connection settings.
	DB DB `envPrefix:"DB_"`

	// Files holds the server content store settings.
	Files Files `envPrefix:"FILES_"`
}

// DB holds database connection settings. The server expects a PostgreSQL
// URI, the client a SQLite file path.
type DB struct {
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Files holds the content-addressed blob directory of the server.
type Files struct {
	// Env: STORAGE_FILES_BINARY_DATA_DIR
	BinaryDataDir string `env:"BINARY_DATA_DIR"`
}

// Server holds the inbound HTTP transport settings.
type Server struct {
	// HTTPAddress is the listen address in "host:port" form.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds the outbound transport settings of the client.
type Adapter struct {
	// HTTPAddress is the base URL or host:port of the sync server.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds the sync scheduling settings of the client.
type Workers struct {
	// SyncInterval is the period of the scheduled sync cycle.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// DebounceDelay is the quiet window after a file change burst before a
	// cycle is triggered.
	// Env: WORKERS_DEBOUNCE_DELAY
	DebounceDelay time.Duration `env:"DEBOUNCE_DELAY"`

	// ConflictTimeout bounds the wait for a binding conflict decision.
	// Env: WORKERS_CONFLICT_TIMEOUT
	ConflictTimeout time.Duration `env:"CONFLICT_TIMEOUT"`

	// MaxParallelTransfers bounds concurrent uploads and downloads.
	// Env: WORKERS_MAX_PARALLEL_TRANSFERS
	MaxParallelTransfers int `env:"MAX_PARALLEL_TRANSFERS"`
}

// Vault describes the local vault directory.
type Vault struct {
	// Env: VAULT_PATH
	Path string `env:"PATH"`

	// Name is the remote vault name. Defaults to the directory name.
	// Env: VAULT_NAME
	Name string `env:"NAME"`

	// IndexBackend selects where the file index is persisted: "file"
	// (JSON inside the vault) or "kv" (local database).
	// Env: VAULT_INDEX_BACKEND
	IndexBackend string `env:"INDEX_BACKEND"`
}

// Log holds the client log file settings.
type Log struct {
	// Env: LOG_FILE
	File string `env:"FILE"`
	// Env: LOG_MAX_SIZE_MB
	MaxSizeMB int `env:"MAX_SIZE_MB"`
	// Env: LOG_MAX_BACKUPS
	MaxBackups int `env:"MAX_BACKUPS"`
}

// Index backends.
const (
	IndexBackendFile = "file"
	IndexBackendKV   = "kv"
)

// GetStructuredConfig loads and merges the configuration from all sources.
// For each field the first non-zero value wins, in this order:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
