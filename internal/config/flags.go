package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds a host and port. It implements flag.Value.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses command-line arguments into a partial config.
//
// Flags:
//
//	-a              server listen address host:port
//	-d              database DSN (PostgreSQL URI on the server, SQLite path on the client)
//	-f              server content store directory
//	-c / -config    JSON config file path
//	-token-sign-key token signing key
//	-token-issuer   token issuer
//	-token-duration token lifetime (e.g. 1h)
//	-request-timeout request timeout for both the server and the client adapter
//	-hash-key       HMAC key of the HashSHA256 header
//	-quota          per-vault quota in bytes
//	-server-url     sync server base URL used by the client
//	-token          bearer token used by the client
//	-device-id      client device ID
//	-vault          local vault directory
//	-vault-name     remote vault name
//	-index-backend  "file" or "kv"
//	-sync-interval  scheduled sync period
//	-debounce       quiet window after file changes
//	-conflict-timeout binding conflict decision timeout
//	-parallel       max parallel transfers
//	-log-file       client log file
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("vault-sync", flag.ContinueOnError)

	var serverAddress NetAddress
	var cfg StructuredConfig
	var requestTimeout time.Duration

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "Database DSN")
	fs.StringVar(&cfg.Storage.Files.BinaryDataDir, "f", "", "Content store directory")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&cfg.App.TokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&cfg.App.TokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&cfg.App.TokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&cfg.App.HashKey, "hash-key", "", "Request signing hash key")
	fs.Int64Var(&cfg.App.VaultQuotaBytes, "quota", 0, "Per-vault quota in bytes")
	fs.StringVar(&cfg.Adapter.HTTPAddress, "server-url", "", "Sync server URL")
	fs.StringVar(&cfg.App.AuthToken, "token", "", "Bearer token")
	fs.StringVar(&cfg.App.DeviceID, "device-id", "", "Device ID")
	fs.StringVar(&cfg.Vault.Path, "vault", "", "Local vault directory")
	fs.StringVar(&cfg.Vault.Name, "vault-name", "", "Remote vault name")
	fs.StringVar(&cfg.Vault.IndexBackend, "index-backend", "", "File index backend: file or kv")
	fs.DurationVar(&cfg.Workers.SyncInterval, "sync-interval", 0, "Scheduled sync interval")
	fs.DurationVar(&cfg.Workers.DebounceDelay, "debounce", 0, "Debounce window after file changes")
	fs.DurationVar(&cfg.Workers.ConflictTimeout, "conflict-timeout", 0, "Binding conflict decision timeout")
	fs.IntVar(&cfg.Workers.MaxParallelTransfers, "parallel", 0, "Max parallel transfers")
	fs.StringVar(&cfg.Log.File, "log-file", "", "Client log file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.Server.HTTPAddress = serverAddress.String()
	cfg.Server.RequestTimeout = requestTimeout
	cfg.Adapter.RequestTimeout = requestTimeout

	return &cfg, nil
}

// String returns host:port, or "" when the address is unset.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses host:port. The host must be "localhost" or an IP address.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
