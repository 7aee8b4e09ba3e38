// Package vault provides the storage capability the sync engine uses to reach
// a vault's files. The desktop client uses the local file system; tests and
// other platforms provide their own implementation of [Storage].
package vault

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/MKhiriev/go-vault-sync/models"
)

// ErrOutsideVault is returned for paths that resolve outside the vault root.
var ErrOutsideVault = errors.New("path escapes the vault root")

// DirEntry is one entry of a directory listing.
type DirEntry struct {
	Name  string
	IsDir bool
}

// FileStat describes a file.
type FileStat struct {
	Size    int64
	ModTime time.Time
	IsDir   bool
}

// Storage reads and writes files relative to a vault root. Paths use forward
// slashes; "" denotes the root. Missing files yield errors matching
// fs.ErrNotExist.
type Storage interface {
	// Root returns the vault root this storage is bound to.
	Root() string
	ReadFile(rel string) ([]byte, error)
	// WriteFile replaces the file atomically, creating parent directories.
	WriteFile(rel string, data []byte) error
	ListDir(rel string) ([]DirEntry, error)
	Stat(rel string) (FileStat, error)
	Remove(rel string) error
}

// ContentHash returns the lowercase hex SHA-256 digest of data.
func ContentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// NormalizePath converts rel to the canonical index form: forward slashes, no
// leading slash, cleaned. It fails for paths leaving the root.
func NormalizePath(rel string) (string, error) {
	p := strings.ReplaceAll(rel, "\\", "/")
	for _, part := range strings.Split(p, "/") {
		if part == ".." {
			return "", ErrOutsideVault
		}
	}
	return strings.TrimPrefix(path.Clean("/"+p), "/"), nil
}

// IsHidden reports whether any element of rel starts with a dot.
func IsHidden(rel string) bool {
	for _, part := range strings.Split(rel, "/") {
		if strings.HasPrefix(part, ".") && part != "." {
			return true
		}
	}
	return false
}

// IsTracked reports whether rel names a file the sync engine tracks.
func IsTracked(rel string) bool {
	return strings.HasSuffix(rel, models.TrackedExtension) && !IsHidden(rel)
}

// IsNotExist reports whether err means the file does not exist.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
