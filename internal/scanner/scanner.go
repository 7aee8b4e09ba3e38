// Package scanner walks a vault and collects the files tracked by sync.
package scanner

import (
	"context"
	"path"
	"strings"

	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/vault"
	"github.com/MKhiriev/go-vault-sync/models"
)

// Scanner lists tracked files of a vault.
type Scanner struct {
	storage vault.Storage
	logger  *logger.Logger
}

// New returns a Scanner over storage.
func New(storage vault.Storage, log *logger.Logger) *Scanner {
	return &Scanner{storage: storage, logger: log}
}

// ScanMdFiles returns the relative paths of all ".md" files under
// relativePath, depth-first in name order. Dot-prefixed entries are skipped.
//
// A directory that cannot be listed is logged and contributes nothing; the
// scan itself never fails. Cancelling ctx stops the descent and returns what
// was collected so far.
func (s *Scanner) ScanMdFiles(ctx context.Context, relativePath string) []string {
	start, err := vault.NormalizePath(relativePath)
	if err != nil {
		s.logger.Warn().Err(err).Str("path", relativePath).Msg("refusing to scan outside vault")
		return []string{}
	}

	files := make([]string, 0)
	s.walk(ctx, start, &files)
	return files
}

func (s *Scanner) walk(ctx context.Context, dir string, files *[]string) {
	if ctx.Err() != nil {
		return
	}

	entries, err := s.storage.ListDir(dir)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("func", "Scanner.walk").
			Str("dir", dir).
			Msg("skipping unreadable directory")
		return
	}

	for _, entry := range entries {
		if strings.HasPrefix(entry.Name, ".") {
			continue
		}

		rel := entry.Name
		if dir != "" {
			rel = path.Join(dir, entry.Name)
		}

		if entry.IsDir {
			s.walk(ctx, rel, files)
			continue
		}
		if strings.HasSuffix(entry.Name, models.TrackedExtension) {
			*files = append(*files, rel)
		}
	}
}
