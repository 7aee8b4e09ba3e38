package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/store"
	"github.com/MKhiriev/go-vault-sync/models"
)

type syncService struct {
	vaults VaultService
	files  store.FileRepository
	blobs  store.BlobStorage

	logger *logger.Logger
}

func NewSyncService(vaults VaultService, files store.FileRepository, blobs store.BlobStorage, logger *logger.Logger) SyncService {
	return &syncService{vaults: vaults, files: files, blobs: blobs, logger: logger}
}

// BuildDiff implements SyncService.
//
// Every local path gets exactly one action. Remote-only live paths are
// downloaded, remote-only tombstones are ignored. When both sides know a
// path the vector clocks decide:
//
//   - equal: noop, or conflict if the hashes differ
//   - local before remote: download (delete if the remote is a tombstone of
//     the same content, upload if the local file holds other content)
//   - local after remote: upload (delete-remote if the local is a tombstone)
//   - concurrent: conflict, unless both hashes are identical
//
// A local tombstone whose clock equals the remote one is a confirmed delete.
func (s *syncService) BuildDiff(ctx context.Context, remote []models.FileEntry, local []models.FileSummary) ([]models.SyncActionDTO, error) {
	remoteIndex := make(map[string]models.FileEntry, len(remote))
	for _, r := range remote {
		remoteIndex[r.Path] = r
	}

	actions := make([]models.SyncActionDTO, 0, len(local)+len(remote))
	seen := make(map[string]struct{}, len(local))

	for _, l := range local {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		seen[l.Path] = struct{}{}

		r, onServer := remoteIndex[l.Path]
		if !onServer {
			kind := models.ActionUpload
			if l.Deleted {
				// never reached the server; the client just forgets it
				kind = models.ActionNoop
			}
			actions = append(actions, models.SyncActionDTO{Path: l.Path, Kind: kind})
			continue
		}

		entry := r.Clone()
		actions = append(actions, models.SyncActionDTO{
			Path:        l.Path,
			Kind:        planPath(l, r),
			RemoteEntry: &entry,
		})
	}

	for _, r := range remote {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, ok := seen[r.Path]; ok || r.Deleted {
			continue
		}
		entry := r.Clone()
		actions = append(actions, models.SyncActionDTO{Path: r.Path, Kind: models.ActionDownload, RemoteEntry: &entry})
	}

	sort.Slice(actions, func(i, j int) bool { return actions[i].Path < actions[j].Path })
	return actions, nil
}

func planPath(l models.FileSummary, r models.FileEntry) models.SyncActionKind {
	rel := l.VectorClock.Compare(r.VectorClock)

	switch {
	case l.Deleted && r.Deleted:
		return models.ActionNoop

	case l.Deleted:
		switch rel {
		case models.ClockAfter, models.ClockEqual:
			return models.ActionDeleteRemote
		case models.ClockBefore:
			return models.ActionDownload
		default:
			return models.ActionConflict
		}

	case r.Deleted:
		switch rel {
		case models.ClockAfter:
			return models.ActionUpload
		case models.ClockConcurrent:
			return models.ActionConflict
		default:
			// content the tombstone never held was created after the
			// delete by a client that no longer remembers the path
			if l.Hash != r.Hash {
				return models.ActionUpload
			}
			return models.ActionDelete
		}
	}

	switch rel {
	case models.ClockEqual:
		if l.Hash != r.Hash {
			return models.ActionConflict
		}
		return models.ActionNoop
	case models.ClockBefore:
		return models.ActionDownload
	case models.ClockAfter:
		return models.ActionUpload
	default:
		if l.Hash == r.Hash {
			return models.ActionNoop
		}
		return models.ActionConflict
	}
}

func (s *syncService) Diff(ctx context.Context, userID string, req models.SyncDiffRequest) (models.SyncDiffResponse, error) {
	log := logger.FromContext(ctx)

	if _, err := s.vaults.GetVault(ctx, userID, req.VaultID); err != nil {
		return models.SyncDiffResponse{}, err
	}

	remote, err := s.files.ListFiles(ctx, req.VaultID)
	if err != nil {
		log.Err(err).Str("vault_id", req.VaultID).Msg("listing remote index failed")
		return models.SyncDiffResponse{}, fmt.Errorf("list remote files: %w", err)
	}

	actions, err := s.BuildDiff(ctx, remote, req.Files)
	if err != nil {
		return models.SyncDiffResponse{}, err
	}

	log.Info().
		Str("vault_id", req.VaultID).
		Str("device_id", req.DeviceID).
		Int("local", len(req.Files)).
		Int("remote", len(remote)).
		Int("actions", len(actions)).
		Msg("diff computed")
	return models.SyncDiffResponse{Actions: actions}, nil
}

// Commit records the completed transfers. A path is acknowledged when its
// content is present in the blob store (or it is a tombstone) and the
// client clock is not behind the server clock. The stored clock is the
// merge of both.
func (s *syncService) Commit(ctx context.Context, userID string, req models.SyncCommitRequest) (models.SyncCommitResponse, error) {
	log := logger.FromContext(ctx)

	if _, err := s.vaults.GetVault(ctx, userID, req.VaultID); err != nil {
		return models.SyncCommitResponse{}, err
	}

	paths := make([]string, 0, len(req.Completed))
	for _, c := range req.Completed {
		paths = append(paths, c.Path)
	}
	current, err := s.files.ListFiles(ctx, req.VaultID, paths...)
	if err != nil {
		return models.SyncCommitResponse{}, fmt.Errorf("list committed files: %w", err)
	}
	currentIndex := make(map[string]models.FileEntry, len(current))
	for _, c := range current {
		currentIndex[c.Path] = c
	}

	now := time.Now().UnixMilli()
	entries := make([]models.FileEntry, 0, len(req.Completed))
	acknowledged := make([]string, 0, len(req.Completed))

	for _, c := range req.Completed {
		existing, known := currentIndex[c.Path]
		if known && stale(c, existing) {
			log.Warn().Str("vault_id", req.VaultID).Str("path", c.Path).Msg("stale commit rejected")
			continue
		}

		entry := models.FileEntry{
			Path:        c.Path,
			Hash:        c.Hash,
			VectorClock: c.VectorClock.Merge(existing.VectorClock),
			Mtime:       now,
			Deleted:     c.Deleted,
		}

		if !c.Deleted {
			size, err := s.blobs.Size(ctx, req.VaultID, c.Hash)
			if errors.Is(err, store.ErrBlobNotFound) {
				log.Warn().Str("vault_id", req.VaultID).Str("path", c.Path).Msg("commit without uploaded content")
				continue
			}
			if err != nil {
				return models.SyncCommitResponse{}, fmt.Errorf("stat blob: %w", err)
			}
			entry.Size = &size
		} else if known {
			entry.Hash = existing.Hash
		}

		entries = append(entries, entry)
		acknowledged = append(acknowledged, c.Path)
	}

	if err = s.files.UpsertFiles(ctx, req.VaultID, entries); err != nil {
		log.Err(err).Str("vault_id", req.VaultID).Msg("commit failed")
		return models.SyncCommitResponse{}, fmt.Errorf("upsert files: %w", err)
	}

	log.Info().
		Str("vault_id", req.VaultID).
		Str("device_id", req.DeviceID).
		Int("completed", len(req.Completed)).
		Int("acknowledged", len(acknowledged)).
		Msg("commit recorded")
	return models.SyncCommitResponse{Acknowledged: acknowledged}, nil
}

// stale reports whether a completed transfer was overtaken by another
// device's commit.
func stale(c models.CompletedFileDTO, existing models.FileEntry) bool {
	switch c.VectorClock.Compare(existing.VectorClock) {
	case models.ClockBefore:
		return true
	case models.ClockConcurrent:
		return c.Deleted != existing.Deleted || c.Hash != existing.Hash
	default:
		return false
	}
}
