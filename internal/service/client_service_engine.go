// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-vault-sync/internal/adapter"
	"github.com/MKhiriev/go-vault-sync/internal/index"
	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/scanner"
	"github.com/MKhiriev/go-vault-sync/internal/utils"
	"github.com/MKhiriev/go-vault-sync/internal/validators"
	"github.com/MKhiriev/go-vault-sync/internal/vault"
	"github.com/MKhiriev/go-vault-sync/models"
)

// SyncEngineParams collects the collaborators of a sync engine.
type SyncEngineParams struct {
	DeviceID string
	Storage  vault.Storage
	Index    *index.Store
	Locker   *index.Locker
	Adapter  adapter.ServerAdapter
	Status   *StatusBroadcaster

	// Parallel bounds the number of concurrent transfers. Values below 1
	// mean one transfer at a time.
	Parallel int

	Logger *logger.Logger
}

type syncEngine struct {
	vaultPath string
	deviceID  string
	storage   vault.Storage
	scanner   *scanner.Scanner
	index     *index.Store
	locker    *index.Locker
	adapter   adapter.ServerAdapter
	status    *StatusBroadcaster
	parallel  int
	logger    *logger.Logger

	running atomic.Bool

	mu        sync.Mutex
	vaultID   string
	offline   bool
	snapshot  models.SyncStatusSnapshot
	recent    []string
	conflicts map[string]models.FileEntry
}

// NewSyncEngine returns an engine for the vault behind p.Storage. The engine
// stays offline until Bind is called.
func NewSyncEngine(p SyncEngineParams) ClientSyncEngine {
	parallel := p.Parallel
	if parallel < 1 {
		parallel = 1
	}
	vaultPath := p.Storage.Root()
	log := p.Logger.WithVault(vaultPath)

	return &syncEngine{
		vaultPath: vaultPath,
		deviceID:  p.DeviceID,
		storage:   p.Storage,
		scanner:   scanner.New(p.Storage, log),
		index:     p.Index,
		locker:    p.Locker,
		adapter:   p.Adapter,
		status:    p.Status,
		parallel:  parallel,
		logger:    log,
		offline:   true,
		snapshot:  models.SyncStatusSnapshot{VaultPath: vaultPath, State: models.StateOffline},
		conflicts: make(map[string]models.FileEntry),
	}
}

func (e *syncEngine) Bind(binding models.VaultBinding) {
	e.mu.Lock()
	if e.vaultID != binding.VaultID {
		e.conflicts = make(map[string]models.FileEntry)
	}
	e.vaultID = binding.VaultID
	e.offline = false
	e.mu.Unlock()

	e.logger.Info().Str("vault_id", binding.VaultID).Msg("engine bound")
	e.setState(models.StateIdle)
}

func (e *syncEngine) GoOffline() {
	e.mu.Lock()
	e.offline = true
	e.mu.Unlock()

	e.logger.Info().Msg("engine offline")
	e.setState(models.StateOffline)
}

func (e *syncEngine) Status() models.SyncStatusSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot
}

// SyncOnce implements ClientSyncEngine.
func (e *syncEngine) SyncOnce(ctx context.Context) (models.SyncStatusSnapshot, error) {
	if !e.running.CompareAndSwap(false, true) {
		return e.Status(), models.NewSyncError(models.CodeSyncInProgress, "", nil)
	}
	defer e.running.Store(false)

	vaultID, ok := e.boundVault()
	if !ok {
		return e.setState(models.StateOffline), ErrEngineOffline
	}

	c := newCycle(vaultID)
	if err := e.runCycle(ctx, c); err != nil {
		return e.fail(ctx, err), err
	}
	return e.finish(c), nil
}

func (e *syncEngine) boundVault() (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.vaultID, !e.offline && e.vaultID != ""
}

func (e *syncEngine) runCycle(ctx context.Context, c *cycle) error {
	e.setState(models.StateScanning)
	local, err := e.scan(ctx)
	if err != nil {
		return fmt.Errorf("scan vault: %w", err)
	}
	c.local = local

	e.setState(models.StateDiffing)
	summaries := make([]models.FileSummary, 0, len(local))
	for _, entry := range sortedEntries(local) {
		summaries = append(summaries, entry.Summary())
	}
	diff, err := e.adapter.Diff(ctx, models.SyncDiffRequest{
		VaultID:  c.vaultID,
		DeviceID: e.deviceID,
		Files:    summaries,
	})
	if err != nil {
		return err
	}

	e.setState(models.StateExecuting)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.parallel)
	for _, action := range diff.Actions {
		g.Go(func() error {
			return e.execute(gctx, c, action)
		})
	}
	if err = g.Wait(); err != nil {
		return err
	}
	if err = ctx.Err(); err != nil {
		return err
	}

	e.setState(models.StateCommitting)
	return e.commit(ctx, c)
}

// scan refreshes the index from the vault contents under the vault lock and
// returns the entries the diff is computed from.
func (e *syncEngine) scan(ctx context.Context) (map[string]models.FileEntry, error) {
	var scanned map[string]models.FileEntry

	err := e.updateIndex(ctx, func(entries map[string]models.FileEntry) {
		seen := make(map[string]struct{})

		for _, p := range e.scanner.ScanMdFiles(ctx, "") {
			if !validators.ValidPath(p) {
				// the server rejects the whole diff for one bad path
				e.logger.Warn().Str("path", p).Msg("skipping file with a path the server cannot store")
				continue
			}
			seen[p] = struct{}{}

			data, err := e.storage.ReadFile(p)
			if err != nil {
				e.logger.Warn().Err(err).Str("path", p).Msg("keeping previous entry of unreadable file")
				continue
			}
			hash := vault.ContentHash(data)
			size := int64(len(data))

			prev, known := entries[p]
			switch {
			case !known:
				entries[p] = models.FileEntry{
					Path:        p,
					Hash:        hash,
					VectorClock: models.NewVectorClock().Increment(e.deviceID),
					Mtime:       e.mtime(p),
					Size:        &size,
				}
			case prev.Deleted || prev.Hash != hash:
				prev.Hash = hash
				prev.VectorClock = prev.VectorClock.Increment(e.deviceID)
				prev.Mtime = e.mtime(p)
				prev.Size = &size
				prev.Deleted = false
				entries[p] = prev
			}
		}

		for p, entry := range entries {
			if !validators.ValidPath(p) {
				delete(entries, p)
				continue
			}
			if _, ok := seen[p]; ok || entry.Deleted {
				continue
			}
			// a directory that failed to list hides its files from the
			// scanner; only a confirmed absence makes a tombstone
			if _, err := e.storage.Stat(p); !vault.IsNotExist(err) {
				continue
			}
			entry.Deleted = true
			entry.VectorClock = entry.VectorClock.Increment(e.deviceID)
			entries[p] = entry
		}

		scanned = make(map[string]models.FileEntry, len(entries))
		for p, entry := range entries {
			scanned[p] = entry.Clone()
		}
	})
	if err != nil {
		return nil, err
	}
	return scanned, ctx.Err()
}

// execute runs one action. Only failures that end the cycle are returned;
// everything else is recorded on the cycle and retried next time.
func (e *syncEngine) execute(ctx context.Context, c *cycle, action models.SyncActionDTO) error {
	log := e.logger.With().Str("path", action.Path).Str("action", string(action.Kind)).Logger()

	var err error
	switch action.Kind {
	case models.ActionUpload:
		err = e.upload(ctx, c, action)
	case models.ActionDownload:
		err = e.download(ctx, c, action)
	case models.ActionDelete:
		err = e.removeLocal(c, action)
	case models.ActionDeleteRemote:
		local := c.local[action.Path]
		c.pend(action.Kind, models.CompletedFileDTO{
			Path:        action.Path,
			Hash:        local.Hash,
			VectorClock: local.VectorClock.Clone(),
			Deleted:     true,
		}, nil)
	case models.ActionConflict:
		c.conflict(action)
	case models.ActionNoop:
		c.noop(action)
	default:
		log.Warn().Msg("unknown action kind ignored")
	}

	if err == nil {
		return nil
	}
	if models.RequiresUserAction(err) || models.RequiresReset(err) {
		return err
	}
	log.Warn().Err(err).Msg("action failed, retrying next cycle")
	c.fail(action.Path, action.Kind, err)
	return nil
}

func (e *syncEngine) upload(ctx context.Context, c *cycle, action models.SyncActionDTO) error {
	local, ok := c.local[action.Path]
	if !ok {
		return nil
	}

	data, err := e.storage.ReadFile(action.Path)
	if vault.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return models.NewSyncError(models.CodeUploadFailed, action.Path, err)
	}
	if vault.ContentHash(data) != local.Hash {
		e.logger.Debug().Str("path", action.Path).Msg("file changed since scan, upload deferred")
		return nil
	}

	clock := local.VectorClock
	if remote := action.RemoteEntry; remote != nil {
		// a file replacing a tombstone must follow it or the commit is stale
		if remote.Deleted && clock.Compare(remote.VectorClock) != models.ClockAfter {
			clock = clock.Merge(remote.VectorClock).Increment(e.deviceID)
		} else {
			clock = clock.Merge(remote.VectorClock)
		}
	}

	if _, err = e.adapter.Upload(ctx, models.FileUploadRequest{
		VaultID:     c.vaultID,
		Path:        action.Path,
		Hash:        local.Hash,
		VectorClock: clock,
		Content:     data,
	}); err != nil {
		return err
	}

	size := int64(len(data))
	entry := local.Clone()
	entry.VectorClock = clock
	entry.Size = &size

	c.pend(action.Kind, models.CompletedFileDTO{
		Path:        action.Path,
		Hash:        local.Hash,
		VectorClock: clock.Clone(),
		Size:        &size,
	}, &entry)
	return nil
}

func (e *syncEngine) download(ctx context.Context, c *cycle, action models.SyncActionDTO) error {
	resp, err := e.adapter.Download(ctx, c.vaultID, action.Path)
	if err != nil {
		return err
	}
	if vault.ContentHash(resp.Content) != resp.Entry.Hash {
		return models.NewSyncError(models.CodeDownloadFailed, action.Path, ErrHashMismatch)
	}

	local, known := c.local[action.Path]
	if known && !local.Deleted && e.changedSinceScan(local) {
		e.logger.Debug().Str("path", action.Path).Msg("file changed since scan, download deferred")
		return nil
	}
	if !known || local.Deleted {
		// created after the scan; the next cycle indexes it first
		if _, err = e.storage.Stat(action.Path); err == nil {
			e.logger.Debug().Str("path", action.Path).Msg("file created since scan, download deferred")
			return nil
		}
	}

	if err = e.storage.WriteFile(action.Path, resp.Content); err != nil {
		return models.NewSyncError(models.CodeDownloadFailed, action.Path, err)
	}

	clock := resp.Entry.VectorClock.Clone()
	if known {
		clock = local.VectorClock.Merge(clock)
	}
	size := int64(len(resp.Content))
	c.store(models.FileEntry{
		Path:        action.Path,
		Hash:        resp.Entry.Hash,
		VectorClock: clock,
		Mtime:       e.mtime(action.Path),
		Size:        &size,
	}, models.ActionDownload)
	return nil
}

func (e *syncEngine) removeLocal(c *cycle, action models.SyncActionDTO) error {
	if local, ok := c.local[action.Path]; ok && !local.Deleted && e.changedSinceScan(local) {
		e.logger.Debug().Str("path", action.Path).Msg("file changed since scan, delete deferred")
		return nil
	}
	if err := e.storage.Remove(action.Path); err != nil && !vault.IsNotExist(err) {
		return models.NewSyncError(models.CodeDownloadFailed, action.Path, err)
	}
	c.drop(action.Path, models.ActionDelete)
	return nil
}

func (e *syncEngine) changedSinceScan(local models.FileEntry) bool {
	data, err := e.storage.ReadFile(local.Path)
	if err != nil {
		return !vault.IsNotExist(err)
	}
	return vault.ContentHash(data) != local.Hash
}

// commit sends the pending transfers and applies acknowledged and local-only
// results to the index.
func (e *syncEngine) commit(ctx context.Context, c *cycle) error {
	if len(c.pending) > 0 {
		completed := make([]models.CompletedFileDTO, 0, len(c.pending))
		for _, p := range c.pending {
			completed = append(completed, p.dto)
		}

		resp, err := e.adapter.Commit(ctx, models.SyncCommitRequest{
			VaultID:   c.vaultID,
			DeviceID:  e.deviceID,
			Completed: completed,
		})
		switch {
		case err == nil:
			c.acknowledge(resp.Acknowledged)
		case models.RequiresUserAction(err) || models.RequiresReset(err):
			return err
		default:
			e.logger.Warn().Err(err).Int("completed", len(completed)).Msg("commit failed, retrying next cycle")
			for _, p := range c.pending {
				c.fail(p.dto.Path, p.kind, err)
			}
			c.pending = nil
		}
	}

	return e.updateIndex(ctx, func(entries map[string]models.FileEntry) {
		for p, entry := range c.updates {
			entries[p] = entry
		}
		for p := range c.drops {
			delete(entries, p)
		}
	})
}

func (e *syncEngine) finish(c *cycle) models.SyncStatusSnapshot {
	now := time.Now()

	e.mu.Lock()
	for _, p := range c.touched {
		e.recent = utils.BuildRecentFilesList(e.recent, p)
	}
	e.conflicts = c.conflicts

	snap := models.SyncStatusSnapshot{
		VaultPath:   e.vaultPath,
		VaultID:     c.vaultID,
		State:       models.StateIdle,
		LastSyncAt:  &now,
		Pending:     len(c.failed),
		Uploaded:    c.uploaded,
		Downloaded:  c.downloaded,
		Deleted:     c.deleted,
		Conflicts:   conflictPaths(e.conflicts),
		Failed:      c.failed,
		RecentFiles: append([]string(nil), e.recent...),
	}
	if len(snap.Conflicts) > 0 {
		snap.State = models.StateConflictPending
	}
	e.mu.Unlock()

	e.logger.Info().
		Int("uploaded", snap.Uploaded).
		Int("downloaded", snap.Downloaded).
		Int("deleted", snap.Deleted).
		Int("conflicts", len(snap.Conflicts)).
		Int("failed", len(snap.Failed)).
		Msg("sync cycle finished")
	return e.publish(snap)
}

// fail ends a cycle with err. Errors that mean the local clocks no longer
// describe the remote vault drop the index so the next cycle re-diffs
// everything.
func (e *syncEngine) fail(ctx context.Context, err error) models.SyncStatusSnapshot {
	log := e.logger.With().Str("code", string(models.CodeOf(err))).Logger()

	if models.RequiresReset(err) {
		if resetErr := e.resetIndex(ctx); resetErr != nil {
			log.Err(resetErr).Msg("resetting file index failed")
		}
	}
	log.Err(err).Msg("sync cycle failed")

	code := models.CodeOf(err)
	if code == "" {
		code = models.CodeNetworkError
	}

	e.mu.Lock()
	snap := e.snapshot
	e.mu.Unlock()

	snap.State = models.StateError
	snap.Error = &models.SyncErrorInfo{Code: code, Message: err.Error()}
	return e.publish(snap)
}

func (e *syncEngine) resetIndex(ctx context.Context) error {
	unlock, err := e.locker.Lock(context.WithoutCancel(ctx), e.vaultPath)
	if err != nil {
		return err
	}
	defer unlock()
	return e.index.Reset(context.WithoutCancel(ctx), e.vaultPath)
}

// ResolveConflict implements ClientSyncEngine.
func (e *syncEngine) ResolveConflict(ctx context.Context, filePath string, resolution models.ConflictResolution) error {
	if !e.running.CompareAndSwap(false, true) {
		return models.NewSyncError(models.CodeSyncInProgress, filePath, nil)
	}
	defer e.running.Store(false)

	vaultID, ok := e.boundVault()
	if !ok {
		return ErrEngineOffline
	}

	e.mu.Lock()
	remote, inConflict := e.conflicts[filePath]
	e.mu.Unlock()
	if !inConflict {
		return fmt.Errorf("%w: %s", ErrUnknownConflict, filePath)
	}

	local, hasLocal := e.index.Load(ctx, e.vaultPath).ByPath()[filePath]
	if !hasLocal {
		local = models.FileEntry{Path: filePath, VectorClock: models.NewVectorClock(), Deleted: true}
	}

	log := e.logger.With().Str("path", filePath).Str("resolution", string(resolution)).Logger()

	var err error
	switch resolution {
	case models.KeepLocal:
		err = e.keepLocal(ctx, vaultID, local, remote)
	case models.KeepRemote:
		err = e.keepRemote(ctx, vaultID, local, remote)
	case models.KeepBoth:
		err = e.keepBoth(ctx, vaultID, local, remote)
	default:
		err = fmt.Errorf("%w: unknown resolution %q", ErrInvalidDataProvided, resolution)
	}
	if err != nil {
		log.Err(err).Msg("conflict resolution failed")
		return err
	}

	e.mu.Lock()
	delete(e.conflicts, filePath)
	e.recent = utils.BuildRecentFilesList(e.recent, filePath)
	snap := e.snapshot
	snap.Conflicts = conflictPaths(e.conflicts)
	snap.RecentFiles = append([]string(nil), e.recent...)
	if len(snap.Conflicts) == 0 && snap.State == models.StateConflictPending {
		snap.State = models.StateIdle
	}
	e.mu.Unlock()

	log.Info().Msg("conflict resolved")
	e.publish(snap)
	return nil
}

// keepLocal makes the local version win by giving it a clock that follows
// both sides.
func (e *syncEngine) keepLocal(ctx context.Context, vaultID string, local, remote models.FileEntry) error {
	clock := local.VectorClock.Merge(remote.VectorClock).Increment(e.deviceID)

	if local.Deleted {
		if err := e.commitOne(ctx, vaultID, models.CompletedFileDTO{
			Path:        local.Path,
			Hash:        remote.Hash,
			VectorClock: clock,
			Deleted:     true,
		}); err != nil {
			return err
		}
		return e.updateIndex(ctx, func(entries map[string]models.FileEntry) {
			delete(entries, local.Path)
		})
	}

	data, err := e.storage.ReadFile(local.Path)
	if err != nil {
		return models.NewSyncError(models.CodeUploadFailed, local.Path, err)
	}
	hash := vault.ContentHash(data)
	size := int64(len(data))

	if _, err = e.adapter.Upload(ctx, models.FileUploadRequest{
		VaultID:     vaultID,
		Path:        local.Path,
		Hash:        hash,
		VectorClock: clock,
		Content:     data,
	}); err != nil {
		return err
	}
	if err = e.commitOne(ctx, vaultID, models.CompletedFileDTO{
		Path:        local.Path,
		Hash:        hash,
		VectorClock: clock,
		Size:        &size,
	}); err != nil {
		return err
	}

	return e.updateIndex(ctx, func(entries map[string]models.FileEntry) {
		entries[local.Path] = models.FileEntry{
			Path:        local.Path,
			Hash:        hash,
			VectorClock: clock,
			Mtime:       e.mtime(local.Path),
			Size:        &size,
		}
	})
}

// keepRemote replaces the local version with the remote one.
func (e *syncEngine) keepRemote(ctx context.Context, vaultID string, local, remote models.FileEntry) error {
	if remote.Deleted {
		if err := e.storage.Remove(local.Path); err != nil && !vault.IsNotExist(err) {
			return models.NewSyncError(models.CodeDownloadFailed, local.Path, err)
		}
		return e.updateIndex(ctx, func(entries map[string]models.FileEntry) {
			delete(entries, local.Path)
		})
	}

	resp, err := e.adapter.Download(ctx, vaultID, local.Path)
	if err != nil {
		return err
	}
	if vault.ContentHash(resp.Content) != resp.Entry.Hash {
		return models.NewSyncError(models.CodeDownloadFailed, local.Path, ErrHashMismatch)
	}
	if err = e.storage.WriteFile(local.Path, resp.Content); err != nil {
		return models.NewSyncError(models.CodeDownloadFailed, local.Path, err)
	}

	clock := local.VectorClock.Merge(resp.Entry.VectorClock)
	size := int64(len(resp.Content))
	if !clock.Equal(resp.Entry.VectorClock) {
		if err = e.commitOne(ctx, vaultID, models.CompletedFileDTO{
			Path:        local.Path,
			Hash:        resp.Entry.Hash,
			VectorClock: clock,
			Size:        &size,
		}); err != nil {
			return err
		}
	}

	return e.updateIndex(ctx, func(entries map[string]models.FileEntry) {
		entries[local.Path] = models.FileEntry{
			Path:        local.Path,
			Hash:        resp.Entry.Hash,
			VectorClock: clock,
			Mtime:       e.mtime(local.Path),
			Size:        &size,
		}
	})
}

// keepBoth saves the remote version as a conflict copy next to the file and
// then keeps the local one. The copy is picked up as a new file by the next
// cycle.
func (e *syncEngine) keepBoth(ctx context.Context, vaultID string, local, remote models.FileEntry) error {
	if !remote.Deleted {
		resp, err := e.adapter.Download(ctx, vaultID, local.Path)
		if err != nil {
			return err
		}
		copyPath := e.freeConflictCopyPath(local.Path, conflictDevice(resp.Entry.VectorClock, e.deviceID))
		if err = e.storage.WriteFile(copyPath, resp.Content); err != nil {
			return models.NewSyncError(models.CodeDownloadFailed, copyPath, err)
		}
		e.logger.Info().Str("path", local.Path).Str("copy", copyPath).Msg("remote version saved as conflict copy")
	}
	return e.keepLocal(ctx, vaultID, local, remote)
}

func (e *syncEngine) commitOne(ctx context.Context, vaultID string, completed models.CompletedFileDTO) error {
	resp, err := e.adapter.Commit(ctx, models.SyncCommitRequest{
		VaultID:   vaultID,
		DeviceID:  e.deviceID,
		Completed: []models.CompletedFileDTO{completed},
	})
	if err != nil {
		return err
	}
	for _, p := range resp.Acknowledged {
		if p == completed.Path {
			return nil
		}
	}
	return models.NewSyncError(models.CodeCommitFailed, completed.Path, errors.New("not acknowledged"))
}

// updateIndex runs fn on the persisted entries under the vault lock and saves
// the result.
func (e *syncEngine) updateIndex(ctx context.Context, fn func(entries map[string]models.FileEntry)) error {
	unlock, err := e.locker.Lock(ctx, e.vaultPath)
	if err != nil {
		return err
	}
	defer unlock()

	entries := e.index.Load(ctx, e.vaultPath).ByPath()
	fn(entries)
	return e.index.Save(ctx, e.vaultPath, sortedEntries(entries))
}

func (e *syncEngine) mtime(p string) int64 {
	stat, err := e.storage.Stat(p)
	if err != nil {
		return time.Now().UnixMilli()
	}
	return stat.ModTime.UnixMilli()
}

// setState publishes the last snapshot with a new state and no error.
func (e *syncEngine) setState(state models.SyncState) models.SyncStatusSnapshot {
	e.mu.Lock()
	snap := e.snapshot
	snap.VaultID = e.vaultID
	e.mu.Unlock()

	snap.State = state
	snap.Error = nil
	return e.publish(snap)
}

func (e *syncEngine) publish(snap models.SyncStatusSnapshot) models.SyncStatusSnapshot {
	snap.VaultPath = e.vaultPath
	snap.Badge = snap.BadgeFor()

	e.mu.Lock()
	e.snapshot = snap
	e.mu.Unlock()

	if e.status != nil {
		e.status.Publish(snap)
	}
	return snap
}

// ConflictCopyPath returns the name the remote version of p is saved under
// when both versions are kept: "notes/a.md" becomes
// "notes/a.conflict-<device>.md".
func ConflictCopyPath(p, device string) string {
	ext := path.Ext(p)
	return strings.TrimSuffix(p, ext) + ".conflict-" + device + ext
}

// freeConflictCopyPath returns ConflictCopyPath(p, device), or the first
// "<name>.conflict-<device>-<n><ext>" with n >= 2 that does not exist yet.
func (e *syncEngine) freeConflictCopyPath(p, device string) string {
	candidate := ConflictCopyPath(p, device)
	for n := 2; ; n++ {
		if _, err := e.storage.Stat(candidate); err != nil {
			return candidate
		}
		candidate = ConflictCopyPath(p, device+"-"+strconv.Itoa(n))
	}
}

// conflictDevice picks the other device that advanced the clock the most.
func conflictDevice(clock models.VectorClock, self string) string {
	best, bestCounter := "remote", int64(0)
	for _, device := range clock.Devices() {
		if device == self {
			continue
		}
		if counter := clock.Get(device); counter > bestCounter {
			best, bestCounter = device, counter
		}
	}
	return best
}

func conflictPaths(conflicts map[string]models.FileEntry) []string {
	if len(conflicts) == 0 {
		return nil
	}
	paths := make([]string, 0, len(conflicts))
	for p := range conflicts {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func sortedEntries(entries map[string]models.FileEntry) []models.FileEntry {
	out := make([]models.FileEntry, 0, len(entries))
	for _, entry := range entries {
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

type pendingCommit struct {
	kind  models.SyncActionKind
	dto   models.CompletedFileDTO
	entry *models.FileEntry
}

// cycle collects the results of one SyncOnce run. local is read-only once
// the scan is done; everything else is guarded by mu while actions run.
type cycle struct {
	vaultID string
	local   map[string]models.FileEntry

	mu        sync.Mutex
	pending   []pendingCommit
	updates   map[string]models.FileEntry
	drops     map[string]struct{}
	conflicts map[string]models.FileEntry
	failed    []models.FailedAction
	touched   []string

	uploaded, downloaded, deleted int
}

func newCycle(vaultID string) *cycle {
	return &cycle{
		vaultID:   vaultID,
		updates:   make(map[string]models.FileEntry),
		drops:     make(map[string]struct{}),
		conflicts: make(map[string]models.FileEntry),
	}
}

func (c *cycle) pend(kind models.SyncActionKind, dto models.CompletedFileDTO, entry *models.FileEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = append(c.pending, pendingCommit{kind: kind, dto: dto, entry: entry})
}

func (c *cycle) store(entry models.FileEntry, kind models.SyncActionKind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updates[entry.Path] = entry
	if kind == models.ActionDownload {
		c.downloaded++
		c.touched = append(c.touched, entry.Path)
	}
}

func (c *cycle) drop(p string, kind models.SyncActionKind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.drops[p] = struct{}{}
	if kind == models.ActionDelete {
		c.deleted++
	}
}

func (c *cycle) conflict(action models.SyncActionDTO) {
	remote := models.FileEntry{Path: action.Path, VectorClock: models.NewVectorClock()}
	if action.RemoteEntry != nil {
		remote = action.RemoteEntry.Clone()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.conflicts[action.Path] = remote
}

// noop settles paths both sides agree on. Tombstones are forgotten; identical
// content with diverged clocks is committed under the merged clock so the
// next diff sees equal clocks.
func (c *cycle) noop(action models.SyncActionDTO) {
	local, ok := c.local[action.Path]
	if !ok {
		return
	}
	if local.Deleted {
		c.drop(action.Path, models.ActionNoop)
		return
	}
	if action.RemoteEntry == nil {
		return
	}

	merged := local.VectorClock.Merge(action.RemoteEntry.VectorClock)
	entry := local.Clone()
	entry.VectorClock = merged

	switch {
	case !merged.Equal(action.RemoteEntry.VectorClock):
		c.pend(models.ActionNoop, models.CompletedFileDTO{
			Path:        local.Path,
			Hash:        local.Hash,
			VectorClock: merged.Clone(),
			Size:        local.Size,
		}, &entry)
	case !merged.Equal(local.VectorClock):
		c.store(entry, models.ActionNoop)
	}
}

func (c *cycle) fail(p string, kind models.SyncActionKind, err error) {
	code := models.CodeOf(err)
	if code == "" {
		code = models.CodeDownloadFailed
		if kind == models.ActionUpload || kind == models.ActionDeleteRemote {
			code = models.CodeUploadFailed
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.failed = append(c.failed, models.FailedAction{Path: p, Kind: kind, Code: code})
}

// acknowledge moves acknowledged pending commits into the index updates.
// Unacknowledged ones stay as they are in the index and are retried.
func (c *cycle) acknowledge(paths []string) {
	acked := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		acked[p] = struct{}{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.pending {
		if _, ok := acked[p.dto.Path]; !ok {
			c.failed = append(c.failed, models.FailedAction{Path: p.dto.Path, Kind: p.kind, Code: models.CodeCommitFailed})
			continue
		}
		switch p.kind {
		case models.ActionUpload:
			c.uploaded++
			c.touched = append(c.touched, p.dto.Path)
		case models.ActionDeleteRemote:
			c.deleted++
		}
		if p.dto.Deleted {
			c.drops[p.dto.Path] = struct{}{}
			continue
		}
		if p.entry != nil {
			c.updates[p.dto.Path] = *p.entry
		}
	}
}
