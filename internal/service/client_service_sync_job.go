package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/models"
)

// Default timings used when Start gets a non-positive value.
const (
	defaultJobInterval = 5 * time.Minute
	defaultJobDebounce = 2 * time.Second
)

// SyncRunner runs one sync cycle.
type SyncRunner interface {
	SyncOnce(ctx context.Context) (models.SyncStatusSnapshot, error)
}

type clientSyncJob struct {
	runner SyncRunner
	logger *logger.Logger

	trigger chan struct{}

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewClientSyncJob creates a clientSyncJob that calls runner.SyncOnce on a
// ticker and after bursts of Trigger calls. The job is idle until Start is
// called.
func NewClientSyncJob(runner SyncRunner, log *logger.Logger) ClientSyncJob {
	return &clientSyncJob{
		runner:  runner,
		logger:  log,
		trigger: make(chan struct{}, 1),
	}
}

// Start implements ClientSyncJob. It stops any previously running job, then
// launches a background goroutine that runs a cycle every interval and once
// debounce has passed without a new Trigger. Non-positive values fall back
// to 5 minutes and 2 seconds. The goroutine exits when ctx is cancelled or
// Stop is called.
func (j *clientSyncJob) Start(ctx context.Context, interval, debounce time.Duration) {
	if interval <= 0 {
		interval = defaultJobInterval
	}
	if debounce <= 0 {
		debounce = defaultJobDebounce
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		// stopped until the first Trigger
		d := time.NewTimer(debounce)
		d.Stop()
		defer d.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-j.trigger:
				d.Reset(debounce)
			case <-d.C:
				j.run(jobCtx)
			case <-t.C:
				j.run(jobCtx)
			}
		}
	}()
}

// Trigger implements ClientSyncJob. Calls while a request is already queued
// are coalesced; each call restarts the debounce window.
func (j *clientSyncJob) Trigger() {
	select {
	case j.trigger <- struct{}{}:
	default:
	}
}

// Stop implements ClientSyncJob. It cancels the background goroutine's context and
// blocks until the goroutine has fully exited. Safe to call when the job is not
// running (no-op in that case).
func (j *clientSyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

func (j *clientSyncJob) run(ctx context.Context) {
	if _, err := j.runner.SyncOnce(ctx); err != nil {
		j.logger.Debug().Err(err).Str("code", string(models.CodeOf(err))).Msg("scheduled sync did not complete")
	}
}
