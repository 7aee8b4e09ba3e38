package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-vault-sync/internal/service"
)

type syncJobWorker struct {
	job      service.ClientSyncJob
	interval time.Duration
	debounce time.Duration
}

// NewSyncJobWorker runs job for the lifetime of the worker.
func NewSyncJobWorker(job service.ClientSyncJob, interval, debounce time.Duration) Worker {
	return &syncJobWorker{job: job, interval: interval, debounce: debounce}
}

func (w *syncJobWorker) Run(ctx context.Context) error {
	w.job.Start(ctx, w.interval, w.debounce)
	<-ctx.Done()
	w.job.Stop()
	return nil
}
