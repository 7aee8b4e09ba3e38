// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/watcher"
)

type funcWorker func(ctx context.Context) error

func (f funcWorker) Run(ctx context.Context) error { return f(ctx) }

func TestWorkers_RunUntilCancelled(t *testing.T) {
	var stopped atomic.Int32
	block := funcWorker(func(ctx context.Context) error {
		<-ctx.Done()
		stopped.Add(1)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewWorkers(block, block, block).Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("workers did not stop")
	}
	assert.Equal(t, int32(3), stopped.Load())
}

func TestWorkers_FirstErrorCancelsOthers(t *testing.T) {
	boom := errors.New("boom")
	failing := funcWorker(func(context.Context) error { return boom })
	block := funcWorker(func(ctx context.Context) error {
		<-ctx.Done()
		return nil
	})

	err := NewWorkers(block, failing).Run(context.Background())

	assert.ErrorIs(t, err, boom)
}

func TestWorkers_Empty(t *testing.T) {
	assert.NoError(t, NewWorkers().Run(context.Background()))
}

type spyJob struct {
	mu       sync.Mutex
	started  bool
	stopped  bool
	interval time.Duration
	debounce time.Duration
	triggers int
}

func (s *spyJob) Start(_ context.Context, interval, debounce time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started, s.interval, s.debounce = true, interval, debounce
}

func (s *spyJob) Trigger() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.triggers++
}

func (s *spyJob) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
}

func (s *spyJob) triggerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.triggers
}

func TestSyncJobWorker(t *testing.T) {
	job := &spyJob{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, NewSyncJobWorker(job, time.Minute, time.Second).Run(ctx))

	assert.True(t, job.started)
	assert.True(t, job.stopped)
	assert.Equal(t, time.Minute, job.interval)
	assert.Equal(t, time.Second, job.debounce)
}

type fakeSource struct {
	root     string
	startErr error
	stopped  atomic.Bool
	events   chan watcher.FileEvent
}

func (f *fakeSource) Start(root string) error {
	f.root = root
	return f.startErr
}

func (f *fakeSource) Stop() error {
	f.stopped.Store(true)
	return nil
}

func (f *fakeSource) Events() <-chan watcher.FileEvent { return f.events }

func TestWatchWorker_EventsTriggerSync(t *testing.T) {
	source := &fakeSource{events: make(chan watcher.FileEvent)}
	job := &spyJob{}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewWatchWorker("/vault", source, job, logger.Nop()).Run(ctx) }()

	source.events <- watcher.FileEvent{Path: "a.md", Op: watcher.OpModify}
	source.events <- watcher.FileEvent{Path: "b.md", Op: watcher.OpCreate}
	cancel()

	require.NoError(t, <-done)
	assert.Equal(t, 2, job.triggerCount())
	assert.Equal(t, "/vault", source.root)
	assert.True(t, source.stopped.Load())
}

func TestWatchWorker_ClosedEventsEndsWorker(t *testing.T) {
	source := &fakeSource{events: make(chan watcher.FileEvent)}
	close(source.events)

	err := NewWatchWorker("/vault", source, &spyJob{}, logger.Nop()).Run(context.Background())

	assert.NoError(t, err)
}

func TestWatchWorker_StartError(t *testing.T) {
	source := &fakeSource{startErr: watcher.ErrAlreadyRunning}

	err := NewWatchWorker("/vault", source, &spyJob{}, logger.Nop()).Run(context.Background())

	assert.ErrorIs(t, err, watcher.ErrAlreadyRunning)
}
