package service

import (
	"sync"

	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/models"
)

// StatusObserver receives status snapshots.
type StatusObserver func(models.SyncStatusSnapshot)

// StatusBroadcaster fans snapshots out to observers. Each observer gets
// snapshots in publish order on a goroutine of its own; a panicking or slow
// observer never blocks Publish or the other observers.
type StatusBroadcaster struct {
	mu        sync.RWMutex
	nextID    int
	observers map[int]*subscription
	last      models.SyncStatusSnapshot

	logger *logger.Logger
}

type subscription struct {
	fn StatusObserver

	mu       sync.Mutex
	queue    []models.SyncStatusSnapshot
	draining bool
	closed   bool
}

func NewStatusBroadcaster(log *logger.Logger) *StatusBroadcaster {
	return &StatusBroadcaster{observers: make(map[int]*subscription), logger: log}
}

// Subscribe registers fn and returns a function that removes it. Snapshots
// still queued for fn are dropped.
func (b *StatusBroadcaster) Subscribe(fn StatusObserver) func() {
	sub := &subscription{fn: fn}

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.observers[id] = sub
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.observers, id)
			b.mu.Unlock()

			sub.mu.Lock()
			sub.closed = true
			sub.queue = nil
			sub.mu.Unlock()
		})
	}
}

// Publish stamps the badge on snapshot and delivers it to every observer.
func (b *StatusBroadcaster) Publish(snapshot models.SyncStatusSnapshot) {
	snapshot.Badge = snapshot.BadgeFor()

	b.mu.Lock()
	b.last = snapshot
	subs := make([]*subscription, 0, len(b.observers))
	for _, sub := range b.observers {
		subs = append(subs, sub)
	}
	// enqueue under the lock so concurrent publishers keep one order
	for _, sub := range subs {
		b.enqueue(sub, snapshot)
	}
	b.mu.Unlock()
}

// Last returns the most recently published snapshot.
func (b *StatusBroadcaster) Last() models.SyncStatusSnapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.last
}

func (b *StatusBroadcaster) enqueue(sub *subscription, snapshot models.SyncStatusSnapshot) {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	if sub.closed {
		return
	}
	sub.queue = append(sub.queue, snapshot)
	if !sub.draining {
		sub.draining = true
		go b.drain(sub)
	}
}

func (b *StatusBroadcaster) drain(sub *subscription) {
	for {
		sub.mu.Lock()
		if len(sub.queue) == 0 || sub.closed {
			sub.draining = false
			sub.mu.Unlock()
			return
		}
		snapshot := sub.queue[0]
		sub.queue = sub.queue[1:]
		sub.mu.Unlock()

		b.deliver(sub.fn, snapshot)
	}
}

func (b *StatusBroadcaster) deliver(fn StatusObserver, snapshot models.SyncStatusSnapshot) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error().Interface("panic", r).Msg("status observer panicked")
		}
	}()
	fn(snapshot)
}
