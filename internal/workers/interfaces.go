// Package workers runs the long-lived background loops of the sync client:
// the periodic and debounced sync job, and the filesystem watcher that
// feeds it. A Workers aggregate runs them together and stops them together.
package workers

import "context"

// Worker is a background loop. Run blocks until ctx is cancelled or the
// worker fails, and must release its resources before returning.
type Worker interface {
	Run(ctx context.Context) error
}
