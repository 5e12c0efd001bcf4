// Package workers provides abstractions for managing and running
// background workers next to the HTTP server.
// It defines the Worker interface, a Workers aggregate that runs several
// workers in a unified way and the TombstoneSweeper that finishes file
// deletions interrupted by a crash or a store failure.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Run blocks until the work is done or ctx is cancelled. Implementations
// must return promptly once ctx is done.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) {
//	    <-ctx.Done()
//	}
type Worker interface {
	Run(ctx context.Context)
}
