// Package workers runs the background jobs of the server.
//
// A [Worker] blocks in Run until its context is cancelled. [Workers]
// starts a set of them together and waits for all of them to return, so
// shutting down the server is a matter of cancelling one context.
package workers

import "context"

// Worker is a long-running background job.
//
// Run must block until ctx is done and must not leave goroutines behind
// when it returns.
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
