// Package workers provides abstractions for managing and running background
// workers on the client: the periodic sync pass and the tombstone purge.
// It defines the Worker interface and a Workers aggregate that allows running
// multiple workers in a unified way.
package workers

// Worker is the interface that must be implemented by any background worker.
//
// Implementations are expected to return from Run quickly, spawning goroutines
// internally, and to terminate those goroutines in Stop.
type Worker interface {
	// Run starts the worker's background execution.
	Run()

	// Stop signals the worker to exit and waits for its goroutines.
	Stop()
}
