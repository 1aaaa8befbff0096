// Package workers provides abstractions for managing and running
// background maintenance workers of the application.
// It defines the Worker interface and a Workers aggregate that allows
// running multiple workers in a unified way.
package workers

import "time"

// Worker is the interface that must be implemented by any background worker.
// It defines a single Run method that starts the worker's execution.
//
// Implementations are expected to spawn their goroutines internally and
// return immediately.
type Worker interface {
	Run()
}

// LimiterCleaner is the slice of the rate limiter the GC worker needs.
type LimiterCleaner interface {
	Cleanup(now time.Time) int
}
