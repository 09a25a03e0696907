//go:build !deadlock

// Package syncutil provides mutex types with optional deadlock detection.
// The default build uses plain sync mutexes with zero overhead; build with
// -tags=deadlock to swap in github.com/sasha-s/go-deadlock.
package syncutil

import "sync"

// Mutex wraps sync.Mutex. Build with -tags=deadlock for deadlock detection.
//
//nolint:gocritic // Intentionally embedding sync.Mutex to expose its interface
type Mutex struct {
	sync.Mutex
}

// RWMutex wraps sync.RWMutex. Build with -tags=deadlock for deadlock detection.
//
//nolint:gocritic // Intentionally embedding sync.RWMutex to expose its interface
type RWMutex struct {
	sync.RWMutex
}
