// Package locker provides distributed locking for coordinating
// background jobs across multiple service instances.
package locker

import (
	"context"
	"time"
)

// DistributedLocker provides distributed lock capabilities across
// multiple instances. Implementations must be safe for concurrent use.
//
// The ttl doubles as a cooldown when the lock is deliberately left
// unreleased: a scheduler that locks with ttl=interval and never
// releases guarantees at most one run per interval across the fleet.
type DistributedLocker interface {
	// Acquire attempts to acquire a distributed lock with the given key.
	// Returns true if the lock was acquired, false if another instance
	// holds it. The lock expires after ttl if not released.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release releases the lock identified by key. Safe to call even if
	// this instance doesn't own the lock (no-op).
	Release(ctx context.Context, key string) error
}
