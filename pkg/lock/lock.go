// Package lock provides short-lived mutual exclusion for background jobs
// that may run on more than one instance at a time.
package lock

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Locker hands out named leases. A lease expires on its own after ttl so a
// crashed holder cannot block others forever.
type Locker interface {
	// TryLock returns ok=false without error when someone else holds key.
	TryLock(ctx context.Context, key string, ttl time.Duration) (release func(), ok bool, err error)
}

func newToken() string {
	return uuid.NewString()
}
