package lock

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryLocker only excludes callers inside this process. It is the fallback
// when no Redis is configured.
type MemoryLocker struct {
	mu    sync.Mutex
	cache *cache.Cache
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{cache: cache.New(cache.NoExpiration, time.Minute)}
}

func (l *MemoryLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (func(), bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	token := newToken()
	l.mu.Lock()
	err := l.cache.Add(key, token, ttl)
	l.mu.Unlock()
	if err != nil {
		return nil, false, nil
	}

	release := func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if held, found := l.cache.Get(key); found && held == token {
			l.cache.Delete(key)
		}
	}
	return release, true, nil
}
