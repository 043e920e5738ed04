package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"keep-notes-be/internal/dto"
	"keep-notes-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
)

type countingCleaner struct {
	calls int32
	err   error
}

func (c *countingCleaner) CleanupTrash(ctx context.Context) (*dto.CleanupTrashResponse, error) {
	atomic.AddInt32(&c.calls, 1)
	if c.err != nil {
		return nil, c.err
	}
	return &dto.CleanupTrashResponse{}, nil
}

func (c *countingCleaner) count() int32 {
	return atomic.LoadInt32(&c.calls)
}

func TestTrashSweeper_RunsUntilCancelled(t *testing.T) {
	cleaner := &countingCleaner{}
	sweeper := NewTrashSweeper(cleaner, 10*time.Millisecond, logger.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return cleaner.count() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}

	stopped := cleaner.count()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, cleaner.count())
}

func TestTrashSweeper_KeepsGoingAfterErrors(t *testing.T) {
	cleaner := &countingCleaner{err: errors.New("db down")}
	sweeper := NewTrashSweeper(cleaner, 5*time.Millisecond, logger.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sweeper.Run(ctx)

	assert.Eventually(t, func() bool { return cleaner.count() >= 2 }, time.Second, 5*time.Millisecond)
}
