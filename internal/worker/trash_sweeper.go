package worker

import (
	"context"
	"time"

	"keep-notes-be/internal/dto"
	"keep-notes-be/internal/pkg/logger"
)

type TrashCleaner interface {
	CleanupTrash(ctx context.Context) (*dto.CleanupTrashResponse, error)
}

// TrashSweeper runs the retention sweep on a fixed interval. Other instances
// may run their own sweeper; the cleaner's lock keeps the sweeps apart.
type TrashSweeper struct {
	cleaner  TrashCleaner
	interval time.Duration
	log      logger.ILogger
}

func NewTrashSweeper(cleaner TrashCleaner, interval time.Duration, log logger.ILogger) *TrashSweeper {
	return &TrashSweeper{
		cleaner:  cleaner,
		interval: interval,
		log:      log,
	}
}

// Run sweeps once immediately, then on every tick until ctx is cancelled.
func (s *TrashSweeper) Run(ctx context.Context) {
	s.log.Info("SWEEPER", "Trash sweeper started", map[string]interface{}{"interval": s.interval.String()})

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			s.log.Info("SWEEPER", "Trash sweeper stopped", nil)
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *TrashSweeper) sweep(ctx context.Context) {
	res, err := s.cleaner.CleanupTrash(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		s.log.Error("SWEEPER", "Trash sweep failed", map[string]interface{}{"error": err})
		return
	}
	if res.Skipped {
		s.log.Debug("SWEEPER", "Another sweep holds the lock", nil)
	}
}
