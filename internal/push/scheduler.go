package push

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

const sweepTimeout = 5 * time.Minute

// Scheduler periodically runs the dispatcher for deployments without an
// external cron. The HTTP sweep endpoint remains usable alongside it;
// the dispatcher's run lock keeps the two from overlapping.
type Scheduler struct {
	mu         sync.RWMutex
	dispatcher *Dispatcher
	interval   time.Duration
	logger     *slog.Logger
	cancel     context.CancelFunc
	done       chan struct{}
}

func NewScheduler(d *Dispatcher, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		dispatcher: d,
		interval:   interval,
		logger:     logger,
	}
}

// Start begins the scheduler loop.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	s.mu.Unlock()

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweep(ctx)
			}
		}
	}()
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	s.mu.RLock()
	cancel := s.cancel
	done := s.done
	s.mu.RUnlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

func (s *Scheduler) sweep(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, sweepTimeout)
	defer cancel()

	res, err := s.dispatcher.Run(ctx)
	if err != nil {
		if errors.Is(err, ErrSweepInProgress) {
			s.logger.Warn("sweep skipped, previous run still in progress")
			return
		}
		s.logger.Error("scheduled sweep failed", "error", err)
		return
	}
	s.logger.Info("scheduled sweep",
		"bills_checked", res.BillsChecked,
		"bills_selected", res.BillsSelected,
		"notifications_sent", res.NotificationsSent,
	)
}
