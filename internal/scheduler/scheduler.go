// Package scheduler runs periodic background jobs for the bot.
package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// Pinger is the slice of the location store the health probe needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Scheduler periodically probes the location store so operators learn
// about a degraded store before users do. It never touches weather
// data; there is no prefetching or caching.
type Scheduler struct {
	scheduler *gocron.Scheduler
	store     Pinger
	interval  time.Duration
	log       *zap.SugaredLogger
}

// New creates a new Scheduler.
func New(store Pinger, interval time.Duration, log *zap.SugaredLogger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		store:     store,
		interval:  interval,
		log:       log,
	}
}

// Start schedules the periodic probe and starts the underlying
// scheduler asynchronously.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 5
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.store.Ping(ctx); err != nil {
			s.log.Warnw("location store unreachable", "error", err)
			return
		}
		s.log.Debugw("location store healthy")
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
