package library

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// Refresher is the part of Store the scheduler drives.
type Refresher interface {
	Refresh(ctx context.Context) (Stats, error)
}

// Scheduler refreshes the snapshot on a cron schedule.
type Scheduler struct {
	refresher Refresher
	schedule  string

	cron      *cron.Cron
	mu        sync.Mutex
	isRunning bool
	ctx       context.Context
	cancel    context.CancelFunc
}

func NewScheduler(refresher Refresher, schedule string) *Scheduler {
	return &Scheduler{
		refresher: refresher,
		schedule:  schedule,
		cron:      cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor))),
	}
}

// Start registers the refresh job. An empty schedule leaves the scheduler idle.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}
	if s.schedule == "" {
		slog.Info("library refresh scheduler disabled")
		return nil
	}

	s.ctx, s.cancel = context.WithCancel(ctx)
	if _, err := s.cron.AddFunc(s.schedule, s.run); err != nil {
		s.cancel()
		return fmt.Errorf("invalid cron schedule %q: %w", s.schedule, err)
	}

	s.cron.Start()
	s.isRunning = true
	slog.Info("library refresh scheduler started", "schedule", s.schedule)
	return nil
}

// Stop waits for an in-flight refresh to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}
	s.cancel()
	<-s.cron.Stop().Done()
	s.isRunning = false
	slog.Info("library refresh scheduler stopped")
}

func (s *Scheduler) run() {
	if _, err := s.refresher.Refresh(s.ctx); err != nil {
		slog.Error("scheduled library refresh failed", "error", err)
	}
}
