package scheduler

import (
	"context"
	"fmt"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"

	"github.com/EdsonAvelino/StrikeTecAPI-sub001/internal/infrastructure/config"
)

// Finalizer finalizes battles whose sides have both finished
type Finalizer interface {
	FinalizePending(ctx context.Context, limit int) (int, error)
}

// Scheduler runs the pending battle finalizer on a fixed interval
type Scheduler struct {
	sched     gocron.Scheduler
	finalizer Finalizer
	cfg       config.SchedulerConfig
	log       *zap.Logger
}

// New creates a scheduler with the finalizer job registered but not started
func New(cfg *config.SchedulerConfig, finalizer Finalizer, log *zap.Logger) (*Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	s := &Scheduler{
		sched:     sched,
		finalizer: finalizer,
		cfg:       *cfg,
		log:       log.Named("scheduler"),
	}

	_, err = sched.NewJob(
		gocron.DurationJob(cfg.FinalizeInterval),
		gocron.NewTask(s.runOnce),
		gocron.WithName("finalize-pending-battles"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, fmt.Errorf("failed to register finalize job: %w", err)
	}

	return s, nil
}

// Start begins running jobs
func (s *Scheduler) Start() {
	s.sched.Start()
	s.log.Info("Scheduler started", zap.Duration("finalize_interval", s.cfg.FinalizeInterval))
}

// Shutdown stops the scheduler and waits for running jobs
func (s *Scheduler) Shutdown() error {
	return s.sched.Shutdown()
}

func (s *Scheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.FinalizeInterval)
	defer cancel()

	n, err := s.finalizer.FinalizePending(ctx, s.cfg.BatchSize)
	if err != nil {
		s.log.Error("Failed to finalize pending battles", zap.Error(err), zap.Int("finalized", n))
		return
	}
	if n > 0 {
		s.log.Info("Finalized pending battles", zap.Int("finalized", n))
	}
}
