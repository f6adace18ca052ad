// Package holdsweeper периодически удаляет давно истекшие холды.
// На доступность это не влияет: истекший холд уже не блокирует слот, удаление лишь ограничивает рост таблицы
package holdsweeper

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
)

const jobName = "hold-sweeper"

type Sweeper struct {
	holdRepo     HoldRepository
	metrics      Metrics
	grace        time.Duration
	cronExpr     string
	timeProvider TimeProvider
	logger       Logger
}

func NewSweeper(holdRepo HoldRepository, metrics Metrics, cronExpr string, grace time.Duration, logger Logger) *Sweeper {
	if grace < 0 {
		grace = 0
	}
	return &Sweeper{
		holdRepo:     holdRepo,
		metrics:      metrics,
		grace:        grace,
		cronExpr:     cronExpr,
		timeProvider: RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (s *Sweeper) WithTimeProvider(tp TimeProvider) *Sweeper {
	s.timeProvider = tp
	return s
}

// SweepOnce удаляет холды, истекшие раньше now - grace
func (s *Sweeper) SweepOnce(ctx context.Context) (int64, error) {
	before := s.timeProvider.Now().Add(-s.grace)

	n, err := s.holdRepo.DeleteExpired(ctx, before)
	if err != nil {
		return 0, fmt.Errorf("holdsweeper: delete expired: %w", err)
	}

	s.metrics.AddHoldsSwept(n)
	if n > 0 {
		s.logger.Info("HoldSweeper - Expired holds removed: count=%d, expired_before=%s", n, before.Format(time.RFC3339))
	}
	return n, nil
}

// Run регистрирует задачу по cron-выражению и блокируется до отмены ctx
func (s *Sweeper) Run(ctx context.Context) error {
	sched, err := gocron.NewScheduler(
		gocron.WithGlobalJobOptions(
			gocron.WithEventListeners(
				gocron.AfterJobRunsWithPanic(func(jobID uuid.UUID, name string, recoverData any) {
					s.logger.Error("HoldSweeper - Job panicked: job_id=%s, job_name=%s, panic=%v", jobID, name, recoverData)
				}),
			),
		),
	)
	if err != nil {
		return fmt.Errorf("holdsweeper: create scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.CronJob(s.cronExpr, false),
		gocron.NewTask(func() {
			if _, err := s.SweepOnce(ctx); err != nil {
				s.logger.Error("HoldSweeper - Sweep failed: %v", err)
			}
		}),
		gocron.WithName(jobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = sched.Shutdown()
		return fmt.Errorf("holdsweeper: register job %q: %w", s.cronExpr, err)
	}

	s.logger.Info("HoldSweeper - Started: cron=%q, grace=%s", s.cronExpr, s.grace)
	sched.Start()

	<-ctx.Done()

	if err := sched.Shutdown(); err != nil {
		return fmt.Errorf("holdsweeper: shutdown scheduler: %w", err)
	}
	s.logger.Info("HoldSweeper - Stopped")
	return nil
}
