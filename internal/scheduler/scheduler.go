// Package scheduler は定期ジョブ (週カレンダーの掃除) を動かす。
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"kelvi_tracker/internal/middleware"
	"kelvi_tracker/internal/progress"
	"kelvi_tracker/internal/repository"

	"github.com/go-co-op/gocron"
	"gorm.io/gorm"
)

type Scheduler struct {
	cron   *gocron.Scheduler
	db     *gorm.DB
	repo   repository.ProgressRepository
	loc    *time.Location
	now    func() time.Time
	logger *slog.Logger
}

func New(db *gorm.DB, repo repository.ProgressRepository, loc *time.Location, logger *slog.Logger) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		cron:   gocron.NewScheduler(loc),
		db:     db,
		repo:   repo,
		loc:    loc,
		now:    time.Now,
		logger: logger,
	}
}

// Start は毎日 at ("HH:MM") に PruneCalendars を実行する
func (s *Scheduler) Start(at string) error {
	_, err := s.cron.Every(1).Day().At(at).Do(func() {
		if _, err := s.PruneCalendars(context.Background()); err != nil {
			s.logger.Error("Calendar prune job failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("scheduler.Start: %w", err)
	}
	s.cron.StartAsync()
	s.logger.Info("Scheduler started", "prune_at", at, "timezone", s.loc.String())
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// PruneCalendars は全生徒の今週より前のカレンダー行を削除する
func (s *Scheduler) PruneCalendars(ctx context.Context) (int64, error) {
	ctx = middleware.WithLogger(ctx, s.logger.With("job", "prune_calendars"))
	before := progress.StartOfWeek(progress.Today(s.now(), s.loc))

	n, err := s.repo.PruneWeeklyStreaks(ctx, s.db, before.String())
	if err != nil {
		return 0, err
	}
	s.logger.Info("Pruned weekly streak rows", "before", before.String(), "deleted", n)
	return n, nil
}
