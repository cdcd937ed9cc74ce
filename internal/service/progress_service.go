package service

import (
	"context"
	"time"

	"kelvi_tracker/internal/middleware"
	"kelvi_tracker/internal/model"
	"kelvi_tracker/internal/progress"
	"kelvi_tracker/internal/repository"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockery --name ProgressService --output ./mocks --outpkg mocks --case=underscore
type ProgressService interface {
	// GetDashboard は日付の変わり目を反映してから現在のストリークを返す
	GetDashboard(ctx context.Context, studentID uuid.UUID) (*model.ProgressResponse, error)
	SubmitAnswer(ctx context.Context, studentID uuid.UUID, correct bool) (*model.ProgressResponse, error)
	GetWeek(ctx context.Context, studentID uuid.UUID) (*model.WeekResponse, error)
}

type progressService struct {
	db    *gorm.DB
	store progressStore
	loc   *time.Location
	now   func() time.Time
}

// NewProgressService は loc を日付境界として使う。now が nil なら time.Now。
func NewProgressService(db *gorm.DB, progressRepo repository.ProgressRepository, loc *time.Location, now func() time.Time) ProgressService {
	if now == nil {
		now = time.Now
	}
	return &progressService{
		db:    db,
		store: progressStore{repo: progressRepo},
		loc:   loc,
		now:   now,
	}
}

func (s *progressService) today() civil.Date {
	return progress.Today(s.now(), s.loc)
}

func (s *progressService) GetDashboard(ctx context.Context, studentID uuid.UUID) (*model.ProgressResponse, error) {
	logger := middleware.GetLogger(ctx)
	today := s.today()
	var resp *model.ProgressResponse

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec, current, err := s.store.load(ctx, tx, studentID, today)
		if err != nil {
			return err
		}

		updated := progress.ObserveLogin(current, today)
		if updated.Streak != current.Streak || updated.LastStreakUpdate != current.LastStreakUpdate {
			logger.Info("Day rollover observed, streak reset",
				"previous_streak", current.Streak,
				"last_update", current.LastStreakUpdate.String(),
				"today", today.String(),
			)
			if err := s.store.save(ctx, tx, rec, updated, today); err != nil {
				return err
			}
		}

		resp = toProgressResponse(updated, today)
		return nil
	})
	if err != nil {
		logger.Error("Failed to load dashboard progress", "error", err)
		return nil, err
	}
	return resp, nil
}

func (s *progressService) SubmitAnswer(ctx context.Context, studentID uuid.UUID, correct bool) (*model.ProgressResponse, error) {
	logger := middleware.GetLogger(ctx)
	today := s.today()
	var resp *model.ProgressResponse

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec, current, err := s.store.load(ctx, tx, studentID, today)
		if err != nil {
			return err
		}

		updated := progress.RecordAnswer(current, today, correct)
		if err := s.store.save(ctx, tx, rec, updated, today); err != nil {
			return err
		}

		resp = toProgressResponse(updated, today)
		return nil
	})
	if err != nil {
		logger.Error("Failed to record answer", "error", err, "correct", correct)
		return nil, err
	}

	logger.Info("Answer recorded", "correct", correct, "streak", resp.Streak)
	return resp, nil
}

func (s *progressService) GetWeek(ctx context.Context, studentID uuid.UUID) (*model.WeekResponse, error) {
	today := s.today()
	_, current, err := s.store.load(ctx, s.db, studentID, today)
	if err != nil {
		return nil, err
	}
	return &model.WeekResponse{
		WeekStart: progress.StartOfWeek(today).String(),
		Week:      progress.RefreshWeek(current, today),
	}, nil
}
