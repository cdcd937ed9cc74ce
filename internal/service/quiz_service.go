package service

import (
	"context"
	"time"

	"kelvi_tracker/internal/middleware"
	"kelvi_tracker/internal/model"
	"kelvi_tracker/internal/progress"
	"kelvi_tracker/internal/repository"
	"kelvi_tracker/internal/trivia"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockery --name QuizService --output ./mocks --outpkg mocks --case=underscore
type QuizService interface {
	// NextQuestion はまだ出していない問題を優先して1問返す。
	// 問題ソースが使えない場合は固定の問題 (履歴には記録しない) を返す。
	NextQuestion(ctx context.Context, studentID uuid.UUID) (*model.QuestionResponse, error)
}

type QuizOptions struct {
	MaxFetchAttempts int
	History          progress.History
	Location         *time.Location
	Now              func() time.Time
}

type quizService struct {
	db     *gorm.DB
	store  progressStore
	source trivia.Source
	opts   QuizOptions
}

func NewQuizService(db *gorm.DB, progressRepo repository.ProgressRepository, source trivia.Source, opts QuizOptions) QuizService {
	if opts.MaxFetchAttempts <= 0 {
		opts.MaxFetchAttempts = 1
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &quizService{
		db:     db,
		store:  progressStore{repo: progressRepo},
		source: source,
		opts:   opts,
	}
}

func (s *quizService) NextQuestion(ctx context.Context, studentID uuid.UUID) (*model.QuestionResponse, error) {
	logger := middleware.GetLogger(ctx)
	today := progress.Today(s.opts.Now(), s.opts.Location)

	// 外部呼び出し中はトランザクションを張らない
	_, snapshot, err := s.store.load(ctx, s.db, studentID, today)
	if err != nil {
		return nil, err
	}

	history := s.opts.History
	shown := snapshot.ShownQuestionIDs
	var picked *model.TriviaQuestion
	var fingerprints []string
	novel := false

	for attempt := 1; attempt <= s.opts.MaxFetchAttempts; attempt++ {
		q, err := s.source.FetchQuestion(ctx)
		if err != nil {
			logger.Warn("Trivia source failed", "error", err, "attempt", attempt)
			break
		}
		fp := progress.Fingerprint(q.QuestionText)
		picked = q
		fingerprints = append(fingerprints, fp)
		novel = history.IsNovel(shown, fp)
		shown = history.Record(shown, fp)
		if novel {
			break
		}
		logger.Debug("Trivia question already shown, refetching", "fingerprint", fp, "attempt", attempt)
	}

	if picked == nil {
		logger.Info("Serving fallback trivia question")
		return toQuestionResponse(trivia.Fallback(), true, false), nil
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec, current, err := s.store.load(ctx, tx, studentID, today)
		if err != nil {
			return err
		}
		// 読み直した最新の履歴に対して記録し直す
		for _, fp := range fingerprints {
			current.ShownQuestionIDs = history.Record(current.ShownQuestionIDs, fp)
		}
		return s.store.save(ctx, tx, rec, current, today)
	})
	if err != nil {
		logger.Error("Failed to record shown question", "error", err)
		return nil, err
	}

	logger.Info("Trivia question served", "novel", novel, "fetches", len(fingerprints))
	return toQuestionResponse(picked, false, novel), nil
}

func toQuestionResponse(q *model.TriviaQuestion, fallback, novel bool) *model.QuestionResponse {
	return &model.QuestionResponse{
		Category:     q.Category,
		Question:     q.QuestionText,
		Options:      q.Options,
		CorrectIndex: q.CorrectIndex,
		Fallback:     fallback,
		Novel:        novel,
	}
}
