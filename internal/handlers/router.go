package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"kelvi_tracker/internal/config"
	"kelvi_tracker/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// Router は chi ルーターの組み立てに必要なハンドラー一式
type Router struct {
	Auth     *AuthHandler
	Progress *ProgressHandler
	Quiz     *QuizHandler
	Assist   *AssistHandler
	Health   *HealthHandler
}

// NewRouter は cfg.Auth.Enabled が false のとき X-Student-ID ヘッダーで認証する
func NewRouter(cfg *config.Config, logger *slog.Logger, h Router) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}).Handler)
	r.Use(chimiddleware.Recoverer)
	// 生成 API の待ち時間を含める
	r.Use(chimiddleware.Timeout(cfg.Generation.Timeout + 30*time.Second))

	r.Get("/health", h.Health.Check)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", h.Auth.Signup)
			r.Get("/verify", h.Auth.VerifyAccount)
			r.Post("/login", h.Auth.Login)
			r.Post("/forgot-password", h.Auth.RequestPasswordReset)
			r.Post("/reset-password", h.Auth.ResetPassword)
		})

		r.Group(func(r chi.Router) {
			if cfg.Auth.Enabled {
				r.Use(middleware.JWTAuthMiddleware(cfg))
			} else {
				logger.Warn("Authentication is disabled; using X-Student-ID header")
				r.Use(middleware.DevStudentContextMiddleware)
			}

			r.Get("/me", h.Auth.GetMe)

			r.Route("/progress", func(r chi.Router) {
				r.Get("/", h.Progress.GetDashboard)
				r.Post("/answers", h.Progress.SubmitAnswer)
				r.Get("/week", h.Progress.GetWeek)
			})

			r.Get("/quiz/next", h.Quiz.NextQuestion)

			r.Route("/assist", func(r chi.Router) {
				r.Post("/doubt", h.Assist.SolveDoubt)
				r.Post("/homework", h.Assist.HelpHomework)
				r.Post("/paper-analysis", h.Assist.AnalyzePaper)
				r.Post("/question-paper", h.Assist.GenerateQuestionPaper)
			})
		})
	})

	return r
}
