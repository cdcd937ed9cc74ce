package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"kelvi_tracker/internal/config"
	"kelvi_tracker/internal/generation"
	"kelvi_tracker/internal/handlers"
	"kelvi_tracker/internal/progress"
	"kelvi_tracker/internal/repository"
	"kelvi_tracker/internal/scheduler"
	"kelvi_tracker/internal/service"
	"kelvi_tracker/internal/trivia"

	"github.com/lmittmann/tint"
)

func newLogger(level string) *slog.Logger {
	logLevel := new(slog.LevelVar)
	switch strings.ToLower(level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
	}

	// APP_ENV=dev のときだけ色付きのテキスト出力
	var handler slog.Handler
	if strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		handler = tint.NewHandler(os.Stderr, &tint.Options{Level: logLevel, TimeFormat: time.RFC3339})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel, AddSource: true})
	}
	return slog.New(handler)
}

func main() {
	configPath := os.Getenv("APP_CONFIG_PATH")
	if configPath == "" {
		configPath = "./configs"
	}
	if err := config.LoadConfig(configPath); err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	cfg := &config.Cfg

	logger := newLogger(cfg.Log.Level)
	slog.SetDefault(logger)
	slog.Info("Application starting...", "app", cfg.App.Name, "version", config.AppVersion)

	db, err := repository.NewDB(cfg.Database, logger)
	if err != nil {
		slog.Error("Error initializing database", "error", err)
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", "error", err)
		} else {
			slog.Info("Database connection closed.")
		}
	}()

	ctx := context.Background()
	loc := cfg.Location()

	mailer, err := service.NewMailer(ctx, cfg)
	if err != nil {
		slog.Error("Error initializing mailer", "error", err)
		os.Exit(1)
	}

	policy, err := progress.ParseOverflowPolicy(cfg.Quiz.HistoryPolicy)
	if err != nil {
		slog.Warn("Invalid quiz history policy, using reset", "error", err)
	}

	// 依存関係の組み立て
	studentRepo := repository.NewGormStudentRepository()
	tokenRepo := repository.NewGormTokenRepository()
	progressRepo := repository.NewGormProgressRepository()

	authService := service.NewAuthService(db, studentRepo, tokenRepo, progressRepo, mailer, cfg)
	progressService := service.NewProgressService(db, progressRepo, loc, nil)
	quizService := service.NewQuizService(db, progressRepo, trivia.NewClient(cfg.Quiz.SourceURL, cfg.Quiz.Timeout), service.QuizOptions{
		MaxFetchAttempts: cfg.Quiz.MaxFetchAttempts,
		History:          progress.History{Limit: cfg.Quiz.HistoryLimit, Policy: policy},
		Location:         loc,
	})
	assistService, err := service.NewAssistService(generation.NewClient(cfg.Generation))
	if err != nil {
		slog.Error("Error loading assist prompts", "error", err)
		os.Exit(1)
	}

	router := handlers.NewRouter(cfg, logger, handlers.Router{
		Auth:     handlers.NewAuthHandler(authService),
		Progress: handlers.NewProgressHandler(progressService),
		Quiz:     handlers.NewQuizHandler(quizService),
		Assist:   handlers.NewAssistHandler(assistService),
		Health:   handlers.NewHealthHandler(db),
	})

	if cfg.Scheduler.Enabled {
		jobs := scheduler.New(db, progressRepo, loc, logger)
		if err := jobs.Start(cfg.Scheduler.PruneAt); err != nil {
			slog.Error("Error starting scheduler", "error", err)
			os.Exit(1)
		}
		defer jobs.Stop()
	}

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Generation.Timeout + 45*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", "port", cfg.Server.Port, "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	slog.Info("Server exiting")
}
