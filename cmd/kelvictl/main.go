// kelvictl はサーバーを起動せずに DB を操作する運用コマンド。
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"kelvi_tracker/internal/config"
	"kelvi_tracker/internal/progress"
	"kelvi_tracker/internal/repository"
	"kelvi_tracker/internal/scheduler"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var configPath string

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "kelvictl",
	Short:   "Maintenance commands for the KelviAI tracker database",
	Version: config.AppVersion,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./configs", "directory containing config.yaml")
	rootCmd.AddCommand(migrateCmd, pruneCmd, studentCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, closeDB, err := openDB()
		if err != nil {
			return err
		}
		defer closeDB()

		if err := repository.Migrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date.")
		return nil
	},
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete weekly streak rows older than the current week",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, closeDB, err := openDB()
		if err != nil {
			return err
		}
		defer closeDB()

		jobs := scheduler.New(db, repository.NewGormProgressRepository(), config.Cfg.Location(), slog.Default())
		n, err := jobs.PruneCalendars(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d row(s).\n", n)
		return nil
	},
}

var studentCmd = &cobra.Command{
	Use:   "student <email>",
	Short: "Show a student's streak and this week's calendar",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, closeDB, err := openDB()
		if err != nil {
			return err
		}
		defer closeDB()

		ctx := cmd.Context()
		student, err := repository.NewGormStudentRepository().FindByEmail(ctx, db, args[0])
		if err != nil {
			return fmt.Errorf("student %s: %w", args[0], err)
		}
		return printProgress(ctx, cmd, db, student.StudentID, student.Name)
	},
}

func printProgress(ctx context.Context, cmd *cobra.Command, db *gorm.DB, studentID uuid.UUID, name string) error {
	repo := repository.NewGormProgressRepository()
	rec, err := repo.FindByStudentID(ctx, db, studentID)
	if err != nil {
		return fmt.Errorf("progress: %w", err)
	}

	today := progress.Today(time.Now(), config.Cfg.Location())
	weekStart := progress.StartOfWeek(today)
	rows, err := repo.FindWeeklyStreaks(ctx, db, rec.StudentID, weekStart.String())
	if err != nil {
		return fmt.Errorf("weekly streaks: %w", err)
	}

	out := cmd.OutOrStdout()
	last := "-"
	if rec.LastStreakUpdate != nil {
		last = *rec.LastStreakUpdate
	}
	fmt.Fprintf(out, "%s (%s)\n", name, studentID)
	fmt.Fprintf(out, "  streak:       %d\n", rec.Streak)
	fmt.Fprintf(out, "  last update:  %s\n", last)
	fmt.Fprintf(out, "  shown ids:    %d\n", len(rec.ShownQuestionIDs))
	fmt.Fprintf(out, "  week of %s:\n", weekStart)
	for _, row := range rows {
		fmt.Fprintf(out, "    %s  %t\n", row.StreakDate, row.HasStreak)
	}
	return nil
}

func openDB() (*gorm.DB, func(), error) {
	if err := config.LoadConfig(configPath); err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	db, err := repository.NewDB(config.Cfg.Database, slog.Default())
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	return db, func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}, nil
}
