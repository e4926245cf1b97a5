package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jcamiloaa/experienciaas/internal/config"
	"github.com/jcamiloaa/experienciaas/internal/jobs"
	"github.com/jcamiloaa/experienciaas/internal/logger"
	"github.com/jcamiloaa/experienciaas/internal/repository/postgres"
	"github.com/jcamiloaa/experienciaas/internal/scheduler"
	"github.com/jcamiloaa/experienciaas/internal/service"
	"github.com/jcamiloaa/experienciaas/internal/utils"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g. 'generate-daily-stats', 'sweep-suspensions', 'backfill', 'all-nightly')")
	date := flag.String("date", "", "Date (YYYY-MM-DD) for generate-daily-stats; defaults to yesterday")
	days := flag.Int("days", 0, "Number of days for backfill; defaults to analytics.backfill_days")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting cronjob runner", "log_level", cfg.Log.Level)

	logger.Info("Connecting to database", "host", cfg.Database.Host, "port", cfg.Database.Port)
	store, err := postgres.Open(cfg.Database.DSN(), cfg.Database.MaxOpen, cfg.Database.MaxIdle)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	logger.Info("Database connection established")

	var email service.EmailSender
	if cfg.Email.SendGridAPIKey != "" {
		email = service.NewSendGridSender(cfg.Email.SendGridAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
	}

	policy := service.NewPolicy()
	roleService := service.NewRoleService(
		store.Users, store.RoleApplications, store.OrganizerProfiles,
		store.SupplierProfiles, store.Follows, policy, email,
	)
	// Jobs write snapshots; they never read dashboards, so no cache.
	analyticsService := service.NewAnalyticsService(
		store.Users, store.Events, store.Tickets, store.Follows, store.OrganizerProfiles,
		store.Analytics, store.DailyStats, policy, nil, 0,
	)

	jobRunner := jobs.NewJobRunner(roleService, analyticsService, cfg)
	seeder := jobs.NewSeeder(store.Users, store.OrganizerProfiles, store.Events, store.Tickets, store.Analytics)

	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, seeder, cfg, *runOnce, *date, *days)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	cronScheduler := scheduler.NewScheduler(jobRunner)
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down cronjob scheduler")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped")
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, seeder *jobs.Seeder, cfg *config.Config, jobName, date string, days int) {
	switch jobName {
	case "generate-daily-stats":
		target := utils.Yesterday(time.Now())
		if date != "" {
			parsed, err := utils.ParseDate(date)
			if err != nil {
				logger.Error("Invalid date", "date", date, "error", err)
				os.Exit(1)
			}
			target = parsed
		}
		if err := jobRunner.GenerateDailyStatsFor(target); err != nil {
			logger.Error("Daily stats generation failed", "error", err)
			os.Exit(1)
		}
	case "sweep-suspensions":
		jobRunner.SweepExpiredSuspensions()
	case "backfill":
		if days <= 0 {
			days = cfg.Analytics.BackfillDays
		}
		jobRunner.BackfillDailyStats(days)
	case "all-nightly":
		jobRunner.RunAllNightlyJobs()
	case "seed-sample-data":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		if days <= 0 {
			days = cfg.Analytics.BackfillDays
		}
		if err := seeder.SeedSampleData(ctx, days); err != nil {
			logger.Error("Sample data seeding failed", "error", err)
			os.Exit(1)
		}
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - generate-daily-stats [-date YYYY-MM-DD]\n")
		fmt.Printf("  - sweep-suspensions\n")
		fmt.Printf("  - backfill [-days N]\n")
		fmt.Printf("  - all-nightly\n")
		fmt.Printf("  - seed-sample-data [-days N]\n")
		os.Exit(1)
	}
}
