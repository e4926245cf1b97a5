// Package jobs holds the scheduled background work: the nightly stats
// snapshot, suspension sweeping, and backfill.
package jobs

import (
	"context"
	"time"

	"github.com/jcamiloaa/experienciaas/internal/config"
	"github.com/jcamiloaa/experienciaas/internal/logger"
	"github.com/jcamiloaa/experienciaas/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	roles     *service.RoleService
	analytics *service.AnalyticsService
	config    *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(roles *service.RoleService, analytics *service.AnalyticsService, cfg *config.Config) *JobRunner {
	return &JobRunner{roles: roles, analytics: analytics, config: cfg}
}

func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllNightlyJobs runs all nightly jobs (for manual execution)
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.GenerateDailyStats()
	jr.SweepExpiredSuspensions()
}

func (jr *JobRunner) jobContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Minute)
}
