package jobs

import (
	"time"

	"github.com/jcamiloaa/experienciaas/internal/logger"
	"github.com/jcamiloaa/experienciaas/internal/utils"
)

// GenerateDailyStats snapshots yesterday. It runs shortly after
// midnight UTC so the whole day is covered.
func (jr *JobRunner) GenerateDailyStats() {
	jr.runWithRecovery("GenerateDailyStats", func() {
		ctx, cancel := jr.jobContext()
		defer cancel()

		date := utils.Yesterday(time.Now())
		if _, err := jr.analytics.GenerateDailyStats(ctx, date); err != nil {
			logger.Error("Daily stats generation failed", "date", utils.FormatDate(date), "error", err)
		}
	})
}

// GenerateDailyStatsFor snapshots one explicit date, for manual runs.
func (jr *JobRunner) GenerateDailyStatsFor(date time.Time) error {
	ctx, cancel := jr.jobContext()
	defer cancel()

	_, err := jr.analytics.GenerateDailyStats(ctx, date)
	return err
}

// BackfillDailyStats regenerates the last N days, newest last. A bad
// day is logged and skipped so one broken window cannot block the
// rest of the backfill.
func (jr *JobRunner) BackfillDailyStats(days int) {
	jr.runWithRecovery("BackfillDailyStats", func() {
		ctx, cancel := jr.jobContext()
		defer cancel()

		end := utils.Yesterday(time.Now())
		failed := 0
		for i := days - 1; i >= 0; i-- {
			date := end.AddDate(0, 0, -i)
			if _, err := jr.analytics.GenerateDailyStats(ctx, date); err != nil {
				logger.Error("Backfill day failed", "date", utils.FormatDate(date), "error", err)
				failed++
			}
		}
		logger.Info("Backfill finished", "days", days, "failed", failed)
	})
}

// SweepExpiredSuspensions restores roles whose timed suspension has
// run out. Reads already treat those roles as active; the sweep makes
// the stored state agree.
func (jr *JobRunner) SweepExpiredSuspensions() {
	jr.runWithRecovery("SweepExpiredSuspensions", func() {
		ctx, cancel := jr.jobContext()
		defer cancel()

		restored, err := jr.roles.SweepExpiredSuspensions(ctx)
		if err != nil {
			logger.Error("Suspension sweep failed", "error", err)
			return
		}
		if restored > 0 {
			logger.Info("Expired suspensions restored", "count", restored)
		}
	})
}
