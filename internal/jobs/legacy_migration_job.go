package jobs

import (
	"context"
	"log/slog"

	"tailorshop/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultLegacyMigrationSchedule runs the migration at 03:00 every night.
const DefaultLegacyMigrationSchedule = "0 0 3 * * *"

// LegacyMigrationHandler is the part of RunLegacyMigrationCommandHandler the job needs.
type LegacyMigrationHandler interface {
	Handle(ctx context.Context, cmd commands.RunLegacyMigrationCommand) (commands.LegacyMigrationReport, error)
}

// LegacyMigrationJob re-runs the legacy status migration on a cron schedule.
// The migration is idempotent, so a run that finds nothing left is cheap.
type LegacyMigrationJob struct {
	handler  LegacyMigrationHandler
	schedule string
	workers  int
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewLegacyMigrationJob creates the job. schedule is a six-field cron spec
// (seconds first); an empty schedule falls back to DefaultLegacyMigrationSchedule.
func NewLegacyMigrationJob(
	handler LegacyMigrationHandler,
	schedule string,
	workers int,
	logger *slog.Logger,
) *LegacyMigrationJob {
	if schedule == "" {
		schedule = DefaultLegacyMigrationSchedule
	}
	return &LegacyMigrationJob{
		handler:  handler,
		schedule: schedule,
		workers:  workers,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "legacy_migration_job"),
	}
}

// Start registers the job and starts the scheduler.
func (j *LegacyMigrationJob) Start() error {
	cmd, err := commands.NewRunLegacyMigrationCommand(j.workers)
	if err != nil {
		return err
	}

	if _, err = j.cron.AddFunc(j.schedule, func() { j.run(context.Background(), cmd) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Legacy migration job started", "schedule", j.schedule)
	return nil
}

func (j *LegacyMigrationJob) run(ctx context.Context, cmd commands.RunLegacyMigrationCommand) {
	report, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Legacy migration job failed",
			"error", err,
			"migrated", report.Migrated,
			"failed", report.Failed,
		)
	}
}

// Stop stops the scheduler and waits for a running migration to finish.
func (j *LegacyMigrationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Legacy migration job stopped")
}
