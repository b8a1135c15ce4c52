package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager owns the background schedulers of the service process.
type JobManager struct {
	legacyMigrationJob *LegacyMigrationJob
}

// NewJobManager wires the legacy migration job. migrationSchedule may be empty
// to use DefaultLegacyMigrationSchedule.
func NewJobManager(
	migrationHandler LegacyMigrationHandler,
	migrationSchedule string,
	migrationWorkers int,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		legacyMigrationJob: NewLegacyMigrationJob(migrationHandler, migrationSchedule, migrationWorkers, logger),
	}
}

// StartAll starts every scheduler; an invalid schedule or worker count fails here.
func (jm *JobManager) StartAll() error {
	if err := jm.legacyMigrationJob.Start(); err != nil {
		return fmt.Errorf("failed to start legacy migration job: %w", err)
	}
	return nil
}

// StopAll stops the schedulers and waits for running jobs.
func (jm *JobManager) StopAll() {
	jm.legacyMigrationJob.Stop()
}
