// Package jobs runs scheduled background work for the tailor shop on
// github.com/robfig/cron/v3, using six-field schedules with seconds.
//
// LegacyMigrationJob periodically re-runs the legacy status migration, so
// orders imported with obsolete stage names end up on the current catalog
// without an operator running tailorctl migrate by hand. Overlapping runs
// are skipped and a failed run is logged and retried on the next tick.
//
//	jm := jobs.NewJobManager(&migrationHandler, "0 0 3 * * *", 4, logger)
//	if err := jm.StartAll(); err != nil {
//		return err
//	}
//	defer jm.StopAll()
package jobs
