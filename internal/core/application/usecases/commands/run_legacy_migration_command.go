package commands

import (
	"errors"

	"tailorshop/internal/pkg/errs"
	"tailorshop/internal/pkg/guard"
)

const (
	MinMigrationWorkers     = 1
	MaxMigrationWorkers     = 64
	DefaultMigrationWorkers = 4
)

var (
	ErrRunLegacyMigrationCommandIsNotConstructed = errors.New(
		"RunLegacyMigrationCommand must be created via NewRunLegacyMigrationCommand constructor",
	)
)

// RunLegacyMigrationCommand rewrites legacy current statuses to their
// canonical names, using up to Workers orders in parallel.
type RunLegacyMigrationCommand struct { //nolint:recvcheck //using for validation
	workers int

	guard guard.ConstructorGuard
}

func NewRunLegacyMigrationCommand(workers int) (RunLegacyMigrationCommand, error) {
	cmd := RunLegacyMigrationCommand{guard: guard.NewConstructorGuard()}
	if err := cmd.setWorkers(workers); err != nil {
		return RunLegacyMigrationCommand{}, err
	}
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RunLegacyMigrationCommand) Validate() error {
	return c.guard.Validate(ErrRunLegacyMigrationCommandIsNotConstructed)
}

func (c RunLegacyMigrationCommand) Workers() int {
	return c.workers
}

func (c *RunLegacyMigrationCommand) setWorkers(workers int) error {
	if workers < MinMigrationWorkers || workers > MaxMigrationWorkers {
		return errs.NewValueIsOutOfRangeError("workers", workers, MinMigrationWorkers, MaxMigrationWorkers)
	}
	c.workers = workers
	return nil
}
