package cli

import (
	"fmt"

	"tailorshop/internal/core/application/usecases/commands"

	"github.com/spf13/cobra"
)

func newMigrateCmd(app *App) *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Rewrite legacy statuses to current stage names",
		Long: `Scan every order and rewrite statuses that map onto a current stage.
Unresolvable statuses are reported and left untouched. Safe to run repeatedly.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			migrateCmd, err := commands.NewRunLegacyMigrationCommand(workers)
			if err != nil {
				return err
			}

			report, err := app.RunLegacyMigrationHandler.Handle(cmd.Context(), migrateCmd)
			fmt.Fprintf(cmd.OutOrStdout(), "Scanned: %d  Migrated: %d  Unresolved: %d  Failed: %d\n",
				report.Scanned, report.Migrated, report.Unresolved, report.Failed)
			if err != nil {
				return fmt.Errorf("legacy migration incomplete: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", commands.DefaultMigrationWorkers, "orders migrated in parallel")
	return cmd
}
