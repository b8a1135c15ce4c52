package cli

import (
	"fmt"

	"tailorshop/internal/core/domain/model/kernel"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "tailorctl",
		Short: "Operate the tailor shop order pipeline",
		Long: `tailorctl registers orders, moves them through the stages of their
material path and runs the legacy status migration.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newCreateCmd(app),
		newAdvanceCmd(app),
		newDeliveredCmd(app),
		newReadyCmd(app),
		newProgressCmd(app),
		newMigrateCmd(app),
	)
	return root
}

func parseOrderID(raw string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, fmt.Errorf("invalid order ID: %w", err)
	}
	return id, nil
}
