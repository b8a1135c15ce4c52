package cli

import (
	"fmt"
	"text/tabwriter"

	"tailorshop/internal/core/application/usecases/commands"
	"tailorshop/internal/core/application/usecases/queries"
	"tailorshop/internal/core/domain/model/kernel"

	"github.com/spf13/cobra"
)

func newCreateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "create [material-type]",
		Short: "Register a new order",
		Long: `Register a new order at the first stage of its material path.

Examples:
  tailorctl create blouse
  tailorctl create saree`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orderID := kernel.NewUUID()
			createCmd, err := commands.NewCreateOrderCommand(orderID, args[0])
			if err != nil {
				return err
			}

			if err = app.CreateOrderHandler.Handle(cmd.Context(), createCmd); err != nil {
				return fmt.Errorf("failed to create order: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Order created: %s\n", orderID)
			return nil
		},
	}
}

func newAdvanceCmd(app *App) *cobra.Command {
	var target, notes string

	cmd := &cobra.Command{
		Use:   "advance [order-id]",
		Short: "Move an order to its next stage",
		Long: `Move an order to the next stage of its path, or to a later stage with --target.

Examples:
  tailorctl advance 550e8400-e29b-41d4-a716-446655440000
  tailorctl advance 550e8400-e29b-41d4-a716-446655440000 --target "Final Checking" --notes "no hemming"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orderID, err := parseOrderID(args[0])
			if err != nil {
				return err
			}

			advanceCmd, err := commands.NewAdvanceOrderStatusCommand(orderID, target, notes)
			if err != nil {
				return err
			}

			result, err := app.AdvanceOrderStatusHandler.Handle(cmd.Context(), advanceCmd)
			if err != nil {
				return fmt.Errorf("failed to advance order: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s -> %s\n", result.OrderID, result.PreviousStage, result.CurrentStage)
			if result.IsDelivered {
				fmt.Fprintln(cmd.OutOrStdout(), "Order delivered")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&target, "target", "t", "", "stage to move to (default: next stage)")
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "note recorded in the history")
	return cmd
}

func newDeliveredCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delivered",
		Short: "List delivered orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			orders, err := app.GetDeliveredOrdersHandler.Handle(cmd.Context(), queries.NewGetDeliveredOrdersQuery())
			if err != nil {
				return fmt.Errorf("failed to list delivered orders: %w", err)
			}
			return printSummaries(cmd, orders)
		},
	}
}

func newReadyCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "ready",
		Short:   "List orders ready for delivery",
		Aliases: []string{"ready-for-delivery"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := app.GetReadyForDeliveryOrdersHandler.Handle(
				cmd.Context(),
				queries.NewGetReadyForDeliveryOrdersQuery(),
			)
			if err != nil {
				return fmt.Errorf("failed to list orders ready for delivery: %w", err)
			}

			if err = printSummaries(cmd, result.Orders); err != nil {
				return err
			}
			for _, f := range result.Flagged {
				fmt.Fprintf(cmd.ErrOrStderr(), "flagged %s (%s): %s\n", f.ID, f.MaterialType, f.Reason)
			}
			return nil
		},
	}
}

func newProgressCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "progress [order-id]",
		Short: "Show where an order stands",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orderID, err := parseOrderID(args[0])
			if err != nil {
				return err
			}

			query, err := queries.NewGetOrderProgressQuery(orderID)
			if err != nil {
				return err
			}

			p, err := app.GetOrderProgressHandler.Handle(cmd.Context(), query)
			if err != nil {
				return fmt.Errorf("failed to get order progress: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Order:    %s (%s)\n", p.ID, p.MaterialType)
			fmt.Fprintf(out, "Stage:    %s (%d/%d)\n", p.ResolvedStage, p.StageIndex+1, p.StageCount)
			fmt.Fprintf(out, "Progress: %d%%\n", p.ProgressPercent)
			if p.Warning != "" {
				fmt.Fprintf(out, "Warning:  %s\n", p.Warning)
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "STAGE\tCOMPLETED\tNOTES")
			for _, h := range p.History {
				fmt.Fprintf(w, "%s\t%s\t%s\n", h.Stage, h.CompletedAt.Format("2006-01-02 15:04"), h.Notes)
			}
			return w.Flush()
		},
	}
}

func printSummaries(cmd *cobra.Command, orders []queries.OrderSummaryResponse) error {
	if len(orders) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No orders found")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMATERIAL\tSTATUS")
	for _, o := range orders {
		fmt.Fprintf(w, "%s\t%s\t%s\n", o.ID, o.MaterialType, o.CurrentStatus)
	}
	return w.Flush()
}
