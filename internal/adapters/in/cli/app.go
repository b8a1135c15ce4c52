// Package cli is the operator command line: the same use cases the HTTP API
// exposes, run directly against the configured store.
package cli

import (
	"tailorshop/internal/core/application/usecases/commands"
	"tailorshop/internal/core/application/usecases/queries"
)

// App holds the CLI application dependencies.
type App struct {
	// Command handlers
	CreateOrderHandler        *commands.CreateOrderCommandHandler
	AdvanceOrderStatusHandler *commands.AdvanceOrderStatusCommandHandler
	RunLegacyMigrationHandler *commands.RunLegacyMigrationCommandHandler

	// Query handlers
	GetDeliveredOrdersHandler        queries.GetDeliveredOrdersQueryHandler
	GetReadyForDeliveryOrdersHandler queries.GetReadyForDeliveryOrdersQueryHandler
	GetOrderProgressHandler          queries.GetOrderProgressQueryHandler
}
