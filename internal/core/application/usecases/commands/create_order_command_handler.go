package commands

import (
	"context"
	"time"

	"tailorshop/internal/core/domain/model/catalog"
	"tailorshop/internal/core/domain/model/order"
)

// CreateOrderCommandHandler registers new orders at the first stage of their
// material path.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, catalog.Default())
//	cmd, _ := NewCreateOrderCommand(kernel.NewUUID(), "saree")
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	// Order is now at "Initial Checking"
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	stages     *catalog.Catalog
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, stages *catalog.Catalog) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		stages:     stages,
	}
}

// Handle processes the order creation command.
// The order is built before the transaction starts, so an unknown material
// type never opens one.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	o, err := order.NewOrder(cmd.OrderID(), cmd.MaterialType(), h.stages, time.Now())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
