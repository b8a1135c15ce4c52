package ports

import (
	"context"

	"tailorshop/internal/core/domain/model/kernel"
	"tailorshop/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates,
// including their status history.
type OrderRepository interface {
	// Add persists a new order with its initial history.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the current status, the delivered flag and any history
	// entries appended since the order was loaded.
	//
	// The write only succeeds while the stored version still equals
	// aggregate.Version(); otherwise errs.ErrVersionIsInvalid is returned and
	// nothing is written. A successful write bumps the stored version by one.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its full history, oldest entry first.
	// Returns errs.ErrObjectNotFound when no order has the id.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAll retrieves every order with its history.
	GetAll(ctx context.Context) ([]*order.Order, error)
}
