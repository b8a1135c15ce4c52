// Package queries contains read-only operations over orders.
// Handlers load domain orders and derive their answers with the domain
// services, so legacy statuses are interpreted the same way everywhere.
package queries

import (
	"context"

	"tailorshop/internal/core/domain/model/kernel"
	"tailorshop/internal/core/domain/model/order"
)

// OrderReader is the read side of ports.OrderRepository.
type OrderReader interface {
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
	GetAll(ctx context.Context) ([]*order.Order, error)
}

// OrderSummaryResponse is the list item shared by the bucket queries.
type OrderSummaryResponse struct {
	ID            kernel.UUID
	MaterialType  string
	CurrentStatus string
	IsDelivered   bool
}

func newOrderSummaryResponse(o *order.Order) OrderSummaryResponse {
	return OrderSummaryResponse{
		ID:            o.ID(),
		MaterialType:  o.MaterialName(),
		CurrentStatus: o.CurrentStatus(),
		IsDelivered:   o.IsDelivered(),
	}
}

func newOrderSummaryResponses(orders []*order.Order) []OrderSummaryResponse {
	out := make([]OrderSummaryResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, newOrderSummaryResponse(o))
	}
	return out
}
