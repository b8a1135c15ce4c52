package queries

import (
	"errors"

	"tailorshop/internal/pkg/guard"
)

var (
	ErrGetReadyForDeliveryOrdersQueryIsNotConstructed = errors.New(
		"GetReadyForDeliveryOrdersQuery must be created via NewGetReadyForDeliveryOrdersQuery constructor",
	)
)

// GetReadyForDeliveryOrdersQuery lists finished orders waiting for pickup.
type GetReadyForDeliveryOrdersQuery struct {
	guard guard.ConstructorGuard
}

func NewGetReadyForDeliveryOrdersQuery() GetReadyForDeliveryOrdersQuery {
	return GetReadyForDeliveryOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetReadyForDeliveryOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetReadyForDeliveryOrdersQueryIsNotConstructed)
}

// FlaggedOrderResponse is an order the query could not classify.
type FlaggedOrderResponse struct {
	OrderSummaryResponse
	Reason string
}

// GetReadyForDeliveryOrdersQueryResponse separates ready orders from orders
// whose material type has no stage path.
type GetReadyForDeliveryOrdersQueryResponse struct {
	Orders  []OrderSummaryResponse
	Flagged []FlaggedOrderResponse
}
