package queries

import (
	"errors"

	"tailorshop/internal/pkg/guard"
)

var (
	ErrGetDeliveredOrdersQueryIsNotConstructed = errors.New(
		"GetDeliveredOrdersQuery must be created via NewGetDeliveredOrdersQuery constructor",
	)
)

// GetDeliveredOrdersQuery lists every order handed over to its customer.
type GetDeliveredOrdersQuery struct {
	guard guard.ConstructorGuard
}

func NewGetDeliveredOrdersQuery() GetDeliveredOrdersQuery {
	return GetDeliveredOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveredOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveredOrdersQueryIsNotConstructed)
}
