package queries

import (
	"errors"
	"time"

	"tailorshop/internal/core/domain/model/kernel"
	"tailorshop/internal/pkg/guard"
)

var (
	ErrGetOrderProgressQueryIsNotConstructed = errors.New(
		"GetOrderProgressQuery must be created via NewGetOrderProgressQuery constructor",
	)
)

// GetOrderProgressQuery looks up one order with its resolved stage,
// completion percentage and full history.
type GetOrderProgressQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderProgressQuery(orderID kernel.UUID) (GetOrderProgressQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderProgressQuery{}, err
	}
	return GetOrderProgressQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderProgressQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderProgressQueryIsNotConstructed)
}

func (q GetOrderProgressQuery) OrderID() kernel.UUID {
	return q.orderID
}

type HistoryItemResponse struct {
	Stage       string
	CompletedAt time.Time
	Notes       string
}

// GetOrderProgressQueryResponse describes where an order stands.
// CurrentStatus is what is stored; ResolvedStage is what it means today.
type GetOrderProgressQueryResponse struct {
	ID              kernel.UUID
	MaterialType    string
	CurrentStatus   string
	ResolvedStage   string
	StageIndex      int
	StageCount      int
	ProgressPercent int
	IsDelivered     bool
	History         []HistoryItemResponse
	// Warning is set when the stored status could not be resolved.
	Warning string
}
