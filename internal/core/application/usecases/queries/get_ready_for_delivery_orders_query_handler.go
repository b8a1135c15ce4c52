package queries

import (
	"context"
	"log/slog"

	"tailorshop/internal/core/domain/model/catalog"
	"tailorshop/internal/core/domain/services"
)

// GetReadyForDeliveryOrdersQueryHandler answers GetReadyForDeliveryOrdersQuery.
// An order is ready when its resolved stage is the one right before Delivery
// and it is not delivered yet.
type GetReadyForDeliveryOrdersQueryHandler struct {
	reader  OrderReader
	buckets services.BucketQueries
	logger  *slog.Logger
}

func NewGetReadyForDeliveryOrdersQueryHandler(
	reader OrderReader,
	stages *catalog.Catalog,
	logger *slog.Logger,
) GetReadyForDeliveryOrdersQueryHandler {
	return GetReadyForDeliveryOrdersQueryHandler{
		reader:  reader,
		buckets: services.NewBucketQueries(stages),
		logger:  logger.With("component", "GetReadyForDeliveryOrdersQueryHandler"),
	}
}

func (h GetReadyForDeliveryOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetReadyForDeliveryOrdersQuery,
) (GetReadyForDeliveryOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetReadyForDeliveryOrdersQueryResponse{}, err
	}

	orders, err := h.reader.GetAll(ctx)
	if err != nil {
		return GetReadyForDeliveryOrdersQueryResponse{}, err
	}

	ready := h.buckets.ReadyForDeliveryOrders(orders)

	response := GetReadyForDeliveryOrdersQueryResponse{
		Orders:  newOrderSummaryResponses(ready.Orders),
		Flagged: make([]FlaggedOrderResponse, 0, len(ready.Flagged)),
	}
	for _, f := range ready.Flagged {
		h.logger.WarnContext(ctx, "order excluded from ready bucket",
			"order_id", f.Order.ID().String(),
			"material_type", f.Order.MaterialName(),
			"error", f.Reason,
		)
		response.Flagged = append(response.Flagged, FlaggedOrderResponse{
			OrderSummaryResponse: newOrderSummaryResponse(f.Order),
			Reason:               f.Reason.Error(),
		})
	}

	return response, nil
}
