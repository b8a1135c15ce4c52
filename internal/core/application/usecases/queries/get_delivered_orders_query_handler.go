package queries

import (
	"context"

	"tailorshop/internal/core/domain/model/catalog"
	"tailorshop/internal/core/domain/services"
)

// GetDeliveredOrdersQueryHandler answers GetDeliveredOrdersQuery.
//
// Example:
//
//	handler := NewGetDeliveredOrdersQueryHandler(reader, catalog.Default())
//	delivered, err := handler.Handle(ctx, NewGetDeliveredOrdersQuery())
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%d orders delivered\n", len(delivered))
type GetDeliveredOrdersQueryHandler struct {
	reader  OrderReader
	buckets services.BucketQueries
}

func NewGetDeliveredOrdersQueryHandler(reader OrderReader, stages *catalog.Catalog) GetDeliveredOrdersQueryHandler {
	return GetDeliveredOrdersQueryHandler{reader: reader, buckets: services.NewBucketQueries(stages)}
}

// Handle returns delivered orders in storage order. The result is never nil.
func (h GetDeliveredOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveredOrdersQuery,
) ([]OrderSummaryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.reader.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	return newOrderSummaryResponses(h.buckets.DeliveredOrders(orders)), nil
}
