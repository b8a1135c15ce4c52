package services

import (
	"math"

	"tailorshop/internal/core/domain/model/catalog"
	"tailorshop/internal/core/domain/model/order"
)

// FlaggedOrder is an order a bucket query could not place, with the reason.
type FlaggedOrder struct {
	Order  *order.Order
	Reason error
}

// ReadyForDelivery is the result of BucketQueries.ReadyForDeliveryOrders.
type ReadyForDelivery struct {
	Orders []*order.Order
	// Flagged holds orders whose material type has no path in the catalog.
	Flagged []FlaggedOrder
}

// BucketQueries derives read-only views from a full set of orders.
// Nothing is cached; every call recomputes from its input.
type BucketQueries struct {
	catalog    *catalog.Catalog
	reconciler StatusReconciler
}

func NewBucketQueries(c *catalog.Catalog) BucketQueries {
	return BucketQueries{catalog: c, reconciler: NewStatusReconciler(c)}
}

// DeliveredOrders keeps orders flagged as delivered, in input order.
func (b BucketQueries) DeliveredOrders(orders []*order.Order) []*order.Order {
	out := make([]*order.Order, 0)
	for _, o := range orders {
		if o.IsDelivered() {
			out = append(out, o)
		}
	}
	return out
}

// ReadyForDeliveryOrders keeps undelivered orders sitting one stage before Delivery.
// Delivered orders never appear here, so the two buckets are disjoint.
func (b BucketQueries) ReadyForDeliveryOrders(orders []*order.Order) ReadyForDelivery {
	result := ReadyForDelivery{Orders: make([]*order.Order, 0)}
	for _, o := range orders {
		if o.IsDelivered() {
			continue
		}

		res, err := b.reconciler.Resolve(o)
		if err != nil {
			result.Flagged = append(result.Flagged, FlaggedOrder{Order: o, Reason: err})
			continue
		}

		if res.Total >= 2 && res.Index == res.Total-2 {
			result.Orders = append(result.Orders, o)
		}
	}
	return result
}

// ProgressPercent is (index+1)/len*100 rounded to the nearest integer and kept
// inside (0, 100].
func (b BucketQueries) ProgressPercent(o *order.Order) (int, StageResolution, error) {
	res, err := b.reconciler.Resolve(o)
	if err != nil {
		return 0, StageResolution{}, err
	}

	pct := int(math.Round(float64(res.Index+1) / float64(res.Total) * 100))
	return min(max(pct, 1), 100), res, nil
}
