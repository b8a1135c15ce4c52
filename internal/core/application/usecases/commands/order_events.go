package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"tailorshop/internal/core/domain/services"
	"tailorshop/internal/core/ports"
)

// OrderStageAdvancedEvent is published after a transition has been committed.
type OrderStageAdvancedEvent struct {
	OrderID      string    `json:"order_id"`
	MaterialType string    `json:"material_type"`
	FromStage    string    `json:"from_stage"`
	ToStage      string    `json:"to_stage"`
	IsFinalStage bool      `json:"is_final_stage"`
	OccurredAt   time.Time `json:"occurred_at"`
}

func newOrderStageAdvancedEvent(res services.AdvanceResult) OrderStageAdvancedEvent {
	history := res.Order.History()
	return OrderStageAdvancedEvent{
		OrderID:      res.Order.ID().String(),
		MaterialType: res.Order.MaterialName(),
		FromStage:    res.PreviousStage,
		ToStage:      res.NextStage,
		IsFinalStage: res.IsFinalStage,
		OccurredAt:   history[len(history)-1].CompletedAt(),
	}
}

// RoutingKey is order.delivered for the final transition and
// order.stage.advanced otherwise.
func (e OrderStageAdvancedEvent) RoutingKey() string {
	if e.IsFinalStage {
		return ports.RoutingKeyDelivered
	}
	return ports.RoutingKeyStageAdvanced
}

// publishStageAdvanced never fails the caller: the transition is already committed.
func publishStageAdvanced(ctx context.Context, publisher ports.EventPublisher, logger *slog.Logger, res services.AdvanceResult) {
	event := newOrderStageAdvancedEvent(res)

	payload, err := json.Marshal(event)
	if err != nil {
		logger.ErrorContext(ctx, "failed to encode order event", "order_id", event.OrderID, "error", err)
		return
	}

	if err = publisher.Publish(ctx, event.RoutingKey(), payload); err != nil {
		logger.ErrorContext(ctx, "failed to publish order event",
			"order_id", event.OrderID,
			"routing_key", event.RoutingKey(),
			"error", err,
		)
	}
}
