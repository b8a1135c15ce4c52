package ports

import "context"

// Routing keys of the order events.
const (
	RoutingKeyStageAdvanced = "order.stage.advanced"
	RoutingKeyDelivered     = "order.delivered"
)

// EventPublisher delivers JSON-encoded integration events to a message broker.
// Publishing happens after the transaction commits, so a failure never undoes
// a transition.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload []byte) error
	Close() error
}
