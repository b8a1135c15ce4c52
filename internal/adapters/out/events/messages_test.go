package events

import (
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPublishing(t *testing.T) {
	now := time.Date(2024, time.July, 1, 12, 0, 0, 0, time.UTC)

	msg := newPublishing([]byte(`{"to_stage":"Delivery"}`), now)

	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, now, msg.Timestamp)
	assert.JSONEq(t, `{"to_stage":"Delivery"}`, string(msg.Body))
}

func TestNewRecord(t *testing.T) {
	rec := newRecord("order-changed", "order.delivered", []byte(`{}`))

	assert.Equal(t, "order-changed", rec.Topic)
	assert.Equal(t, []byte(`{}`), rec.Value)
	require.Len(t, rec.Headers, 2)
	assert.Equal(t, RoutingKeyHeader, rec.Headers[0].Key)
	assert.Equal(t, "order.delivered", string(rec.Headers[0].Value))
}
