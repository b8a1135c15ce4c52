package events

import (
	"context"
	"log/slog"
	"time"

	"tailorshop/internal/core/ports"

	"github.com/sony/gobreaker/v2"
)

// BreakerConfig tunes the circuit breaker around a publisher.
type BreakerConfig struct {
	// FailureThreshold is the number of consecutive failures that opens the circuit.
	FailureThreshold uint32
	// Timeout is how long the circuit stays open before a trial request.
	Timeout time.Duration
	// MaxRequests is the number of trial requests allowed while half-open.
	MaxRequests uint32
}

func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		FailureThreshold: 5,
		Timeout:          30 * time.Second,
		MaxRequests:      1,
	}
}

// BreakerPublisher fails fast while the wrapped publisher keeps failing.
type BreakerPublisher struct {
	next    ports.EventPublisher
	breaker *gobreaker.CircuitBreaker[any]
}

func NewBreakerPublisher(next ports.EventPublisher, cfg BreakerConfig, logger *slog.Logger) *BreakerPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "BreakerPublisher")

	settings := gobreaker.Settings{
		Name:        "event-publisher",
		MaxRequests: cfg.MaxRequests,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &BreakerPublisher{
		next:    next,
		breaker: gobreaker.NewCircuitBreaker[any](settings),
	}
}

// Publish returns gobreaker.ErrOpenState without calling the broker while the
// circuit is open.
func (p *BreakerPublisher) Publish(ctx context.Context, routingKey string, payload []byte) error {
	_, err := p.breaker.Execute(func() (any, error) {
		return nil, p.next.Publish(ctx, routingKey, payload)
	})
	return err
}

func (p *BreakerPublisher) Close() error {
	return p.next.Close()
}

// State reports the breaker state, e.g. for health output.
func (p *BreakerPublisher) State() gobreaker.State {
	return p.breaker.State()
}
