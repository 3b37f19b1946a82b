package messaging

import (
	"context"
	"log/slog"
	"sync"

	"faucet/contexts/distribution/claim-ledger/domain/entities"
	"faucet/contexts/distribution/claim-ledger/ports"
	"faucet/internal/shared/events"
)

// Bus is the event bus used by the outbox relay. Current implementation is
// in-process publish/subscribe while runtime wiring is finalized for external
// brokers. Ledger events travel wrapped in the shared envelope.
type Bus struct {
	mu            sync.RWMutex
	sourceService string
	subscribers   map[string][]chan events.Envelope
	logger        *slog.Logger
}

func NewBus(sourceService string, logger *slog.Logger) *Bus {
	return &Bus{
		sourceService: sourceService,
		subscribers:   make(map[string][]chan events.Envelope),
		logger:        logger,
	}
}

func (b *Bus) Publish(ctx context.Context, topic string, event entities.LedgerEvent) error {
	envelope := events.FromLedgerEvent(b.sourceService, event)

	b.mu.RLock()
	subs := append([]chan events.Envelope(nil), b.subscribers[topic]...)
	b.mu.RUnlock()

	for _, sub := range subs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sub <- envelope:
		default:
			if b.logger != nil {
				b.logger.Warn("dropping event for slow subscriber",
					"event", "bus_publish_drop",
					"module", "internal/platform/messaging",
					"layer", "platform",
					"topic", topic,
					"event_id", envelope.EventID,
				)
			}
		}
	}

	if b.logger != nil {
		b.logger.Info("event published",
			"event", "bus_publish",
			"module", "internal/platform/messaging",
			"layer", "platform",
			"topic", topic,
			"event_id", envelope.EventID,
			"event_type", envelope.EventType,
		)
	}
	return nil
}

func (b *Bus) Subscribe(
	ctx context.Context,
	topic string,
	consumerGroup string,
	handler func(context.Context, entities.LedgerEvent) error,
) error {
	ch := make(chan events.Envelope, 128)

	b.mu.Lock()
	b.subscribers[topic] = append(b.subscribers[topic], ch)
	b.mu.Unlock()

	go func() {
		for {
			select {
			case <-ctx.Done():
				b.removeSubscriber(topic, ch)
				return
			case envelope := <-ch:
				event, ok := envelope.Payload.(entities.LedgerEvent)
				if !ok {
					if b.logger != nil {
						b.logger.Warn("skipping envelope with foreign payload",
							"event", "bus_consume_skipped",
							"module", "internal/platform/messaging",
							"layer", "platform",
							"topic", topic,
							"event_id", envelope.EventID,
						)
					}
					continue
				}
				if err := handler(ctx, event); err != nil && b.logger != nil {
					b.logger.Error("consumer handler failed",
						"event", "bus_consume_failed",
						"module", "internal/platform/messaging",
						"layer", "platform",
						"topic", topic,
						"consumer_group", consumerGroup,
						"event_id", envelope.EventID,
						"event_type", envelope.EventType,
						"error", err.Error(),
					)
				}
			}
		}
	}()
	return nil
}

func (b *Bus) removeSubscriber(topic string, target chan events.Envelope) {
	b.mu.Lock()
	defer b.mu.Unlock()

	items := b.subscribers[topic]
	if len(items) == 0 {
		return
	}
	filtered := make([]chan events.Envelope, 0, len(items))
	for _, item := range items {
		if item != target {
			filtered = append(filtered, item)
		}
	}
	b.subscribers[topic] = filtered
}

var _ ports.EventPublisher = (*Bus)(nil)
var _ ports.EventSubscriber = (*Bus)(nil)
