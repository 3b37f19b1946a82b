package workers

import (
	"context"
	"log/slog"
	"time"

	application "faucet/contexts/distribution/claim-ledger/application"
	"faucet/contexts/distribution/claim-ledger/ports"
)

// EventRelay drains pending ledger events from the outbox and publishes them
// on the event bus, marking each one published.
type EventRelay struct {
	Outbox    ports.EventOutbox
	Publisher ports.EventPublisher
	Clock     ports.Clock
	Topic     string
	BatchSize int
	Logger    *slog.Logger
}

func (r EventRelay) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(r.Logger)
	limit := r.BatchSize
	if limit <= 0 {
		limit = 100
	}
	topic := r.Topic
	if topic == "" {
		topic = "faucet.ledger"
	}

	pending, err := r.Outbox.ListPendingEvents(ctx, limit)
	if err != nil {
		logger.Error("outbox list pending failed",
			"event", "ledger_outbox_list_failed",
			"module", "distribution/claim-ledger",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}

	now := time.Now().UTC()
	if r.Clock != nil {
		now = r.Clock.Now().UTC()
	}

	for _, event := range pending {
		if err := r.Publisher.Publish(ctx, topic, event); err != nil {
			logger.Error("outbox publish failed",
				"event", "ledger_outbox_publish_failed",
				"module", "distribution/claim-ledger",
				"layer", "worker",
				"event_id", event.ID,
				"event_type", string(event.Type),
				"error", err.Error(),
			)
			return err
		}
		if err := r.Outbox.MarkEventPublished(ctx, event.ID, now); err != nil {
			logger.Error("outbox mark published failed",
				"event", "ledger_outbox_mark_published_failed",
				"module", "distribution/claim-ledger",
				"layer", "worker",
				"event_id", event.ID,
				"error", err.Error(),
			)
			return err
		}
	}

	if len(pending) > 0 {
		logger.Info("outbox relay cycle completed",
			"event", "ledger_outbox_relay_completed",
			"module", "distribution/claim-ledger",
			"layer", "worker",
			"sent_count", len(pending),
		)
	}
	return nil
}
