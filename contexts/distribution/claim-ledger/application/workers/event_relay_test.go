package workers

import (
	"context"
	"fmt"
	"testing"
	"time"

	"faucet/contexts/distribution/claim-ledger/adapters/memory"
	"faucet/contexts/distribution/claim-ledger/domain/entities"
)

type capturingPublisher struct {
	topics []string
	events []entities.LedgerEvent
	fail   bool
}

func (p *capturingPublisher) Publish(_ context.Context, topic string, event entities.LedgerEvent) error {
	if p.fail {
		return fmt.Errorf("bus unavailable")
	}
	p.topics = append(p.topics, topic)
	p.events = append(p.events, event)
	return nil
}

func seedOutbox(t *testing.T, store *memory.Store, ids ...string) {
	t.Helper()
	for _, id := range ids {
		err := store.AppendEvent(context.Background(), entities.LedgerEvent{
			ID:         id,
			Type:       entities.EventClaimed,
			Account:    "alice",
			Amount:     10,
			OccurredAt: time.Now().UTC(),
		})
		if err != nil {
			t.Fatalf("append %s failed: %v", id, err)
		}
	}
}

func TestRelayPublishesAndMarksEvents(t *testing.T) {
	store := memory.NewStore()
	publisher := &capturingPublisher{}
	seedOutbox(t, store, "evt-1", "evt-2")

	relay := EventRelay{Outbox: store, Publisher: publisher, Clock: store}
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("relay run failed: %v", err)
	}

	if len(publisher.events) != 2 {
		t.Fatalf("expected 2 published events, got %d", len(publisher.events))
	}
	for _, topic := range publisher.topics {
		if topic != "faucet.ledger" {
			t.Fatalf("expected default topic, got %q", topic)
		}
	}

	pending, err := store.ListPendingEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected drained outbox, got %d pending", len(pending))
	}
}

func TestRelayLeavesEventsPendingOnPublishFailure(t *testing.T) {
	store := memory.NewStore()
	publisher := &capturingPublisher{fail: true}
	seedOutbox(t, store, "evt-1")

	relay := EventRelay{Outbox: store, Publisher: publisher, Clock: store}
	if err := relay.RunOnce(context.Background()); err == nil {
		t.Fatal("expected publish failure to propagate")
	}

	pending, err := store.ListPendingEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("failed publish must leave the event pending, got %d", len(pending))
	}
}

func TestRelayIsQuietWhenOutboxEmpty(t *testing.T) {
	store := memory.NewStore()
	publisher := &capturingPublisher{}

	relay := EventRelay{Outbox: store, Publisher: publisher, Clock: store}
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("relay run failed: %v", err)
	}
	if len(publisher.events) != 0 {
		t.Fatalf("expected no publishes, got %d", len(publisher.events))
	}
}
