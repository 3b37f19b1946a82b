package memory

import (
	"context"
	"testing"
	"time"

	"faucet/contexts/distribution/claim-ledger/domain/entities"
)

func TestClaimFlagRoundTrip(t *testing.T) {
	store := NewStore()
	now := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

	claimed, err := store.HasClaimed(context.Background(), "alice")
	if err != nil {
		t.Fatalf("has claimed failed: %v", err)
	}
	if claimed {
		t.Fatal("fresh account must not be claimed")
	}

	if err := store.SetClaimed(context.Background(), "alice", now); err != nil {
		t.Fatalf("set claimed failed: %v", err)
	}
	claimed, err = store.HasClaimed(context.Background(), " alice ")
	if err != nil {
		t.Fatalf("has claimed failed: %v", err)
	}
	if !claimed {
		t.Fatal("whitespace-padded lookup must hit the normalized entry")
	}

	if err := store.ClearClaimed(context.Background(), "alice", now.Add(time.Hour)); err != nil {
		t.Fatalf("clear claimed failed: %v", err)
	}
	claimed, err = store.HasClaimed(context.Background(), "alice")
	if err != nil {
		t.Fatalf("has claimed failed: %v", err)
	}
	if claimed {
		t.Fatal("cleared account must read unclaimed")
	}
}

func TestConfigSnapshotRoundTrip(t *testing.T) {
	store := NewStore()

	_, found, err := store.LoadConfig(context.Background())
	if err != nil {
		t.Fatalf("load config failed: %v", err)
	}
	if found {
		t.Fatal("empty store must report no config")
	}

	saved := entities.LedgerConfig{Owner: "owner-1", Asset: "token-a", Amount: 42, Paused: true}
	if err := store.SaveConfig(context.Background(), saved); err != nil {
		t.Fatalf("save config failed: %v", err)
	}
	loaded, found, err := store.LoadConfig(context.Background())
	if err != nil {
		t.Fatalf("load config failed: %v", err)
	}
	if !found {
		t.Fatal("expected persisted config")
	}
	if loaded != saved {
		t.Fatalf("expected %+v, got %+v", saved, loaded)
	}
}

func TestOutboxPendingAndPublished(t *testing.T) {
	store := NewStore()
	now := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

	for _, id := range []string{"evt-1", "evt-2"} {
		err := store.AppendEvent(context.Background(), entities.LedgerEvent{
			ID:         id,
			Type:       entities.EventClaimed,
			Account:    "alice",
			Amount:     10,
			OccurredAt: now,
		})
		if err != nil {
			t.Fatalf("append %s failed: %v", id, err)
		}
	}

	pending, err := store.ListPendingEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending events, got %d", len(pending))
	}

	if err := store.MarkEventPublished(context.Background(), "evt-1", now.Add(time.Second)); err != nil {
		t.Fatalf("mark published failed: %v", err)
	}
	pending, err = store.ListPendingEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != "evt-2" {
		t.Fatalf("expected evt-2 pending, got %+v", pending)
	}

	if err := store.MarkEventPublished(context.Background(), "missing", now); err == nil {
		t.Fatal("marking an unknown event must fail")
	}
}
