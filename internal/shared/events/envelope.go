package events

import (
	"time"

	"faucet/contexts/distribution/claim-ledger/domain/entities"
)

// Envelope is the canonical event shape published on the bus. Payload carries
// the module-level event; the outer fields are stable across modules.
type Envelope struct {
	EventID        string    `json:"event_id"`
	EventType      string    `json:"event_type"`
	SourceService  string    `json:"source_service"`
	OccurredAtUTC  time.Time `json:"occurred_at_utc"`
	EntityType     string    `json:"entity_type"`
	EntityID       string    `json:"entity_id"`
	PayloadVersion int       `json:"payload_version"`
	Payload        any       `json:"payload"`
}

// FromLedgerEvent wraps a ledger event for transport. EntityID is the account
// the event is about; administrative events carry the zero (empty) account.
func FromLedgerEvent(sourceService string, event entities.LedgerEvent) Envelope {
	return Envelope{
		EventID:        event.ID,
		EventType:      string(event.Type),
		SourceService:  sourceService,
		OccurredAtUTC:  event.OccurredAt.UTC(),
		EntityType:     "ledger_claim",
		EntityID:       event.Account.String(),
		PayloadVersion: 1,
		Payload:        event,
	}
}
