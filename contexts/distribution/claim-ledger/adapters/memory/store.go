package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"faucet/contexts/distribution/claim-ledger/domain/entities"
	"faucet/contexts/distribution/claim-ledger/ports"

	"github.com/google/uuid"
)

type eventRecord struct {
	event       entities.LedgerEvent
	publishedAt *time.Time
}

// Store is the in-memory claim registry, config snapshot, and event outbox.
type Store struct {
	mu sync.RWMutex

	claims map[entities.Address]entities.ClaimRecord
	config *entities.LedgerConfig
	events []eventRecord
}

func NewStore() *Store {
	return &Store{
		claims: make(map[entities.Address]entities.ClaimRecord),
	}
}

func (s *Store) HasClaimed(_ context.Context, account entities.Address) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, exists := s.claims[entities.NormalizeAddress(string(account))]
	return exists && record.Claimed, nil
}

func (s *Store) SetClaimed(_ context.Context, account entities.Address, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	normalized := entities.NormalizeAddress(string(account))
	s.claims[normalized] = entities.ClaimRecord{
		Account:   normalized,
		Claimed:   true,
		UpdatedAt: at.UTC(),
	}
	return nil
}

func (s *Store) ClearClaimed(_ context.Context, account entities.Address, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	normalized := entities.NormalizeAddress(string(account))
	s.claims[normalized] = entities.ClaimRecord{
		Account:   normalized,
		Claimed:   false,
		UpdatedAt: at.UTC(),
	}
	return nil
}

func (s *Store) SaveConfig(_ context.Context, config entities.LedgerConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := config
	s.config = &snapshot
	return nil
}

func (s *Store) LoadConfig(_ context.Context) (entities.LedgerConfig, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.config == nil {
		return entities.LedgerConfig{}, false, nil
	}
	return *s.config, true, nil
}

func (s *Store) AppendEvent(_ context.Context, event entities.LedgerEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(event.ID) == "" {
		event.ID = uuid.NewString()
	}
	event.OccurredAt = event.OccurredAt.UTC()
	s.events = append(s.events, eventRecord{event: event})
	return nil
}

func (s *Store) ListPendingEvents(_ context.Context, limit int) ([]entities.LedgerEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}
	pending := make([]entities.LedgerEvent, 0, limit)
	for _, record := range s.events {
		if record.publishedAt != nil {
			continue
		}
		pending = append(pending, record.event)
		if len(pending) == limit {
			break
		}
	}
	return pending, nil
}

func (s *Store) MarkEventPublished(_ context.Context, eventID string, publishedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for idx := range s.events {
		if s.events[idx].event.ID == strings.TrimSpace(eventID) {
			timestamp := publishedAt.UTC()
			s.events[idx].publishedAt = &timestamp
			return nil
		}
	}
	return fmt.Errorf("outbox event not found: %s", eventID)
}

// Events returns the full append-only log in emission order.
func (s *Store) Events() []entities.LedgerEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := make([]entities.LedgerEvent, 0, len(s.events))
	for _, record := range s.events {
		events = append(events, record.event)
	}
	return events
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

var _ ports.ClaimRegistry = (*Store)(nil)
var _ ports.ConfigStore = (*Store)(nil)
var _ ports.EventOutbox = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
