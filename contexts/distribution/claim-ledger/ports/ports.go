package ports

import (
	"context"
	"time"

	"faucet/contexts/distribution/claim-ledger/domain/entities"
)

// AssetToken is a handle to one fungible asset contract, bound to the ledger
// as the implicit holder/sender.
type AssetToken interface {
	BalanceOf(ctx context.Context, holder entities.Address) (uint64, error)
	Transfer(ctx context.Context, to entities.Address, amount uint64) error
}

// AssetResolver turns an asset reference into a transfer handle. Resolution
// follows the current reference at call time, so an owner reassignment takes
// effect on the next claim.
type AssetResolver interface {
	Resolve(ctx context.Context, asset entities.Address) (AssetToken, error)
}

// CurrencyVault is the native-currency transfer capability. Transfer pays out
// of the ledger's own balance; Deposit is the unattributed top-up path.
type CurrencyVault interface {
	Balance(ctx context.Context, holder entities.Address) (uint64, error)
	Transfer(ctx context.Context, to entities.Address, amount uint64) error
	Deposit(ctx context.Context, amount uint64) error
}

// ClaimRegistry stores the per-account claimed flag. Absence means
// "not claimed".
type ClaimRegistry interface {
	HasClaimed(ctx context.Context, account entities.Address) (bool, error)
	SetClaimed(ctx context.Context, account entities.Address, at time.Time) error
	ClearClaimed(ctx context.Context, account entities.Address, at time.Time) error
}

// ConfigStore persists the owner-mutable ledger configuration.
type ConfigStore interface {
	SaveConfig(ctx context.Context, config entities.LedgerConfig) error
	LoadConfig(ctx context.Context) (entities.LedgerConfig, bool, error)
}

// EventOutbox is the append-only event log plus the pending/published
// bookkeeping used by the relay worker.
type EventOutbox interface {
	AppendEvent(ctx context.Context, event entities.LedgerEvent) error
	ListPendingEvents(ctx context.Context, limit int) ([]entities.LedgerEvent, error)
	MarkEventPublished(ctx context.Context, eventID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event entities.LedgerEvent) error
}

type EventSubscriber interface {
	Subscribe(ctx context.Context, topic string, consumerGroup string, handler func(context.Context, entities.LedgerEvent) error) error
}

// StatusCache is a read-through cache for claim-status lookups.
type StatusCache interface {
	Get(account entities.Address) (bool, bool)
	Set(account entities.Address, claimed bool)
	Invalidate(account entities.Address)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
