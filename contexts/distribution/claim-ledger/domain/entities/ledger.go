package entities

import (
	"strings"
	"time"
)

// Address identifies an account. The empty string (after trimming) is the
// zero-address sentinel: as an asset reference it means "no token configured,
// currency-only mode", and it is never a valid recipient or caller.
type Address string

const ZeroAddress Address = ""

func NormalizeAddress(value string) Address {
	return Address(strings.TrimSpace(value))
}

func (a Address) IsZero() bool {
	return strings.TrimSpace(string(a)) == ""
}

func (a Address) String() string {
	return string(a)
}

// LedgerConfig is the owner-mutable configuration of a claim ledger.
// Owner is fixed at construction; Asset, Amount, and Paused change in place
// for the life of the ledger.
type LedgerConfig struct {
	Owner  Address
	Asset  Address
	Amount uint64
	Paused bool
}

type EventType string

const (
	EventClaimed           EventType = "claimed"
	EventResetClaim        EventType = "reset_claim"
	EventAssetUpdated      EventType = "asset_updated"
	EventAmountUpdated     EventType = "amount_updated"
	EventWithdrawnAsset    EventType = "withdrawn_asset"
	EventWithdrawnCurrency EventType = "withdrawn_currency"
	EventPaused            EventType = "paused"
	EventUnpaused          EventType = "unpaused"
)

// LedgerEvent is one entry in the ledger's append-only observable log.
// Events record outcomes only; they are not part of the mutable claim state.
type LedgerEvent struct {
	ID         string
	Type       EventType
	Account    Address
	Asset      Address
	Amount     uint64
	OccurredAt time.Time
}

// ClaimRecord is one registry entry. Claimed flips to true only on a
// successful claim and back to false only on an explicit owner reset.
type ClaimRecord struct {
	Account   Address
	Claimed   bool
	UpdatedAt time.Time
}
