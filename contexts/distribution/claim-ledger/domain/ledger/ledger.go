package ledger

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"faucet/contexts/distribution/claim-ledger/domain/entities"
	domainerrors "faucet/contexts/distribution/claim-ledger/domain/errors"
	"faucet/contexts/distribution/claim-ledger/ports"
)

// Ledger is the single-claim distribution state machine. Each account gets at
// most one successful claim (token or currency) until the owner resets it.
// External transfers run under checks-effects-interactions ordering: the
// claimed flag is committed to the registry before the transfer is attempted,
// and a busy flag rejects nested invocations of guarded operations.
//
// The busy flag detects call-stack reentrancy only. Concurrent callers are
// serialized one layer up, by the command use-case guard.
type Ledger struct {
	self  entities.Address
	owner entities.Address

	registry ports.ClaimRegistry
	assets   ports.AssetResolver
	vault    ports.CurrencyVault
	config   ports.ConfigStore
	events   ports.EventOutbox
	clock    ports.Clock
	idgen    ports.IDGenerator

	mu     sync.RWMutex
	asset  entities.Address
	amount uint64
	paused bool

	busy atomic.Bool
}

// Params carries construction inputs. Asset may be the zero address
// (currency-only mode); Owner may not.
type Params struct {
	Self   entities.Address
	Owner  entities.Address
	Asset  entities.Address
	Amount uint64

	Registry ports.ClaimRegistry
	Assets   ports.AssetResolver
	Vault    ports.CurrencyVault
	Config   ports.ConfigStore
	Events   ports.EventOutbox
	Clock    ports.Clock
	IDGen    ports.IDGenerator
}

func New(params Params) (*Ledger, error) {
	owner := entities.NormalizeAddress(string(params.Owner))
	if owner.IsZero() {
		return nil, domainerrors.ErrZeroAddress
	}
	return &Ledger{
		self:     entities.NormalizeAddress(string(params.Self)),
		owner:    owner,
		registry: params.Registry,
		assets:   params.Assets,
		vault:    params.Vault,
		config:   params.Config,
		events:   params.Events,
		clock:    params.Clock,
		idgen:    params.IDGen,
		asset:    entities.NormalizeAddress(string(params.Asset)),
		amount:   params.Amount,
	}, nil
}

// Restore overwrites the mutable configuration from a persisted snapshot.
// Used by the composition root when a config row already exists.
func (l *Ledger) Restore(config entities.LedgerConfig) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.asset = entities.NormalizeAddress(string(config.Asset))
	l.amount = config.Amount
	l.paused = config.Paused
}

// ClaimToken disburses the configured amount of the configured asset to the
// caller, once. Returns the disbursed amount.
func (l *Ledger) ClaimToken(ctx context.Context, caller entities.Address) (uint64, error) {
	caller = entities.NormalizeAddress(string(caller))
	if caller.IsZero() {
		return 0, domainerrors.ErrZeroAddress
	}
	if !l.busy.CompareAndSwap(false, true) {
		return 0, domainerrors.ErrReentrantCall
	}
	defer l.busy.Store(false)

	paused, asset, amount := l.snapshot()
	if paused {
		return 0, domainerrors.ErrPaused
	}
	claimed, err := l.registry.HasClaimed(ctx, caller)
	if err != nil {
		return 0, err
	}
	if claimed {
		return 0, domainerrors.ErrAlreadyClaimed
	}
	if asset.IsZero() {
		return 0, domainerrors.ErrAssetNotConfigured
	}
	token, err := l.assets.Resolve(ctx, asset)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domainerrors.ErrTransferFailed, err)
	}
	balance, err := token.BalanceOf(ctx, l.self)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domainerrors.ErrTransferFailed, err)
	}
	if balance < amount {
		return 0, domainerrors.ErrInsufficientBalance
	}

	// Flag before transfer: a reentrant callback that somehow slips past the
	// busy flag observes the registry entry and fails as already claimed.
	// The flag is intentionally not rolled back when the transfer fails; the
	// owner clears it with an explicit reset.
	if err := l.registry.SetClaimed(ctx, caller, l.now()); err != nil {
		return 0, err
	}
	if err := token.Transfer(ctx, caller, amount); err != nil {
		return 0, fmt.Errorf("%w: %v", domainerrors.ErrTransferFailed, err)
	}
	if err := l.appendEvent(ctx, entities.EventClaimed, caller, asset, amount); err != nil {
		return amount, err
	}
	return amount, nil
}

// ClaimCurrency is the native-currency twin of ClaimToken. Currency claims
// are always available; there is no asset-configured precondition.
func (l *Ledger) ClaimCurrency(ctx context.Context, caller entities.Address) (uint64, error) {
	caller = entities.NormalizeAddress(string(caller))
	if caller.IsZero() {
		return 0, domainerrors.ErrZeroAddress
	}
	if !l.busy.CompareAndSwap(false, true) {
		return 0, domainerrors.ErrReentrantCall
	}
	defer l.busy.Store(false)

	paused, _, amount := l.snapshot()
	if paused {
		return 0, domainerrors.ErrPaused
	}
	claimed, err := l.registry.HasClaimed(ctx, caller)
	if err != nil {
		return 0, err
	}
	if claimed {
		return 0, domainerrors.ErrAlreadyClaimed
	}
	balance, err := l.vault.Balance(ctx, l.self)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domainerrors.ErrTransferFailed, err)
	}
	if balance < amount {
		return 0, domainerrors.ErrInsufficientBalance
	}

	if err := l.registry.SetClaimed(ctx, caller, l.now()); err != nil {
		return 0, err
	}
	if err := l.vault.Transfer(ctx, caller, amount); err != nil {
		return 0, fmt.Errorf("%w: %v", domainerrors.ErrTransferFailed, err)
	}
	if err := l.appendEvent(ctx, entities.EventClaimed, caller, entities.ZeroAddress, amount); err != nil {
		return amount, err
	}
	return amount, nil
}

// CheckClaimStatus reports the registry flag for one account. Pure read.
func (l *Ledger) CheckClaimStatus(ctx context.Context, account entities.Address) (bool, error) {
	account = entities.NormalizeAddress(string(account))
	if account.IsZero() {
		return false, domainerrors.ErrZeroAddress
	}
	return l.registry.HasClaimed(ctx, account)
}

// ResetClaim clears one account's flag. Owner only. Resetting an unclaimed
// account succeeds as a no-op and emits nothing.
func (l *Ledger) ResetClaim(ctx context.Context, caller, account entities.Address) error {
	if err := l.requireOwner(caller); err != nil {
		return err
	}
	account = entities.NormalizeAddress(string(account))
	if account.IsZero() {
		return domainerrors.ErrZeroAddress
	}
	claimed, err := l.registry.HasClaimed(ctx, account)
	if err != nil {
		return err
	}
	if !claimed {
		return nil
	}
	if err := l.registry.ClearClaimed(ctx, account, l.now()); err != nil {
		return err
	}
	return l.appendEvent(ctx, entities.EventResetClaim, account, entities.ZeroAddress, 0)
}

// UpdateAsset replaces the distributed asset. The zero address is rejected:
// disabling token claims is a construction-time decision only.
func (l *Ledger) UpdateAsset(ctx context.Context, caller, newAsset entities.Address) error {
	if err := l.requireOwner(caller); err != nil {
		return err
	}
	newAsset = entities.NormalizeAddress(string(newAsset))
	if newAsset.IsZero() {
		return domainerrors.ErrZeroAddress
	}

	l.mu.Lock()
	next := entities.LedgerConfig{Owner: l.owner, Asset: newAsset, Amount: l.amount, Paused: l.paused}
	if err := l.persistConfig(ctx, next); err != nil {
		l.mu.Unlock()
		return err
	}
	l.asset = newAsset
	l.mu.Unlock()

	return l.appendEvent(ctx, entities.EventAssetUpdated, entities.ZeroAddress, newAsset, 0)
}

// UpdateDisbursementAmount replaces the per-claim amount. Zero is permitted
// and effectively disables payout without pausing.
func (l *Ledger) UpdateDisbursementAmount(ctx context.Context, caller entities.Address, amount uint64) error {
	if err := l.requireOwner(caller); err != nil {
		return err
	}

	l.mu.Lock()
	next := entities.LedgerConfig{Owner: l.owner, Asset: l.asset, Amount: amount, Paused: l.paused}
	if err := l.persistConfig(ctx, next); err != nil {
		l.mu.Unlock()
		return err
	}
	l.amount = amount
	l.mu.Unlock()

	return l.appendEvent(ctx, entities.EventAmountUpdated, entities.ZeroAddress, entities.ZeroAddress, amount)
}

// Pause gates the two claim operations. Administrative operations stay
// available while paused. Pausing an already-paused ledger is a no-op.
func (l *Ledger) Pause(ctx context.Context, caller entities.Address) error {
	return l.setPaused(ctx, caller, true)
}

func (l *Ledger) Unpause(ctx context.Context, caller entities.Address) error {
	return l.setPaused(ctx, caller, false)
}

func (l *Ledger) setPaused(ctx context.Context, caller entities.Address, paused bool) error {
	if err := l.requireOwner(caller); err != nil {
		return err
	}

	l.mu.Lock()
	if l.paused == paused {
		l.mu.Unlock()
		return nil
	}
	next := entities.LedgerConfig{Owner: l.owner, Asset: l.asset, Amount: l.amount, Paused: paused}
	if err := l.persistConfig(ctx, next); err != nil {
		l.mu.Unlock()
		return err
	}
	l.paused = paused
	l.mu.Unlock()

	eventType := entities.EventUnpaused
	if paused {
		eventType = entities.EventPaused
	}
	return l.appendEvent(ctx, eventType, entities.ZeroAddress, entities.ZeroAddress, 0)
}

// WithdrawAsset extracts held tokens of any asset to a recipient. Owner only.
// No balance precheck: insufficient funds surface as a transfer failure.
func (l *Ledger) WithdrawAsset(ctx context.Context, caller, asset, to entities.Address, amount uint64) error {
	if !l.busy.CompareAndSwap(false, true) {
		return domainerrors.ErrReentrantCall
	}
	defer l.busy.Store(false)

	if err := l.requireOwner(caller); err != nil {
		return err
	}
	to = entities.NormalizeAddress(string(to))
	if to.IsZero() {
		return domainerrors.ErrZeroAddress
	}
	asset = entities.NormalizeAddress(string(asset))
	token, err := l.assets.Resolve(ctx, asset)
	if err != nil {
		return fmt.Errorf("%w: %v", domainerrors.ErrTransferFailed, err)
	}
	if err := token.Transfer(ctx, to, amount); err != nil {
		return fmt.Errorf("%w: %v", domainerrors.ErrTransferFailed, err)
	}
	return l.appendEvent(ctx, entities.EventWithdrawnAsset, to, asset, amount)
}

// WithdrawCurrency extracts held native currency to a recipient. Owner only.
func (l *Ledger) WithdrawCurrency(ctx context.Context, caller, to entities.Address, amount uint64) error {
	if !l.busy.CompareAndSwap(false, true) {
		return domainerrors.ErrReentrantCall
	}
	defer l.busy.Store(false)

	if err := l.requireOwner(caller); err != nil {
		return err
	}
	to = entities.NormalizeAddress(string(to))
	if to.IsZero() {
		return domainerrors.ErrZeroAddress
	}
	if err := l.vault.Transfer(ctx, to, amount); err != nil {
		return fmt.Errorf("%w: %v", domainerrors.ErrTransferFailed, err)
	}
	return l.appendEvent(ctx, entities.EventWithdrawnCurrency, to, entities.ZeroAddress, amount)
}

// Fund accepts an unconditional, unattributed currency top-up. No registry
// change, no event.
func (l *Ledger) Fund(ctx context.Context, amount uint64) error {
	return l.vault.Deposit(ctx, amount)
}

func (l *Ledger) Owner() entities.Address {
	return l.owner
}

func (l *Ledger) Self() entities.Address {
	return l.self
}

func (l *Ledger) Config() entities.LedgerConfig {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return entities.LedgerConfig{Owner: l.owner, Asset: l.asset, Amount: l.amount, Paused: l.paused}
}

// TokenBalance reports the ledger's held balance of the configured asset.
// Zero with no error in currency-only mode.
func (l *Ledger) TokenBalance(ctx context.Context) (uint64, error) {
	_, asset, _ := l.snapshot()
	if asset.IsZero() {
		return 0, nil
	}
	token, err := l.assets.Resolve(ctx, asset)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domainerrors.ErrTransferFailed, err)
	}
	return token.BalanceOf(ctx, l.self)
}

func (l *Ledger) CurrencyBalance(ctx context.Context) (uint64, error) {
	return l.vault.Balance(ctx, l.self)
}

func (l *Ledger) requireOwner(caller entities.Address) error {
	if entities.NormalizeAddress(string(caller)) != l.owner {
		return domainerrors.ErrUnauthorized
	}
	return nil
}

func (l *Ledger) snapshot() (bool, entities.Address, uint64) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.paused, l.asset, l.amount
}

func (l *Ledger) persistConfig(ctx context.Context, config entities.LedgerConfig) error {
	if l.config == nil {
		return nil
	}
	return l.config.SaveConfig(ctx, config)
}

func (l *Ledger) appendEvent(ctx context.Context, eventType entities.EventType, account, asset entities.Address, amount uint64) error {
	if l.events == nil {
		return nil
	}
	eventID, err := l.idgen.NewID(ctx)
	if err != nil {
		return err
	}
	return l.events.AppendEvent(ctx, entities.LedgerEvent{
		ID:         eventID,
		Type:       eventType,
		Account:    account,
		Asset:      asset,
		Amount:     amount,
		OccurredAt: l.now(),
	})
}

func (l *Ledger) now() time.Time {
	if l.clock == nil {
		return time.Now().UTC()
	}
	return l.clock.Now().UTC()
}
