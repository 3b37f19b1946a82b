package memory

import (
	"context"
	"fmt"
	"sync"

	"faucet/contexts/distribution/claim-ledger/domain/entities"
	"faucet/contexts/distribution/claim-ledger/ports"
)

// Token is an in-memory fungible asset: a balances map with mint and
// transfer. It stands in for the external token contract the ledger
// distributes.
type Token struct {
	mu       sync.Mutex
	balances map[entities.Address]uint64
}

func NewToken() *Token {
	return &Token{balances: make(map[entities.Address]uint64)}
}

func (t *Token) Mint(account entities.Address, amount uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.balances[entities.NormalizeAddress(string(account))] += amount
}

func (t *Token) Balance(account entities.Address) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.balances[entities.NormalizeAddress(string(account))]
}

func (t *Token) transfer(from, to entities.Address, amount uint64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	sender := entities.NormalizeAddress(string(from))
	if t.balances[sender] < amount {
		return fmt.Errorf("token balance %d below transfer amount %d", t.balances[sender], amount)
	}
	t.balances[sender] -= amount
	t.balances[entities.NormalizeAddress(string(to))] += amount
	return nil
}

// TokenRegistry maps asset addresses to transfer handles bound to one holder
// (the ledger) as the implicit sender.
type TokenRegistry struct {
	mu     sync.RWMutex
	holder entities.Address
	tokens map[entities.Address]ports.AssetToken
}

func NewTokenRegistry(holder entities.Address) *TokenRegistry {
	return &TokenRegistry{
		holder: entities.NormalizeAddress(string(holder)),
		tokens: make(map[entities.Address]ports.AssetToken),
	}
}

// Register binds a raw token to the registry holder as sender.
func (r *TokenRegistry) Register(asset entities.Address, token *Token) {
	r.RegisterHandle(asset, tokenHandle{token: token, holder: r.holder})
}

// RegisterHandle installs a transfer handle whose sender binding is managed
// by the handle itself.
func (r *TokenRegistry) RegisterHandle(asset entities.Address, token ports.AssetToken) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[entities.NormalizeAddress(string(asset))] = token
}

func (r *TokenRegistry) Resolve(_ context.Context, asset entities.Address) (ports.AssetToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	token, exists := r.tokens[entities.NormalizeAddress(string(asset))]
	if !exists {
		return nil, fmt.Errorf("no token registered at %q", asset)
	}
	return token, nil
}

type tokenHandle struct {
	token  *Token
	holder entities.Address
}

func (h tokenHandle) BalanceOf(_ context.Context, holder entities.Address) (uint64, error) {
	return h.token.Balance(holder), nil
}

func (h tokenHandle) Transfer(_ context.Context, to entities.Address, amount uint64) error {
	return h.token.transfer(h.holder, to, amount)
}

// Vault is the in-memory native-currency capability. Transfers pay out of the
// ledger's balance; Deposit is the unattributed top-up path.
type Vault struct {
	mu       sync.Mutex
	self     entities.Address
	balances map[entities.Address]uint64
}

func NewVault(self entities.Address) *Vault {
	return &Vault{
		self:     entities.NormalizeAddress(string(self)),
		balances: make(map[entities.Address]uint64),
	}
}

func (v *Vault) Balance(_ context.Context, holder entities.Address) (uint64, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.balances[entities.NormalizeAddress(string(holder))], nil
}

func (v *Vault) Transfer(_ context.Context, to entities.Address, amount uint64) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.balances[v.self] < amount {
		return fmt.Errorf("vault balance %d below transfer amount %d", v.balances[v.self], amount)
	}
	v.balances[v.self] -= amount
	v.balances[entities.NormalizeAddress(string(to))] += amount
	return nil
}

func (v *Vault) Deposit(_ context.Context, amount uint64) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.balances[v.self] += amount
	return nil
}

// Credit seeds an arbitrary account balance.
func (v *Vault) Credit(account entities.Address, amount uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.balances[entities.NormalizeAddress(string(account))] += amount
}

var _ ports.AssetResolver = (*TokenRegistry)(nil)
var _ ports.CurrencyVault = (*Vault)(nil)
