package claimledger

import (
	"log/slog"
	"sync"
	"time"

	"faucet/contexts/distribution/claim-ledger/adapters/cache"
	httpadapter "faucet/contexts/distribution/claim-ledger/adapters/http"
	"faucet/contexts/distribution/claim-ledger/adapters/memory"
	"faucet/contexts/distribution/claim-ledger/application/commands"
	"faucet/contexts/distribution/claim-ledger/application/queries"
	"faucet/contexts/distribution/claim-ledger/application/workers"
	"faucet/contexts/distribution/claim-ledger/domain/entities"
	"faucet/contexts/distribution/claim-ledger/domain/ledger"
	"faucet/contexts/distribution/claim-ledger/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Ledger  *ledger.Ledger
	Relay   *workers.EventRelay

	// In-memory collaborators, populated by NewInMemoryModule only.
	Store    *memory.Store
	Registry *memory.TokenRegistry
	Vault    *memory.Vault
	Token    *memory.Token
}

type Dependencies struct {
	Self   entities.Address
	Owner  entities.Address
	Asset  entities.Address
	Amount uint64

	ClaimRegistry ports.ClaimRegistry
	Assets        ports.AssetResolver
	Vault         ports.CurrencyVault
	ConfigStore   ports.ConfigStore
	EventOutbox   ports.EventOutbox
	Publisher     ports.EventPublisher
	StatusCache   ports.StatusCache
	Clock         ports.Clock
	IDGen         ports.IDGenerator
	Logger        *slog.Logger
}

func NewModule(deps Dependencies) (Module, error) {
	ledgerAggregate, err := ledger.New(ledger.Params{
		Self:     deps.Self,
		Owner:    deps.Owner,
		Asset:    deps.Asset,
		Amount:   deps.Amount,
		Registry: deps.ClaimRegistry,
		Assets:   deps.Assets,
		Vault:    deps.Vault,
		Config:   deps.ConfigStore,
		Events:   deps.EventOutbox,
		Clock:    deps.Clock,
		IDGen:    deps.IDGen,
	})
	if err != nil {
		return Module{}, err
	}

	commandUseCase := commands.UseCase{
		Ledger: ledgerAggregate,
		Cache:  deps.StatusCache,
		Logger: deps.Logger,
		Guard:  &sync.Mutex{},
	}
	queryUseCase := queries.UseCase{
		Ledger: ledgerAggregate,
		Cache:  deps.StatusCache,
		Logger: deps.Logger,
	}

	module := Module{
		Handler: httpadapter.Handler{
			Commands: commandUseCase,
			Queries:  queryUseCase,
			Logger:   deps.Logger,
		},
		Ledger: ledgerAggregate,
	}
	if deps.Publisher != nil {
		module.Relay = &workers.EventRelay{
			Outbox:    deps.EventOutbox,
			Publisher: deps.Publisher,
			Clock:     deps.Clock,
			Logger:    deps.Logger,
		}
	}
	return module, nil
}

// NewInMemoryModule wires the module against in-memory collaborators: a claim
// store, a token registry with one minted token when asset is non-zero, and a
// currency vault. Used by unit tests and local runs without Postgres.
func NewInMemoryModule(self, owner, asset entities.Address, amount uint64, logger *slog.Logger) (Module, error) {
	store := memory.NewStore()
	registry := memory.NewTokenRegistry(self)
	vault := memory.NewVault(self)
	statusCache := cache.NewStatusCache(30*time.Second, time.Minute)

	var token *memory.Token
	if !entities.NormalizeAddress(string(asset)).IsZero() {
		token = memory.NewToken()
		registry.Register(asset, token)
	}

	module, err := NewModule(Dependencies{
		Self:          self,
		Owner:         owner,
		Asset:         asset,
		Amount:        amount,
		ClaimRegistry: store,
		Assets:        registry,
		Vault:         vault,
		ConfigStore:   store,
		EventOutbox:   store,
		StatusCache:   statusCache,
		Clock:         store,
		IDGen:         store,
		Logger:        logger,
	})
	if err != nil {
		return Module{}, err
	}
	module.Store = store
	module.Registry = registry
	module.Vault = vault
	module.Token = token
	return module, nil
}
