package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	claimledger "faucet/contexts/distribution/claim-ledger"
	"faucet/contexts/distribution/claim-ledger/adapters/cache"
	"faucet/contexts/distribution/claim-ledger/adapters/memory"
	postgresadapter "faucet/contexts/distribution/claim-ledger/adapters/postgres"
	"faucet/contexts/distribution/claim-ledger/application/workers"
	"faucet/contexts/distribution/claim-ledger/domain/entities"
	"faucet/internal/platform/config"
	"faucet/internal/platform/db"
	"faucet/internal/platform/httpserver"
	"faucet/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

const ledgerTopic = "faucet.ledger"

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	relay        workers.EventRelay
	bus          *messaging.Bus
	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}
	if strings.TrimSpace(cfg.OwnerAddress) == "" {
		return nil, errors.New("FAUCET_OWNER is required")
	}

	pg, err := db.Connect(context.Background(), cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}
	if err := postgresadapter.AutoMigrate(pg.DB); err != nil {
		_ = pg.Close()
		return nil, err
	}

	repo := postgresadapter.NewRepository(pg.DB, logger)

	self := entities.NormalizeAddress(cfg.FaucetAddress)

	// Token and currency plumbing is in-process while chain RPC wiring is
	// finalized; the registry hands the ledger transfer handles keyed by the
	// configured asset address.
	registry := memory.NewTokenRegistry(self)
	vault := memory.NewVault(self)
	asset := entities.NormalizeAddress(cfg.AssetAddress)
	if !asset.IsZero() {
		registry.Register(asset, memory.NewToken())
	}

	module, err := claimledger.NewModule(claimledger.Dependencies{
		Self:          self,
		Owner:         entities.NormalizeAddress(cfg.OwnerAddress),
		Asset:         asset,
		Amount:        cfg.DripAmount,
		ClaimRegistry: repo,
		Assets:        registry,
		Vault:         vault,
		ConfigStore:   repo,
		EventOutbox:   repo,
		StatusCache:   cache.NewStatusCache(cfg.StatusCacheTTL, cfg.StatusCacheTTL*2),
		Clock:         postgresadapter.SystemClock{},
		IDGen:         postgresadapter.UUIDGenerator{},
		Logger:        logger,
	})
	if err != nil {
		_ = pg.Close()
		return nil, err
	}

	if err := restoreOrSeedConfig(context.Background(), repo, module, cfg); err != nil {
		_ = pg.Close()
		return nil, err
	}

	server := httpserver.New(module, logger, normalizeAddr(cfg.HTTPPort), httpserver.Options{
		ClaimRatePerSecond: cfg.ClaimRatePerSecond,
		ClaimRateBurst:     cfg.ClaimRateBurst,
	})
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

// restoreOrSeedConfig reconciles the env-provided defaults with the persisted
// configuration row: persisted state wins, first boot writes the seed.
func restoreOrSeedConfig(ctx context.Context, repo *postgresadapter.Repository, module claimledger.Module, cfg config.Config) error {
	persisted, found, err := repo.LoadConfig(ctx)
	if err != nil {
		return err
	}
	if found {
		module.Ledger.Restore(persisted)
		return nil
	}
	seed := entities.LedgerConfig{
		Owner:  entities.NormalizeAddress(cfg.OwnerAddress),
		Asset:  entities.NormalizeAddress(cfg.AssetAddress),
		Amount: cfg.DripAmount,
		Paused: cfg.StartPaused,
	}
	module.Ledger.Restore(seed)
	return repo.SaveConfig(ctx, seed)
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(context.Background(), cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}
	if err := postgresadapter.AutoMigrate(pg.DB); err != nil {
		_ = pg.Close()
		return nil, err
	}

	bus := messaging.NewBus(cfg.ServiceName, logger)
	repo := postgresadapter.NewRepository(pg.DB, logger)

	return &WorkerApp{
		postgres: pg,
		bus:      bus,
		relay: workers.EventRelay{
			Outbox:    repo,
			Publisher: bus,
			Clock:     postgresadapter.SystemClock{},
			Topic:     ledgerTopic,
			BatchSize: 100,
			Logger:    logger,
		},
		pollInterval: cfg.RelayInterval,
		logger:       logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	// Audit consumer: every relayed ledger event lands in the structured log.
	err := w.bus.Subscribe(ctx, ledgerTopic, "faucet-audit-cg", func(_ context.Context, event entities.LedgerEvent) error {
		w.logger.Info("ledger event consumed",
			"event", "ledger_event_consumed",
			"module", "internal/app/bootstrap",
			"layer", "worker",
			"event_id", event.ID,
			"event_type", string(event.Type),
			"account", event.Account.String(),
			"amount", event.Amount,
		)
		return nil
	})
	if err != nil {
		return err
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if err := w.relay.RunOnce(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
