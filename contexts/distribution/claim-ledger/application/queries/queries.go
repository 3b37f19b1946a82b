package queries

import (
	"context"
	"log/slog"

	application "faucet/contexts/distribution/claim-ledger/application"
	"faucet/contexts/distribution/claim-ledger/domain/entities"
	"faucet/contexts/distribution/claim-ledger/domain/ledger"
	"faucet/contexts/distribution/claim-ledger/ports"
)

// LedgerStatus is the introspection view: configuration plus held balances.
type LedgerStatus struct {
	Owner           entities.Address
	Asset           entities.Address
	Amount          uint64
	Paused          bool
	TokenBalance    uint64
	CurrencyBalance uint64
}

type UseCase struct {
	Ledger *ledger.Ledger
	Cache  ports.StatusCache
	Logger *slog.Logger
}

// ClaimStatus reads one account's claimed flag, through the cache when one is
// wired. Cached entries are invalidated by the command side on claim/reset.
func (uc UseCase) ClaimStatus(ctx context.Context, account string) (bool, error) {
	logger := application.ResolveLogger(uc.Logger)
	normalized := entities.NormalizeAddress(account)

	if uc.Cache != nil {
		if claimed, found := uc.Cache.Get(normalized); found {
			return claimed, nil
		}
	}
	claimed, err := uc.Ledger.CheckClaimStatus(ctx, normalized)
	if err != nil {
		logger.Warn("claim status lookup failed",
			"event", "claim_status_lookup_failed",
			"module", "distribution/claim-ledger",
			"layer", "application",
			"account", normalized.String(),
			"error", err.Error(),
		)
		return false, err
	}
	if uc.Cache != nil {
		uc.Cache.Set(normalized, claimed)
	}
	return claimed, nil
}

func (uc UseCase) Status(ctx context.Context) (LedgerStatus, error) {
	logger := application.ResolveLogger(uc.Logger)
	config := uc.Ledger.Config()

	tokenBalance, err := uc.Ledger.TokenBalance(ctx)
	if err != nil {
		logger.Warn("token balance lookup failed",
			"event", "status_token_balance_failed",
			"module", "distribution/claim-ledger",
			"layer", "application",
			"asset", config.Asset.String(),
			"error", err.Error(),
		)
		return LedgerStatus{}, err
	}
	currencyBalance, err := uc.Ledger.CurrencyBalance(ctx)
	if err != nil {
		logger.Warn("currency balance lookup failed",
			"event", "status_currency_balance_failed",
			"module", "distribution/claim-ledger",
			"layer", "application",
			"error", err.Error(),
		)
		return LedgerStatus{}, err
	}
	return LedgerStatus{
		Owner:           config.Owner,
		Asset:           config.Asset,
		Amount:          config.Amount,
		Paused:          config.Paused,
		TokenBalance:    tokenBalance,
		CurrencyBalance: currencyBalance,
	}, nil
}
