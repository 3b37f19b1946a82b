package commands

import (
	"context"
	"log/slog"
	"sync"

	application "faucet/contexts/distribution/claim-ledger/application"
	"faucet/contexts/distribution/claim-ledger/domain/entities"
	"faucet/contexts/distribution/claim-ledger/domain/ledger"
	"faucet/contexts/distribution/claim-ledger/ports"
)

type ClaimCommand struct {
	Caller string
}

type ResetClaimCommand struct {
	Caller  string
	Account string
}

type UpdateAssetCommand struct {
	Caller string
	Asset  string
}

type UpdateAmountCommand struct {
	Caller string
	Amount uint64
}

type PauseCommand struct {
	Caller string
}

type WithdrawAssetCommand struct {
	Caller string
	Asset  string
	To     string
	Amount uint64
}

type WithdrawCurrencyCommand struct {
	Caller string
	To     string
	Amount uint64
}

type FundCommand struct {
	Amount uint64
}

type UseCase struct {
	Ledger *ledger.Ledger
	Cache  ports.StatusCache
	Logger *slog.Logger

	// Guard serializes the transfer-executing operations across goroutines.
	// The ledger's busy flag then only trips on call-stack reentrancy, never
	// on two eligible callers arriving at the same time.
	Guard *sync.Mutex
}

func (uc UseCase) ClaimToken(ctx context.Context, cmd ClaimCommand) (uint64, error) {
	defer uc.lockGuard()()
	logger := application.ResolveLogger(uc.Logger)
	caller := entities.NormalizeAddress(cmd.Caller)
	amount, err := uc.Ledger.ClaimToken(ctx, caller)
	if err != nil {
		logger.Warn("token claim rejected",
			"event", "claim_token_rejected",
			"module", "distribution/claim-ledger",
			"layer", "application",
			"account", caller.String(),
			"error", err.Error(),
		)
		return 0, err
	}
	uc.invalidate(caller)
	logger.Info("token claim disbursed",
		"event", "claim_token_disbursed",
		"module", "distribution/claim-ledger",
		"layer", "application",
		"account", caller.String(),
		"amount", amount,
	)
	return amount, nil
}

func (uc UseCase) ClaimCurrency(ctx context.Context, cmd ClaimCommand) (uint64, error) {
	defer uc.lockGuard()()
	logger := application.ResolveLogger(uc.Logger)
	caller := entities.NormalizeAddress(cmd.Caller)
	amount, err := uc.Ledger.ClaimCurrency(ctx, caller)
	if err != nil {
		logger.Warn("currency claim rejected",
			"event", "claim_currency_rejected",
			"module", "distribution/claim-ledger",
			"layer", "application",
			"account", caller.String(),
			"error", err.Error(),
		)
		return 0, err
	}
	uc.invalidate(caller)
	logger.Info("currency claim disbursed",
		"event", "claim_currency_disbursed",
		"module", "distribution/claim-ledger",
		"layer", "application",
		"account", caller.String(),
		"amount", amount,
	)
	return amount, nil
}

func (uc UseCase) ResetClaim(ctx context.Context, cmd ResetClaimCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	account := entities.NormalizeAddress(cmd.Account)
	if err := uc.Ledger.ResetClaim(ctx, entities.NormalizeAddress(cmd.Caller), account); err != nil {
		logger.Warn("claim reset rejected",
			"event", "reset_claim_rejected",
			"module", "distribution/claim-ledger",
			"layer", "application",
			"account", account.String(),
			"error", err.Error(),
		)
		return err
	}
	uc.invalidate(account)
	logger.Info("claim reset applied",
		"event", "reset_claim_applied",
		"module", "distribution/claim-ledger",
		"layer", "application",
		"account", account.String(),
	)
	return nil
}

func (uc UseCase) UpdateAsset(ctx context.Context, cmd UpdateAssetCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	asset := entities.NormalizeAddress(cmd.Asset)
	if err := uc.Ledger.UpdateAsset(ctx, entities.NormalizeAddress(cmd.Caller), asset); err != nil {
		logger.Warn("asset update rejected",
			"event", "update_asset_rejected",
			"module", "distribution/claim-ledger",
			"layer", "application",
			"asset", asset.String(),
			"error", err.Error(),
		)
		return err
	}
	logger.Info("asset updated",
		"event", "asset_updated",
		"module", "distribution/claim-ledger",
		"layer", "application",
		"asset", asset.String(),
	)
	return nil
}

func (uc UseCase) UpdateDisbursementAmount(ctx context.Context, cmd UpdateAmountCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	if err := uc.Ledger.UpdateDisbursementAmount(ctx, entities.NormalizeAddress(cmd.Caller), cmd.Amount); err != nil {
		logger.Warn("amount update rejected",
			"event", "update_amount_rejected",
			"module", "distribution/claim-ledger",
			"layer", "application",
			"amount", cmd.Amount,
			"error", err.Error(),
		)
		return err
	}
	logger.Info("disbursement amount updated",
		"event", "amount_updated",
		"module", "distribution/claim-ledger",
		"layer", "application",
		"amount", cmd.Amount,
	)
	return nil
}

func (uc UseCase) Pause(ctx context.Context, cmd PauseCommand) error {
	return uc.setPaused(ctx, cmd, true)
}

func (uc UseCase) Unpause(ctx context.Context, cmd PauseCommand) error {
	return uc.setPaused(ctx, cmd, false)
}

func (uc UseCase) setPaused(ctx context.Context, cmd PauseCommand, paused bool) error {
	logger := application.ResolveLogger(uc.Logger)
	caller := entities.NormalizeAddress(cmd.Caller)

	var err error
	if paused {
		err = uc.Ledger.Pause(ctx, caller)
	} else {
		err = uc.Ledger.Unpause(ctx, caller)
	}
	if err != nil {
		logger.Warn("pause toggle rejected",
			"event", "pause_toggle_rejected",
			"module", "distribution/claim-ledger",
			"layer", "application",
			"paused", paused,
			"error", err.Error(),
		)
		return err
	}
	logger.Info("pause state set",
		"event", "pause_state_set",
		"module", "distribution/claim-ledger",
		"layer", "application",
		"paused", paused,
	)
	return nil
}

func (uc UseCase) WithdrawAsset(ctx context.Context, cmd WithdrawAssetCommand) error {
	defer uc.lockGuard()()
	logger := application.ResolveLogger(uc.Logger)
	to := entities.NormalizeAddress(cmd.To)
	asset := entities.NormalizeAddress(cmd.Asset)
	if err := uc.Ledger.WithdrawAsset(ctx, entities.NormalizeAddress(cmd.Caller), asset, to, cmd.Amount); err != nil {
		logger.Warn("asset withdrawal rejected",
			"event", "withdraw_asset_rejected",
			"module", "distribution/claim-ledger",
			"layer", "application",
			"asset", asset.String(),
			"to", to.String(),
			"amount", cmd.Amount,
			"error", err.Error(),
		)
		return err
	}
	logger.Info("asset withdrawn",
		"event", "asset_withdrawn",
		"module", "distribution/claim-ledger",
		"layer", "application",
		"asset", asset.String(),
		"to", to.String(),
		"amount", cmd.Amount,
	)
	return nil
}

func (uc UseCase) WithdrawCurrency(ctx context.Context, cmd WithdrawCurrencyCommand) error {
	defer uc.lockGuard()()
	logger := application.ResolveLogger(uc.Logger)
	to := entities.NormalizeAddress(cmd.To)
	if err := uc.Ledger.WithdrawCurrency(ctx, entities.NormalizeAddress(cmd.Caller), to, cmd.Amount); err != nil {
		logger.Warn("currency withdrawal rejected",
			"event", "withdraw_currency_rejected",
			"module", "distribution/claim-ledger",
			"layer", "application",
			"to", to.String(),
			"amount", cmd.Amount,
			"error", err.Error(),
		)
		return err
	}
	logger.Info("currency withdrawn",
		"event", "currency_withdrawn",
		"module", "distribution/claim-ledger",
		"layer", "application",
		"to", to.String(),
		"amount", cmd.Amount,
	)
	return nil
}

func (uc UseCase) Fund(ctx context.Context, cmd FundCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	if err := uc.Ledger.Fund(ctx, cmd.Amount); err != nil {
		logger.Error("funding deposit failed",
			"event", "fund_deposit_failed",
			"module", "distribution/claim-ledger",
			"layer", "application",
			"amount", cmd.Amount,
			"error", err.Error(),
		)
		return err
	}
	logger.Info("ledger funded",
		"event", "ledger_funded",
		"module", "distribution/claim-ledger",
		"layer", "application",
		"amount", cmd.Amount,
	)
	return nil
}

func (uc UseCase) invalidate(account entities.Address) {
	if uc.Cache != nil {
		uc.Cache.Invalidate(account)
	}
}

func (uc UseCase) lockGuard() func() {
	if uc.Guard == nil {
		return func() {}
	}
	uc.Guard.Lock()
	return uc.Guard.Unlock
}
