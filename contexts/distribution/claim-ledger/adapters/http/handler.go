package httpadapter

import (
	"context"
	"log/slog"
	"strings"

	application "faucet/contexts/distribution/claim-ledger/application"
	"faucet/contexts/distribution/claim-ledger/application/commands"
	"faucet/contexts/distribution/claim-ledger/application/queries"
	httptransport "faucet/contexts/distribution/claim-ledger/transport/http"
)

type Handler struct {
	Commands commands.UseCase
	Queries  queries.UseCase
	Logger   *slog.Logger
}

func (h Handler) ClaimTokenHandler(ctx context.Context, caller string) (httptransport.ClaimResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	amount, err := h.Commands.ClaimToken(ctx, commands.ClaimCommand{Caller: caller})
	if err != nil {
		logger.Warn("http token claim failed",
			"event", "ledger_http_claim_token_failed",
			"module", "distribution/claim-ledger",
			"layer", "adapter",
			"account", strings.TrimSpace(caller),
			"error", err.Error(),
		)
		return httptransport.ClaimResponse{}, err
	}
	return httptransport.ClaimResponse{
		Account: strings.TrimSpace(caller),
		Kind:    "token",
		Amount:  amount,
	}, nil
}

func (h Handler) ClaimCurrencyHandler(ctx context.Context, caller string) (httptransport.ClaimResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	amount, err := h.Commands.ClaimCurrency(ctx, commands.ClaimCommand{Caller: caller})
	if err != nil {
		logger.Warn("http currency claim failed",
			"event", "ledger_http_claim_currency_failed",
			"module", "distribution/claim-ledger",
			"layer", "adapter",
			"account", strings.TrimSpace(caller),
			"error", err.Error(),
		)
		return httptransport.ClaimResponse{}, err
	}
	return httptransport.ClaimResponse{
		Account: strings.TrimSpace(caller),
		Kind:    "currency",
		Amount:  amount,
	}, nil
}

func (h Handler) ClaimStatusHandler(ctx context.Context, account string) (httptransport.ClaimStatusResponse, error) {
	claimed, err := h.Queries.ClaimStatus(ctx, account)
	if err != nil {
		return httptransport.ClaimStatusResponse{}, err
	}
	return httptransport.ClaimStatusResponse{
		Account: strings.TrimSpace(account),
		Claimed: claimed,
	}, nil
}

func (h Handler) StatusHandler(ctx context.Context) (httptransport.LedgerStatusResponse, error) {
	status, err := h.Queries.Status(ctx)
	if err != nil {
		return httptransport.LedgerStatusResponse{}, err
	}
	return httptransport.LedgerStatusResponse{
		Owner:           status.Owner.String(),
		Asset:           status.Asset.String(),
		Amount:          status.Amount,
		Paused:          status.Paused,
		TokenBalance:    status.TokenBalance,
		CurrencyBalance: status.CurrencyBalance,
	}, nil
}

func (h Handler) ResetClaimHandler(ctx context.Context, caller string, account string) (httptransport.AckResponse, error) {
	if err := h.Commands.ResetClaim(ctx, commands.ResetClaimCommand{
		Caller:  caller,
		Account: account,
	}); err != nil {
		return httptransport.AckResponse{}, err
	}
	return httptransport.AckResponse{Status: "reset"}, nil
}

func (h Handler) UpdateAssetHandler(ctx context.Context, caller string, req httptransport.UpdateAssetRequest) (httptransport.AckResponse, error) {
	if err := h.Commands.UpdateAsset(ctx, commands.UpdateAssetCommand{
		Caller: caller,
		Asset:  req.Asset,
	}); err != nil {
		return httptransport.AckResponse{}, err
	}
	return httptransport.AckResponse{Status: "asset_updated"}, nil
}

func (h Handler) UpdateAmountHandler(ctx context.Context, caller string, req httptransport.UpdateAmountRequest) (httptransport.AckResponse, error) {
	if err := h.Commands.UpdateDisbursementAmount(ctx, commands.UpdateAmountCommand{
		Caller: caller,
		Amount: req.Amount,
	}); err != nil {
		return httptransport.AckResponse{}, err
	}
	return httptransport.AckResponse{Status: "amount_updated"}, nil
}

func (h Handler) PauseHandler(ctx context.Context, caller string) (httptransport.AckResponse, error) {
	if err := h.Commands.Pause(ctx, commands.PauseCommand{Caller: caller}); err != nil {
		return httptransport.AckResponse{}, err
	}
	return httptransport.AckResponse{Status: "paused"}, nil
}

func (h Handler) UnpauseHandler(ctx context.Context, caller string) (httptransport.AckResponse, error) {
	if err := h.Commands.Unpause(ctx, commands.PauseCommand{Caller: caller}); err != nil {
		return httptransport.AckResponse{}, err
	}
	return httptransport.AckResponse{Status: "unpaused"}, nil
}

func (h Handler) WithdrawAssetHandler(ctx context.Context, caller string, req httptransport.WithdrawAssetRequest) (httptransport.AckResponse, error) {
	if err := h.Commands.WithdrawAsset(ctx, commands.WithdrawAssetCommand{
		Caller: caller,
		Asset:  req.Asset,
		To:     req.To,
		Amount: req.Amount,
	}); err != nil {
		return httptransport.AckResponse{}, err
	}
	return httptransport.AckResponse{Status: "withdrawn"}, nil
}

func (h Handler) WithdrawCurrencyHandler(ctx context.Context, caller string, req httptransport.WithdrawCurrencyRequest) (httptransport.AckResponse, error) {
	if err := h.Commands.WithdrawCurrency(ctx, commands.WithdrawCurrencyCommand{
		Caller: caller,
		To:     req.To,
		Amount: req.Amount,
	}); err != nil {
		return httptransport.AckResponse{}, err
	}
	return httptransport.AckResponse{Status: "withdrawn"}, nil
}

func (h Handler) FundHandler(ctx context.Context, req httptransport.FundRequest) (httptransport.AckResponse, error) {
	if err := h.Commands.Fund(ctx, commands.FundCommand{Amount: req.Amount}); err != nil {
		return httptransport.AckResponse{}, err
	}
	return httptransport.AckResponse{Status: "funded"}, nil
}
