package unit

import (
	"context"
	"errors"
	"testing"

	claimledger "faucet/contexts/distribution/claim-ledger"
	domainerrors "faucet/contexts/distribution/claim-ledger/domain/errors"
	httptransport "faucet/contexts/distribution/claim-ledger/transport/http"
)

func newModule(t *testing.T, amount uint64) claimledger.Module {
	t.Helper()
	module, err := claimledger.NewInMemoryModule("faucet-1", "owner-1", "token-a", amount, nil)
	if err != nil {
		t.Fatalf("build module failed: %v", err)
	}
	return module
}

func TestTokenClaimFlow(t *testing.T) {
	module := newModule(t, 50)
	module.Token.Mint("faucet-1", 500)

	resp, err := module.Handler.ClaimTokenHandler(context.Background(), "alice")
	if err != nil {
		t.Fatalf("token claim failed: %v", err)
	}
	if resp.Amount != 50 || resp.Kind != "token" {
		t.Fatalf("unexpected claim response: %+v", resp)
	}

	_, err = module.Handler.ClaimTokenHandler(context.Background(), "alice")
	if !errors.Is(err, domainerrors.ErrAlreadyClaimed) {
		t.Fatalf("expected already claimed, got %v", err)
	}

	status, err := module.Handler.ClaimStatusHandler(context.Background(), "alice")
	if err != nil {
		t.Fatalf("claim status failed: %v", err)
	}
	if !status.Claimed {
		t.Fatal("expected claimed status after disbursement")
	}
}

func TestCurrencyClaimFlow(t *testing.T) {
	module := newModule(t, 20)
	if _, err := module.Handler.FundHandler(context.Background(), httptransport.FundRequest{Amount: 100}); err != nil {
		t.Fatalf("fund failed: %v", err)
	}

	resp, err := module.Handler.ClaimCurrencyHandler(context.Background(), "bob")
	if err != nil {
		t.Fatalf("currency claim failed: %v", err)
	}
	if resp.Amount != 20 || resp.Kind != "currency" {
		t.Fatalf("unexpected claim response: %+v", resp)
	}

	ledgerStatus, err := module.Handler.StatusHandler(context.Background())
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if ledgerStatus.CurrencyBalance != 80 {
		t.Fatalf("expected currency balance 80, got %d", ledgerStatus.CurrencyBalance)
	}
}

func TestResetInvalidatesCachedStatus(t *testing.T) {
	module := newModule(t, 10)
	module.Token.Mint("faucet-1", 100)

	if _, err := module.Handler.ClaimTokenHandler(context.Background(), "carol"); err != nil {
		t.Fatalf("claim failed: %v", err)
	}
	status, err := module.Handler.ClaimStatusHandler(context.Background(), "carol")
	if err != nil {
		t.Fatalf("claim status failed: %v", err)
	}
	if !status.Claimed {
		t.Fatal("expected claimed before reset")
	}

	if _, err := module.Handler.ResetClaimHandler(context.Background(), "owner-1", "carol"); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	status, err = module.Handler.ClaimStatusHandler(context.Background(), "carol")
	if err != nil {
		t.Fatalf("claim status failed: %v", err)
	}
	if status.Claimed {
		t.Fatal("reset must invalidate the cached claimed status")
	}
}

func TestAdminSurfaceRequiresOwner(t *testing.T) {
	module := newModule(t, 10)

	if _, err := module.Handler.PauseHandler(context.Background(), "mallory"); !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized pause, got %v", err)
	}
	_, err := module.Handler.UpdateAmountHandler(context.Background(), "mallory", httptransport.UpdateAmountRequest{Amount: 1})
	if !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized amount update, got %v", err)
	}
	_, err = module.Handler.UpdateAssetHandler(context.Background(), "mallory", httptransport.UpdateAssetRequest{Asset: "token-b"})
	if !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized asset update, got %v", err)
	}
}

func TestPauseBlocksClaimsUntilUnpaused(t *testing.T) {
	module := newModule(t, 10)
	module.Token.Mint("faucet-1", 100)

	if _, err := module.Handler.PauseHandler(context.Background(), "owner-1"); err != nil {
		t.Fatalf("pause failed: %v", err)
	}
	if _, err := module.Handler.ClaimTokenHandler(context.Background(), "dave"); !errors.Is(err, domainerrors.ErrPaused) {
		t.Fatalf("expected paused, got %v", err)
	}
	if _, err := module.Handler.UnpauseHandler(context.Background(), "owner-1"); err != nil {
		t.Fatalf("unpause failed: %v", err)
	}
	if _, err := module.Handler.ClaimTokenHandler(context.Background(), "dave"); err != nil {
		t.Fatalf("claim after unpause failed: %v", err)
	}
}

func TestWithdrawalsMoveHeldFunds(t *testing.T) {
	module := newModule(t, 10)
	module.Token.Mint("faucet-1", 100)
	if _, err := module.Handler.FundHandler(context.Background(), httptransport.FundRequest{Amount: 60}); err != nil {
		t.Fatalf("fund failed: %v", err)
	}

	_, err := module.Handler.WithdrawAssetHandler(context.Background(), "owner-1", httptransport.WithdrawAssetRequest{
		Asset:  "token-a",
		To:     "treasury",
		Amount: 40,
	})
	if err != nil {
		t.Fatalf("asset withdrawal failed: %v", err)
	}
	if got := module.Token.Balance("treasury"); got != 40 {
		t.Fatalf("expected treasury token balance 40, got %d", got)
	}

	_, err = module.Handler.WithdrawCurrencyHandler(context.Background(), "owner-1", httptransport.WithdrawCurrencyRequest{
		To:     "treasury",
		Amount: 25,
	})
	if err != nil {
		t.Fatalf("currency withdrawal failed: %v", err)
	}

	status, err := module.Handler.StatusHandler(context.Background())
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if status.TokenBalance != 60 || status.CurrencyBalance != 35 {
		t.Fatalf("unexpected balances after withdrawals: %+v", status)
	}
}

func TestOutboxCollectsLedgerEvents(t *testing.T) {
	module := newModule(t, 10)
	module.Token.Mint("faucet-1", 100)

	if _, err := module.Handler.ClaimTokenHandler(context.Background(), "erin"); err != nil {
		t.Fatalf("claim failed: %v", err)
	}
	if _, err := module.Handler.ResetClaimHandler(context.Background(), "owner-1", "erin"); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	pending, err := module.Store.ListPendingEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected claimed and reset events pending, got %d", len(pending))
	}
}
