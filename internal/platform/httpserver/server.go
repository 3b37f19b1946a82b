package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	claimledger "faucet/contexts/distribution/claim-ledger"
	ledgererrors "faucet/contexts/distribution/claim-ledger/domain/errors"
	ledgerhttp "faucet/contexts/distribution/claim-ledger/transport/http"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "faucet/internal/platform/httpserver/docs"
)

// Options tune transport-level behavior. Zero values fall back to defaults.
type Options struct {
	ClaimRatePerSecond float64
	ClaimRateBurst     int
}

type Server struct {
	mux     *http.ServeMux
	logger  *slog.Logger
	addr    string
	faucet  claimledger.Module
	limiter *claimLimiter
}

func New(
	faucet claimledger.Module,
	logger *slog.Logger,
	addr string,
	opts Options,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:     http.NewServeMux(),
		logger:  logger,
		addr:    addr,
		faucet:  faucet,
		limiter: newClaimLimiter(opts.ClaimRatePerSecond, opts.ClaimRateBurst),
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the routed mux for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /v1/faucet/claims/token", s.handleClaimToken)
	s.mux.HandleFunc("POST /v1/faucet/claims/currency", s.handleClaimCurrency)
	s.mux.HandleFunc("GET /v1/faucet/claims/{account}", s.handleClaimStatus)
	s.mux.HandleFunc("GET /v1/faucet/status", s.handleStatus)
	s.mux.HandleFunc("POST /v1/faucet/fund", s.handleFund)

	s.mux.HandleFunc("POST /v1/faucet/admin/claims/{account}/reset", s.handleResetClaim)
	s.mux.HandleFunc("PUT /v1/faucet/admin/asset", s.handleUpdateAsset)
	s.mux.HandleFunc("PUT /v1/faucet/admin/amount", s.handleUpdateAmount)
	s.mux.HandleFunc("POST /v1/faucet/admin/pause", s.handlePause)
	s.mux.HandleFunc("POST /v1/faucet/admin/unpause", s.handleUnpause)
	s.mux.HandleFunc("POST /v1/faucet/admin/withdrawals/asset", s.handleWithdrawAsset)
	s.mux.HandleFunc("POST /v1/faucet/admin/withdrawals/currency", s.handleWithdrawCurrency)
}

func (s *Server) handleClaimToken(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requireCaller(w, r)
	if !ok {
		return
	}
	if !s.limiter.Allow(caller) {
		writeError(w, http.StatusTooManyRequests, "rate_limited", "too many claim attempts, slow down")
		return
	}
	resp, err := s.faucet.Handler.ClaimTokenHandler(r.Context(), caller)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleClaimCurrency(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requireCaller(w, r)
	if !ok {
		return
	}
	if !s.limiter.Allow(caller) {
		writeError(w, http.StatusTooManyRequests, "rate_limited", "too many claim attempts, slow down")
		return
	}
	resp, err := s.faucet.Handler.ClaimCurrencyHandler(r.Context(), caller)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleClaimStatus(w http.ResponseWriter, r *http.Request) {
	account := r.PathValue("account")
	resp, err := s.faucet.Handler.ClaimStatusHandler(r.Context(), account)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp, err := s.faucet.Handler.StatusHandler(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFund(w http.ResponseWriter, r *http.Request) {
	var req ledgerhttp.FundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.faucet.Handler.FundHandler(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleResetClaim(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requireCaller(w, r)
	if !ok {
		return
	}
	account := r.PathValue("account")
	resp, err := s.faucet.Handler.ResetClaimHandler(r.Context(), caller, account)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateAsset(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requireCaller(w, r)
	if !ok {
		return
	}
	var req ledgerhttp.UpdateAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.faucet.Handler.UpdateAssetHandler(r.Context(), caller, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateAmount(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requireCaller(w, r)
	if !ok {
		return
	}
	var req ledgerhttp.UpdateAmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.faucet.Handler.UpdateAmountHandler(r.Context(), caller, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requireCaller(w, r)
	if !ok {
		return
	}
	resp, err := s.faucet.Handler.PauseHandler(r.Context(), caller)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUnpause(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requireCaller(w, r)
	if !ok {
		return
	}
	resp, err := s.faucet.Handler.UnpauseHandler(r.Context(), caller)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWithdrawAsset(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requireCaller(w, r)
	if !ok {
		return
	}
	var req ledgerhttp.WithdrawAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.faucet.Handler.WithdrawAssetHandler(r.Context(), caller, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWithdrawCurrency(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requireCaller(w, r)
	if !ok {
		return
	}
	var req ledgerhttp.WithdrawCurrencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.faucet.Handler.WithdrawCurrencyHandler(r.Context(), caller, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) requireCaller(w http.ResponseWriter, r *http.Request) (string, bool) {
	caller := strings.TrimSpace(r.Header.Get("X-Account-Address"))
	if caller == "" {
		writeError(w, http.StatusUnauthorized, "missing_account", "X-Account-Address header is required")
		return "", false
	}
	return caller, true
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledgererrors.ErrAlreadyClaimed):
		writeError(w, http.StatusConflict, "already_claimed", err.Error())
	case errors.Is(err, ledgererrors.ErrAssetNotConfigured):
		writeError(w, http.StatusConflict, "asset_not_configured", err.Error())
	case errors.Is(err, ledgererrors.ErrInsufficientBalance):
		writeError(w, http.StatusConflict, "insufficient_balance", err.Error())
	case errors.Is(err, ledgererrors.ErrReentrantCall):
		writeError(w, http.StatusConflict, "reentrant_call", err.Error())
	case errors.Is(err, ledgererrors.ErrPaused):
		writeError(w, http.StatusServiceUnavailable, "paused", err.Error())
	case errors.Is(err, ledgererrors.ErrUnauthorized):
		writeError(w, http.StatusForbidden, "unauthorized", err.Error())
	case errors.Is(err, ledgererrors.ErrZeroAddress):
		writeError(w, http.StatusBadRequest, "zero_address", err.Error())
	case errors.Is(err, ledgererrors.ErrTransferFailed):
		writeError(w, http.StatusBadGateway, "transfer_failed", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, ledgerhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
