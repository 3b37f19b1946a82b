package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	claimledger "faucet/contexts/distribution/claim-ledger"
)

func newTestServer(t *testing.T, opts Options) (*Server, claimledger.Module) {
	t.Helper()
	module, err := claimledger.NewInMemoryModule("faucet-1", "owner-1", "token-a", 10, nil)
	if err != nil {
		t.Fatalf("build module failed: %v", err)
	}
	module.Token.Mint("faucet-1", 1000)
	return New(module, nil, ":0", opts), module
}

func doRequest(t *testing.T, server *Server, method, path, account, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if account != "" {
		req.Header.Set("X-Account-Address", account)
	}
	recorder := httptest.NewRecorder()
	server.Handler().ServeHTTP(recorder, req)
	return recorder
}

func decodeError(t *testing.T, recorder *httptest.ResponseRecorder) string {
	t.Helper()
	var payload struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(recorder.Body).Decode(&payload); err != nil {
		t.Fatalf("decode error body failed: %v", err)
	}
	return payload.Code
}

func TestClaimRequiresAccountHeader(t *testing.T) {
	server, _ := newTestServer(t, Options{})

	recorder := doRequest(t, server, http.MethodPost, "/v1/faucet/claims/token", "", "")
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", recorder.Code)
	}
	if code := decodeError(t, recorder); code != "missing_account" {
		t.Fatalf("expected missing_account, got %q", code)
	}
}

func TestClaimAndRepeatConflict(t *testing.T) {
	server, _ := newTestServer(t, Options{ClaimRatePerSecond: 100, ClaimRateBurst: 100})

	recorder := doRequest(t, server, http.MethodPost, "/v1/faucet/claims/token", "alice", "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	recorder = doRequest(t, server, http.MethodPost, "/v1/faucet/claims/token", "alice", "")
	if recorder.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", recorder.Code)
	}
	if code := decodeError(t, recorder); code != "already_claimed" {
		t.Fatalf("expected already_claimed, got %q", code)
	}
}

func TestClaimRateLimited(t *testing.T) {
	server, _ := newTestServer(t, Options{ClaimRatePerSecond: 1, ClaimRateBurst: 1})

	first := doRequest(t, server, http.MethodPost, "/v1/faucet/claims/token", "bob", "")
	if first.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", first.Code)
	}
	second := doRequest(t, server, http.MethodPost, "/v1/faucet/claims/token", "bob", "")
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", second.Code)
	}
	if code := decodeError(t, second); code != "rate_limited" {
		t.Fatalf("expected rate_limited, got %q", code)
	}
}

func TestAdminRoutesRejectNonOwner(t *testing.T) {
	server, _ := newTestServer(t, Options{})

	recorder := doRequest(t, server, http.MethodPost, "/v1/faucet/admin/pause", "mallory", "")
	if recorder.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", recorder.Code)
	}
	if code := decodeError(t, recorder); code != "unauthorized" {
		t.Fatalf("expected unauthorized, got %q", code)
	}

	recorder = doRequest(t, server, http.MethodPut, "/v1/faucet/admin/amount", "mallory", `{"amount": 5}`)
	if recorder.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", recorder.Code)
	}
}

func TestPausedClaimsReturnServiceUnavailable(t *testing.T) {
	server, _ := newTestServer(t, Options{ClaimRatePerSecond: 100, ClaimRateBurst: 100})

	recorder := doRequest(t, server, http.MethodPost, "/v1/faucet/admin/pause", "owner-1", "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("pause failed: %d %s", recorder.Code, recorder.Body.String())
	}

	recorder = doRequest(t, server, http.MethodPost, "/v1/faucet/claims/currency", "carol", "")
	if recorder.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", recorder.Code)
	}
	if code := decodeError(t, recorder); code != "paused" {
		t.Fatalf("expected paused, got %q", code)
	}
}

func TestStatusAndClaimStatusRoutes(t *testing.T) {
	server, _ := newTestServer(t, Options{ClaimRatePerSecond: 100, ClaimRateBurst: 100})

	recorder := doRequest(t, server, http.MethodPost, "/v1/faucet/claims/token", "dave", "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("claim failed: %d", recorder.Code)
	}

	recorder = doRequest(t, server, http.MethodGet, "/v1/faucet/claims/dave", "", "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("claim status failed: %d", recorder.Code)
	}
	var status struct {
		Claimed bool `json:"claimed"`
	}
	if err := json.NewDecoder(recorder.Body).Decode(&status); err != nil {
		t.Fatalf("decode claim status failed: %v", err)
	}
	if !status.Claimed {
		t.Fatal("expected claimed true")
	}

	recorder = doRequest(t, server, http.MethodGet, "/v1/faucet/status", "", "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("status failed: %d", recorder.Code)
	}
	var ledgerStatus struct {
		Owner  string `json:"owner"`
		Amount uint64 `json:"amount"`
	}
	if err := json.NewDecoder(recorder.Body).Decode(&ledgerStatus); err != nil {
		t.Fatalf("decode status failed: %v", err)
	}
	if ledgerStatus.Owner != "owner-1" || ledgerStatus.Amount != 10 {
		t.Fatalf("unexpected status payload: %+v", ledgerStatus)
	}
}

func TestInvalidJSONBodyRejected(t *testing.T) {
	server, _ := newTestServer(t, Options{})

	recorder := doRequest(t, server, http.MethodPut, "/v1/faucet/admin/asset", "owner-1", "{not json")
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
	if code := decodeError(t, recorder); code != "invalid_json" {
		t.Fatalf("expected invalid_json, got %q", code)
	}
}
