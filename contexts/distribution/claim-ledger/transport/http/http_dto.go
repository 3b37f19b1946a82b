package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ClaimResponse struct {
	Account string `json:"account"`
	Kind    string `json:"kind"`
	Amount  uint64 `json:"amount"`
}

type ClaimStatusResponse struct {
	Account string `json:"account"`
	Claimed bool   `json:"claimed"`
}

type LedgerStatusResponse struct {
	Owner           string `json:"owner"`
	Asset           string `json:"asset,omitempty"`
	Amount          uint64 `json:"amount"`
	Paused          bool   `json:"paused"`
	TokenBalance    uint64 `json:"token_balance"`
	CurrencyBalance uint64 `json:"currency_balance"`
}

type UpdateAssetRequest struct {
	Asset string `json:"asset"`
}

type UpdateAmountRequest struct {
	Amount uint64 `json:"amount"`
}

type WithdrawAssetRequest struct {
	Asset  string `json:"asset"`
	To     string `json:"to"`
	Amount uint64 `json:"amount"`
}

type WithdrawCurrencyRequest struct {
	To     string `json:"to"`
	Amount uint64 `json:"amount"`
}

type FundRequest struct {
	Amount uint64 `json:"amount"`
}

type AckResponse struct {
	Status string `json:"status"`
}
