package errors

import "errors"

var (
	ErrAlreadyClaimed      = errors.New("account has already claimed")
	ErrAssetNotConfigured  = errors.New("no asset configured for token claims")
	ErrInsufficientBalance = errors.New("ledger balance below disbursement amount")
	ErrPaused              = errors.New("claims are paused")
	ErrUnauthorized        = errors.New("caller is not the ledger owner")
	ErrZeroAddress         = errors.New("zero address is not a valid account")
	ErrTransferFailed      = errors.New("transfer failed")
	ErrReentrantCall       = errors.New("reentrant call into guarded operation")
)
