package domain

import "errors"

var (
	// Transaction errors
	ErrMissingFromAccount = errors.New("transaction is missing from account")
	ErrMissingToAccount   = errors.New("transaction is missing to account")
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrMissingTimestamp   = errors.New("transaction is missing timestamp")

	// Lookup errors
	ErrAccountNotFound = errors.New("account not found")
)
