package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound              = errors.New("entity not found")
	ErrAlreadyExists         = errors.New("entity already exists")
	ErrInvalidArgument       = errors.New("invalid argument")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrInsufficientCredits   = errors.New("insufficient credits")
	ErrQuotaExceeded         = errors.New("voice clone limit reached")
	ErrAccountBlocked        = errors.New("account is blocked")
	ErrForbidden             = errors.New("access denied")
	ErrOrderAlreadyFinalized = errors.New("order already processed")
	ErrInvalidExecContext    = errors.New("invalid executor context")
	ErrReadDatabaseRow       = errors.New("failed to read database row")
	ErrSynthesisFailed       = errors.New("synthesis backend failed")
)
