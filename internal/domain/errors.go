package domain

import "errors"

// Sentinel errors used throughout the application.
// Failures below the scheduler are always recovered locally: callers log
// these and continue, they never abort the scheduler loop.
var (
	ErrInvalidJobKind  = errors.New("invalid job kind: must be review or article")
	ErrInvalidJobTitle = errors.New("job title must not be empty")
	ErrTransferFailed  = errors.New("transfer failed")
	ErrRateUnavailable = errors.New("exchange rate unavailable")
)
