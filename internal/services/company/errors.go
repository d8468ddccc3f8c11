package company

import "errors"

// Service errors
var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrMissingReason     = errors.New("reason is required")
)
