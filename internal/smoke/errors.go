package smoke

import "errors"

// Sentinel errors reported by a smoke run.
var (
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrMismatch         = errors.New("catalog mismatch")
)
