package thelgamal

import "errors"

// Sentinel errors mirroring package thbgn's taxonomy for the single-
// level scheme; see thbgn/errors.go.
var (
	ErrDLogNotFound       = errors.New("thelgamal: discrete log not found within bound")
	ErrBelowThreshold     = errors.New("thelgamal: fewer partial decryptions than threshold")
	ErrInconsistentShares = errors.New("thelgamal: inconsistent partial decryptions")
)
