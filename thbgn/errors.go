package thbgn

import "errors"

// Sentinel errors surfaced by scheme primitives. The orchestrator
// (package protocol) maps these onto its own ErrorKind taxonomy at the
// role boundary; the scheme itself never recovers from them.
var (
	// ErrDLogNotFound is returned when bounded discrete-log recovery
	// exhausts [0, bound) without finding a match. Per spec.md §7, this
	// may indicate the input violated the bound precondition.
	ErrDLogNotFound = errors.New("thbgn: discrete log not found within bound")

	// ErrBelowThreshold is returned when fewer partial decryptions than
	// the threshold are supplied to a reconstruction step.
	ErrBelowThreshold = errors.New("thbgn: fewer partial decryptions than threshold")

	// ErrInconsistentShares is returned when the invariant that every
	// partial decryption's passthrough component agrees is violated, or
	// share ids collide.
	ErrInconsistentShares = errors.New("thbgn: inconsistent partial decryptions")

	// ErrInvalidParameter is returned for malformed threshold/share
	// counts.
	ErrInvalidParameter = errors.New("thbgn: invalid parameter")
)
