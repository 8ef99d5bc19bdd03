// Package thbgn implements the two-level (target, multiplicative-once)
// homomorphic encryption scheme described in spec.md §4.1: one
// multiplicative promotion of two level-1 ciphertexts into a
// target-group ciphertext, arbitrary additive homomorphism within each
// level, and a two-round threshold decryption protocol ending in a
// bounded discrete-log search.
//
// Every function here is referentially transparent: its only effect is
// to consume randomness from the io.Reader passed in, except ShareSK,
// which ignores its reader because package shamir draws the dealing
// randomness internally. No function logs,
// retries beyond the documented rejection-sampling loops, or holds
// state across calls.
package thbgn

import (
	"math/big"

	"github.com/spring-epfl/aid-distribution/curve"
)

// PublicParameters is the pair (g1, g2) shared by every party after
// setup.
type PublicParameters struct {
	G1 *curve.G1
	G2 *curve.G2
}

// SecretKey is the ordered pair (s1, s2) of nonzero scalars.
type SecretKey struct {
	S1 *big.Int
	S2 *big.Int
}

// PublicKey is (h1, h2) = (g1*s1, g2*s2).
type PublicKey struct {
	H1 *curve.G1
	H2 *curve.G2
}

// SecretKeyShare is one committee member's share of both halves of the
// secret key, dealt under the same threshold with the same share id.
type SecretKeyShare struct {
	ID     int
	Share1 *big.Int
	Share2 *big.Int
}

// Ciphertext1 is a level-1 ciphertext: (c1, c2) in G1, (c3, c4) in G2.
type Ciphertext1 struct {
	C1, C2 *curve.G1
	C3, C4 *curve.G2
}

// CiphertextT is a target-level ciphertext, produced by promoting two
// level-1 ciphertexts via Mul.
type CiphertextT struct {
	C1, C2, C3, C4 *curve.GT
}

// PartialDecryption is a committee member's round-1 contribution: the
// first three components are masked by that member's share; the fourth
// (C4) is the unmasked passthrough of the input ciphertext's C4 and is
// invariant across every partial decryption of the same CiphertextT.
type PartialDecryption struct {
	ID             int
	C1, C2, C3, C4 *curve.GT
}

// IntermediateDec is the Distribution Station's round-1 output: the
// reconstruction of s1*c1, and the reconstruction of the remaining
// masked terms combined with the passthrough c4.
type IntermediateDec struct {
	S1C1 *curve.GT
	C    *curve.GT
}

// PartialDecryption2 is a committee member's round-2 contribution.
type PartialDecryption2 struct {
	ID     int
	S1S2C1 *curve.GT
	C      *curve.GT
}
