// Package thelgamal implements the single-level threshold ElGamal
// variant of spec.md §4.2, used as the baseline scheme for the
// two-party-computation (2PC) and THHE-1 protocol variants. Unlike
// thbgn it offers no multiplicative promotion, only additive
// homomorphism and a single-round threshold decryption.
package thelgamal

import (
	"math/big"

	"github.com/spring-epfl/aid-distribution/curve"
)

// PublicParameters is a single uniform G1 element g.
type PublicParameters struct {
	G *curve.G1
}

// SecretKey is a single nonzero scalar s.
type SecretKey struct {
	S *big.Int
}

// PublicKey is h = g*s.
type PublicKey struct {
	H *curve.G1
}

// SecretKeyShare is one committee member's Shamir share of s.
type SecretKeyShare struct {
	ID    int
	Share *big.Int
}

// Ciphertext is the pair (g*r, G*m + h*r), where G is the group's
// canonical generator used to encode the message in the exponent.
type Ciphertext struct {
	C1 *curve.G1
	C2 *curve.G1
}

// PartialDecryption is a committee member's contribution: c1*s^share_i.
type PartialDecryption struct {
	ID    int
	Value *curve.G1
}
