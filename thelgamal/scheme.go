package thelgamal

import (
	"fmt"
	"io"
	"math/big"

	"github.com/spring-epfl/aid-distribution/curve"
	"github.com/spring-epfl/aid-distribution/shamir"
)

// messageBase is the canonical G1 generator used to encode a message in
// the exponent (G*m in spec.md §4.2), kept distinct from the per-
// deployment random public parameter g.
func messageBase() *curve.G1 {
	return curve.G1Generator()
}

// Setup samples a uniform public parameter g in G1.
func Setup(r io.Reader) (PublicParameters, error) {
	g, err := curve.RandomG1(r)
	if err != nil {
		return PublicParameters{}, fmt.Errorf("thelgamal: sampling g: %w", err)
	}
	return PublicParameters{G: g}, nil
}

// KeyGen samples an invertible scalar s and returns (sk, pk).
func KeyGen(r io.Reader, pp PublicParameters) (SecretKey, PublicKey, error) {
	s, err := curve.RandomInvertibleScalar(r)
	if err != nil {
		return SecretKey{}, PublicKey{}, fmt.Errorf("thelgamal: sampling s: %w", err)
	}
	return SecretKey{S: s}, PublicKey{H: pp.G.ScalarMult(s)}, nil
}

// Encrypt encrypts scalar message m, encoded as G*m, under pk.
func Encrypt(r io.Reader, pp PublicParameters, pk PublicKey, m *big.Int) (Ciphertext, error) {
	rr, err := curve.RandomScalar(r)
	if err != nil {
		return Ciphertext{}, fmt.Errorf("thelgamal: sampling r: %w", err)
	}

	c1 := pp.G.ScalarMult(rr)
	c2 := messageBase().ScalarMult(m).Add(pk.H.ScalarMult(rr))
	return Ciphertext{C1: c1, C2: c2}, nil
}

// Add computes the component-wise sum of two ciphertexts (additive
// homomorphism over the encoded message).
func Add(a, b Ciphertext) Ciphertext {
	return Ciphertext{C1: a.C1.Add(b.C1), C2: a.C2.Add(b.C2)}
}

// Decrypt directly decrypts using the full secret key: recovers G*m =
// c2 - c1*s, then bounded-DL searches for m against the generator.
func Decrypt(sk SecretKey, ct Ciphertext, bound uint64) (*big.Int, error) {
	gm := ct.C2.Add(ct.C1.ScalarMult(sk.S).Neg())
	return findDLog(messageBase(), gm, bound)
}

// ShareSK deals t-out-of-n shares of s.
func ShareSK(r io.Reader, sk SecretKey, threshold, total int) ([]SecretKeyShare, error) {
	_ = r
	shares, err := shamir.DealShares(sk.S, threshold, total)
	if err != nil {
		return nil, fmt.Errorf("thelgamal: dealing shares: %w", err)
	}
	out := make([]SecretKeyShare, len(shares))
	for i, s := range shares {
		out[i] = SecretKeyShare{ID: s.ID, Share: s.Value}
	}
	return out, nil
}

// PartialDecrypt computes one committee member's contribution c1*s^i.
func PartialDecrypt(share SecretKeyShare, ct Ciphertext) PartialDecryption {
	return PartialDecryption{ID: share.ID, Value: ct.C1.ScalarMult(share.Share)}
}

// FinalDecrypt Lagrange-reconstructs c1*s from exactly threshold
// partial decryptions, recovers G*m = c2 - c1*s, and bounded-DL
// searches for m. There is no intermediate round, since there is no
// multiplicative level.
func FinalDecrypt(ct Ciphertext, pdecs []PartialDecryption, bound uint64) (*big.Int, error) {
	if len(pdecs) == 0 {
		return nil, ErrBelowThreshold
	}

	ids := make([]int, len(pdecs))
	for i, p := range pdecs {
		ids[i] = p.ID
	}
	basis, err := shamir.LagrangeBasisAt0(ids)
	if err != nil {
		return nil, fmt.Errorf("thelgamal: computing lagrange basis: %w", err)
	}

	reconstructed := curve.G1Generator().ScalarMult(big.NewInt(0))
	for i, p := range pdecs {
		reconstructed = reconstructed.Add(p.Value.ScalarMult(basis[i]))
	}

	gm := ct.C2.Add(reconstructed.Neg())
	return findDLog(messageBase(), gm, bound)
}

func findDLog(base, target *curve.G1, bound uint64) (*big.Int, error) {
	negTarget := target.Neg()

	i := big.NewInt(0)
	one := big.NewInt(1)
	boundF := new(big.Int).SetUint64(bound)

	for i.Cmp(boundF) < 0 {
		candidate := base.ScalarMult(i)
		if candidate.Equal(target) {
			return new(big.Int).Set(i), nil
		}
		if candidate.Equal(negTarget) {
			return new(big.Int).Neg(i), nil
		}
		i = new(big.Int).Add(i, one)
	}
	return nil, ErrDLogNotFound
}
