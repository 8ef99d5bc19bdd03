// Package shamir is the Shamir engine adapter: it deals threshold-(t,n)
// shares of a scalar and computes the Lagrange-at-0 basis needed to
// reconstruct secrets hidden "in the exponent" of a group element. It
// operates over the field Z/curve.Order, reusing the teacher's own
// secret-sharing dependency rather than reimplementing polynomial
// arithmetic.
package shamir

import (
	"fmt"
	"math/big"

	"github.com/lavode/secret-sharing/gf"
	"github.com/lavode/secret-sharing/secretshare"

	"github.com/spring-epfl/aid-distribution/curve"
)

// Share is a single party's share of a dealt secret.
type Share struct {
	ID    int
	Value *big.Int
}

// field returns the finite field Z/curve.Order shares are dealt over.
func field() (gf.GF, error) {
	return gf.NewGF(curve.Order)
}

// DealShares deals a (t, n) threshold sharing of secret over
// Z/curve.Order. Fails if the underlying engine rejects the (t, n)
// parameters (e.g. t > n).
func DealShares(secret *big.Int, t, n int) ([]Share, error) {
	if t > n {
		return nil, fmt.Errorf("shamir: threshold %d exceeds share count %d", t, n)
	}
	if t < 1 {
		return nil, fmt.Errorf("shamir: threshold must be >= 1; got %d", t)
	}

	zq, err := field()
	if err != nil {
		return nil, fmt.Errorf("shamir: constructing field: %w", err)
	}

	raw, _, err := secretshare.TOutOfN(secret, t, n, zq)
	if err != nil {
		return nil, fmt.Errorf("shamir: dealing shares: %w", err)
	}

	shares := make([]Share, len(raw))
	for i, s := range raw {
		shares[i] = Share{ID: s.ID, Value: s.Value}
	}
	return shares, nil
}

// Recover reconstructs the dealt secret directly (used for test fixtures
// and direct-decrypt invariants; production decryption paths reconstruct
// "in the exponent" via LagrangeBasisAt0 instead).
func Recover(shares []Share) (*big.Int, error) {
	zq, err := field()
	if err != nil {
		return nil, fmt.Errorf("shamir: constructing field: %w", err)
	}

	raw := make([]secretshare.Share, len(shares))
	for i, s := range shares {
		raw[i] = secretshare.Share{ID: s.ID, Value: s.Value}
	}

	secret, err := secretshare.TOutOfNRecover(raw, zq)
	if err != nil {
		return nil, fmt.Errorf("shamir: recovering secret: %w", err)
	}
	return secret, nil
}

// LagrangeBasisAt0 computes, for each id in ids, the Lagrange basis
// coefficient l_id(0) such that sum_i l_i(0) * f(i) = f(0) for any
// polynomial f of degree < len(ids) interpolated through the points
// (ids[j], f(ids[j])). The result is ordered identically to ids.
func LagrangeBasisAt0(ids []int) ([]*big.Int, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("shamir: no share ids given")
	}

	zq, err := field()
	if err != nil {
		return nil, fmt.Errorf("shamir: constructing field: %w", err)
	}

	xs := make([]*big.Int, len(ids))
	for i, id := range ids {
		xs[i] = big.NewInt(int64(id))
	}

	basis := make([]*big.Int, len(ids))
	for i := range ids {
		basis[i] = gf.BasePolynomial(i, xs, zq)
	}
	return basis, nil
}
