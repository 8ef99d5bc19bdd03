package thbgn

import (
	"math/big"

	"github.com/spring-epfl/aid-distribution/curve"
)

// findDLog recovers the discrete log of target in base by linear scan
// over [0, bound), also checking the negated target so messages in
// (-bound, bound) are recoverable (spec.md §4.1). This is O(bound)
// pairings-worth of GT scalar multiplications per call; acceptable at
// config.Bound but should be replaced with baby-step-giant-step if the
// bound grows (documented performance ceiling, spec.md §9).
func findDLog(base, target *curve.GT, bound uint64) (*big.Int, error) {
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
