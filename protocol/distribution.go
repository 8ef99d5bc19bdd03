package protocol

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/spring-epfl/aid-distribution/config"
	"github.com/spring-epfl/aid-distribution/thbgn"
	"github.com/spring-epfl/aid-distribution/thelgamal"
)

// mapSchemeErr remaps the scheme packages' sentinel errors onto a
// protocol.Error. DLogNotFound is remapped to InconsistentShares per
// spec.md §7: "DLogNotFound may be returned from threshold decryption
// paths when an input violates the bound assumption; the orchestrator
// maps it to InconsistentShares because bounded input was a stated
// precondition."
func mapSchemeErr(err error) error {
	switch {
	case errors.Is(err, thbgn.ErrDLogNotFound), errors.Is(err, thelgamal.ErrDLogNotFound):
		return newErr(InconsistentShares, "bounded discrete-log search exhausted", err)
	case errors.Is(err, thbgn.ErrBelowThreshold), errors.Is(err, thelgamal.ErrBelowThreshold):
		return newErr(BelowThreshold, "too few partial decryptions", err)
	case errors.Is(err, thbgn.ErrInconsistentShares), errors.Is(err, thelgamal.ErrInconsistentShares):
		return newErr(InconsistentShares, "passthrough component mismatch", err)
	default:
		return err
	}
}

// ReconstructElGamal is the single-round Distribution Station step for
// the single-level variants: Lagrange-reconstruct the masking term from
// exactly DECRYPTION_THRESHOLD partial decryptions and recover the
// plaintext via bounded discrete log.
func ReconstructElGamal(ct thelgamal.Ciphertext, pdecs []thelgamal.PartialDecryption, bound uint64) (*big.Int, error) {
	if len(pdecs) < config.DecryptionThreshold {
		return nil, newErr(BelowThreshold, fmt.Sprintf("got %d partials, want >= %d", len(pdecs), config.DecryptionThreshold), nil)
	}
	pt, err := thelgamal.FinalDecrypt(ct, pdecs[:config.DecryptionThreshold], bound)
	if err != nil {
		return nil, mapSchemeErr(err)
	}
	return pt, nil
}

// Round1THBGN is Distribution-Station-Round-1: for each (recipient,
// bundle) output slot, gather the DECRYPTION_THRESHOLD partials across
// the committee and reconstruct an IntermediateDec, per spec.md §4.6.
// pdecsPerMember[m] is committee member m's full output matrix. Slots
// are reconstructed across a bounded worker pool, per spec.md §5's
// per-slot Distribution Station reconstruction.
func Round1THBGN(pdecsPerMember [][][]thbgn.PartialDecryption, bound uint64) ([][]thbgn.IntermediateDec, error) {
	if len(pdecsPerMember) < config.DecryptionThreshold {
		return nil, newErr(BelowThreshold, fmt.Sprintf("got %d committee members, want >= %d", len(pdecsPerMember), config.DecryptionThreshold), nil)
	}
	members := pdecsPerMember[:config.DecryptionThreshold]

	numRows := len(members[0])
	out := make([][]thbgn.IntermediateDec, numRows)
	rowLen := make([]int, numRows)
	total := 0
	for j := 0; j < numRows; j++ {
		rowLen[j] = len(members[0][j])
		out[j] = make([]thbgn.IntermediateDec, rowLen[j])
		total += rowLen[j]
	}

	err := parallelMap(total, func(idx int) error {
		j, k := unflattenRagged(idx, rowLen)
		slot := make([]thbgn.PartialDecryption, len(members))
		for m, member := range members {
			slot[m] = member[j][k]
		}
		idec, err := thbgn.IntermediateDec(slot, bound)
		if err != nil {
			return mapSchemeErr(err)
		}
		out[j][k] = idec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Round2THBGN is Distribution-Station-Round-2: reconstruct the final GT
// element per output slot and recover the plaintext matrix via bounded
// discrete log, again fanned out across a bounded worker pool.
func Round2THBGN(pp thbgn.PublicParameters, pdecs2PerMember [][][]thbgn.PartialDecryption2, bound uint64) ([][]*big.Int, error) {
	if len(pdecs2PerMember) < config.DecryptionThreshold {
		return nil, newErr(BelowThreshold, fmt.Sprintf("got %d committee members, want >= %d", len(pdecs2PerMember), config.DecryptionThreshold), nil)
	}
	members := pdecs2PerMember[:config.DecryptionThreshold]

	numRows := len(members[0])
	out := make([][]*big.Int, numRows)
	rowLen := make([]int, numRows)
	total := 0
	for j := 0; j < numRows; j++ {
		rowLen[j] = len(members[0][j])
		out[j] = make([]*big.Int, rowLen[j])
		total += rowLen[j]
	}

	err := parallelMap(total, func(idx int) error {
		j, k := unflattenRagged(idx, rowLen)
		slot := make([]thbgn.PartialDecryption2, len(members))
		for m, member := range members {
			slot[m] = member[j][k]
		}
		pt, err := thbgn.FinalDecrypt(pp, slot, bound)
		if err != nil {
			return mapSchemeErr(err)
		}
		out[j][k] = pt
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
