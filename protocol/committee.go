package protocol

import (
	"crypto/ecdsa"

	"github.com/spring-epfl/aid-distribution/signchain"
	"github.com/spring-epfl/aid-distribution/thbgn"
	"github.com/spring-epfl/aid-distribution/thelgamal"
)

// CommitteeMember is one recipient acting in its Round-2 capacity: it
// holds a Shamir share of whichever scheme's secret key the deployment
// runs, per spec.md §5 ("shares [are owned] by each committee member").
type CommitteeMember struct {
	ElGamalShare thelgamal.SecretKeyShare
	THBGNShare   thbgn.SecretKeyShare
}

// VerifyHelper checks a Helper-signed message before a committee member
// computes any partial decryption, per spec.md §4.6: "committees will
// not sign partials before verifying the Helper signature."
func VerifyHelper(pub *ecdsa.PublicKey, msg, sig []byte) error {
	if err := signchain.Verify(pub, msg, sig); err != nil {
		return newErr(HelperSignatureInvalid, "verifying helper signature", err)
	}
	return nil
}

// PartialDecryptElGamal computes this member's Round-2 contribution for
// the single-level variants.
func (m CommitteeMember) PartialDecryptElGamal(ct thelgamal.Ciphertext) thelgamal.PartialDecryption {
	return thelgamal.PartialDecrypt(m.ElGamalShare, ct)
}

// PartialDecryptTHBGNRound1 computes this member's Round-1 contribution
// across an entire output matrix, one worker-pool job per ciphertext
// (per spec.md §5's bulk per-ciphertext committee partial decryption).
func (m CommitteeMember) PartialDecryptTHBGNRound1(matrix [][]thbgn.CiphertextT) [][]thbgn.PartialDecryption {
	out := make([][]thbgn.PartialDecryption, len(matrix))
	rowLen := make([]int, len(matrix))
	total := 0
	for i, row := range matrix {
		out[i] = make([]thbgn.PartialDecryption, len(row))
		rowLen[i] = len(row)
		total += len(row)
	}
	_ = parallelMap(total, func(idx int) error {
		i, j := unflattenRagged(idx, rowLen)
		out[i][j] = thbgn.PartialDecrypt(m.THBGNShare, matrix[i][j])
		return nil
	})
	return out
}

// PartialDecryptTHBGNRound2 computes this member's Round-2 contribution
// across an entire IntermediateDec matrix, one worker-pool job per slot.
func (m CommitteeMember) PartialDecryptTHBGNRound2(matrix [][]thbgn.IntermediateDec) [][]thbgn.PartialDecryption2 {
	out := make([][]thbgn.PartialDecryption2, len(matrix))
	rowLen := make([]int, len(matrix))
	total := 0
	for i, row := range matrix {
		out[i] = make([]thbgn.PartialDecryption2, len(row))
		rowLen[i] = len(row)
		total += len(row)
	}
	_ = parallelMap(total, func(idx int) error {
		i, j := unflattenRagged(idx, rowLen)
		out[i][j] = thbgn.PartialDecrypt2(m.THBGNShare, matrix[i][j])
		return nil
	})
	return out
}
