package protocol

import (
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/rand"
	"fmt"

	"github.com/spring-epfl/aid-distribution/codec"
	"github.com/spring-epfl/aid-distribution/envelope"
	"github.com/spring-epfl/aid-distribution/signchain"
	"github.com/spring-epfl/aid-distribution/thbgn"
	"github.com/spring-epfl/aid-distribution/thelgamal"
)

// Helper owns last_period, per spec.md §5 ("last_period is owned by the
// Helper only"), and aggregates recipient ciphertexts homomorphically
// without ever touching a secret key.
type Helper struct {
	EncPriv    *ecdh.PrivateKey
	SigPriv    *ecdsa.PrivateKey
	LastPeriod uint16
}

// NewHelper constructs a Helper starting at last_period=0, so the first
// valid period id is 1.
func NewHelper(encPriv *ecdh.PrivateKey, sigPriv *ecdsa.PrivateKey) *Helper {
	return &Helper{EncPriv: encPriv, SigPriv: sigPriv}
}

func (h *Helper) checkFreshAndVerifyAuditor(variant Variant, period uint16, submissions []Submission, auditorSig []byte, auditorPub *ecdsa.PublicKey) ([]byte, error) {
	if period <= h.LastPeriod {
		return nil, newErr(StalePeriod, fmt.Sprintf("period %d <= last_period %d", period, h.LastPeriod), nil)
	}

	var flattened []byte
	for _, sub := range submissions {
		for _, env := range sub.HelperEnvelopes {
			flattened = append(flattened, env...)
		}
	}

	if variant.UsesAuditor() {
		if err := signchain.Verify(auditorPub, flattened, auditorSig); err != nil {
			return nil, newErr(AuditorSignatureInvalid, "verifying auditor signature", err)
		}
	}
	return flattened, nil
}

// ProcessPeriodElGamal runs the Helper's fold for the single-level
// variants (HbC2PC, HbCTHHE1, MalTHHE1): decrypt every submitted
// envelope and additively fold all of them together. Dummy bundles
// encrypt zero, so folding every bundle (not just the real one) is safe
// and is what hides the true per-recipient entitlement count from an
// observer of the Helper's decryption pattern.
//
// Envelope opening is fanned out across parallelMap's bounded worker
// pool, one job per recipient (per spec.md §5); since Add is commutative, the fold itself stays a
// sequential pass over the decoded ciphertexts once decryption
// completes.
func (h *Helper) ProcessPeriodElGamal(variant Variant, period uint16, submissions []Submission, auditorSig []byte, auditorPub *ecdsa.PublicKey) (thelgamal.Ciphertext, []byte, error) {
	if variant.UsesTHBGN() {
		return thelgamal.Ciphertext{}, nil, newErr(InvalidParameter, fmt.Sprintf("variant %s does not use threshold ElGamal", variant), nil)
	}

	if _, err := h.checkFreshAndVerifyAuditor(variant, period, submissions, auditorSig, auditorPub); err != nil {
		return thelgamal.Ciphertext{}, nil, err
	}

	cts := make([][]thelgamal.Ciphertext, len(submissions))
	for i, sub := range submissions {
		cts[i] = make([]thelgamal.Ciphertext, len(sub.HelperEnvelopes))
	}

	err := parallelMap(len(submissions), func(i int) error {
		sub := submissions[i]
		for k, env := range sub.HelperEnvelopes {
			plaintext, err := envelope.Open(h.EncPriv, env, envelope.HelperAD(period))
			if err != nil {
				return newErr(EnvelopeAuth, "opening helper envelope", err)
			}
			ct, err := codec.DecodeElGamalCiphertext(plaintext)
			if err != nil {
				return newErr(Deserialization, "decoding elgamal ciphertext", err)
			}
			cts[i][k] = ct
		}
		return nil
	})
	if err != nil {
		return thelgamal.Ciphertext{}, nil, err
	}

	var sum thelgamal.Ciphertext
	first := true
	for _, row := range cts {
		for _, ct := range row {
			if first {
				sum = ct
				first = false
			} else {
				sum = thelgamal.Add(sum, ct)
			}
		}
	}

	sig, err := signchain.Sign(rand.Reader, h.SigPriv, codec.EncodeElGamalCiphertext(sum))
	if err != nil {
		return thelgamal.Ciphertext{}, nil, newErr(RngFailure, "helper signing", err)
	}
	h.LastPeriod = period
	log.Infof("helper processed period %d (%s), %d recipients", period, variant, len(submissions))
	return sum, sig, nil
}

type thbgnBundle struct {
	Bit  thbgn.Ciphertext1
	Data thbgn.Ciphertext1
}

// ProcessPeriodTHBGN runs the Helper's fold for the two-level variants
// (HbCTHHE2, MalTHHE2): recipient 0's first bundle is treated as the
// no-show reference (per spec.md §4.6); its indicator ciphertext is
// multiplied against every other recipient's data-field ciphertext, one
// output row per recipient and one column per entitlement bundle,
// producing a rectangular CiphertextT matrix.
func (h *Helper) ProcessPeriodTHBGN(variant Variant, period uint16, submissions []Submission, auditorSig []byte, auditorPub *ecdsa.PublicKey) ([][]thbgn.CiphertextT, []byte, error) {
	if !variant.UsesTHBGN() {
		return nil, nil, newErr(InvalidParameter, fmt.Sprintf("variant %s does not use THBGN", variant), nil)
	}
	if len(submissions) < 2 {
		return nil, nil, newErr(InvalidParameter, "THBGN fold needs at least one recipient besides the no-show reference", nil)
	}

	if _, err := h.checkFreshAndVerifyAuditor(variant, period, submissions, auditorSig, auditorPub); err != nil {
		return nil, nil, err
	}

	bundles := make([][]thbgnBundle, len(submissions))
	for i, sub := range submissions {
		bundles[i] = make([]thbgnBundle, len(sub.HelperEnvelopes))
	}

	err := parallelMap(len(submissions), func(i int) error {
		sub := submissions[i]
		for k, env := range sub.HelperEnvelopes {
			plaintext, err := envelope.Open(h.EncPriv, env, envelope.HelperAD(period))
			if err != nil {
				return newErr(EnvelopeAuth, "opening helper envelope", err)
			}
			cts, err := codec.DecodeCiphertext1Batch(plaintext)
			if err != nil {
				return newErr(Deserialization, "decoding thbgn bundle", err)
			}
			bundles[i][k] = thbgnBundle{Bit: cts[0], Data: cts[1]}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	noShowIndicator := bundles[0][0].Bit

	out := make([][]thbgn.CiphertextT, len(submissions)-1)
	for row := range out {
		out[row] = make([]thbgn.CiphertextT, len(bundles[row+1]))
	}
	_ = parallelMap(len(out), func(row int) error {
		for k, b := range bundles[row+1] {
			out[row][k] = thbgn.Mul(noShowIndicator, b.Data)
		}
		return nil
	})

	var flattened []byte
	for _, row := range out {
		for _, ct := range row {
			flattened = append(flattened, codec.EncodeCiphertextT(ct)...)
		}
	}
	sig, err := signchain.Sign(rand.Reader, h.SigPriv, flattened)
	if err != nil {
		return nil, nil, newErr(RngFailure, "helper signing", err)
	}
	h.LastPeriod = period
	log.Infof("helper processed period %d (%s), %d recipients", period, variant, len(submissions))
	return out, sig, nil
}
