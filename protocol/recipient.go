package protocol

import (
	"crypto/ecdh"
	"fmt"
	"io"
	"math/big"

	"github.com/spring-epfl/aid-distribution/codec"
	"github.com/spring-epfl/aid-distribution/config"
	"github.com/spring-epfl/aid-distribution/envelope"
	"github.com/spring-epfl/aid-distribution/thbgn"
	"github.com/spring-epfl/aid-distribution/thelgamal"
)

// Tag is a recipient's unlinkable per-bundle secret tag, per spec.md
// §3's SecretTag.
type Tag [config.TagByteLen]byte

// Submission is one recipient's Round-1 output: the ordered list of
// Helper-bound envelopes, and — under the malicious model only — the
// parallel ordered list of Auditor-bound envelopes that smuggle the
// admission tags alongside copies of the Helper-bound ciphertext bytes.
type Submission struct {
	HelperEnvelopes  [][]byte
	AuditorEnvelopes [][]byte
}

// BuildElGamalSubmission produces a Round-1 submission for the
// single-level threshold-ElGamal variants (HbC2PC, HbCTHHE1,
// MalTHHE1). bit is the claim indicator the recipient is encrypting.
func BuildElGamalSubmission(r io.Reader, variant Variant, pp thelgamal.PublicParameters, pk thelgamal.PublicKey, period uint16, bit uint64, tags []Tag, helperPub, auditorPub *ecdh.PublicKey) (Submission, error) {
	if variant.UsesTHBGN() {
		return Submission{}, newErr(InvalidParameter, fmt.Sprintf("variant %s does not use threshold ElGamal", variant), nil)
	}

	n := variant.EntitlementBundles()
	if variant.UsesAuditor() && len(tags) != n {
		return Submission{}, newErr(InvalidParameter, fmt.Sprintf("need %d tags, got %d", n, len(tags)), nil)
	}

	sub := Submission{HelperEnvelopes: make([][]byte, n)}
	if variant.UsesAuditor() {
		sub.AuditorEnvelopes = make([][]byte, n)
	}

	for k := 0; k < n; k++ {
		m := uint64(0)
		if k == 0 {
			m = bit
		}
		ct, err := thelgamal.Encrypt(r, pp, pk, new(big.Int).SetUint64(m))
		if err != nil {
			return Submission{}, newErr(RngFailure, "encrypting elgamal bundle", err)
		}
		ctBytes := codec.EncodeElGamalCiphertext(ct)

		helperEnv, err := envelope.Seal(r, helperPub, ctBytes, envelope.HelperAD(period))
		if err != nil {
			return Submission{}, newErr(RngFailure, "sealing helper envelope", err)
		}
		sub.HelperEnvelopes[k] = helperEnv

		if variant.UsesAuditor() {
			payload := make([]byte, 0, len(tags[k])+len(helperEnv))
			payload = append(payload, tags[k][:]...)
			payload = append(payload, helperEnv...)
			auditorEnv, err := envelope.Seal(r, auditorPub, payload, envelope.AuditorAD())
			if err != nil {
				return Submission{}, newErr(RngFailure, "sealing auditor envelope", err)
			}
			sub.AuditorEnvelopes[k] = auditorEnv
		}
	}
	return sub, nil
}

// BuildTHBGNSubmission produces a Round-1 submission for the two-level
// THBGN variants (HbCTHHE2, MalTHHE2). bit is the claim indicator and
// data is the recipient's data field (e.g. entitlement count), bundled
// together as config.InfoLen=2 ciphertexts per submission slot.
func BuildTHBGNSubmission(r io.Reader, variant Variant, pp thbgn.PublicParameters, pk thbgn.PublicKey, period uint16, bit, data uint64, tags []Tag, helperPub, auditorPub *ecdh.PublicKey) (Submission, error) {
	if !variant.UsesTHBGN() {
		return Submission{}, newErr(InvalidParameter, fmt.Sprintf("variant %s does not use THBGN", variant), nil)
	}

	n := variant.EntitlementBundles()
	if variant.UsesAuditor() && len(tags) != n {
		return Submission{}, newErr(InvalidParameter, fmt.Sprintf("need %d tags, got %d", n, len(tags)), nil)
	}

	sub := Submission{HelperEnvelopes: make([][]byte, n)}
	if variant.UsesAuditor() {
		sub.AuditorEnvelopes = make([][]byte, n)
	}

	for k := 0; k < n; k++ {
		b, d := uint64(0), uint64(0)
		if k == 0 {
			b, d = bit, data
		}
		ctBit, err := thbgn.Encrypt(r, pp, pk, new(big.Int).SetUint64(b))
		if err != nil {
			return Submission{}, newErr(RngFailure, "encrypting indicator", err)
		}
		ctData, err := thbgn.Encrypt(r, pp, pk, new(big.Int).SetUint64(d))
		if err != nil {
			return Submission{}, newErr(RngFailure, "encrypting data field", err)
		}

		batchBytes, err := codec.EncodeCiphertext1Batch([]thbgn.Ciphertext1{ctBit, ctData})
		if err != nil {
			return Submission{}, newErr(Deserialization, "encoding bundle", err)
		}

		helperEnv, err := envelope.Seal(r, helperPub, batchBytes, envelope.HelperAD(period))
		if err != nil {
			return Submission{}, newErr(RngFailure, "sealing helper envelope", err)
		}
		sub.HelperEnvelopes[k] = helperEnv

		if variant.UsesAuditor() {
			payload := make([]byte, 0, len(tags[k])+len(helperEnv))
			payload = append(payload, tags[k][:]...)
			payload = append(payload, helperEnv...)
			auditorEnv, err := envelope.Seal(r, auditorPub, payload, envelope.AuditorAD())
			if err != nil {
				return Submission{}, newErr(RngFailure, "sealing auditor envelope", err)
			}
			sub.AuditorEnvelopes[k] = auditorEnv
		}
	}
	return sub, nil
}
