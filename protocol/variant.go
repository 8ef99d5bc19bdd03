package protocol

import "github.com/spring-epfl/aid-distribution/config"

// Variant selects the Helper's evaluation strategy and, with it, which
// scheme (thelgamal or thbgn) a deployment runs on. original_source's
// benches/*.rs name these five concretely; spec.md §9 only gestures at
// them abstractly.
type Variant int

const (
	// HbC2PC is the honest-but-curious two-party-computation baseline:
	// single-level threshold ElGamal, additive fold across all
	// recipients, no Auditor, no secret tags.
	HbC2PC Variant = iota
	// HbCTHHE1 is the honest-but-curious one-ciphertext-per-recipient
	// variant: single-level threshold ElGamal, no Auditor.
	HbCTHHE1
	// MalTHHE1 adds Auditor admission and signature chaining to
	// HbCTHHE1.
	MalTHHE1
	// HbCTHHE2 runs THBGN with an indicator/data ciphertext pair per
	// recipient, no Auditor.
	HbCTHHE2
	// MalTHHE2 adds Auditor admission and signature chaining to
	// HbCTHHE2.
	MalTHHE2
)

func (v Variant) String() string {
	switch v {
	case HbC2PC:
		return "HbC2PC"
	case HbCTHHE1:
		return "HbCTHHE1"
	case MalTHHE1:
		return "MalTHHE1"
	case HbCTHHE2:
		return "HbCTHHE2"
	case MalTHHE2:
		return "MalTHHE2"
	default:
		return "Unknown"
	}
}

// UsesAuditor reports whether this variant runs the Auditor admission
// step (the malicious-model variants).
func (v Variant) UsesAuditor() bool {
	return v == MalTHHE1 || v == MalTHHE2
}

// UsesTHBGN reports whether this variant's scheme is THBGN (two-level)
// rather than single-level threshold ElGamal.
func (v Variant) UsesTHBGN() bool {
	return v == HbCTHHE2 || v == MalTHHE2
}

// EntitlementBundles is the number of per-recipient ciphertext bundles
// submitted: MAX_ENTITLEMENT real-plus-dummy bundles under the
// malicious model (to hide the true tag count from the Auditor), or a
// single bundle when there is no Auditor to hide it from.
func (v Variant) EntitlementBundles() int {
	if v.UsesAuditor() {
		return config.MaxEntitlement
	}
	return 1
}
