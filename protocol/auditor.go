package protocol

import (
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/rand"
	"fmt"
	"sync"

	"github.com/spring-epfl/aid-distribution/config"
	"github.com/spring-epfl/aid-distribution/envelope"
	"github.com/spring-epfl/aid-distribution/signchain"
)

// Auditor owns the valid_set of admissible secret tags, per spec.md
// §3: "The valid_set is owned by the Auditor only." It is scoped to the
// current period and rotated via ResetPeriod when a new period begins.
type Auditor struct {
	EncPriv  *ecdh.PrivateKey
	SigPriv  *ecdsa.PrivateKey
	ValidSet map[Tag]bool

	seen map[Tag]bool
}

// NewAuditor constructs an Auditor bound to the given admissible tag
// set for the upcoming period.
func NewAuditor(encPriv *ecdh.PrivateKey, sigPriv *ecdsa.PrivateKey, validSet map[Tag]bool) *Auditor {
	return &Auditor{EncPriv: encPriv, SigPriv: sigPriv, ValidSet: validSet, seen: make(map[Tag]bool)}
}

// ResetPeriod discards per-period admission state. Per spec.md §5, a
// period abandoned before Published discards all per-period state
// including the valid_set; callers supply a freshly-drawn valid_set for
// the next period.
func (a *Auditor) ResetPeriod(validSet map[Tag]bool) {
	a.ValidSet = validSet
	a.seen = make(map[Tag]bool)
}

// Process decrypts every submission's Auditor-bound envelopes, enforces
// tag admissibility, global tag uniqueness, and (under the malicious
// model) the exact per-recipient entitlement count, then signs the
// concatenation of the forwarded Helper-bound envelope bytes, per spec.md
// §4.6. The Helper independently recomputes the same concatenation from
// what it receives directly and verifies this signature against it.
//
// Envelope opening is fanned out across parallelMap's bounded worker
// pool, one job per recipient (per spec.md §5's bulk per-recipient
// Auditor processing); each recipient's
// forwarded bytes are written into a preallocated slot so the final
// concatenation order matches what the Helper independently recomputes
// regardless of goroutine completion order.
func (a *Auditor) Process(variant Variant, submissions []Submission) ([]byte, error) {
	if !variant.UsesAuditor() {
		return nil, newErr(InvalidParameter, fmt.Sprintf("variant %s has no Auditor", variant), nil)
	}

	for i, sub := range submissions {
		if len(sub.AuditorEnvelopes) != config.MaxEntitlement {
			return nil, newErr(WrongTagCount, fmt.Sprintf("recipient %d submitted %d tags, want %d", i, len(sub.AuditorEnvelopes), config.MaxEntitlement), nil)
		}
	}

	restBytes := make([][][]byte, len(submissions))
	for i, sub := range submissions {
		restBytes[i] = make([][]byte, len(sub.AuditorEnvelopes))
	}

	var mu sync.Mutex
	err := parallelMap(len(submissions), func(i int) error {
		sub := submissions[i]
		for k, env := range sub.AuditorEnvelopes {
			plaintext, err := envelope.Open(a.EncPriv, env, envelope.AuditorAD())
			if err != nil {
				return newErr(EnvelopeAuth, "opening auditor envelope", err)
			}
			if len(plaintext) < config.TagByteLen {
				return newErr(Deserialization, "auditor payload shorter than a tag", nil)
			}

			var tag Tag
			copy(tag[:], plaintext[:config.TagByteLen])
			rest := plaintext[config.TagByteLen:]

			mu.Lock()
			valid := a.ValidSet[tag]
			dup := a.seen[tag]
			if valid && !dup {
				a.seen[tag] = true
			}
			mu.Unlock()

			if !valid {
				return newErr(InvalidSecretTag, fmt.Sprintf("recipient %d", i), nil)
			}
			if dup {
				return newErr(DuplicateSecretTag, fmt.Sprintf("recipient %d", i), nil)
			}

			restBytes[i][k] = rest
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var forwarded []byte
	for _, row := range restBytes {
		for _, rest := range row {
			forwarded = append(forwarded, rest...)
		}
	}

	sig, err := signchain.Sign(rand.Reader, a.SigPriv, forwarded)
	if err != nil {
		return nil, newErr(RngFailure, "auditor signing", err)
	}
	log.Infof("auditor admitted %d recipients", len(submissions))
	return sig, nil
}
