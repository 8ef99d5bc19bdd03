package protocol

import "fmt"

// Session drives one period's state machine for a deployment, so that
// callers advance through Collecting, the Auditor step (malicious-model
// variants only), HelperProcessing, and one or two committee/
// Distribution-Station rounds in the order spec.md §5 requires, rather
// than calling the role functions in an unchecked sequence.
type Session struct {
	Variant Variant
	State   PeriodState
}

// NewSession starts a session Idle, bound to a single variant for its
// whole lifetime.
func NewSession(variant Variant) *Session {
	return &Session{Variant: variant, State: Idle}
}

func (s *Session) transition(from, to PeriodState) error {
	if s.State != from {
		return newErr(InvalidParameter, fmt.Sprintf("cannot advance to %s: session is in %s, not %s", to, s.State, from), nil)
	}
	s.State = to
	return nil
}

// BeginCollecting opens the submission window for a new period.
func (s *Session) BeginCollecting() error {
	return s.transition(Idle, Collecting)
}

// ReadyForAuditor closes submissions and hands off to the Auditor
// admission step. Only the malicious-model variants have this state.
func (s *Session) ReadyForAuditor() error {
	if !s.Variant.UsesAuditor() {
		return newErr(InvalidParameter, fmt.Sprintf("variant %s has no Auditor state", s.Variant), nil)
	}
	return s.transition(Collecting, AuditorReady)
}

// ReadyForHelper closes submissions directly for honest-but-curious
// variants, or advances past a completed Auditor step for the
// malicious-model ones.
func (s *Session) ReadyForHelper() error {
	if s.Variant.UsesAuditor() {
		return s.transition(AuditorReady, HelperProcessing)
	}
	return s.transition(Collecting, HelperProcessing)
}

// ReadyForCommittee1 advances past a completed Helper fold.
func (s *Session) ReadyForCommittee1() error {
	return s.transition(HelperProcessing, Committee1)
}

// ReadyForDistribution1 advances past the committee's round-1 partial
// decryptions.
func (s *Session) ReadyForDistribution1() error {
	return s.transition(Committee1, Distribution1)
}

// AdvancePastDistribution1 moves to Committee2 for the two-level THBGN
// variants, which need a second committee/Distribution-Station round,
// or straight to Published for the single-level variants, which don't.
func (s *Session) AdvancePastDistribution1() error {
	if s.Variant.UsesTHBGN() {
		return s.transition(Distribution1, Committee2)
	}
	return s.transition(Distribution1, Published)
}

// ReadyForDistribution2 advances past the committee's round-2 partial
// decryptions. Only reachable for the two-level variants.
func (s *Session) ReadyForDistribution2() error {
	if !s.Variant.UsesTHBGN() {
		return newErr(InvalidParameter, fmt.Sprintf("variant %s has no Committee2 state", s.Variant), nil)
	}
	return s.transition(Committee2, Distribution2)
}

// Publish marks the period's Distribution-Station output as final.
func (s *Session) Publish() error {
	if s.Variant.UsesTHBGN() {
		return s.transition(Distribution2, Published)
	}
	return newErr(InvalidParameter, fmt.Sprintf("variant %s publishes from AdvancePastDistribution1, not Publish", s.Variant), nil)
}

// Abort returns the session to Idle. It changes only the session's own
// State: the Auditor's valid_set is rotated separately through
// Auditor.ResetPeriod, the Helper's LastPeriod is not touched, and any
// in-flight submissions or partials held by callers are not discarded
// here.
func (s *Session) Abort() {
	s.State = Idle
}
