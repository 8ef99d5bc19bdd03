package protocol

import "testing"

func TestSessionHappyPathSingleLevel(t *testing.T) {
	s := NewSession(HbC2PC)
	steps := []func() error{
		s.BeginCollecting,
		s.ReadyForHelper,
		s.ReadyForCommittee1,
		s.ReadyForDistribution1,
		s.AdvancePastDistribution1,
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	if s.State != Published {
		t.Errorf("expected Published, got %s", s.State)
	}
}

func TestSessionHappyPathTwoLevelWithAuditor(t *testing.T) {
	s := NewSession(MalTHHE2)
	steps := []func() error{
		s.BeginCollecting,
		s.ReadyForAuditor,
		s.ReadyForHelper,
		s.ReadyForCommittee1,
		s.ReadyForDistribution1,
		s.AdvancePastDistribution1,
		s.ReadyForDistribution2,
		s.Publish,
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	if s.State != Published {
		t.Errorf("expected Published, got %s", s.State)
	}
}

func TestSessionRejectsSkippedState(t *testing.T) {
	s := NewSession(HbC2PC)
	if err := s.BeginCollecting(); err != nil {
		t.Fatalf("BeginCollecting: %v", err)
	}
	if err := s.ReadyForCommittee1(); err == nil {
		t.Fatal("expected error skipping straight to Committee1")
	}
	if !Is(s.ReadyForCommittee1(), InvalidParameter) {
		t.Error("expected InvalidParameter")
	}
}

func TestSessionRejectsAuditorStateForHonestVariant(t *testing.T) {
	s := NewSession(HbCTHHE1)
	if err := s.BeginCollecting(); err != nil {
		t.Fatalf("BeginCollecting: %v", err)
	}
	if err := s.ReadyForAuditor(); !Is(err, InvalidParameter) {
		t.Errorf("expected InvalidParameter, got %v", err)
	}
}

func TestSessionAbortReturnsToIdle(t *testing.T) {
	s := NewSession(MalTHHE1)
	_ = s.BeginCollecting()
	_ = s.ReadyForAuditor()
	s.Abort()
	if s.State != Idle {
		t.Errorf("expected Idle after Abort, got %s", s.State)
	}
	if err := s.BeginCollecting(); err != nil {
		t.Errorf("expected a fresh period to start cleanly after Abort: %v", err)
	}
}

func TestVariantDispatch(t *testing.T) {
	cases := []struct {
		v           Variant
		usesAuditor bool
		usesTHBGN   bool
		bundles     int
	}{
		{HbC2PC, false, false, 1},
		{HbCTHHE1, false, false, 1},
		{MalTHHE1, true, false, 5},
		{HbCTHHE2, false, true, 1},
		{MalTHHE2, true, true, 5},
	}
	for _, c := range cases {
		if got := c.v.UsesAuditor(); got != c.usesAuditor {
			t.Errorf("%s.UsesAuditor() = %v, want %v", c.v, got, c.usesAuditor)
		}
		if got := c.v.UsesTHBGN(); got != c.usesTHBGN {
			t.Errorf("%s.UsesTHBGN() = %v, want %v", c.v, got, c.usesTHBGN)
		}
		if got := c.v.EntitlementBundles(); got != c.bundles {
			t.Errorf("%s.EntitlementBundles() = %d, want %d", c.v, got, c.bundles)
		}
	}
}
