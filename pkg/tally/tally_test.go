package tally

import (
	"reflect"
	"testing"
	"time"
)

func TestNormalize(t *testing.T) {
	if got := Normalize("  vip requests "); got != "VIP REQUESTS" {
		t.Fatalf("unexpected normalization: %q", got)
	}
}

func TestIncrementDecrementInverse(t *testing.T) {
	s := Initialize(DefaultTypes)
	up, err := s.Increment("DROP-OFFS")
	if err != nil {
		t.Fatalf("increment: %v", err)
	}
	down, err := up.Decrement("DROP-OFFS")
	if err != nil {
		t.Fatalf("decrement: %v", err)
	}
	if !reflect.DeepEqual(down, s) {
		t.Fatalf("decrement(increment(s)) != s: %v vs %v", down, s)
	}
}

func TestIncrementUnknown(t *testing.T) {
	s := Initialize(DefaultTypes)
	if _, err := s.Increment("NOT A TALLY"); err != ErrUnknownTally {
		t.Fatalf("expected ErrUnknownTally, got %v", err)
	}
}

func TestDecrementFloorsAtZero(t *testing.T) {
	s := Initialize(DefaultTypes)
	out, err := s.Decrement("DEFERRALS")
	if err != nil {
		t.Fatalf("decrement: %v", err)
	}
	if out.Count("DEFERRALS") != 0 {
		t.Fatalf("count went negative: %d", out.Count("DEFERRALS"))
	}
}

func TestOperationsDoNotMutateReceiver(t *testing.T) {
	s := Initialize(DefaultTypes)
	if _, err := s.Increment("DROP-OFFS"); err != nil {
		t.Fatalf("increment: %v", err)
	}
	if s.Count("DROP-OFFS") != 0 {
		t.Fatalf("receiver mutated: %d", s.Count("DROP-OFFS"))
	}
}

func TestAddCustomNormalizesAndRejectsDuplicates(t *testing.T) {
	s := Initialize(DefaultTypes)
	s, err := s.AddCustom("VIP REQUESTS")
	if err != nil {
		t.Fatalf("add custom: %v", err)
	}
	if !s.Has("VIP REQUESTS") {
		t.Fatalf("custom tally missing after add")
	}
	if _, err := s.AddCustom("vip requests "); err != ErrDuplicateTally {
		t.Fatalf("expected ErrDuplicateTally for case/whitespace variant, got %v", err)
	}
	if _, err := s.AddCustom("drop-offs"); err != ErrDuplicateTally {
		t.Fatalf("expected ErrDuplicateTally for builtin collision, got %v", err)
	}
}

func TestRemoveCustomRoundTrip(t *testing.T) {
	base := Initialize(DefaultTypes)
	s, err := base.AddCustom("VIP REQUESTS")
	if err != nil {
		t.Fatalf("add custom: %v", err)
	}
	s, err = s.RemoveCustom("VIP REQUESTS")
	if err != nil {
		t.Fatalf("remove custom: %v", err)
	}
	if !reflect.DeepEqual(s, base) {
		t.Fatalf("add then remove should restore membership: %v", s)
	}
	if s.Has("VIP REQUESTS") {
		t.Fatalf("removed tally still present")
	}
}

func TestRemoveCustomProtectsBuiltins(t *testing.T) {
	s := Initialize(DefaultTypes)
	for _, name := range DefaultTypes {
		if _, err := s.RemoveCustom(name); err != ErrProtectedTally {
			t.Fatalf("expected ErrProtectedTally for %s, got %v", name, err)
		}
	}
	if len(s) != len(DefaultTypes) {
		t.Fatalf("set changed by failed removal")
	}
}

func TestZeroed(t *testing.T) {
	s := Initialize(DefaultTypes)
	s, _ = s.Increment("DROP-OFFS")
	s, _ = s.Increment("DROP-OFFS")
	z := s.Zeroed()
	if z.Count("DROP-OFFS") != 0 {
		t.Fatalf("zeroed count: %d", z.Count("DROP-OFFS"))
	}
	if len(z) != len(s) {
		t.Fatalf("zeroed changed key set")
	}
	if s.Count("DROP-OFFS") != 2 {
		t.Fatalf("zeroed mutated receiver")
	}
}

func TestSnapshotClone(t *testing.T) {
	snap := NewSnapshot("2024-01-15", "America/Vancouver", []string{"VIP REQUESTS"}, time.Now())
	cp := snap.Clone()
	cp.Tallies, _ = cp.Tallies.Increment("DROP-OFFS")
	cp.Custom = append(cp.Custom, "OTHER")
	if snap.Tallies.Count("DROP-OFFS") != 0 {
		t.Fatalf("clone aliases tallies")
	}
	if len(snap.Custom) != 1 {
		t.Fatalf("clone aliases custom list")
	}
}
