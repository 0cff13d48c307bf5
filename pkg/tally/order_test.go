package tally

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestReconcileEmptyOrder(t *testing.T) {
	all := AllTypes([]string{"VIP REQUESTS"})
	got := Reconcile(nil, all)
	if !reflect.DeepEqual(got, all) {
		t.Fatalf("empty order should yield enumeration order: %v", got)
	}
}

func TestReconcileDropsStaleAndAppendsNew(t *testing.T) {
	order := []string{"DROP-OFFS", "GONE", "DEFERRALS"}
	all := []string{"DROP-OFFS", "DEFERRALS", "VIP REQUESTS"}
	got := Reconcile(order, all)
	want := []string{"DROP-OFFS", "DEFERRALS", "VIP REQUESTS"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("reconcile = %v, want %v", got, want)
	}
}

func TestReconcileIdempotentOverRandomPermutations(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	names := AllTypes([]string{"A", "B", "C", "D"})
	for i := 0; i < 200; i++ {
		order := append([]string(nil), names...)
		rng.Shuffle(len(order), func(a, b int) { order[a], order[b] = order[b], order[a] })
		// Random subset of names currently present.
		all := make([]string, 0, len(names))
		for _, n := range names {
			if rng.Intn(4) != 0 {
				all = append(all, n)
			}
		}
		once := Reconcile(order, all)
		twice := Reconcile(once, all)
		if !reflect.DeepEqual(once, twice) {
			t.Fatalf("not idempotent: %v vs %v (order=%v all=%v)", once, twice, order, all)
		}
		if len(once) != len(all) {
			t.Fatalf("wrong cardinality: %v for %v", once, all)
		}
		// Retained names keep their relative order.
		pos := make(map[string]int, len(once))
		for idx, n := range once {
			pos[n] = idx
		}
		last := -1
		for _, n := range order {
			idx, ok := pos[n]
			if !ok {
				continue
			}
			if idx < last {
				t.Fatalf("relative order not preserved: %v from %v", once, order)
			}
			last = idx
		}
	}
}

func TestApplyMove(t *testing.T) {
	order := []string{"A", "B", "C", "D"}

	got := ApplyMove(order, "A", "C")
	if !reflect.DeepEqual(got, []string{"B", "C", "A", "D"}) {
		t.Fatalf("move forward: %v", got)
	}

	got = ApplyMove(order, "D", "A")
	if !reflect.DeepEqual(got, []string{"D", "A", "B", "C"}) {
		t.Fatalf("move backward: %v", got)
	}

	got = ApplyMove(order, "B", "B")
	if !reflect.DeepEqual(got, order) {
		t.Fatalf("self move should be a no-op: %v", got)
	}

	got = ApplyMove(order, "Z", "A")
	if !reflect.DeepEqual(got, order) {
		t.Fatalf("absent source should be a no-op: %v", got)
	}

	if got := ApplyMove(order, "A", "Z"); !reflect.DeepEqual(got, order) {
		t.Fatalf("absent target should be a no-op: %v", got)
	}

	if !reflect.DeepEqual(order, []string{"A", "B", "C", "D"}) {
		t.Fatalf("input slice mutated: %v", order)
	}
}
