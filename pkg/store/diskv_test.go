package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/marszhhx/recare-tally/pkg/tally"
)

type testConfig struct {
	path string
}

func (t testConfig) BasePath() string { return t.path }
func (t testConfig) Timezone() string { return "America/Vancouver" }

func loadTest(t *testing.T) Persistence {
	t.Helper()
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	return p
}

func TestSnapshotRoundTrip(t *testing.T) {
	p := loadTest(t)
	ctx := context.Background()

	if _, err := p.Snapshot(ctx, "2024-01-15"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	loc, _ := time.LoadLocation("America/Vancouver")
	snap := tally.NewSnapshot("2024-01-15", "America/Vancouver",
		[]string{"VIP REQUESTS"}, time.Date(2024, 1, 15, 9, 30, 0, 0, loc))
	snap.Tallies, _ = snap.Tallies.Increment("DROP-OFFS")

	if err := p.PutSnapshot(snap); err != nil {
		t.Fatalf("put snapshot: %v", err)
	}

	got, err := p.Snapshot(ctx, "2024-01-15")
	if err != nil {
		t.Fatalf("get snapshot: %v", err)
	}
	if got.Date != "2024-01-15" {
		t.Fatalf("wrong date: %s", got.Date)
	}
	if got.Timezone != "America/Vancouver" {
		t.Fatalf("wrong timezone: %s", got.Timezone)
	}
	if got.Tallies.Count("DROP-OFFS") != 1 {
		t.Fatalf("wrong count: %d", got.Tallies.Count("DROP-OFFS"))
	}
	if len(got.Custom) != 1 || got.Custom[0] != "VIP REQUESTS" {
		t.Fatalf("wrong custom list: %v", got.Custom)
	}
	if got.CreatedAt.IsZero() {
		t.Fatalf("createdAt lost in round trip")
	}
}

func TestPutSnapshotRequiresDate(t *testing.T) {
	p := loadTest(t)
	if err := p.PutSnapshot(&tally.Snapshot{}); err == nil {
		t.Fatalf("expected error for missing date key")
	}
}

func TestSnapshotsSortedAscending(t *testing.T) {
	p := loadTest(t)
	ctx := context.Background()

	for _, key := range []string{"2024-01-16", "2024-01-14", "2024-01-15"} {
		if err := p.PutSnapshot(tally.NewSnapshot(key, "America/Vancouver", nil, time.Now())); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
	}

	all := p.Snapshots(ctx)
	if len(all) != 3 {
		t.Fatalf("expected 3 snapshots, got %d", len(all))
	}
	want := []string{"2024-01-14", "2024-01-15", "2024-01-16"}
	for i, key := range want {
		if all[i].Date != key {
			t.Fatalf("snapshots[%d] = %s, want %s", i, all[i].Date, key)
		}
	}
}

func TestSettingsDocuments(t *testing.T) {
	p := loadTest(t)
	ctx := context.Background()

	// Missing documents read as empty lists.
	types, err := p.CustomTypes(ctx)
	if err != nil {
		t.Fatalf("custom types: %v", err)
	}
	if len(types) != 0 {
		t.Fatalf("expected empty custom list, got %v", types)
	}
	order, err := p.Order(ctx)
	if err != nil {
		t.Fatalf("order: %v", err)
	}
	if len(order) != 0 {
		t.Fatalf("expected empty order, got %v", order)
	}

	at := tally.Timestamp{Time: time.Now()}
	if err := p.PutCustomTypes([]string{"VIP REQUESTS"}, at); err != nil {
		t.Fatalf("put custom types: %v", err)
	}
	if err := p.PutOrder([]string{"DROP-OFFS", "VIP REQUESTS"}, at); err != nil {
		t.Fatalf("put order: %v", err)
	}

	types, err = p.CustomTypes(ctx)
	if err != nil {
		t.Fatalf("custom types: %v", err)
	}
	if len(types) != 1 || types[0] != "VIP REQUESTS" {
		t.Fatalf("custom types round trip: %v", types)
	}
	order, err = p.Order(ctx)
	if err != nil {
		t.Fatalf("order: %v", err)
	}
	if len(order) != 2 || order[0] != "DROP-OFFS" {
		t.Fatalf("order round trip: %v", order)
	}
}

func TestWatchEmitsSnapshotChanges(t *testing.T) {
	p := loadTest(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow the watcher goroutine to subscribe before writing.
	time.Sleep(50 * time.Millisecond)

	if err := p.PutSnapshot(tally.NewSnapshot("2024-01-15", "America/Vancouver", nil, time.Now())); err != nil {
		t.Fatalf("put snapshot: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventInvalidated {
				return
			}
			if evt.Type == EventSnapshotChanged {
				if evt.Key != "2024-01-15" {
					t.Fatalf("expected key 2024-01-15, got %q", evt.Key)
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for snapshot change event")
		}
	}
}
