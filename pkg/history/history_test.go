package history

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/marszhhx/recare-tally/pkg/store"
	"github.com/marszhhx/recare-tally/pkg/tally"
)

type stubPersistence struct {
	store.Persistence
	snaps []*tally.Snapshot
}

func (s *stubPersistence) Snapshots(_ context.Context) []*tally.Snapshot {
	return s.snaps
}

func vancouver(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Vancouver")
	if err != nil {
		t.Fatalf("load zone: %v", err)
	}
	return loc
}

func day(t *testing.T, key string, counts map[string]int) *tally.Snapshot {
	t.Helper()
	snap := tally.NewSnapshot(key, "America/Vancouver", nil, time.Time{})
	for name, n := range counts {
		snap.Tallies[name] = tally.Tally{Count: n}
	}
	return snap
}

func TestLoadAllNewestFirst(t *testing.T) {
	p := &Projector{
		Persistence: &stubPersistence{snaps: []*tally.Snapshot{
			day(t, "2024-01-14", nil),
			day(t, "2024-01-16", nil),
			day(t, "2024-01-15", nil),
		}},
		Zone: vancouver(t),
	}

	days, err := p.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("load all: %v", err)
	}
	got := []string{days[0].Date, days[1].Date, days[2].Date}
	want := []string{"2024-01-16", "2024-01-15", "2024-01-14"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("display order = %v, want %v", got, want)
	}
	if days[2].Weekday != "Sunday" || days[2].LongDate != "January 14, 2024" {
		t.Fatalf("labels = %q %q", days[2].Weekday, days[2].LongDate)
	}
}

func TestDisplayTime(t *testing.T) {
	loc := vancouver(t)
	snap := day(t, "2024-01-15", nil)
	snap.CreatedAt = tally.Timestamp{Time: time.Date(2024, 1, 15, 21, 30, 0, 0, loc)}
	p := &Projector{
		Persistence: &stubPersistence{snaps: []*tally.Snapshot{snap}},
		Zone:        loc,
	}
	days, err := p.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("load all: %v", err)
	}
	if days[0].DisplayTime != "Jan 15, 2024, 09:30:00 PM" {
		t.Fatalf("display time = %q", days[0].DisplayTime)
	}
}

func TestExportRowsOldestFirstWithZeroDefaults(t *testing.T) {
	p := &Projector{
		Persistence: &stubPersistence{snaps: []*tally.Snapshot{
			day(t, "2024-01-16", map[string]int{"DROP-OFFS": 3, "VIP REQUESTS": 2}),
			day(t, "2024-01-15", map[string]int{"DROP-OFFS": 1}),
		}},
		Zone: vancouver(t),
	}
	days, err := p.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("load all: %v", err)
	}

	types := tally.AllTypes([]string{"VIP REQUESTS"})
	rows := ExportRows(days, types)

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Date != "January 15, 2024" || rows[1].Date != "January 16, 2024" {
		t.Fatalf("export must be oldest first: %q, %q", rows[0].Date, rows[1].Date)
	}
	if rows[0].Weekday != "Monday" {
		t.Fatalf("weekday = %q", rows[0].Weekday)
	}

	idx := make(map[string]int, len(types))
	for i, name := range types {
		idx[name] = i
	}
	// VIP REQUESTS did not exist on the 15th; it reads as 0.
	if rows[0].Values[idx["VIP REQUESTS"]] != 0 {
		t.Fatalf("missing tally should default to 0: %v", rows[0].Values)
	}
	if rows[0].Values[idx["DROP-OFFS"]] != 1 {
		t.Fatalf("wrong value on the 15th: %v", rows[0].Values)
	}
	if rows[1].Values[idx["VIP REQUESTS"]] != 2 || rows[1].Values[idx["DROP-OFFS"]] != 3 {
		t.Fatalf("wrong values on the 16th: %v", rows[1].Values)
	}

	header := Header(types)
	if header[0] != "Day of Week" || header[1] != "Date" || len(header) != len(types)+2 {
		t.Fatalf("header = %v", header)
	}
}
