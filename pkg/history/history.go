// Package history projects archived day snapshots into the shapes the
// screen and the spreadsheet export consume.
package history

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/marszhhx/recare-tally/pkg/civil"
	"github.com/marszhhx/recare-tally/pkg/store"
	"github.com/marszhhx/recare-tally/pkg/tally"
)

// Day is one archived day prepared for display.
type Day struct {
	*tally.Snapshot

	// Weekday and LongDate label the date key, e.g. "Monday",
	// "January 15, 2024".
	Weekday  string
	LongDate string

	// DisplayTime labels the snapshot's last write, e.g.
	// "Jan 15, 2024, 09:30:00 PM"; empty when the document has none.
	DisplayTime string
}

const displayTimeLayout = "Jan 2, 2006, 03:04:05 PM"

// Projector reads the full archive.
type Projector struct {
	Persistence store.Persistence
	Zone        *time.Location
}

// LoadAll returns every day on record, newest first. Screens scan
// newest-first; exports re-sort oldest-first via ExportRows.
func (p *Projector) LoadAll(ctx context.Context) ([]Day, error) {
	if p.Persistence == nil {
		return nil, errors.New("history: no persistence configured")
	}
	snaps := p.Persistence.Snapshots(ctx)
	days := make([]Day, 0, len(snaps))
	for _, snap := range snaps {
		day := Day{
			Snapshot: snap,
			Weekday:  civil.WeekdayLabel(snap.Date, p.Zone),
			LongDate: civil.LongDate(snap.Date, p.Zone),
		}
		if !snap.CreatedAt.IsZero() {
			day.DisplayTime = snap.CreatedAt.In(p.Zone).Format(displayTimeLayout)
		}
		days = append(days, day)
	}
	sort.SliceStable(days, func(i, j int) bool {
		return days[i].Date > days[j].Date
	})
	return days, nil
}

// Row is one export line: the day labels plus one value per known tally
// type, in the caller's column order.
type Row struct {
	Weekday string
	Date    string
	Values  []int
}

// Header returns the export column headers for the given tally types.
func Header(types []string) []string {
	header := make([]string, 0, len(types)+2)
	header = append(header, "Day of Week", "Date")
	header = append(header, types...)
	return header
}

// ExportRows flattens days into rows sorted oldest-first, one column per
// currently-known tally type. A type absent from an older day reads as 0.
func ExportRows(days []Day, types []string) []Row {
	sorted := append([]Day(nil), days...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})

	rows := make([]Row, 0, len(sorted))
	for _, day := range sorted {
		row := Row{Weekday: day.Weekday, Date: day.LongDate}
		row.Values = make([]int, len(types))
		for i, name := range types {
			row.Values[i] = day.Tallies.Count(name)
		}
		rows = append(rows, row)
	}
	return rows
}
