package tally

import "time"

// Snapshot is one day's persisted board state. The document id in the store
// equals Date. While it is today's snapshot it is rewritten on every
// mutation; once a later date key becomes active it is history and is only
// ever read.
type Snapshot struct {
	Tallies   Counts    `json:"tallies"`
	Timezone  string    `json:"timezone"`
	Custom    []string  `json:"customTallyTypes"`
	Date      string    `json:"date"`
	CreatedAt Timestamp `json:"createdAt"`
}

// NewSnapshot seeds a zero-valued snapshot for the given date key over the
// builtin types plus the provided custom types.
func NewSnapshot(dateKey, zoneName string, custom []string, now time.Time) *Snapshot {
	return &Snapshot{
		Tallies:   Initialize(AllTypes(custom)),
		Timezone:  zoneName,
		Custom:    append([]string(nil), custom...),
		Date:      dateKey,
		CreatedAt: Timestamp{Time: now},
	}
}

// Clone returns a deep copy so callers can mutate without aliasing the
// active snapshot.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	out := *s
	out.Tallies = s.Tallies.clone()
	out.Custom = append([]string(nil), s.Custom...)
	return &out
}
