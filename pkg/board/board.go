// Package board is the daily synchronization engine. A Board keeps an
// in-memory view of today's tallies consistent with the shared store,
// applies mutations optimistically (local state first, then a full-document
// write), and rolls the board over to a fresh snapshot at local midnight.
package board

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/marszhhx/recare-tally/pkg/civil"
	"github.com/marszhhx/recare-tally/pkg/store"
	"github.com/marszhhx/recare-tally/pkg/tally"
)

// ClearConfirmation is the literal phrase that gates ClearAll.
const ClearConfirmation = "confirm"

// MidnightPollInterval is how often the rollover poller samples the clock.
// The boundary window is a full minute on each side of midnight, so a 60s
// period cannot skip past it.
const MidnightPollInterval = time.Minute

// ErrInvalidConfirmation is returned when the ClearAll gate phrase does not
// match ClearConfirmation.
var ErrInvalidConfirmation = errors.New("board: confirmation phrase did not match")

// ErrNotLoaded is returned when a mutation is attempted before Load.
var ErrNotLoaded = errors.New("board: not loaded")

// Item is one ordered row of the board, for view layers to bind to.
type Item struct {
	Name    string
	Count   int
	Builtin bool
}

// Board synchronizes one client's view of the shared daily counter board.
// The store is authoritative; Board state is an optimistically-updated
// cache. Writes are full-document overwrites, so concurrent clients race
// last-write-wins (see Load to re-derive after losing one).
type Board struct {
	Persistence store.Persistence
	Zone        *time.Location

	// now is swappable for tests; defaults to the real clock.
	now func() time.Time

	mu     sync.Mutex
	active *tally.Snapshot
	custom []string
	order  []string
}

// New creates a Board over the given persistence and civil zone.
func New(p store.Persistence, zone *time.Location) *Board {
	return &Board{Persistence: p, Zone: zone, now: time.Now}
}

func (b *Board) clock() time.Time {
	if b.now == nil {
		return civil.Now(b.Zone)
	}
	return b.now().In(b.Zone)
}

// Load fetches today's snapshot plus the global settings, synthesizing and
// persisting a zero snapshot when today has none. The global custom list is
// authoritative over custom names embedded in an existing snapshot.
func (b *Board) Load(ctx context.Context) error {
	if b.Persistence == nil {
		return errors.New("board: no persistence configured")
	}
	if b.Zone == nil {
		return errors.New("board: no time zone configured")
	}

	dateKey := civil.DateKey(b.clock())

	custom, err := b.Persistence.CustomTypes(ctx)
	if err != nil {
		return fmt.Errorf("board: load custom types: %w", err)
	}
	order, err := b.Persistence.Order(ctx)
	if err != nil {
		return fmt.Errorf("board: load order: %w", err)
	}

	snap, err := b.Persistence.Snapshot(ctx, dateKey)
	switch {
	case errors.Is(err, store.ErrNotFound):
		snap = tally.NewSnapshot(dateKey, b.Zone.String(), custom, b.clock())
		if err := b.Persistence.PutSnapshot(snap); err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		// Global list wins; fall back to the snapshot's own list only when
		// the global document has never been written.
		if len(custom) == 0 && len(snap.Custom) > 0 {
			custom = snap.Custom
		}
		// Seed any type the stored document predates, keep stored counts.
		merged := tally.Initialize(tally.AllTypes(custom))
		for name, t := range snap.Tallies {
			merged[name] = t
		}
		snap.Tallies = merged
		snap.Custom = append([]string(nil), custom...)
	}

	b.mu.Lock()
	b.active = snap
	b.custom = append([]string(nil), custom...)
	b.order = tally.Reconcile(order, tally.AllTypes(custom))
	b.mu.Unlock()
	return nil
}

// Increment raises name by one and persists the snapshot.
func (b *Board) Increment(ctx context.Context, name string) error {
	return b.mutateCounts(ctx, name, tally.Counts.Increment)
}

// Decrement lowers name by one, never below zero, and persists the snapshot.
func (b *Board) Decrement(ctx context.Context, name string) error {
	return b.mutateCounts(ctx, name, tally.Counts.Decrement)
}

func (b *Board) mutateCounts(ctx context.Context, name string, op func(tally.Counts, string) (tally.Counts, error)) error {
	name = tally.Normalize(name)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.active == nil {
		return ErrNotLoaded
	}

	counts, err := op(b.active.Tallies, name)
	if err != nil {
		return err
	}

	next := b.active.Clone()
	next.Tallies = counts
	next.CreatedAt = tally.Timestamp{Time: b.clock()}
	if err := b.Persistence.PutSnapshot(next); err != nil {
		return err
	}
	b.active = next
	return nil
}

// AddTally registers a new custom tally globally and on today's snapshot.
// The global settings write happens first; if the day write then fails the
// global list is reported as-is, not rolled back, and the next Load heals
// the day document from the global list.
func (b *Board) AddTally(ctx context.Context, name string) error {
	name = tally.Normalize(name)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.active == nil {
		return ErrNotLoaded
	}

	counts, err := b.active.Tallies.AddCustom(name)
	if err != nil {
		return err
	}

	custom := append(append([]string(nil), b.custom...), name)
	at := tally.Timestamp{Time: b.clock()}
	if err := b.Persistence.PutCustomTypes(custom, at); err != nil {
		return fmt.Errorf("board: save global custom types: %w", err)
	}
	b.custom = custom
	b.order = tally.Reconcile(b.order, tally.AllTypes(custom))

	next := b.active.Clone()
	next.Tallies = counts
	next.Custom = append([]string(nil), custom...)
	next.CreatedAt = at
	if err := b.Persistence.PutSnapshot(next); err != nil {
		return fmt.Errorf("board: custom type saved globally but today's board write failed: %w", err)
	}
	b.active = next
	return nil
}

// RemoveTally deletes a custom tally globally and from today's snapshot.
// Builtins are protected. Same partial-failure contract as AddTally.
func (b *Board) RemoveTally(ctx context.Context, name string) error {
	name = tally.Normalize(name)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.active == nil {
		return ErrNotLoaded
	}

	counts, err := b.active.Tallies.RemoveCustom(name)
	if err != nil {
		return err
	}

	custom := make([]string, 0, len(b.custom))
	for _, c := range b.custom {
		if c != name {
			custom = append(custom, c)
		}
	}
	at := tally.Timestamp{Time: b.clock()}
	if err := b.Persistence.PutCustomTypes(custom, at); err != nil {
		return fmt.Errorf("board: save global custom types: %w", err)
	}
	b.custom = custom
	b.order = tally.Reconcile(b.order, tally.AllTypes(custom))

	next := b.active.Clone()
	next.Tallies = counts
	next.Custom = append([]string(nil), custom...)
	next.CreatedAt = at
	if err := b.Persistence.PutSnapshot(next); err != nil {
		return fmt.Errorf("board: custom type removed globally but today's board write failed: %w", err)
	}
	b.active = next
	return nil
}

// Move reorders the board: source is reinserted at target's former
// position, and the shared order document is updated. The order is global,
// one sequence for every client and every day.
func (b *Board) Move(ctx context.Context, source, target string) error {
	source = tally.Normalize(source)
	target = tally.Normalize(target)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.active == nil {
		return ErrNotLoaded
	}

	order := tally.ApplyMove(b.order, source, target)
	if err := b.Persistence.PutOrder(order, tally.Timestamp{Time: b.clock()}); err != nil {
		return fmt.Errorf("board: save order: %w", err)
	}
	b.order = order
	return nil
}

// ClearAll zeroes every count on today's snapshot. It is gated on the
// literal phrase in ClearConfirmation; anything else fails without touching
// state.
func (b *Board) ClearAll(ctx context.Context, confirmation string) error {
	if confirmation != ClearConfirmation {
		return ErrInvalidConfirmation
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.active == nil {
		return ErrNotLoaded
	}

	next := b.active.Clone()
	next.Tallies = next.Tallies.Zeroed()
	next.CreatedAt = tally.Timestamp{Time: b.clock()}
	if err := b.Persistence.PutSnapshot(next); err != nil {
		return err
	}
	b.active = next
	return nil
}

// Rollover archives the current day by simply abandoning it and seeds a
// fresh zero snapshot under the current date key. The date key is always
// re-read from the clock; the custom list is re-fetched from the store so a
// type added by another client survives the boundary. The display order is
// global and carries over untouched. Rolling onto the already-active date
// key is a no-op, which is what makes a double-sided boundary window safe:
// both the 23:59 and the 00:00 poll qualify, but only the first poll after
// the key changes performs the roll.
func (b *Board) Rollover(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rolloverLocked(ctx)
}

func (b *Board) rolloverLocked(ctx context.Context) error {
	if b.active == nil {
		return ErrNotLoaded
	}

	dateKey := civil.DateKey(b.clock())
	if dateKey == b.active.Date {
		return nil
	}

	custom, err := b.Persistence.CustomTypes(ctx)
	if err != nil {
		return fmt.Errorf("board: rollover: load custom types: %w", err)
	}

	snap := tally.NewSnapshot(dateKey, b.Zone.String(), custom, b.clock())
	if err := b.Persistence.PutSnapshot(snap); err != nil {
		return fmt.Errorf("board: rollover: %w", err)
	}

	b.active = snap
	b.custom = append([]string(nil), custom...)
	b.order = tally.Reconcile(b.order, tally.AllTypes(custom))
	return nil
}

// CheckMidnight polls the clock once and rolls over when the civil time is
// inside the boundary window and the date key has moved on. It reports
// whether a rollover happened.
func (b *Board) CheckMidnight(ctx context.Context) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.active == nil {
		return false, ErrNotLoaded
	}

	now := b.clock()
	if !civil.IsBoundaryMinute(now) {
		return false, nil
	}
	if civil.DateKey(now) == b.active.Date {
		return false, nil
	}
	if err := b.rolloverLocked(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// RunMidnightWatch checks for the midnight boundary once immediately and
// then every MidnightPollInterval until ctx is done. Rollover failures are
// delivered to onEvent (nil fn is allowed) and never stop the loop; the
// user re-triggers by waiting for the next tick.
func (b *Board) RunMidnightWatch(ctx context.Context, onEvent func(rolled bool, err error)) {
	check := func() {
		rolled, err := b.CheckMidnight(ctx)
		if onEvent != nil && (rolled || err != nil) {
			onEvent(rolled, err)
		}
	}

	check()
	ticker := time.NewTicker(MidnightPollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			check()
		}
	}
}

// DateKey returns the active snapshot's date key.
func (b *Board) DateKey() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.active == nil {
		return ""
	}
	return b.active.Date
}

// CustomTypes returns the current global custom tally list.
func (b *Board) CustomTypes() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.custom...)
}

// Order returns the current display order.
func (b *Board) Order() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.order...)
}

// Ordered returns the board rows in display order.
func (b *Board) Ordered() []Item {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.active == nil {
		return nil
	}
	items := make([]Item, 0, len(b.order))
	for _, name := range b.order {
		items = append(items, Item{
			Name:    name,
			Count:   b.active.Tallies.Count(name),
			Builtin: tally.IsBuiltin(name),
		})
	}
	return items
}

// Snapshot returns a copy of the active snapshot.
func (b *Board) Snapshot() *tally.Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.active.Clone()
}
