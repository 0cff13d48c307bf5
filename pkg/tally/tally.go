// Package tally holds the counter set model: named non-negative counts,
// the builtin/custom split, and the persisted day snapshot document.
package tally

import (
	"errors"
	"strings"
)

// DefaultTypes are the builtin tallies present on every day's board.
// They can never be removed.
var DefaultTypes = []string{
	"PRODUCT SERVICE REQUESTS",
	"IN-STORE REPAIRS",
	"DROP-OFFS",
	"AFTER-SALES CALLS",
	"DEFERRALS",
}

var (
	ErrUnknownTally   = errors.New("tally: unknown tally type")
	ErrDuplicateTally = errors.New("tally: tally type already exists")
	ErrProtectedTally = errors.New("tally: default tally types cannot be removed")
)

// Normalize canonicalizes a user-supplied tally name. All stored keys are
// normalized, so lookups must normalize too or case variants would diverge.
func Normalize(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// IsBuiltin reports whether name is one of the default tally types.
// Expects a normalized name.
func IsBuiltin(name string) bool {
	for _, t := range DefaultTypes {
		if t == name {
			return true
		}
	}
	return false
}

// AllTypes returns the builtin types followed by the given custom types, in
// their insertion order. This is the default enumeration order.
func AllTypes(custom []string) []string {
	all := make([]string, 0, len(DefaultTypes)+len(custom))
	all = append(all, DefaultTypes...)
	all = append(all, custom...)
	return all
}

// Tally is a single counter value as stored in the day document.
type Tally struct {
	Count int `json:"count"`
}

// Counts maps a tally type to its value for one day.
type Counts map[string]Tally

// Initialize returns every given name mapped to zero.
func Initialize(names []string) Counts {
	c := make(Counts, len(names))
	for _, name := range names {
		c[name] = Tally{}
	}
	return c
}

func (c Counts) clone() Counts {
	out := make(Counts, len(c))
	for name, t := range c {
		out[name] = t
	}
	return out
}

// Has reports whether name is present. Expects a normalized name.
func (c Counts) Has(name string) bool {
	_, ok := c[name]
	return ok
}

// Count returns the value for name, zero when absent.
func (c Counts) Count(name string) int {
	return c[name].Count
}

// Increment returns a copy of c with name raised by one. The receiver is
// never mutated, so a failed remote write can keep the prior state.
func (c Counts) Increment(name string) (Counts, error) {
	if !c.Has(name) {
		return nil, ErrUnknownTally
	}
	out := c.clone()
	out[name] = Tally{Count: out[name].Count + 1}
	return out, nil
}

// Decrement returns a copy of c with name lowered by one. At zero it is a
// no-op; counts never go negative.
func (c Counts) Decrement(name string) (Counts, error) {
	if !c.Has(name) {
		return nil, ErrUnknownTally
	}
	if c[name].Count == 0 {
		return c.clone(), nil
	}
	out := c.clone()
	out[name] = Tally{Count: out[name].Count - 1}
	return out, nil
}

// AddCustom inserts a new custom tally at zero. The name must not collide,
// after normalization, with any builtin or existing key.
func (c Counts) AddCustom(name string) (Counts, error) {
	name = Normalize(name)
	if name == "" {
		return nil, ErrUnknownTally
	}
	if IsBuiltin(name) || c.Has(name) {
		return nil, ErrDuplicateTally
	}
	out := c.clone()
	out[name] = Tally{}
	return out, nil
}

// RemoveCustom deletes a custom tally entirely. Builtins are protected.
func (c Counts) RemoveCustom(name string) (Counts, error) {
	name = Normalize(name)
	if IsBuiltin(name) {
		return nil, ErrProtectedTally
	}
	if !c.Has(name) {
		return nil, ErrUnknownTally
	}
	out := c.clone()
	delete(out, name)
	return out, nil
}

// Zeroed returns a copy of c with every count reset to zero, keeping the
// key set intact.
func (c Counts) Zeroed() Counts {
	out := make(Counts, len(c))
	for name := range c {
		out[name] = Tally{}
	}
	return out
}
