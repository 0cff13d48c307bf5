package tally

// Reconcile merges a persisted display order with the current set of tally
// names. Names no longer present are dropped, retained names keep their
// relative order, and names missing from the order are appended in their
// enumeration order. An empty order yields all in enumeration order.
// Reconcile is idempotent.
func Reconcile(order, all []string) []string {
	present := make(map[string]bool, len(all))
	for _, name := range all {
		present[name] = true
	}

	kept := make([]string, 0, len(all))
	seen := make(map[string]bool, len(all))
	for _, name := range order {
		if present[name] && !seen[name] {
			kept = append(kept, name)
			seen[name] = true
		}
	}
	for _, name := range all {
		if !seen[name] {
			kept = append(kept, name)
			seen[name] = true
		}
	}
	return kept
}

// ApplyMove removes source from order and reinserts it at target's former
// position, the usual drag-reorder semantics. It returns a fresh slice and
// is a no-op copy when source equals target or either is absent.
func ApplyMove(order []string, source, target string) []string {
	out := append([]string(nil), order...)
	if source == target {
		return out
	}
	src, tgt := -1, -1
	for i, name := range out {
		switch name {
		case source:
			src = i
		case target:
			tgt = i
		}
	}
	if src < 0 || tgt < 0 {
		return out
	}
	out = append(out[:src], out[src+1:]...)
	out = append(out[:tgt], append([]string{source}, out[tgt:]...)...)
	return out
}
