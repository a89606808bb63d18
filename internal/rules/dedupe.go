package rules

import "github.com/abelbrown/govlens/internal/signal"

// Dedupe collapses signals sharing a stable ID, keeping the member with
// the highest priority score; on a tie the first-seen member wins. Output
// preserves first-seen order, so running Dedupe on its own output is a
// no-op.
func Dedupe(signals []signal.Signal) []signal.Signal {
	best := make(map[string]int, len(signals))
	var order []string

	for i := range signals {
		id := signals[i].StableID()
		j, seen := best[id]
		if !seen {
			best[id] = i
			order = append(order, id)
			continue
		}
		if signals[i].PriorityScore > signals[j].PriorityScore {
			best[id] = i
		}
	}

	out := make([]signal.Signal, 0, len(order))
	for _, id := range order {
		out = append(out, signals[best[id]])
	}
	return out
}

// GroupByBill groups signals by bill ID. Signals without a bill ID are
// excluded.
func GroupByBill(signals []signal.Signal) map[string][]signal.Signal {
	groups := make(map[string][]signal.Signal)
	for _, sig := range signals {
		if sig.BillID == "" {
			continue
		}
		groups[sig.BillID] = append(groups[sig.BillID], sig)
	}
	return groups
}

// GroupByDocket groups regulations.gov signals by their derived docket
// key (the source ID prefix before the first separator).
func GroupByDocket(signals []signal.Signal) map[string][]signal.Signal {
	groups := make(map[string][]signal.Signal)
	for _, sig := range signals {
		if sig.Source != signal.SourceRegulationsGov {
			continue
		}
		key := sig.DocketKey()
		groups[key] = append(groups[key], sig)
	}
	return groups
}

// Latest returns the group member with the most recent timestamp. The
// composer uses this to emit one representative per correlation group.
func Latest(group []signal.Signal) (signal.Signal, bool) {
	if len(group) == 0 {
		return signal.Signal{}, false
	}
	latest := group[0]
	for _, sig := range group[1:] {
		if sig.Timestamp.After(latest.Timestamp) {
			latest = sig
		}
	}
	return latest, true
}
