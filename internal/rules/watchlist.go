package rules

import (
	"strings"

	"github.com/abelbrown/govlens/internal/signal"
)

// MatchWatchlist returns every watch term found in the signal's
// title+summary+agency, case-insensitively. Pure: the term list is never
// mutated, and an empty result means no hit.
func MatchWatchlist(sig *signal.Signal, terms []string) []string {
	if len(terms) == 0 {
		return nil
	}

	text := sig.SearchText()
	var matches []string
	for _, term := range terms {
		if term == "" {
			continue
		}
		if strings.Contains(text, strings.ToLower(term)) {
			matches = append(matches, term)
		}
	}
	return matches
}
