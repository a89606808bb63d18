package rules

import (
	"strings"

	"github.com/abelbrown/govlens/internal/signal"
)

// TagIndustry assigns a topical industry via layered first-match-wins
// lookup: issue codes in their given order, then agency-name fragments,
// then content keywords, then the default.
func TagIndustry(sig *signal.Signal) string {
	for _, code := range sig.IssueCodes {
		if industry, ok := issueIndustries[code]; ok {
			return industry
		}
	}

	if sig.Agency != "" {
		agency := strings.ToLower(sig.Agency)
		for _, m := range agencyIndustries {
			if strings.Contains(agency, m.Keyword) {
				return m.Industry
			}
		}
	}

	text := sig.SearchText()
	for _, m := range contentIndustries {
		if strings.Contains(text, m.Keyword) {
			return m.Industry
		}
	}

	return DefaultIndustry
}
