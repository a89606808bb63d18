package rules

import (
	"strings"

	"github.com/abelbrown/govlens/internal/signal"
)

// Classify maps a signal to its type tag. The source picks the candidate
// tag space; within a source, checks run in a fixed priority order against
// the lowercased title+summary and the first match wins.
func Classify(sig *signal.Signal) signal.Type {
	text := strings.ToLower(sig.Title + " " + sig.Summary)

	switch sig.Source {
	case signal.SourceFederalRegister:
		// "interim final rule" contains "final rule", so it must be
		// checked first.
		switch {
		case strings.Contains(text, "interim final rule"):
			return signal.TypeInterimFinalRule
		case strings.Contains(text, "final rule"):
			return signal.TypeFinalRule
		case strings.Contains(text, "proposed rule") || strings.Contains(text, "nprm"):
			return signal.TypeProposedRule
		default:
			return signal.TypeNotice
		}

	case signal.SourceCongress:
		switch {
		case strings.Contains(text, "markup"):
			return signal.TypeMarkup
		case strings.Contains(text, "hearing"):
			return signal.TypeHearing
		default:
			// Floor votes and conference actions stay TypeBill; the
			// scorer special-cases the action type.
			return signal.TypeBill
		}

	case signal.SourceRegulationsGov:
		return signal.TypeDocket
	}

	return signal.TypeNotice
}
