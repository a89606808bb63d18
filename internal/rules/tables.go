package rules

import "github.com/abelbrown/govlens/internal/signal"

// Lookup tables are loaded once as immutable package data and shared by
// every engine instance.

// baseScores are the per-type starting points for priority scoring.
var baseScores = map[signal.Type]float64{
	signal.TypeFinalRule:        5.0,
	signal.TypeInterimFinalRule: 5.0,
	signal.TypeProposedRule:     3.5,
	signal.TypeHearing:          3.0,
	signal.TypeMarkup:           3.0,
	signal.TypeDocket:           2.0,
	signal.TypeBill:             1.5,
	signal.TypeNotice:           1.0,
}

// actionBaseScores override the type base for late-stage bill actions.
var actionBaseScores = map[string]float64{
	signal.ActionFloorVote:        4.0,
	signal.ActionConferenceAction: 4.0,
}

// issueIndustries maps short topical codes to industries. Codes are
// scanned in the order they appear on the signal, so this can stay a map.
var issueIndustries = map[string]string{
	"HCR": "Health",
	"FIN": "Finance",
	"TEC": "Tech",
	"ENE": "Energy",
	"ENV": "Environment",
	"TRD": "Trade",
	"DEF": "Defense",
	"TAX": "Tax",
	"TRA": "Transportation",
	"EDU": "Education",
	"AGR": "Agriculture",
	"LAB": "Labor",
	"IMM": "Immigration",
	"CIV": "Civil Rights",
	"COM": "Commerce",
	"GOV": "Government",
	"INT": "Cyber/Intel",
}

type keywordIndustry struct {
	Keyword  string
	Industry string
}

// agencyIndustries maps agency-name fragments to industries. Scanned in
// slice order so the result is deterministic.
var agencyIndustries = []keywordIndustry{
	{"hhs", "Health"},
	{"fda", "Health"},
	{"cms", "Health"},
	{"epa", "Environment"},
	{"doe", "Energy"},
	{"fcc", "Tech"},
	{"ftc", "Tech"},
	{"sec", "Finance"},
	{"treasury", "Finance"},
	{"dhs", "Defense"},
	{"dod", "Defense"},
	{"dot", "Transportation"},
	{"faa", "Transportation"},
	{"usda", "Agriculture"},
	{"dol", "Labor"},
}

// contentIndustries is the last-resort keyword scan over title+summary+agency.
var contentIndustries = []keywordIndustry{
	{"health", "Health"},
	{"medical", "Health"},
	{"drug", "Health"},
	{"privacy", "Tech"},
	{"cybersecurity", "Tech"},
	{"artificial intelligence", "Tech"},
	{"climate", "Environment"},
	{"emissions", "Environment"},
	{"energy", "Energy"},
	{"banking", "Finance"},
	{"securities", "Finance"},
	{"tax", "Tax"},
	{"transportation", "Transportation"},
	{"aviation", "Transportation"},
	{"education", "Education"},
	{"agriculture", "Agriculture"},
	{"labor", "Labor"},
	{"immigration", "Immigration"},
}

// DefaultIndustry is returned when no lookup layer matches.
const DefaultIndustry = "Government"
