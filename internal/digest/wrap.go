package digest

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Text shaping for narrow mobile columns. Titles wrap into a second line
// rather than losing words; free-text summaries get ellipsis-truncated.
// Widths are display widths (runewidth), not byte counts.

// minBreakRatio is how far into the limit a space must sit before it is
// an acceptable break point; breaking earlier wastes too much of the
// first line.
const minBreakRatio = 0.6

// summaryBreakRatio is the equivalent floor for summary truncation.
const summaryBreakRatio = 0.8

// WrapTitle splits a title into at most two lines. The break lands on
// the nearest space preceding the limit, provided that space sits past
// 60% of the limit; with no usable space the title breaks mid-word at
// the limit. Titles within the limit come back as a single line.
func WrapTitle(title string, limit int) []string {
	if limit <= 0 || runewidth.StringWidth(title) <= limit {
		return []string{title}
	}

	width := 0
	lastSpace := -1
	lastSpaceWidth := 0
	cut := len(title)

	for i, r := range title {
		w := runewidth.RuneWidth(r)
		if width+w > limit {
			cut = i
			break
		}
		if r == ' ' {
			lastSpace = i
			lastSpaceWidth = width
		}
		width += w
	}

	if lastSpace >= 0 && float64(lastSpaceWidth) > minBreakRatio*float64(limit) {
		return []string{title[:lastSpace], title[lastSpace+1:]}
	}
	return []string{title[:cut], title[cut:]}
}

// TruncateSummary shortens a summary to the limit with a trailing
// ellipsis, backing up to the nearest word boundary when one sits past
// 80% of the limit.
func TruncateSummary(s string, limit int) string {
	if limit <= 3 || runewidth.StringWidth(s) <= limit {
		return s
	}

	head := cutAtWidth(s, limit)
	if i := strings.LastIndex(head, " "); i > int(summaryBreakRatio*float64(limit)) {
		return s[:i] + "..."
	}
	return cutAtWidth(s, limit-3) + "..."
}

// cutAtWidth returns the longest prefix of s whose display width does
// not exceed limit.
func cutAtWidth(s string, limit int) string {
	width := 0
	for i, r := range s {
		w := runewidth.RuneWidth(r)
		if width+w > limit {
			return s[:i]
		}
		width += w
	}
	return s
}
