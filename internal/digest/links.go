package digest

import "github.com/abelbrown/govlens/internal/signal"

// Link renders the chat surface's inline link markup, <url|label>.
// An empty URL yields an empty string so callers never emit placeholder
// links.
func Link(url, label string) string {
	if url == "" {
		return ""
	}
	return "<" + url + "|" + label + ">"
}

// SourceLink renders a signal's link with the label its source dictates
// (FR, Congress, Docket, or View).
func SourceLink(sig *signal.Signal) string {
	return Link(sig.Link, sig.Source.LinkLabel())
}

// joinParts joins non-empty segments with the digest's inline separator.
func joinParts(parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += " • "
		}
		out += p
	}
	return out
}
