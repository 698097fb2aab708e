package rules

import (
	"regexp"
	"sort"
)

// TicketKind classifies how a ticket/issue reference was recognised.
type TicketKind int

const (
	// Shorthand is a bare `#123` reference.
	Shorthand TicketKind = iota
	// DottedID is a `PROJ-123`-style tracker ID.
	DottedID
	// CrossRepo is an `owner/repo#123` reference.
	CrossRepo
	// KeywordPhrase is `Fixes #123` / `Closes 123` etc.
	KeywordPhrase
	// URLReference is a full GitHub/GitLab issue or PR URL.
	URLReference
)

// TicketMatch is a single recognised ticket reference.
type TicketMatch struct {
	Start, End int
	Kind       TicketKind
}

var (
	shorthandRegex = regexp.MustCompile(`#\d+\b`)
	dottedIDRegex  = regexp.MustCompile(`\b[A-Z][A-Z0-9]+-\d+\b`)
	crossRepoRegex = regexp.MustCompile(`\b\w+/\w+#\d+\b`)
	urlRegex       = regexp.MustCompile(
		`\bhttps?://(?:www\.)?(?:github|gitlab)\.com/[\w.-]+/[\w.-]+/(?:issues|pull|merge_requests)/\d+\b`,
	)
	keywordPhraseRegex = regexp.MustCompile(
		`(?i)\b(?:fixes|fix|closes|close|resolves|resolve|part of)\s+#?\d+\b`,
	)

	letterRunRegex = regexp.MustCompile(`[A-Z]{2,}`)
)

// FindTicketReferences returns every ticket/issue reference recognised in
// text, earliest match first, with overlapping lower-priority matches
// suppressed in favour of the more specific kind (URL > keyword phrase >
// cross-repo > dotted-id > shorthand).
func FindTicketReferences(text string) []TicketMatch {
	var matches []TicketMatch

	for _, loc := range urlRegex.FindAllStringIndex(text, -1) {
		matches = append(matches, TicketMatch{loc[0], loc[1], URLReference})
	}

	for _, loc := range keywordPhraseRegex.FindAllStringIndex(text, -1) {
		matches = append(matches, TicketMatch{loc[0], loc[1], KeywordPhrase})
	}

	for _, loc := range crossRepoRegex.FindAllStringIndex(text, -1) {
		matches = append(matches, TicketMatch{loc[0], loc[1], CrossRepo})
	}

	for _, loc := range dottedIDRegex.FindAllStringIndex(text, -1) {
		if !letterRunRegex.MatchString(text[loc[0]:loc[1]]) {
			continue
		}

		matches = append(matches, TicketMatch{loc[0], loc[1], DottedID})
	}

	for _, loc := range shorthandRegex.FindAllStringIndex(text, -1) {
		matches = append(matches, TicketMatch{loc[0], loc[1], Shorthand})
	}

	kept := dedupeOverlaps(matches)

	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Start < kept[j].Start })

	return kept
}

// HasTicketReference is a cheap existence check for MessageTicketNumber.
func HasTicketReference(text string) bool {
	return len(FindTicketReferences(text)) > 0
}

func dedupeOverlaps(matches []TicketMatch) []TicketMatch {
	if len(matches) <= 1 {
		return matches
	}

	kept := make([]TicketMatch, 0, len(matches))

	for _, m := range matches {
		overlaps := false

		for i, k := range kept {
			if m.Start < k.End && k.Start < m.End {
				overlaps = true
				// Keep the earlier-priority (already-inserted) match;
				// the priority ordering is encoded by insertion order
				// above (URL, keyword, cross-repo, dotted, shorthand).
				_ = i

				break
			}
		}

		if !overlaps {
			kept = append(kept, m)
		}
	}

	return kept
}
