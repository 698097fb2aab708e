// Package width computes the display width of commit and branch text the
// way a terminal renderer would, honouring grapheme clusters rather than
// raw bytes or runes.
package width

import (
	"unicode"

	"github.com/clipperhouse/displaywidth"
	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/mattn/go-runewidth"
)

// Clusters splits s into its grapheme clusters.
func Clusters(s string) []string {
	clusters := make([]string, 0, len(s))
	for g := range graphemes.FromString(s) {
		clusters = append(clusters, g)
	}

	return clusters
}

// ClusterWidth returns the display width of a single grapheme cluster: 0 for
// zero-width joiners, combining marks and variation selectors; 2 for
// East-Asian Wide/Fullwidth and emoji-presentation clusters; 1 otherwise.
func ClusterWidth(g string) int {
	if g == "" {
		return 0
	}

	w := displaywidth.String(g)
	if w > 0 {
		return w
	}

	// displaywidth reports 0 for some isolated combining/format runes it
	// doesn't special-case; go-runewidth gives a second opinion for the
	// single-rune case so a genuinely wide isolated rune isn't undercounted.
	runes := []rune(g)
	if len(runes) == 1 {
		if rw := runewidth.RuneWidth(runes[0]); rw > w {
			return rw
		}
	}

	return w
}

// StringWidth returns the display width of s: the sum of its grapheme
// cluster widths.
func StringWidth(s string) int {
	total := 0
	for g := range graphemes.FromString(s) {
		total += ClusterWidth(g)
	}

	return total
}

// variationSelector16 forces emoji presentation on an otherwise text-default
// symbol (e.g. "#️⃣" for the "#" keycap).
const variationSelector16 = '️'

// keycapBases are ASCII bases that combine with a variation selector and a
// combining enclosing keycap (U+20E3) to form a keycap emoji sequence, but
// are themselves excluded from emoji-prefix classification per spec.
func isKeycapBase(r rune) bool {
	return r == '*' || r == '#' || (r >= '0' && r <= '9')
}

// HasEmojiPresentation reports whether the first grapheme cluster of s has
// emoji presentation: default emoji presentation, presentation forced via
// U+FE0F, or membership in the symbol/pictographic ranges — excluding the
// keycap bases ('*', '#', ASCII digits) which are not emoji prefixes on
// their own.
func HasEmojiPresentation(s string) bool {
	clusters := Clusters(s)
	if len(clusters) == 0 {
		return false
	}

	first := []rune(clusters[0])
	if len(first) == 0 {
		return false
	}

	base := first[0]
	if isKeycapBase(base) {
		return false
	}

	for _, r := range first {
		if r == variationSelector16 {
			return true
		}
	}

	return isSymbolOrPictographic(base)
}

// isSymbolOrPictographic approximates Unicode's Emoji/Extended_Pictographic
// properties with the ranges that cover virtually all commonly typed emoji,
// deliberately excluding ASCII punctuation/digits.
func isSymbolOrPictographic(r rune) bool {
	switch {
	case r >= 0x1F300 && r <= 0x1FAFF: // misc symbols/pictographs, emoticons, transport, supplemental
		return true
	case r >= 0x2600 && r <= 0x27BF: // misc symbols, dingbats
		return true
	case r >= 0x2190 && r <= 0x21FF: // arrows (commonly emoji-rendered)
		return true
	case r >= 0x2B00 && r <= 0x2BFF: // misc symbols and arrows
		return true
	case r == 0x203C || r == 0x2049: // double/interrobang
		return true
	case r >= 0x1F1E6 && r <= 0x1F1FF: // regional indicators (flags)
		return true
	default:
		return false
	}
}

// IsPunctuation reports whether r is a Unicode punctuation character (ASCII
// or otherwise), using Go's canonical Unicode General Category tables.
func IsPunctuation(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r) && isASCIIPunctSymbol(r)
}

// isASCIIPunctSymbol covers ASCII characters classified as Symbol rather
// than Punctuation by Unicode (e.g. '+', '<', '=', '>', '|', '~', '$', '^',
// '`') that commit-style conventions still treat as punctuation.
func isASCIIPunctSymbol(r rune) bool {
	switch r {
	case '+', '<', '=', '>', '|', '~', '$', '^', '`':
		return true
	default:
		return false
	}
}

// IsWhitespace reports whether r is Unicode whitespace.
func IsWhitespace(r rune) bool {
	return unicode.IsSpace(r)
}
