package rules

import "regexp"

var urlWholeLineRegex = regexp.MustCompile(`^https?://\S+$`)

// trailerKeyRegex matches the `Key: value` shape a MessageTrailerLine
// candidate must have; it is the same pattern as commitparse's trailer-line
// regex, with the key captured.
var trailerKeyRegex = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9-]*):\s.+$`)

func trimSpaceASCII(s string) string {
	start := 0
	for start < len(s) && isASCIISpace(s[start]) {
		start++
	}

	end := len(s)
	for end > start && isASCIISpace(s[end-1]) {
		end--
	}

	return s[start:end]
}

func isASCIISpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

func looksLikeTrailerKey(line string) (key string, ok bool) {
	m := trailerKeyRegex.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}

	return m[1], true
}
